package physics

// FilterData holds the two filtering words of a shape.
// Word0 is the group the shape belongs to, Word1 the mask of groups it reports contacts with.
type FilterData struct {
	Word0 uint32
	Word1 uint32
}

// FilterAttributes describes a shape to a filter shader.
type FilterAttributes uint32

const (
	AttrTrigger FilterAttributes = 1 << iota
	AttrStatic
	AttrDynamic
)

// IsTrigger reports whether the shape is a trigger volume.
func (a FilterAttributes) IsTrigger() bool {
	return a&AttrTrigger != 0
}

// IsStatic reports whether the shape belongs to a static actor.
func (a FilterAttributes) IsStatic() bool {
	return a&AttrStatic != 0
}

// PairFlags select the response and notifications for a pair of shapes.
type PairFlags uint32

const (
	SolveContact PairFlags = 1 << iota
	DetectDiscreteContact
	NotifyTouchFound
	NotifyTouchLost
	NotifyContactPoints
	DetectCCDContact
)

const (
	// ContactDefault resolves contacts without reporting them.
	ContactDefault = SolveContact | DetectDiscreteContact
	// TriggerDefault reports enter and exit of trigger volumes.
	TriggerDefault = NotifyTouchFound | NotifyTouchLost | DetectDiscreteContact
)

// Has reports whether all bits of f are set in p.
func (p PairFlags) Has(f PairFlags) bool {
	return p&f == f
}

// FilterFlags can discard a pair altogether.
type FilterFlags uint32

const (
	// Kill drops the pair; it will not be reported or resolved.
	Kill FilterFlags = 1 << iota
	// Suppress ignores the pair while both shapes keep their current filter data.
	Suppress
)

// FilterShader decides the pair flags for two shapes. It runs inside the engine's
// collision pipeline and must be free of side effects.
type FilterShader func(attrs0 FilterAttributes, data0 FilterData, attrs1 FilterAttributes, data1 FilterData) (PairFlags, FilterFlags)

// DefaultFilterShader reports trigger volumes and resolves every other pair silently.
func DefaultFilterShader(attrs0 FilterAttributes, _ FilterData, attrs1 FilterAttributes, _ FilterData) (PairFlags, FilterFlags) {
	if attrs0.IsTrigger() || attrs1.IsTrigger() {
		return TriggerDefault, 0
	}
	return ContactDefault, 0
}
