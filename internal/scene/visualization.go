package scene

// VisParam names a debug visualization parameter.
type VisParam uint8

const (
	// VisScale enables debug visualization as a whole; zero hides every overlay.
	VisScale VisParam = iota
	VisCollisionShapes
	VisJointLocalFrames
	VisJointLimits
	numVisParams
)

var visNames = [numVisParams]string{"scale", "shapes", "frames", "limits"}

func (p VisParam) String() string {
	if p < numVisParams {
		return visNames[p]
	}
	return "unknown"
}

// ParseVisParam maps a name as printed by String back to its parameter.
func ParseVisParam(name string) (VisParam, bool) {
	for i, n := range visNames {
		if n == name {
			return VisParam(i), true
		}
	}
	return 0, false
}

// Visualization holds the debug visualization values read by renderers.
type Visualization [numVisParams]float64

// Enabled reports whether p should be drawn: both p and VisScale must be non-zero.
func (v Visualization) Enabled(p VisParam) bool {
	return p < numVisParams && v[VisScale] != 0 && v[p] != 0
}

// SetVisualization sets a debug visualization parameter. Unknown parameters are ignored.
func (s *Scene) SetVisualization(p VisParam, value float64) {
	if p < numVisParams {
		s.vis[p] = value
	}
}

// Visualization returns the current visualization values.
func (s *Scene) Visualization() Visualization {
	return s.vis
}
