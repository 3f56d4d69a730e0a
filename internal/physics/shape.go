package physics

import "github.com/ByteArena/box2d"

// Shape is one collision shape of an actor. Filter data and the trigger flag may change
// after the actor joins a world; the engine re-runs the filter shader on the next step.
type Shape struct {
	actor    Actor
	geometry Geometry
	local    Pose
	filter   FilterData
	trigger  bool
	fixtures []*box2d.B2Fixture
}

// Actor returns the owning actor.
func (s *Shape) Actor() Actor {
	return s.actor
}

// Geometry returns the shape's geometry in actor space.
func (s *Shape) Geometry() Geometry {
	return s.geometry
}

// GeometryType is shorthand for Geometry().Type.
func (s *Shape) GeometryType() GeometryType {
	return s.geometry.Type
}

// LocalPose is the shape's placement inside its actor.
func (s *Shape) LocalPose() Pose {
	return s.local
}

// FilterData returns the shape's filter words.
func (s *Shape) FilterData() FilterData {
	return s.filter
}

// SetFilterData replaces the filter words.
func (s *Shape) SetFilterData(fd FilterData) {
	s.filter = fd
	s.refilter()
}

// IsTrigger reports whether the shape is a trigger volume.
func (s *Shape) IsTrigger() bool {
	return s.trigger
}

// SetTrigger turns the shape into a trigger volume (no collision response) or back.
func (s *Shape) SetTrigger(trigger bool) {
	s.trigger = trigger
	for _, f := range s.fixtures {
		f.SetSensor(trigger)
	}
	s.refilter()
}

// Attributes returns the filter attributes passed to filter shaders.
func (s *Shape) Attributes() FilterAttributes {
	var a FilterAttributes
	if s.trigger {
		a |= AttrTrigger
	}
	if _, ok := s.actor.AsDynamic(); ok {
		a |= AttrDynamic
	} else {
		a |= AttrStatic
	}
	return a
}

func (s *Shape) refilter() {
	for _, f := range s.fixtures {
		f.Refilter()
	}
}

func shapeOf(f *box2d.B2Fixture) *Shape {
	if f == nil {
		return nil
	}
	s, _ := f.GetUserData().(*Shape)
	return s
}
