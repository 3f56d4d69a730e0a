package physics

import "github.com/ByteArena/box2d"

// listener adapts engine callbacks to the world's filter shader and event buffer.
// It runs inside the engine step, so it only records events.
type listener struct {
	w *World
}

func (l *listener) pair(fa, fb *box2d.B2Fixture) (s0, s1 *Shape, flags PairFlags, ff FilterFlags, ok bool) {
	s0, s1 = shapeOf(fa), shapeOf(fb)
	if s0 == nil || s1 == nil {
		return nil, nil, 0, 0, false
	}
	flags, ff = l.w.shader(s0.Attributes(), s0.filter, s1.Attributes(), s1.filter)
	return s0, s1, flags, ff, true
}

// ShouldCollide runs the filter shader when the broadphase first pairs two fixtures.
func (l *listener) ShouldCollide(fa, fb *box2d.B2Fixture) bool {
	s0, s1, flags, ff, ok := l.pair(fa, fb)
	if !ok {
		return true
	}
	if s0.trigger && s1.trigger {
		return false
	}
	if ff&(Kill|Suppress) != 0 {
		return false
	}
	return flags != 0
}

func (l *listener) BeginContact(c box2d.B2ContactInterface) {
	l.record(c, NotifyTouchFound)
}

func (l *listener) EndContact(c box2d.B2ContactInterface) {
	l.record(c, NotifyTouchLost)
}

// PreSolve disables the collision response for pairs the shader only wants reported.
func (l *listener) PreSolve(c box2d.B2ContactInterface, _ box2d.B2Manifold) {
	_, _, flags, _, ok := l.pair(c.GetFixtureA(), c.GetFixtureB())
	if ok && !flags.Has(SolveContact) {
		c.SetEnabled(false)
	}
}

func (l *listener) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {}

func (l *listener) record(c box2d.B2ContactInterface, status PairFlags) {
	s0, s1, flags, _, ok := l.pair(c.GetFixtureA(), c.GetFixtureB())
	if !ok || !flags.Has(status) {
		return
	}
	switch {
	case s0.trigger && s1.trigger:
		return
	case s0.trigger:
		l.w.pending = append(l.w.pending, event{trigger: &TriggerPair{
			TriggerShape: s0, TriggerActor: s0.actor,
			OtherShape: s1, OtherActor: s1.actor,
			Status: status,
		}})
	case s1.trigger:
		l.w.pending = append(l.w.pending, event{trigger: &TriggerPair{
			TriggerShape: s1, TriggerActor: s1.actor,
			OtherShape: s0, OtherActor: s0.actor,
			Status: status,
		}})
	default:
		l.w.pending = append(l.w.pending, event{
			header:  ContactPairHeader{Actors: [2]Actor{s0.actor, s1.actor}},
			contact: &ContactPair{Shapes: [2]*Shape{s0, s1}, Events: status},
		})
	}
}
