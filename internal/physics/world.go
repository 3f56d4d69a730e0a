package physics

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ByteArena/box2d"
)

var (
	// ErrWorldLocked is returned when the world is modified from inside the engine step.
	ErrWorldLocked = errors.New("physics: world is locked during step")
	// ErrAlreadyAdded is returned when an actor is added twice.
	ErrAlreadyAdded = errors.New("physics: actor already added to a world")
	// ErrStaticTriangleMesh is returned when a dynamic actor carries a triangle mesh.
	ErrStaticTriangleMesh = errors.New("physics: triangle meshes are only allowed on static actors")
)

// WorldConfig holds engine parameters.
type WorldConfig struct {
	Gravity            Vec2
	VelocityIterations int
	PositionIterations int
}

// DefaultWorldConfig returns earth gravity along -Y and the engine's recommended iteration counts.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:            V(0, -9.81),
		VelocityIterations: 8,
		PositionIterations: 3,
	}
}

// World owns the engine world, its actors and joints, and routes engine callbacks
// through the filter shader to the simulation event callback.
type World struct {
	cfg       WorldConfig
	b2        *box2d.B2World
	actors    []Actor
	joints    []*DistanceJoint
	material  *Material
	shader    FilterShader
	callback  SimulationEventCallback
	pending   []event
	awake     map[*DynamicActor]bool
	onImpulse func(*DynamicActor, Vec2)
}

// NewWorld returns an empty world using cfg and the default filter shader.
func NewWorld(cfg WorldConfig) *World {
	if cfg.VelocityIterations <= 0 {
		cfg.VelocityIterations = 8
	}
	if cfg.PositionIterations <= 0 {
		cfg.PositionIterations = 3
	}
	b2 := box2d.MakeB2World(cfg.Gravity)
	w := &World{
		cfg:      cfg,
		b2:       &b2,
		material: DefaultMaterial(),
		shader:   DefaultFilterShader,
		awake:    make(map[*DynamicActor]bool),
	}
	l := &listener{w: w}
	w.b2.SetContactFilter(l)
	w.b2.SetContactListener(l)
	return w
}

// Gravity returns the gravity vector.
func (w *World) Gravity() Vec2 {
	return w.b2.GetGravity()
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g Vec2) {
	w.b2.SetGravity(g)
}

// Material returns the default material. Changes affect actors added afterwards.
func (w *World) Material() *Material {
	return w.material
}

// SetFilterShader installs the pair filter. nil restores DefaultFilterShader.
func (w *World) SetFilterShader(fs FilterShader) {
	if fs == nil {
		fs = DefaultFilterShader
	}
	w.shader = fs
}

// SetSimulationEventCallback installs the receiver of simulation events. nil disables events.
func (w *World) SetSimulationEventCallback(cb SimulationEventCallback) {
	w.callback = cb
}

// SetImpulseObserver registers fn to be called for every impulse applied to a body in w.
func (w *World) SetImpulseObserver(fn func(a *DynamicActor, impulse Vec2)) {
	w.onImpulse = fn
}

// Actors returns the actors in insertion order.
func (w *World) Actors() []Actor {
	return w.actors
}

// Joints returns the live joints in creation order.
func (w *World) Joints() []*DistanceJoint {
	return w.joints
}

// Find returns the first actor with the given name.
func (w *World) Find(name string) (Actor, bool) {
	for _, a := range w.actors {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

func (w *World) locked() bool {
	return w.b2.IsLocked()
}

// Add creates the engine body for a and its shapes.
func (w *World) Add(a Actor) error {
	b := a.base()
	if b.world != nil {
		return ErrAlreadyAdded
	}
	if w.locked() {
		return ErrWorldLocked
	}
	dyn, isDynamic := a.AsDynamic()

	built := make([][]box2d.B2ShapeInterface, len(b.shapes))
	for i, s := range b.shapes {
		if isDynamic && s.geometry.Type == GeometryTriangleMesh {
			return ErrStaticTriangleMesh
		}
		shapes, err := s.geometry.engineShapes(s.local)
		if err != nil {
			return fmt.Errorf("add %q: %w", a.Name(), err)
		}
		built[i] = shapes
	}

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	if isDynamic {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	bd.Position = b.pose.Position
	bd.Angle = b.pose.Angle
	bd.UserData = a
	body := w.b2.CreateBody(&bd)

	mat := b.material
	if mat == nil {
		mat = w.material
	}
	for i, s := range b.shapes {
		for _, es := range built[i] {
			fd := box2d.MakeB2FixtureDef()
			fd.Shape = es
			fd.Density = b.density
			fd.Friction = mat.DynamicFriction
			fd.Restitution = mat.Restitution
			fd.IsSensor = s.trigger
			fd.UserData = s
			s.fixtures = append(s.fixtures, body.CreateFixtureFromDef(&fd))
		}
	}

	b.body = body
	b.world = w
	w.actors = append(w.actors, a)
	if isDynamic {
		w.awake[dyn] = body.IsAwake()
		pending := dyn.pending
		dyn.pending = nil
		for _, imp := range pending {
			dyn.AddImpulse(imp)
		}
	}
	return nil
}

// Remove destroys a's engine body and any joints attached to it.
func (w *World) Remove(a Actor) error {
	b := a.base()
	if b.world != w {
		return ErrNotInWorld
	}
	if w.locked() {
		return ErrWorldLocked
	}
	w.joints = slices.DeleteFunc(w.joints, func(j *DistanceJoint) bool {
		if j.actors[0] == a || j.actors[1] == a {
			j.broken = true
			return true
		}
		return false
	})
	b.pose = a.GlobalPose()
	// The engine destroys attached joints together with the body.
	w.b2.DestroyBody(b.body)
	b.body = nil
	b.world = nil
	for _, s := range b.shapes {
		s.fixtures = nil
	}
	w.actors = slices.DeleteFunc(w.actors, func(x Actor) bool { return x == a })
	if d, ok := a.AsDynamic(); ok {
		delete(w.awake, d)
	}
	return nil
}

// Destroy removes every actor and joint.
func (w *World) Destroy() {
	for len(w.actors) > 0 {
		_ = w.Remove(w.actors[len(w.actors)-1])
	}
	w.pending = nil
}

// Step advances the simulation by dt seconds, then delivers the events it produced.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.b2.Step(dt, w.cfg.VelocityIterations, w.cfg.PositionIterations)
	broken := w.breakJoints(1 / dt)
	woke, slept := w.sleepTransitions()
	w.flush()
	if w.callback == nil {
		return
	}
	if len(broken) > 0 {
		w.callback.OnConstraintBreak(broken)
	}
	if len(woke) > 0 {
		w.callback.OnWake(woke)
	}
	if len(slept) > 0 {
		w.callback.OnSleep(slept)
	}
}

func (w *World) breakJoints(invDt float64) []ConstraintInfo {
	var broken []ConstraintInfo
	w.joints = slices.DeleteFunc(w.joints, func(j *DistanceJoint) bool {
		if j.breakForce <= 0 || j.reaction(invDt) <= j.breakForce {
			return false
		}
		w.b2.DestroyJoint(j.joint)
		j.broken = true
		broken = append(broken, ConstraintInfo{Joint: j})
		return true
	})
	return broken
}

func (w *World) sleepTransitions() (woke, slept []Actor) {
	for _, a := range w.actors {
		d, ok := a.AsDynamic()
		if !ok {
			continue
		}
		now := d.body.IsAwake()
		if was := w.awake[d]; was != now {
			if now {
				woke = append(woke, d)
			} else {
				slept = append(slept, d)
			}
			w.awake[d] = now
		}
	}
	return woke, slept
}

// flush hands buffered trigger and contact events to the callback in engine order.
// Consecutive trigger pairs are delivered as one batch.
func (w *World) flush() {
	events := w.pending
	w.pending = nil
	if w.callback == nil {
		return
	}
	var triggers []TriggerPair
	emitTriggers := func() {
		if len(triggers) > 0 {
			w.callback.OnTrigger(triggers)
			triggers = nil
		}
	}
	for _, ev := range events {
		if ev.trigger != nil {
			triggers = append(triggers, *ev.trigger)
			continue
		}
		emitTriggers()
		w.callback.OnContact(ev.header, []ContactPair{*ev.contact})
	}
	emitTriggers()
}
