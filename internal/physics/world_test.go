package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

type recorder struct {
	triggers []TriggerPair
	headers  []ContactPairHeader
	contacts []ContactPair
	broken   []ConstraintInfo
	woke     []Actor
	slept    []Actor
}

func (r *recorder) OnTrigger(pairs []TriggerPair) { r.triggers = append(r.triggers, pairs...) }
func (r *recorder) OnContact(h ContactPairHeader, pairs []ContactPair) {
	r.headers = append(r.headers, h)
	r.contacts = append(r.contacts, pairs...)
}
func (r *recorder) OnConstraintBreak(c []ConstraintInfo) { r.broken = append(r.broken, c...) }
func (r *recorder) OnWake(a []Actor)                     { r.woke = append(r.woke, a...) }
func (r *recorder) OnSleep(a []Actor)                    { r.slept = append(r.slept, a...) }

func run(w *World, steps int) {
	for range steps {
		w.Step(dt)
	}
}

func notifyAll(a0 FilterAttributes, _ FilterData, a1 FilterAttributes, _ FilterData) (PairFlags, FilterFlags) {
	if a0.IsTrigger() || a1.IsTrigger() {
		return TriggerDefault, 0
	}
	return ContactDefault | NotifyTouchFound | NotifyTouchLost, 0
}

func TestSphereFallsUnderGravity(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	s := Sphere(NewPose(0, 10), 0.5, 1)
	require.NoError(t, w.Add(s))

	run(w, 30)

	assert.Less(t, s.GlobalPose().Position.Y, 10.0)
	assert.Less(t, s.LinearVelocity().Y, 0.0)
}

func TestSphereRestsOnGroundAndSleeps(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	rec := &recorder{}
	w.SetSimulationEventCallback(rec)
	require.NoError(t, w.Add(Plane(Identity)))
	s := Sphere(NewPose(0, 2), 0.5, 1)
	require.NoError(t, w.Add(s))

	run(w, 600)

	assert.InDelta(t, 0.5, s.GlobalPose().Position.Y, 0.05)
	assert.False(t, s.IsAwake())
	assert.Contains(t, rec.slept, Actor(s))
}

func TestTriggerReportsEnterAndExit(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	rec := &recorder{}
	w.SetSimulationEventCallback(rec)

	goal := StaticBox(NewPose(0, 0), 2, 0.25)
	goal.SetName("goal")
	goal.SetTrigger(true)
	require.NoError(t, w.Add(goal))
	ball := Sphere(NewPose(0, 2), 0.5, 1)
	ball.SetName("ball")
	require.NoError(t, w.Add(ball))

	run(w, 120)

	require.Len(t, rec.triggers, 2)
	assert.Equal(t, NotifyTouchFound, rec.triggers[0].Status)
	assert.Equal(t, NotifyTouchLost, rec.triggers[1].Status)
	for _, p := range rec.triggers {
		assert.Same(t, goal, p.TriggerActor)
		assert.Same(t, ball, p.OtherActor)
		assert.True(t, p.TriggerShape.IsTrigger())
	}
	assert.Empty(t, rec.contacts, "trigger pairs are never reported as contacts")
}

func TestContactNotificationFollowsShader(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	rec := &recorder{}
	w.SetSimulationEventCallback(rec)

	floor := StaticBox(NewPose(0, 0), 4, 0.5)
	floor.SetName("floor")
	require.NoError(t, w.Add(floor))
	ball := Sphere(NewPose(0, 2), 0.5, 1)
	ball.SetName("ball")
	require.NoError(t, w.Add(ball))

	run(w, 60)
	assert.Empty(t, rec.contacts, "default shader resolves contacts silently")

	w2 := NewWorld(DefaultWorldConfig())
	rec2 := &recorder{}
	w2.SetSimulationEventCallback(rec2)
	w2.SetFilterShader(notifyAll)
	floor2 := StaticBox(NewPose(0, 0), 4, 0.5)
	require.NoError(t, w2.Add(floor2))
	ball2 := Sphere(NewPose(0, 2), 0.5, 1)
	require.NoError(t, w2.Add(ball2))

	run(w2, 60)
	require.NotEmpty(t, rec2.contacts)
	assert.Equal(t, NotifyTouchFound, rec2.contacts[0].Events)
	assert.ElementsMatch(t, []Actor{floor2, ball2}, rec2.headers[0].Actors[:])
}

func TestKilledPairsPassThrough(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	w.SetFilterShader(func(FilterAttributes, FilterData, FilterAttributes, FilterData) (PairFlags, FilterFlags) {
		return ContactDefault, Kill
	})
	require.NoError(t, w.Add(StaticBox(NewPose(0, 0), 4, 0.5)))
	ball := Sphere(NewPose(0, 2), 0.5, 1)
	require.NoError(t, w.Add(ball))

	run(w, 120)

	assert.Less(t, ball.GlobalPose().Position.Y, -1.0)
}

func TestNotifyOnlyPairsAreNotSolved(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	rec := &recorder{}
	w.SetSimulationEventCallback(rec)
	w.SetFilterShader(func(FilterAttributes, FilterData, FilterAttributes, FilterData) (PairFlags, FilterFlags) {
		return DetectDiscreteContact | NotifyTouchFound, 0
	})
	require.NoError(t, w.Add(StaticBox(NewPose(0, 0), 4, 0.5)))
	ball := Sphere(NewPose(0, 2), 0.5, 1)
	require.NoError(t, w.Add(ball))

	run(w, 120)

	assert.NotEmpty(t, rec.contacts)
	assert.Less(t, ball.GlobalPose().Position.Y, -1.0)
}

func TestImpulsesQueuedUntilAdded(t *testing.T) {
	w := NewWorld(WorldConfig{})
	var seen []Vec2
	w.SetImpulseObserver(func(_ *DynamicActor, imp Vec2) { seen = append(seen, imp) })

	s := Sphere(Identity, 1, 1)
	s.AddImpulse(V(2, 0))
	assert.Empty(t, seen)
	assert.Zero(t, s.Mass())

	require.NoError(t, w.Add(s))
	require.Len(t, seen, 1)
	assert.Equal(t, V(2, 0), seen[0])
	assert.InDelta(t, 2/s.Mass(), s.LinearVelocity().X, 1e-9)
}

func TestAddTwiceFails(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	b := Box(Identity, 1, 1, 1)
	require.NoError(t, w.Add(b))
	assert.ErrorIs(t, w.Add(b), ErrAlreadyAdded)
	assert.ErrorIs(t, NewWorld(DefaultWorldConfig()).Add(b), ErrAlreadyAdded)
}

func TestFindByName(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := StaticBox(NewPose(1, 1), 1, 1)
	a.SetName("Box3")
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(Plane(Identity)))

	got, ok := w.Find("Box3")
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = w.Find("missing")
	assert.False(t, ok)
}

func TestDistanceJointKeepsLength(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	top := StaticBox(NewPose(0, 10), 4, 0.5)
	require.NoError(t, w.Add(top))
	bob := Sphere(NewPose(3, 6), 0.5, 1)
	require.NoError(t, w.Add(bob))

	j, err := w.CreateDistanceJoint(top, Frame{}, bob, Frame{})
	require.NoError(t, err)
	assert.InDelta(t, 5, j.Length(), 1e-9)
	assert.Len(t, w.Joints(), 1)

	run(w, 240)

	a, b := j.WorldAnchors()
	d := math.Hypot(b.X-a.X, b.Y-a.Y)
	assert.InDelta(t, 5, d, 0.1)
	assert.False(t, j.IsBroken())
}

func TestDistanceJointErrors(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	a := StaticBox(Identity, 1, 1)
	b := Box(NewPose(0, 5), 1, 1, 1)
	require.NoError(t, w.Add(a))

	_, err := w.CreateDistanceJoint(a, Frame{}, b, Frame{})
	assert.ErrorIs(t, err, ErrNotInWorld)

	require.NoError(t, w.Add(b))
	_, err = w.CreateDistanceJoint(a, Frame{}, a, Frame{})
	assert.Error(t, err)
}

func TestJointBreaksAboveForce(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	rec := &recorder{}
	w.SetSimulationEventCallback(rec)
	top := StaticBox(NewPose(0, 10), 4, 0.5)
	require.NoError(t, w.Add(top))
	bob := Box(NewPose(0, 5), 1, 1, 10)
	require.NoError(t, w.Add(bob))

	j, err := w.CreateDistanceJoint(top, Frame{}, bob, Frame{})
	require.NoError(t, err)
	j.SetBreakForce(1)

	run(w, 10)

	assert.True(t, j.IsBroken())
	assert.Empty(t, w.Joints())
	require.Len(t, rec.broken, 1)
	assert.Same(t, j, rec.broken[0].Joint)
}

func TestRemoveDropsAttachedJoints(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	top := StaticBox(NewPose(0, 10), 4, 0.5)
	bob := Sphere(NewPose(0, 5), 0.5, 1)
	require.NoError(t, w.Add(top))
	require.NoError(t, w.Add(bob))
	j, err := w.CreateDistanceJoint(top, Frame{}, bob, Frame{})
	require.NoError(t, err)

	require.NoError(t, w.Remove(bob))

	assert.True(t, j.IsBroken())
	assert.Empty(t, w.Joints())
	assert.False(t, bob.InWorld())
	assert.Len(t, w.Actors(), 1)
	assert.ErrorIs(t, w.Remove(bob), ErrNotInWorld)
}

func TestDestroyEmptiesWorld(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	require.NoError(t, w.Add(Plane(Identity)))
	require.NoError(t, w.Add(Sphere(NewPose(0, 3), 1, 1)))

	w.Destroy()

	assert.Empty(t, w.Actors())
	run(w, 5)
}

func TestTriangleMeshOnlyStatic(t *testing.T) {
	verts := []Vec2{V(0, 0), V(1, 0), V(0, 1)}
	w := NewWorld(DefaultWorldConfig())

	require.NoError(t, w.Add(TriangleMesh(verts, []uint32{0, 1, 2}, Identity)))

	dyn := NewDynamicActor(Identity, TriangleMeshGeometry(verts, []uint32{0, 1, 2}), 1)
	assert.ErrorIs(t, w.Add(dyn), ErrStaticTriangleMesh)
	assert.False(t, dyn.InWorld())
}

func TestDegenerateMeshesRejected(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	line := []Vec2{V(0, 0), V(1, 0), V(2, 0)}

	err := w.Add(ConvexMesh(line, Identity, 1))
	assert.ErrorIs(t, err, ErrDegenerateMesh)

	err = w.Add(TriangleMesh(line, []uint32{0, 1, 2}, Identity))
	assert.ErrorIs(t, err, ErrDegenerateMesh)

	// two vertices within the engine's weld distance
	sliver := []Vec2{V(0, 0), V(0.001, 0), V(0, 0.2)}
	require.NotPanics(t, func() {
		err = w.Add(ConvexMesh(sliver, NewPose(0, 5), 1))
	})
	assert.ErrorIs(t, err, ErrDegenerateMesh)
	require.NotPanics(t, func() {
		err = w.Add(TriangleMesh(sliver, []uint32{0, 1, 2}, NewPose(0, 5)))
	})
	assert.ErrorIs(t, err, ErrDegenerateMesh)

	assert.Empty(t, w.Actors())
	assert.Zero(t, w.b2.GetBodyCount())
}

func TestWeldKeepsDistinctVertices(t *testing.T) {
	got := weld([]Vec2{V(0, 0), V(0.001, 0), V(1, 0), V(1, 0.002), V(0, 1)})
	assert.Equal(t, []Vec2{V(0, 0), V(1, 0), V(0, 1)}, got)
}

func TestMaterialAppliesToLaterActors(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	w.Material().SetDynamicFriction(0.2)
	s := Sphere(Identity, 1, 1)
	require.NoError(t, w.Add(s))

	for _, f := range s.Shapes()[0].fixtures {
		assert.InDelta(t, 0.2, f.GetFriction(), 1e-9)
	}
}

func TestActorMaterialOverridesDefault(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	s := Sphere(Identity, 1, 1)
	s.SetMaterial(&Material{DynamicFriction: 0.9, Restitution: 0.6})
	require.NoError(t, w.Add(s))

	for _, f := range s.Shapes()[0].fixtures {
		assert.InDelta(t, 0.9, f.GetFriction(), 1e-9)
		assert.InDelta(t, 0.6, f.GetRestitution(), 1e-9)
	}
}

func TestSetGlobalPoseTeleports(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	s := Sphere(NewPose(0, 5), 1, 1)
	s.SetGlobalPose(NewPose(1, 6))
	assert.Equal(t, V(1, 6), s.GlobalPose().Position, "before add")

	require.NoError(t, w.Add(s))
	assert.Equal(t, V(1, 6), s.GlobalPose().Position)

	s.SetGlobalPose(NewPose(-3, 2))
	assert.InDelta(t, -3, s.GlobalPose().Position.X, 1e-9)
	assert.InDelta(t, 2, s.GlobalPose().Position.Y, 1e-9)
}

func TestSetGravity(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	w.SetGravity(V(0, 0))
	assert.Equal(t, V(0, 0), w.Gravity())

	s := Sphere(NewPose(0, 5), 1, 1)
	require.NoError(t, w.Add(s))
	for range 30 {
		w.Step(dt)
	}
	assert.InDelta(t, 5, s.GlobalPose().Position.Y, 1e-9)
}

func TestShapeAttributes(t *testing.T) {
	ground := Plane(Identity)
	ball := Sphere(Identity, 1, 1)
	ball.SetTrigger(true)

	g := ground.Shapes()[0].Attributes()
	assert.True(t, g.IsStatic())
	assert.False(t, g.IsTrigger())

	b := ball.Shapes()[0].Attributes()
	assert.False(t, b.IsStatic())
	assert.True(t, b.IsTrigger())
	assert.Equal(t, AttrDynamic|AttrTrigger, b)
}
