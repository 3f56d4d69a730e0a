package physics

import "github.com/ByteArena/box2d"

// Actor is a body in the simulation: either a *StaticActor or a *DynamicActor.
// The set is closed; use AsDynamic to reach rigid-body operations.
type Actor interface {
	Name() string
	SetName(name string)
	Color() Color
	SetColor(c Color)
	Shapes() []*Shape
	// AddShape attaches another shape at local. It must be called before the actor joins a world.
	AddShape(g Geometry, local Pose) *Shape
	GlobalPose() Pose
	// SetupFiltering sets the filter words of every shape.
	SetupFiltering(word0, word1 uint32)
	// SetTrigger turns every shape into a trigger volume or back.
	SetTrigger(trigger bool)
	// AsDynamic returns the actor as a rigid body when it is one.
	AsDynamic() (*DynamicActor, bool)
	// InWorld reports whether the actor has been added to a world.
	InWorld() bool

	base() *actorBase
}

type actorBase struct {
	name     string
	color    Color
	pose     Pose
	density  float64
	material *Material
	shapes   []*Shape
	body     *box2d.B2Body
	world    *World
}

func (b *actorBase) Name() string        { return b.name }
func (b *actorBase) SetName(name string) { b.name = name }
func (b *actorBase) Color() Color        { return b.color }
func (b *actorBase) SetColor(c Color)    { b.color = c }
func (b *actorBase) Shapes() []*Shape    { return b.shapes }
func (b *actorBase) InWorld() bool       { return b.world != nil }
func (b *actorBase) base() *actorBase    { return b }

// SetMaterial overrides the world default material for this actor. Call before adding it.
func (b *actorBase) SetMaterial(m *Material) {
	b.material = m
}

func (b *actorBase) GlobalPose() Pose {
	if b.body == nil {
		return b.pose
	}
	return Pose{Position: b.body.GetPosition(), Angle: b.body.GetAngle()}
}

func (b *actorBase) SetupFiltering(word0, word1 uint32) {
	for _, s := range b.shapes {
		s.SetFilterData(FilterData{Word0: word0, Word1: word1})
	}
}

func (b *actorBase) SetTrigger(trigger bool) {
	for _, s := range b.shapes {
		s.SetTrigger(trigger)
	}
}

func (b *actorBase) addShape(owner Actor, g Geometry, local Pose) *Shape {
	if b.body != nil {
		panic("physics: AddShape on an actor that is already in a world")
	}
	s := &Shape{actor: owner, geometry: g, local: local}
	b.shapes = append(b.shapes, s)
	return s
}

// StaticActor never moves. It is not a rigid body: forces do not apply to it.
type StaticActor struct {
	actorBase
}

// NewStaticActor returns a static actor at pose with one shape.
func NewStaticActor(pose Pose, g Geometry) *StaticActor {
	a := &StaticActor{actorBase: actorBase{pose: pose}}
	a.AddShape(g, Identity)
	return a
}

func (a *StaticActor) AddShape(g Geometry, local Pose) *Shape {
	return a.addShape(a, g, local)
}

func (a *StaticActor) AsDynamic() (*DynamicActor, bool) {
	return nil, false
}

// DynamicActor is a rigid body moved by the solver.
type DynamicActor struct {
	actorBase
	pending []Vec2
}

// NewDynamicActor returns a dynamic actor at pose with one shape of the given density.
func NewDynamicActor(pose Pose, g Geometry, density float64) *DynamicActor {
	if density <= 0 {
		density = 1
	}
	a := &DynamicActor{actorBase: actorBase{pose: pose, density: density}}
	a.AddShape(g, Identity)
	return a
}

func (a *DynamicActor) AddShape(g Geometry, local Pose) *Shape {
	return a.addShape(a, g, local)
}

func (a *DynamicActor) AsDynamic() (*DynamicActor, bool) {
	return a, true
}

// AddImpulse applies an instantaneous change of momentum at the centre of mass.
// Impulses added before the actor joins a world are applied when it does.
func (a *DynamicActor) AddImpulse(impulse Vec2) {
	if a.body == nil {
		a.pending = append(a.pending, impulse)
		return
	}
	a.body.ApplyLinearImpulseToCenter(impulse, true)
	if a.world.onImpulse != nil {
		a.world.onImpulse(a, impulse)
	}
}

// LinearVelocity returns the body's velocity, zero before it joins a world.
func (a *DynamicActor) LinearVelocity() Vec2 {
	if a.body == nil {
		return V(0, 0)
	}
	return a.body.GetLinearVelocity()
}

// SetGlobalPose teleports the body.
func (a *DynamicActor) SetGlobalPose(p Pose) {
	a.pose = p
	if a.body != nil {
		a.body.SetTransform(p.Position, p.Angle)
	}
}

// Mass returns the body's mass, zero before it joins a world.
func (a *DynamicActor) Mass() float64 {
	if a.body == nil {
		return 0
	}
	return a.body.GetMass()
}

// IsAwake reports whether the solver is currently integrating the body.
func (a *DynamicActor) IsAwake() bool {
	return a.body != nil && a.body.IsAwake()
}

// Plane returns a static ground plane through pose with normal +Y (rotated by pose).
func Plane(pose Pose) *StaticActor {
	return NewStaticActor(pose, PlaneGeometry())
}

// Box returns a dynamic box.
func Box(pose Pose, hx, hy, density float64) *DynamicActor {
	return NewDynamicActor(pose, BoxGeometry(hx, hy), density)
}

// StaticBox returns a static box.
func StaticBox(pose Pose, hx, hy float64) *StaticActor {
	return NewStaticActor(pose, BoxGeometry(hx, hy))
}

// Sphere returns a dynamic sphere.
func Sphere(pose Pose, radius, density float64) *DynamicActor {
	return NewDynamicActor(pose, SphereGeometry(radius), density)
}

// ConvexMesh returns a dynamic actor shaped like the convex hull of verts.
func ConvexMesh(verts []Vec2, pose Pose, density float64) *DynamicActor {
	return NewDynamicActor(pose, ConvexMeshGeometry(verts), density)
}

// TriangleMesh returns a static actor made of triangles over verts.
func TriangleMesh(verts []Vec2, tris []uint32, pose Pose) *StaticActor {
	return NewStaticActor(pose, TriangleMeshGeometry(verts, tris))
}
