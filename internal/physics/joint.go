package physics

import (
	"errors"
	"fmt"

	"github.com/ByteArena/box2d"
)

// minJointLength keeps the engine's distance constraint well conditioned.
const minJointLength = 0.05

// ErrNotInWorld is returned when an operation needs actors that have been added to the world.
var ErrNotInWorld = errors.New("physics: actor is not in this world")

// DistanceJoint keeps two attachment points at the distance they had when the joint was made.
type DistanceJoint struct {
	actors     [2]Actor
	frames     [2]Frame
	length     float64
	breakForce float64
	broken     bool
	joint      *box2d.B2DistanceJoint
	world      *World
}

// CreateDistanceJoint links a0 at frame0 to a1 at frame1. Both actors must be in w.
// The joint is owned by the world until it breaks or one of the actors is removed.
func (w *World) CreateDistanceJoint(a0 Actor, frame0 Frame, a1 Actor, frame1 Frame) (*DistanceJoint, error) {
	b0, b1 := a0.base(), a1.base()
	if b0.world != w || b1.world != w {
		return nil, ErrNotInWorld
	}
	if a0 == a1 {
		return nil, fmt.Errorf("distance joint on %q: both ends on the same actor", a0.Name())
	}
	if w.locked() {
		return nil, ErrWorldLocked
	}

	jd := box2d.MakeB2DistanceJointDef()
	jd.BodyA = b0.body
	jd.BodyB = b1.body
	jd.LocalAnchorA = frame0.Offset
	jd.LocalAnchorB = frame1.Offset
	anchorA := b0.body.GetWorldPoint(frame0.Offset)
	anchorB := b1.body.GetWorldPoint(frame1.Offset)
	jd.Length = max(box2d.B2Vec2Sub(anchorB, anchorA).Length(), minJointLength)
	jd.CollideConnected = false

	dj := box2d.MakeB2DistanceJoint(&jd)
	link(w.b2, dj)
	j := &DistanceJoint{
		actors: [2]Actor{a0, a1},
		frames: [2]Frame{frame0, frame1},
		length: jd.Length,
		joint:  dj,
		world:  w,
	}
	dj.SetUserData(j)
	w.joints = append(w.joints, j)
	return j, nil
}

// link connects j to the world's joint list and both bodies' edge lists.
// World.CreateJoint only accepts the base definition, which cannot carry a distance joint.
func link(world *box2d.B2World, j box2d.B2JointInterface) {
	j.SetPrev(nil)
	j.SetNext(world.M_jointList)
	if world.M_jointList != nil {
		world.M_jointList.SetPrev(j)
	}
	world.M_jointList = j
	world.M_jointCount++

	bodyA, bodyB := j.GetBodyA(), j.GetBodyB()
	ea := j.GetEdgeA()
	ea.Joint = j
	ea.Other = bodyB
	ea.Prev = nil
	ea.Next = bodyA.M_jointList
	if bodyA.M_jointList != nil {
		bodyA.M_jointList.Prev = ea
	}
	bodyA.M_jointList = ea

	eb := j.GetEdgeB()
	eb.Joint = j
	eb.Other = bodyA
	eb.Prev = nil
	eb.Next = bodyB.M_jointList
	if bodyB.M_jointList != nil {
		bodyB.M_jointList.Prev = eb
	}
	bodyB.M_jointList = eb

	if !j.IsCollideConnected() {
		for edge := bodyB.GetContactList(); edge != nil; edge = edge.Next {
			if edge.Other == bodyA {
				edge.Contact.FlagForFiltering()
			}
		}
	}
}

// Actors returns the two linked actors.
func (j *DistanceJoint) Actors() (Actor, Actor) {
	return j.actors[0], j.actors[1]
}

// LocalFrames returns the attachment frames in each actor's space.
func (j *DistanceJoint) LocalFrames() (Frame, Frame) {
	return j.frames[0], j.frames[1]
}

// Length is the rest distance between the attachment points.
func (j *DistanceJoint) Length() float64 {
	return j.length
}

// SetBreakForce sets the reaction force above which the joint breaks. Zero disables breaking.
func (j *DistanceJoint) SetBreakForce(f float64) {
	j.breakForce = f
}

// IsBroken reports whether the joint has broken or lost one of its actors.
func (j *DistanceJoint) IsBroken() bool {
	return j.broken
}

// WorldAnchors returns the attachment points in world space.
func (j *DistanceJoint) WorldAnchors() (Vec2, Vec2) {
	if j.broken {
		p0, p1 := j.actors[0].GlobalPose(), j.actors[1].GlobalPose()
		return Transform(p0, j.frames[0].Offset), Transform(p1, j.frames[1].Offset)
	}
	return j.joint.GetAnchorA(), j.joint.GetAnchorB()
}

// WorldFrames returns the attachment frames as world poses.
func (j *DistanceJoint) WorldFrames() (Pose, Pose) {
	p0, p1 := j.actors[0].GlobalPose(), j.actors[1].GlobalPose()
	return Compose(p0, Pose{Position: j.frames[0].Offset, Angle: j.frames[0].Angle}),
		Compose(p1, Pose{Position: j.frames[1].Offset, Angle: j.frames[1].Angle})
}

// reaction returns the constraint force magnitude of the last step.
func (j *DistanceJoint) reaction(invDt float64) float64 {
	return j.joint.GetReactionForce(invDt).Length()
}
