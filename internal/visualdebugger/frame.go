package visualdebugger

import (
	"fmt"
	"runtime"

	"physics-tutorial/internal/physics"
	"physics-tutorial/internal/scene"
)

// Frame is everything a backend draws for one frame, in simulation coordinates.
type Frame struct {
	Bodies []Body
	Joints []Joint
	Vis    scene.Visualization
	// HUD holds the overlay text: status line first, then help when shown.
	HUD []string
	// Log is the tail of the event log.
	Log []string
}

// Body is one actor.
type Body struct {
	Name    string
	Color   physics.Color
	Pose    physics.Pose
	Dynamic bool
	Awake   bool
	Shapes  []Shape
}

// Shape is one collision shape placed in the world.
type Shape struct {
	Type        physics.GeometryType
	Trigger     bool
	Pose        physics.Pose
	HalfExtents physics.Vec2
	Radius      float64
	Polygons    [][]physics.Vec2
}

// Joint is a distance joint with its attachment frames in world space.
type Joint struct {
	Anchors [2]physics.Vec2
	Frames  [2]physics.Pose
	Length  float64
}

const logLines = 8

// Frame snapshots the scene.
func (d *Debugger) Frame() Frame {
	f := Frame{Vis: d.scene.Visualization()}
	for _, a := range d.scene.Actors() {
		f.Bodies = append(f.Bodies, snapshotBody(a))
	}
	for _, j := range d.scene.Joints() {
		a0, a1 := j.WorldAnchors()
		f0, f1 := j.WorldFrames()
		f.Joints = append(f.Joints, Joint{Anchors: [2]physics.Vec2{a0, a1}, Frames: [2]physics.Pose{f0, f1}, Length: j.Length()})
	}
	f.HUD = append(f.HUD, d.status())
	if d.showHelp {
		f.HUD = append(f.HUD, d.HelpLines()...)
	}
	f.Log = d.log.Tail(logLines)
	return f
}

func snapshotBody(a physics.Actor) Body {
	b := Body{Name: a.Name(), Color: a.Color(), Pose: a.GlobalPose()}
	if dyn, ok := a.AsDynamic(); ok {
		b.Dynamic = true
		b.Awake = dyn.IsAwake()
	}
	for _, sh := range a.Shapes() {
		g := sh.Geometry()
		b.Shapes = append(b.Shapes, Shape{
			Type:        g.Type,
			Trigger:     sh.IsTrigger(),
			Pose:        sh.WorldPose(),
			HalfExtents: g.HalfExtents,
			Radius:      g.Radius,
			Polygons:    sh.WorldOutline(),
		})
	}
	return b
}

func (d *Debugger) status() string {
	s := fmt.Sprintf("%s  actors %d  steps %d", d.opts.Title, len(d.scene.Actors()), d.scene.Steps())
	if d.scene.Paused() {
		s += "  [paused]"
	}
	if d.showFPS {
		s += fmt.Sprintf("  fps %.0f", d.fps)
	}
	if d.showMem {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		s += fmt.Sprintf("  mem %.2f MiB", float64(m.Alloc)/(1024*1024))
	}
	return s
}
