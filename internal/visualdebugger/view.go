package visualdebugger

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 60
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 40
	gridMajorAlpha = 90
	axisLineAlpha  = 200
)

// camera looks at the simulation plane (z = 0) from +Z. Right mouse drag orbits, the
// wheel zooms.
type camera struct {
	rl.Camera3D
	yaw, pitch, distance float32
}

func newCamera(target rl.Vector3, distance float32) *camera {
	c := &camera{distance: distance}
	c.Target = target
	c.Up = rl.NewVector3(0, 1, 0)
	c.Fovy = 45
	c.Projection = rl.CameraPerspective
	c.place()
	return c
}

func (c *camera) place() {
	sy, cy := math32.Sincos(c.yaw)
	sp, cp := math32.Sincos(c.pitch)
	c.Position = rl.NewVector3(
		c.Target.X+c.distance*cp*sy,
		c.Target.Y+c.distance*sp,
		c.Target.Z+c.distance*cp*cy,
	)
}

// update applies mouse input. Call once per frame while the terminal is closed.
func (c *camera) update() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		c.yaw -= d.X * 0.005
		c.pitch = math32.Max(-1.4, math32.Min(1.4, c.pitch+d.Y*0.005))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.distance = math32.Max(5, c.distance*(1-wheel*0.1))
	}
	c.place()
}

// drawEditorGrid draws a grid on the XZ plane (the ground) with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, -gridExtent
		end.X, end.Y, end.Z = float32(x), 0, gridExtent
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = -gridExtent, 0, float32(z)
		end.X, end.Y, end.Z = gridExtent, 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through the origin of the simulation plane (X=red, Y=green).
	start.X, start.Y, start.Z = -gridExtent, 0, 0
	end.X, end.Y, end.Z = gridExtent, 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, 0, 0
	end.X, end.Y, end.Z = 0, gridExtent/2, 0
	rl.DrawLine3D(start, end, axisY)
}
