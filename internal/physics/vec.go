package physics

import (
	"math"

	"github.com/ByteArena/box2d"
)

// Vec2 is a point or direction in the simulation plane (X right, Y up). It is the engine's vector type.
type Vec2 = box2d.B2Vec2

// V returns the vector (x, y).
func V(x, y float64) Vec2 {
	return box2d.MakeB2Vec2(x, y)
}

// Pose is a position plus a rotation (radians, counter-clockwise) in the simulation plane.
type Pose struct {
	Position Vec2
	Angle    float64
}

// NewPose returns an unrotated pose at (x, y).
func NewPose(x, y float64) Pose {
	return Pose{Position: V(x, y)}
}

// Rotated returns a copy of p with the given angle.
func (p Pose) Rotated(angle float64) Pose {
	p.Angle = angle
	return p
}

// Identity is the pose at the origin with no rotation.
var Identity = Pose{}

// Frame is a joint attachment frame expressed in an actor's local space.
type Frame struct {
	Offset Vec2
	Angle  float64
}

// Color is an RGB triple in [0,1]. It has no physical effect.
type Color struct {
	R, G, B float32
}

// RGB255 builds a Color from 0–255 components.
func RGB255(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// Bytes returns the color as 0–255 components, clamped.
func (c Color) Bytes() (r, g, b uint8) {
	conv := func(v float32) uint8 {
		return uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
	}
	return conv(c.R), conv(c.G), conv(c.B)
}
