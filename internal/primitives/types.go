package primitives

// Transform places a primitive: position, per-axis size, and rotation about +Z in radians.
// A zero scale component counts as 1.
type Transform struct {
	Position  [3]float32
	Scale     [3]float32
	RotationZ float32
}

// Uniform returns a transform with the same scale on every axis.
func Uniform(x, y, z, scale float32) Transform {
	return Transform{Position: [3]float32{x, y, z}, Scale: [3]float32{scale, scale, scale}}
}
