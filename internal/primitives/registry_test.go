package primitives

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestTransformScalesRotatesThenTranslates(t *testing.T) {
	tr := Transform{Position: [3]float32{10, 2, 0}, Scale: [3]float32{4, 1, 1}, RotationZ: math32.Pi / 2}
	p := rl.Vector3Transform(rl.NewVector3(0.5, 0, 0), tr.Matrix())
	assert.InDelta(t, 10, p.X, 1e-5)
	assert.InDelta(t, 4, p.Y, 1e-5)
	assert.InDelta(t, 0, p.Z, 1e-5)
}

func TestZeroScaleCountsAsOne(t *testing.T) {
	p := rl.Vector3Transform(rl.NewVector3(1, 1, 1), Transform{Position: [3]float32{1, 0, 0}}.Matrix())
	assert.Equal(t, rl.NewVector3(2, 1, 1), p)

	p = rl.Vector3Transform(rl.NewVector3(1, 1, 1), Uniform(0, 0, 0, 3).Matrix())
	assert.Equal(t, rl.NewVector3(3, 3, 3), p)
}

func TestNormalize(t *testing.T) {
	n := normalize([3]float32{3, 0, 4})
	assert.InDelta(t, 0.6, n[0], 1e-6)
	assert.InDelta(t, 0.8, n[2], 1e-6)
	assert.Equal(t, [3]float32{0, 1, 0}, normalize([3]float32{}))
}
