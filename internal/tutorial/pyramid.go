package tutorial

import (
	"slices"

	"physics-tutorial/internal/physics"
)

// Pyramid outline: apex, right and left base corners, and the two base corners seen edge-on
// (front and back), which project onto the base centre in the simulation plane.
var pyramidVerts = []physics.Vec2{
	physics.V(0, 1), physics.V(1, 0), physics.V(-1, 0), physics.V(0, 0), physics.V(0, 0),
}

// Pyramid triangles, three vertex indices each, counter-clockwise for rendering.
// The two base faces are flat in the simulation plane and are skipped when the mesh is cooked.
var pyramidTris = []uint32{1, 4, 0, 3, 1, 0, 2, 3, 0, 4, 2, 0, 3, 2, 1, 2, 4, 1}

// PyramidVertices returns the distinct vertices of the pyramid's convex hull.
func PyramidVertices() []physics.Vec2 {
	return slices.Clone(pyramidVerts[:3])
}

// Pyramid returns a dynamic convex pyramid.
func Pyramid(pose physics.Pose, density float64) *physics.DynamicActor {
	return physics.ConvexMesh(PyramidVertices(), pose, density)
}

// PyramidStatic returns a static pyramid built from the triangle table.
func PyramidStatic(pose physics.Pose) *physics.StaticActor {
	return physics.TriangleMesh(pyramidVerts, pyramidTris, pose)
}
