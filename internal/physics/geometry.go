package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
)

// GeometryType is the kind of a shape's geometry.
type GeometryType uint8

const (
	GeometryPlane GeometryType = iota
	GeometryBox
	GeometrySphere
	GeometryConvexMesh
	GeometryTriangleMesh
)

func (g GeometryType) String() string {
	switch g {
	case GeometryPlane:
		return "plane"
	case GeometryBox:
		return "box"
	case GeometrySphere:
		return "sphere"
	case GeometryConvexMesh:
		return "convex"
	case GeometryTriangleMesh:
		return "trimesh"
	}
	return fmt.Sprintf("geometry(%d)", uint8(g))
}

// planeHalfLength bounds the ground plane; the engine has no infinite shapes.
const planeHalfLength = 1000

// degenerateArea is the smallest doubled triangle area kept when flattening meshes.
const degenerateArea = 1e-4

// ErrDegenerateMesh is returned when a mesh has no usable polygon in the simulation plane.
var ErrDegenerateMesh = errors.New("physics: degenerate mesh")

// Geometry describes a shape in its actor's local space.
type Geometry struct {
	Type GeometryType
	// HalfExtents of a box. For a plane, X is the half length of the ground segment.
	HalfExtents Vec2
	// Radius of a sphere.
	Radius float64
	// Vertices of a convex or triangle mesh.
	Vertices []Vec2
	// Triangles index Vertices three at a time (triangle meshes only).
	Triangles []uint32
}

// PlaneGeometry is the ground plane through the actor origin with normal +Y.
func PlaneGeometry() Geometry {
	return Geometry{Type: GeometryPlane, HalfExtents: V(planeHalfLength, 0)}
}

// BoxGeometry is an axis-aligned box with the given half extents.
func BoxGeometry(hx, hy float64) Geometry {
	return Geometry{Type: GeometryBox, HalfExtents: V(hx, hy)}
}

// SphereGeometry is a sphere (a disc in the simulation plane).
func SphereGeometry(radius float64) Geometry {
	return Geometry{Type: GeometrySphere, Radius: radius}
}

// ConvexMeshGeometry is the convex hull of verts.
func ConvexMeshGeometry(verts []Vec2) Geometry {
	return Geometry{Type: GeometryConvexMesh, Vertices: append([]Vec2(nil), verts...)}
}

// TriangleMeshGeometry is a list of triangles over verts. Only static actors may use it.
func TriangleMeshGeometry(verts []Vec2, tris []uint32) Geometry {
	return Geometry{
		Type:      GeometryTriangleMesh,
		Vertices:  append([]Vec2(nil), verts...),
		Triangles: append([]uint32(nil), tris...),
	}
}

// Transform maps a local point through pose into world space.
func Transform(p Pose, local Vec2) Vec2 {
	s, c := math.Sincos(p.Angle)
	return V(p.Position.X+c*local.X-s*local.Y, p.Position.Y+s*local.X+c*local.Y)
}

// Compose returns the pose of local expressed in parent's frame.
func Compose(parent, local Pose) Pose {
	return Pose{Position: Transform(parent, local.Position), Angle: parent.Angle + local.Angle}
}

// triangles returns the non-degenerate triangles of a mesh geometry.
func (g Geometry) triangles() [][3]Vec2 {
	var out [][3]Vec2
	for i := 0; i+2 < len(g.Triangles); i += 3 {
		ia, ib, ic := g.Triangles[i], g.Triangles[i+1], g.Triangles[i+2]
		if int(ia) >= len(g.Vertices) || int(ib) >= len(g.Vertices) || int(ic) >= len(g.Vertices) {
			continue
		}
		t := []Vec2{g.Vertices[ia], g.Vertices[ib], g.Vertices[ic]}
		if len(weld(t)) < 3 || hullArea(t) < degenerateArea {
			continue
		}
		out = append(out, [3]Vec2{t[0], t[1], t[2]})
	}
	return out
}

// weld drops vertices closer than the engine's linear slop to an earlier kept one.
// The engine welds at half that distance and asserts on fewer than three survivors.
func weld(verts []Vec2) []Vec2 {
	const tol = box2d.B2_linearSlop * box2d.B2_linearSlop
	out := make([]Vec2, 0, len(verts))
	for _, v := range verts {
		unique := true
		for _, u := range out {
			if box2d.B2Vec2DistanceSquared(v, u) < tol {
				unique = false
				break
			}
		}
		if unique {
			out = append(out, v)
		}
	}
	return out
}

// hullArea returns twice the largest triangle area fanned from the first vertex.
// It is zero exactly when all vertices are collinear.
func hullArea(verts []Vec2) float64 {
	if len(verts) < 3 {
		return 0
	}
	var area float64
	for i := 1; i+1 < len(verts); i++ {
		for j := i + 1; j < len(verts); j++ {
			a := math.Abs(box2d.B2Vec2Cross(box2d.B2Vec2Sub(verts[i], verts[0]), box2d.B2Vec2Sub(verts[j], verts[0])))
			area = max(area, a)
		}
	}
	return area
}

// engineShapes converts g, placed at local inside its actor, into engine shapes.
func (g Geometry) engineShapes(local Pose) ([]box2d.B2ShapeInterface, error) {
	switch g.Type {
	case GeometryPlane:
		edge := box2d.MakeB2EdgeShape()
		edge.Set(Transform(local, V(-g.HalfExtents.X, 0)), Transform(local, V(g.HalfExtents.X, 0)))
		return []box2d.B2ShapeInterface{&edge}, nil
	case GeometryBox:
		poly := box2d.MakeB2PolygonShape()
		poly.SetAsBoxFromCenterAndAngle(g.HalfExtents.X, g.HalfExtents.Y, local.Position, local.Angle)
		return []box2d.B2ShapeInterface{&poly}, nil
	case GeometrySphere:
		circle := box2d.MakeB2CircleShape()
		circle.M_p = local.Position
		circle.M_radius = g.Radius
		return []box2d.B2ShapeInterface{&circle}, nil
	case GeometryConvexMesh:
		welded := weld(g.Vertices)
		if len(g.Vertices) > box2d.B2_maxPolygonVertices || len(welded) < 3 || hullArea(welded) < degenerateArea {
			return nil, fmt.Errorf("convex mesh with %d vertices: %w", len(g.Vertices), ErrDegenerateMesh)
		}
		vs := make([]Vec2, len(g.Vertices))
		for i, v := range g.Vertices {
			vs[i] = Transform(local, v)
		}
		poly := box2d.MakeB2PolygonShape()
		poly.Set(vs, len(vs))
		return []box2d.B2ShapeInterface{&poly}, nil
	case GeometryTriangleMesh:
		tris := g.triangles()
		if len(tris) == 0 {
			return nil, fmt.Errorf("triangle mesh: %w", ErrDegenerateMesh)
		}
		out := make([]box2d.B2ShapeInterface, 0, len(tris))
		for _, t := range tris {
			vs := []Vec2{Transform(local, t[0]), Transform(local, t[1]), Transform(local, t[2])}
			poly := box2d.MakeB2PolygonShape()
			poly.Set(vs, len(vs))
			out = append(out, &poly)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown geometry %v", g.Type)
}
