package physics

import "github.com/ByteArena/box2d"

// Outline returns the polygons of g placed at local, in actor space: box corners, the
// convex hull of a convex mesh, one polygon per triangle of a triangle mesh, and the
// two end points of a plane. Spheres have no polygon.
func (g Geometry) Outline(local Pose) [][]Vec2 {
	if g.Type == GeometrySphere {
		return nil
	}
	shapes, err := g.engineShapes(local)
	if err != nil {
		return nil
	}
	out := make([][]Vec2, 0, len(shapes))
	for _, s := range shapes {
		switch s := s.(type) {
		case *box2d.B2PolygonShape:
			out = append(out, append([]Vec2(nil), s.M_vertices[:s.M_count]...))
		case *box2d.B2EdgeShape:
			out = append(out, []Vec2{s.M_vertex1, s.M_vertex2})
		}
	}
	return out
}

// WorldOutline is Outline moved through the owning actor's current pose.
func (s *Shape) WorldOutline() [][]Vec2 {
	polys := s.geometry.Outline(s.local)
	pose := s.actor.GlobalPose()
	for _, poly := range polys {
		for i, v := range poly {
			poly[i] = Transform(pose, v)
		}
	}
	return polys
}

// WorldPose is the shape's local pose composed with its actor's pose.
func (s *Shape) WorldPose() Pose {
	return Compose(s.actor.GlobalPose(), s.local)
}
