package geometry

import (
	"fmt"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/material"
)

// TriangleMesh is a collection of triangles sharing one material.
// It keeps its own BVH so a mesh can sit in the scene as a single shape.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
}

// TriangleMeshOptions transforms vertices before the triangles are built
type TriangleMeshOptions struct {
	Scale  float64   // Uniform scale about the origin (0 means 1)
	Offset core.Vec3 // Translation applied after scaling
}

// NewTriangleMesh creates a triangle mesh from vertices and face indices.
// Each group of three indices forms a triangle. options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}

	transformed := vertices
	if options != nil {
		scale := options.Scale
		if scale == 0 {
			scale = 1
		}
		transformed = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			transformed[i] = vertex.Multiply(scale).Add(options.Offset)
		}
	}

	triangles := make([]Shape, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(transformed) {
				return nil, fmt.Errorf("face %d references vertex %d, mesh has %d", i/3, idx, len(transformed))
			}
		}
		triangles = append(triangles, NewTriangle(transformed[i0], transformed[i1], transformed[i2], mat))
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the bounds of all triangles
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in the mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
