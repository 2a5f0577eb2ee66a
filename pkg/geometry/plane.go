package geometry

import (
	"math"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/material"
)

// planeExtent bounds the infinite plane for BVH purposes
const planeExtent = 1e4

// Plane represents an infinite plane through Point with unit Normal
type Plane struct {
	Point    core.Vec3
	Normal   core.Vec3
	Material material.Material
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hitRecord.SetFaceNormal(ray, p.Normal)

	return hitRecord, true
}

// BoundingBox returns a thin slab for axis-aligned planes and a large cube otherwise
func (p *Plane) BoundingBox() core.AABB {
	extent := core.NewVec3(planeExtent, planeExtent, planeExtent)
	box := core.NewAABB(p.Point.Subtract(extent), p.Point.Add(extent))

	const aligned = 1 - 1e-9
	switch {
	case math.Abs(p.Normal.X) > aligned:
		box.Min.X, box.Max.X = p.Point.X, p.Point.X
	case math.Abs(p.Normal.Y) > aligned:
		box.Min.Y, box.Max.Y = p.Point.Y, p.Point.Y
	case math.Abs(p.Normal.Z) > aligned:
		box.Min.Z, box.Max.Z = p.Point.Z, p.Point.Z
	}

	return box.Pad(boxPadding)
}
