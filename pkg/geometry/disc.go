package geometry

import (
	"math"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/material"
)

// Disc represents a flat circular disc
type Disc struct {
	Center   core.Vec3         // Center of the disc
	Normal   core.Vec3         // Unit normal vector
	Radius   float64           // Radius of the disc
	Right    core.Vec3         // In-plane tangent, origin of the angular coordinate
	Up       core.Vec3         // Normal × Right
	Material material.Material // Material of the disc
}

// NewDisc creates a new disc. The normal is normalized.
func NewDisc(center, normal core.Vec3, radius float64, mat material.Material) *Disc {
	n := normal.Normalize()

	// Pick a helper axis that is not parallel to the normal
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = core.NewVec3(0, 1, 0)
	}
	right := helper.Cross(n).Normalize()
	up := n.Cross(right)

	return &Disc{
		Center:   center,
		Normal:   n,
		Radius:   radius,
		Right:    right,
		Up:       up,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the disc
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(d.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := d.Center.Subtract(ray.Origin).Dot(d.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	offset := hitPoint.Subtract(d.Center)
	distSq := offset.LengthSquared()
	if distSq > d.Radius*d.Radius {
		return nil, false
	}

	angle := math.Atan2(offset.Dot(d.Up), offset.Dot(d.Right))
	if angle < 0 {
		angle += 2 * math.Pi
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: d.Material,
		UV:       core.NewVec2(math.Sqrt(distSq)/d.Radius, angle/(2*math.Pi)),
	}
	hitRecord.SetFaceNormal(ray, d.Normal)

	return hitRecord, true
}

// BoundingBox returns a tight bounding box: along each axis the disc extends
// r·sqrt(1 - n_axis²) from its center
func (d *Disc) BoundingBox() core.AABB {
	extent := func(n float64) float64 {
		return d.Radius * math.Sqrt(math.Max(0, 1-n*n))
	}
	e := core.NewVec3(extent(d.Normal.X), extent(d.Normal.Y), extent(d.Normal.Z))
	return core.NewAABB(d.Center.Subtract(e), d.Center.Add(e)).Pad(boxPadding)
}
