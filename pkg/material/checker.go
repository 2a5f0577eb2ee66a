package material

import (
	"math"

	"github.com/df07/photon/pkg/core"
)

// Checker alternates between two materials in a 3D grid of cubic cells
type Checker struct {
	Even  Material
	Odd   Material
	Scale float64 // Cell edge length in world units
}

// NewChecker creates a solid checker pattern with the given cell size
func NewChecker(even, odd Material, scale float64) *Checker {
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Select returns the material for the cell containing p
func (c *Checker) Select(p core.Vec3) Material {
	inv := 1.0 / c.Scale
	sum := int64(math.Floor(p.X*inv)) + int64(math.Floor(p.Y*inv)) + int64(math.Floor(p.Z*inv))
	if sum%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// Scatter delegates to the material of the hit point's cell
func (c *Checker) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return c.Select(hit.Point).Scatter(rayIn, hit, sampler)
}

// Emitted delegates to the material of the hit point's cell
func (c *Checker) Emitted(hit HitRecord) core.Vec3 {
	return c.Select(hit.Point).Emitted(hit)
}
