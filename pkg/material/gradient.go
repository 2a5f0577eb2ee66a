package material

import (
	"github.com/df07/photon/pkg/core"
)

// Gradient is a diffuse material whose albedo blends from ColorA to ColorB
// as the surface normal turns from -Axis to +Axis
type Gradient struct {
	noEmission
	ColorA core.Vec3
	ColorB core.Vec3
	Axis   core.Vec3 // Unit blend axis
}

// NewGradient creates a gradient material. The axis is normalized.
func NewGradient(colorA, colorB, axis core.Vec3) *Gradient {
	return &Gradient{ColorA: colorA, ColorB: colorB, Axis: axis.Normalize()}
}

// Albedo returns the blended color for the given unit normal
func (g *Gradient) Albedo(normal core.Vec3) core.Vec3 {
	t := 0.5 * (normal.Dot(g.Axis) + 1.0)
	return g.ColorA.Lerp(g.ColorB, max(0.0, min(1.0, t)))
}

// Scatter implements the Material interface with lambertian scattering
func (g *Gradient) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return diffuseScatter(hit, g.Albedo(hit.Normal), sampler), true
}
