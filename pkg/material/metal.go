package material

import (
	"github.com/df07/photon/pkg/core"
)

// Metal represents a reflective material with optional fuzziness
type Metal struct {
	noEmission
	Albedo core.Vec3 // Reflectance color
	Fuzz   float64   // Roughness in [0, 1], 0 is a perfect mirror
}

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{
		Albedo: albedo,
		Fuzz:   max(0.0, min(1.0, fuzz)),
	}
}

// Scatter implements the Material interface for metal reflection
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	// Fuzz pushed the reflection below the surface
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}
