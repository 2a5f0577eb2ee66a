package material

import (
	"github.com/df07/photon/pkg/core"
)

// DiffuseLight is an area light material. It emits uniformly and never scatters.
type DiffuseLight struct {
	Emission core.Vec3
}

// NewDiffuseLight creates an emitter with the given color scaled by intensity
func NewDiffuseLight(color core.Vec3, intensity float64) *DiffuseLight {
	return &DiffuseLight{Emission: color.Multiply(intensity)}
}

// Scatter always absorbs
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the light's emission on either side of the surface
func (e *DiffuseLight) Emitted(hit HitRecord) core.Vec3 {
	return e.Emission
}
