package integrator

import (
	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the radiance arriving along ray and the number of scene
	// intersection queries it took
	Trace(ray core.Ray, scene *scene.Scene, sampler core.Sampler) (core.Vec3, int)
}
