package integrator

import (
	"math"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/scene"
)

// shadowEpsilon offsets the start of every query to avoid self-intersection
const shadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed depth cutoff
type PathTracingIntegrator struct {
	MaxBounces int // Maximum number of scatter events per path
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxBounces int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxBounces: maxBounces}
}

// RayColor computes the radiance for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance, _ := pt.Trace(ray, s, sampler)
	return radiance
}

// Trace follows one path iteratively. Emission is collected at every hit,
// so a light seen directly is visible even when MaxBounces is zero.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, s *scene.Scene, sampler core.Sampler) (core.Vec3, int) {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	queries := 0

	for depth := 0; ; depth++ {
		queries++
		hit, isHit := s.Hit(ray, shadowEpsilon, math.Inf(1))
		if !isHit {
			radiance = radiance.Add(throughput.MultiplyVec(s.BackgroundColor(ray)))
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(hit.Material.Emitted(*hit)))

		if depth >= pt.MaxBounces {
			break
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			break
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return radiance, queries
}
