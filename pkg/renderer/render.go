package renderer

import (
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/scene"
)

// Render produces a width x height framebuffer with samplesPerPixel samples
// per pixel and at most maxBounces scatter events per path. Remaining
// settings come from DefaultConfig.
func Render(s *scene.Scene, camera *geometry.Camera, width, height, samplesPerPixel, maxBounces int) (*Framebuffer, error) {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = samplesPerPixel
	config.MaxBounces = maxBounces

	rt, err := NewRaytracer(s, camera, config)
	if err != nil {
		return nil, err
	}

	fb, _, err := rt.Render()
	return fb, err
}
