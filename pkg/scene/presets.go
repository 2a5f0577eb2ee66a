package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/material"
)

// Preset is a built-in scene. Build is deterministic for a given seed.
type Preset struct {
	Name    string
	Summary string
	Build   func(seed int64) *Description
}

var presets = []Preset{
	{"showcase", "Random diffuse, metal and glass spheres on a checkerboard", NewShowcaseScene},
	{"cornell", "Cornell box with an area light, a mirror ball and a glass ball", NewCornellScene},
	{"minimal", "A chrome sphere on a checkered ground", NewMinimalScene},
	{"gallery", "Every primitive and material in one frame", NewGalleryScene},
	{"stress", "500 random spheres for BVH benchmarking", NewStressScene},
}

// Presets returns the built-in scenes in display order
func Presets() []Preset {
	result := make([]Preset, len(presets))
	copy(result, presets)
	return result
}

// Names returns the names of the built-in scenes
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// Load builds the named preset
func Load(name string, seed int64) (*Description, error) {
	for _, p := range presets {
		if p.Name == name {
			return p.Build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// checkerCell converts a checker frequency into a cell edge length
func checkerCell(frequency float64) float64 {
	return math.Pi / frequency
}

func newCheckerGround(a, b core.Vec3, frequency float64) material.Material {
	return material.NewChecker(material.NewLambertian(a), material.NewLambertian(b), checkerCell(frequency))
}

// NewShowcaseScene creates the classic field of small random spheres around three large ones
func NewShowcaseScene(seed int64) *Description {
	random := rand.New(rand.NewSource(seed))
	glass := material.NewDielectric(1.5)

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
			newCheckerGround(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.95, 0.95, 0.95), 10)),
		// Hollow glass: outer shell plus an inward-facing bubble
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(0, 1, 0), -0.95, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.7, 0.15, 0.15))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.85, 0.85, 0.9), 0.0)),
	}

	heroes := []core.Vec3{core.NewVec3(4, 0.2, 0), core.NewVec3(-4, 0.2, 0), core.NewVec3(0, 0.2, 0)}
	for a := -8; a < 8; a++ {
		for b := -8; b < 8; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			crowded := false
			for _, hero := range heroes {
				if center.Subtract(hero).Length() < 0.9 {
					crowded = true
					break
				}
			}
			if crowded {
				continue
			}

			var mat material.Material
			switch choose := random.Float64(); {
			case choose < 0.7:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				mat = material.NewLambertian(albedo)
			case choose < 0.9:
				albedo := core.NewVec3(0.5+0.5*random.Float64(), 0.5+0.5*random.Float64(), 0.5+0.5*random.Float64())
				mat = material.NewMetal(albedo, 0.3*random.Float64())
			default:
				mat = glass
			}
			shapes = append(shapes, geometry.NewSphere(center, 0.2, mat))
		}
	}

	return &Description{
		Name:   "Showcase",
		Shapes: shapes,
		Camera: geometry.CameraConfig{
			Center:        core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0.5, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   2.0,
			Aperture:      0.1,
			FocusDistance: 10,
		},
		Background: Gradient{Horizon: core.NewVec3(1, 1, 1), Zenith: core.NewVec3(0.5, 0.7, 1.0)},
	}
}

// NewCornellScene creates a Cornell box lit by a single ceiling panel
func NewCornellScene(seed int64) *Description {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(1.0, 0.95, 0.85), 18)

	shapes := []geometry.Shape{
		// Floor, ceiling, back wall
		geometry.NewQuad(core.NewVec3(-2, 0, -4), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), white),
		geometry.NewQuad(core.NewVec3(-2, 4, -4), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), white),
		geometry.NewQuad(core.NewVec3(-2, 0, -4), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), white),
		// Side walls
		geometry.NewQuad(core.NewVec3(-2, 0, -4), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), red),
		geometry.NewQuad(core.NewVec3(2, 0, -4), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), green),
		// Ceiling light, just below the ceiling
		geometry.NewQuad(core.NewVec3(-0.5, 3.99, -2.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), light),
		geometry.NewSphere(core.NewVec3(-0.7, 0.6, -2.2), 0.6, material.NewMetal(core.NewVec3(0.9, 0.9, 0.95), 0.02)),
		geometry.NewSphere(core.NewVec3(0.7, 0.45, -1.5), 0.45, material.NewDielectric(1.5)),
	}

	return &Description{
		Name:   "Cornell Box",
		Shapes: shapes,
		Camera: geometry.CameraConfig{
			Center:        core.NewVec3(0, 2, 3.5),
			LookAt:        core.NewVec3(0, 1.5, -2),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          50,
			AspectRatio:   1.0,
			FocusDistance: 5,
		},
		Background: Black{},
	}
}

// NewMinimalScene creates a small scene that renders quickly
func NewMinimalScene(seed int64) *Description {
	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100,
			newCheckerGround(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9), 15)),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, material.NewMetal(core.NewVec3(0.95, 0.95, 0.97), 0.0)),
		geometry.NewSphere(core.NewVec3(-1.2, 0.25, -0.5), 0.25, material.NewLambertian(core.NewVec3(0.9, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(1.0, 0.3, -0.8), 0.3, material.NewDielectric(1.5)),
	}

	return &Description{
		Name:   "Minimal",
		Shapes: shapes,
		Camera: geometry.CameraConfig{
			Center:        core.NewVec3(0, 1.5, 2),
			LookAt:        core.NewVec3(0, 0.3, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40,
			AspectRatio:   2.0,
			Aperture:      0.02,
			FocusDistance: 3,
		},
		Background: Gradient{Horizon: core.NewVec3(1, 1, 1), Zenith: core.NewVec3(0.3, 0.5, 1.0)},
	}
}

// NewGalleryScene exercises every primitive and material
func NewGalleryScene(seed int64) *Description {
	glass := material.NewDielectric(1.5)

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
			newCheckerGround(core.NewVec3(0.08, 0.08, 0.12), core.NewVec3(0.85, 0.85, 0.80), 8)),
		// Backdrop panel
		geometry.NewQuad(core.NewVec3(-6, 0, -5), core.NewVec3(12, 0, 0), core.NewVec3(0, 6, 0),
			material.NewLambertian(core.NewVec3(0.15, 0.15, 0.2))),
		// Reflective pedestal
		geometry.NewDisc(core.NewVec3(0, 0.01, -1), core.NewVec3(0, 1, 0), 2.5,
			material.NewMetal(core.NewVec3(0.7, 0.7, 0.75), 0.15)),
		geometry.NewSphere(core.NewVec3(0, 1, -1), 1.0, glass),
		geometry.NewSphere(core.NewVec3(0, 1, -1), -0.92, glass),
		geometry.NewSphere(core.NewVec3(-2.8, 0.7, -0.5), 0.7,
			material.NewGradient(core.NewVec3(0.95, 0.3, 0.1), core.NewVec3(0.95, 0.85, 0.2), core.NewVec3(0, 1, 0))),
		geometry.NewSphere(core.NewVec3(2.8, 0.8, -0.8), 0.8, material.NewMetal(core.NewVec3(0.9, 0.75, 0.6), 0.08)),
		geometry.NewSphere(core.NewVec3(-1.2, 0.3, 0.8), 0.3, material.NewLambertian(core.NewVec3(0.1, 0.4, 0.85))),
		geometry.NewSphere(core.NewVec3(1.5, 0.25, 1.0), 0.25, material.NewMetal(core.NewVec3(0.95, 0.95, 0.95), 0.0)),
		geometry.NewSphere(core.NewVec3(0.8, 0.2, 0.5), 0.2, material.NewLambertian(core.NewVec3(0.8, 0.15, 0.5))),
		// Warm and cool lights
		geometry.NewSphere(core.NewVec3(-1, 3.5, -2), 0.3, material.NewDiffuseLight(core.NewVec3(1.0, 0.9, 0.7), 12)),
		geometry.NewSphere(core.NewVec3(2, 2.5, 0), 0.2, material.NewDiffuseLight(core.NewVec3(0.5, 0.7, 1.0), 10)),
		// Glass prism
		geometry.NewTriangle(core.NewVec3(1.6, 0.02, -2.6), core.NewVec3(2.6, 0.02, -2.2), core.NewVec3(2.0, 1.4, -2.4), glass),
	}

	return &Description{
		Name:   "Gallery",
		Shapes: shapes,
		Camera: geometry.CameraConfig{
			Center:        core.NewVec3(0, 2.5, 6),
			LookAt:        core.NewVec3(0, 0.8, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          35,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0.05,
			FocusDistance: 7,
		},
		Background: Gradient{Horizon: core.NewVec3(0.15, 0.15, 0.2), Zenith: core.NewVec3(0.02, 0.02, 0.08)},
	}
}

// NewStressScene scatters 500 small spheres to load the BVH
func NewStressScene(seed int64) *Description {
	random := rand.New(rand.NewSource(seed))
	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*random.Float64()
	}

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}
	for i := 0; i < 500; i++ {
		center := core.NewVec3(uniform(-15, 15), uniform(0.1, 0.4), uniform(-15, 15))
		albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
		shapes = append(shapes, geometry.NewSphere(center, uniform(0.08, 0.35), material.NewLambertian(albedo)))
	}

	return &Description{
		Name:   "Stress Test (500 spheres)",
		Shapes: shapes,
		Camera: geometry.CameraConfig{
			Center:        core.NewVec3(10, 4, 10),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          30,
			AspectRatio:   2.0,
			FocusDistance: 14,
		},
		Background: Gradient{Horizon: core.NewVec3(1.0, 0.95, 0.88), Zenith: core.NewVec3(0.4, 0.6, 1.0)},
	}
}
