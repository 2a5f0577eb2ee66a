package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/material"
)

func TestPresets_AllBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			desc, err := Load(name, 42)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(desc.Shapes) == 0 {
				t.Error("Expected shapes in preset")
			}
			if desc.Background == nil {
				t.Error("Expected a background")
			}
			if desc.Camera.VFov <= 0 || desc.Camera.AspectRatio <= 0 {
				t.Errorf("Expected a usable camera, got %+v", desc.Camera)
			}

			s := desc.Build()
			if s.ShapeCount() != len(desc.Shapes) {
				t.Errorf("Expected %d shapes, got %d", len(desc.Shapes), s.ShapeCount())
			}

			// The camera looks at something in every preset
			camera := geometry.NewCamera(desc.Camera)
			ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
			if _, isHit := s.Hit(ray, 0.001, math.Inf(1)); !isHit {
				t.Error("Expected the center ray to hit the scene")
			}
		})
	}
}

func TestPresets_DeterministicForSeed(t *testing.T) {
	for _, name := range []string{"showcase", "stress"} {
		a, _ := Load(name, 7)
		b, _ := Load(name, 7)
		if len(a.Shapes) != len(b.Shapes) {
			t.Fatalf("%s: expected identical shape counts, got %d and %d", name, len(a.Shapes), len(b.Shapes))
		}
		for i := range a.Shapes {
			if a.Shapes[i].BoundingBox() != b.Shapes[i].BoundingBox() {
				t.Fatalf("%s: shape %d differs between builds", name, i)
			}
		}
	}
}

func TestPresets_StressCount(t *testing.T) {
	desc := NewStressScene(1)
	if len(desc.Shapes) != 501 {
		t.Errorf("Expected ground plus 500 spheres, got %d", len(desc.Shapes))
	}
}

func TestLoad_UnknownPreset(t *testing.T) {
	_, err := Load("nope", 1)
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
}

func TestDescription_DefaultSize(t *testing.T) {
	desc := NewShowcaseScene(1)
	w, h := desc.DefaultSize()
	if w != 160 || h != 80 {
		t.Errorf("Expected 160x80, got %dx%d", w, h)
	}
}

func TestBackgrounds(t *testing.T) {
	horizon := core.NewVec3(1, 1, 1)
	zenith := core.NewVec3(0.5, 0.7, 1.0)
	gradient := Gradient{Horizon: horizon, Zenith: zenith}

	tests := []struct {
		name       string
		background Background
		direction  core.Vec3
		expected   core.Vec3
	}{
		{"gradient up", gradient, core.NewVec3(0, 5, 0), zenith},
		{"gradient down", gradient, core.NewVec3(0, -1, 0), horizon},
		{"gradient level", gradient, core.NewVec3(1, 0, 0), horizon.Lerp(zenith, 0.5)},
		{"solid", Solid{Value: core.NewVec3(0.2, 0.3, 0.4)}, core.NewVec3(1, 2, 3), core.NewVec3(0.2, 0.3, 0.4)},
		{"black", Black{}, core.NewVec3(0, 1, 0), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.background.Color(core.NewRay(core.Vec3{}, tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScene_NilBackgroundIsBlack(t *testing.T) {
	s := NewScene([]geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(1, 1, 1))),
	}, nil)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	if got := s.BackgroundColor(ray); got != (core.Vec3{}) {
		t.Errorf("Expected black, got %v", got)
	}
	if s.String() == "" {
		t.Error("Expected a summary")
	}
}
