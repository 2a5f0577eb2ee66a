package geometry

import (
	"math"
	"testing"

	"github.com/df07/photon/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		DummyMaterial{},
	)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		shouldHit bool
		expectedT float64
		front     bool
	}{
		{"center hit", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1), true, 1.0, true},
		{"back side", core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1), true, 1.0, false},
		{"outside u+v", core.NewVec3(0.6, 0.6, 1), core.NewVec3(0, 0, -1), false, 0, false},
		{"outside u", core.NewVec3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1), false, 0, false},
		{"outside v", core.NewVec3(0.5, -0.1, 1), core.NewVec3(0, 0, -1), false, 0, false},
		{"parallel", core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0), false, 0, false},
		{"behind origin", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000.0)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.front {
				t.Errorf("Expected FrontFace=%v, got %v", tt.front, hit.FrontFace)
			}
		})
	}
}

func TestTriangle_BarycentricBounds(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(-1, -1, -3),
		core.NewVec3(2, -1, -4),
		core.NewVec3(0, 2, -3.5),
		DummyMaterial{},
	)
	sampler := core.NewSeededSampler(11)

	hits := 0
	for i := 0; i < 2000; i++ {
		s := sampler.Get2D()
		dir := core.NewVec3(s.X*2-1, s.Y*2-1, -1)
		hit, isHit := triangle.Hit(core.NewRay(core.Vec3{}, dir), 0.001, math.Inf(1))
		if !isHit {
			continue
		}
		hits++
		u, v := hit.UV.X, hit.UV.Y
		if u < 0 || v < 0 || u+v > 1 {
			t.Fatalf("Barycentrics out of range: u=%f v=%f", u, v)
		}
		// Reconstruct the hit point from barycentrics
		p := triangle.V0.Multiply(1 - u - v).Add(triangle.V1.Multiply(u)).Add(triangle.V2.Multiply(v))
		if p.Subtract(hit.Point).Length() > 1e-9 {
			t.Fatalf("Barycentric point %v does not match hit point %v", p, hit.Point)
		}
	}
	if hits == 0 {
		t.Fatal("Expected some rays to hit the triangle")
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(2, 2, 0),
		DummyMaterial{},
	)
	ray := core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1))
	if _, isHit := triangle.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Expected degenerate triangle never to hit")
	}
}

func TestTriangle_BoundingBoxPadded(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		DummyMaterial{},
	)
	size := triangle.BoundingBox().Size()
	if size.Z <= 0 {
		t.Errorf("Expected padded Z extent, got %f", size.Z)
	}
}
