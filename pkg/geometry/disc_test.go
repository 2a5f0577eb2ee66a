package geometry

import (
	"math"
	"testing"

	"github.com/df07/photon/pkg/core"
)

func TestDisc_Hit(t *testing.T) {
	disc := NewDisc(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1.0, DummyMaterial{})

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		shouldHit bool
	}{
		{"center", core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), true},
		{"inside radius", core.NewVec3(0.7, 1, 0), core.NewVec3(0, -1, 0), true},
		{"outside radius", core.NewVec3(0.8, 1, 0.8), core.NewVec3(0, -1, 0), false},
		{"parallel", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), false},
		{"from below", core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isHit := disc.Hit(core.NewRay(tt.origin, tt.direction), 0.001, 1000.0)
			if isHit != tt.shouldHit {
				t.Errorf("Expected hit=%v, got %v", tt.shouldHit, isHit)
			}
		})
	}
}

func TestDisc_UV(t *testing.T) {
	disc := NewDisc(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 2.0, DummyMaterial{})
	hit, isHit := disc.Hit(core.NewRay(core.NewVec3(1, 0, 1), core.NewVec3(0, 0, -1)), 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.UV.X-0.5) > 1e-9 {
		t.Errorf("Expected radial coordinate 0.5, got %f", hit.UV.X)
	}
}

func TestDisc_BoundingBox(t *testing.T) {
	tests := []struct {
		name   string
		normal core.Vec3
	}{
		{"axis aligned", core.NewVec3(0, 1, 0)},
		{"tilted", core.NewVec3(1, 1, 0)},
		{"oblique", core.NewVec3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disc := NewDisc(core.NewVec3(1, 2, 3), tt.normal, 1.5, DummyMaterial{})
			box := disc.BoundingBox()
			eps := core.NewVec3(1e-9, 1e-9, 1e-9)
			box = core.NewAABB(box.Min.Subtract(eps), box.Max.Add(eps))

			// Points on the rim must lie inside the box
			for i := 0; i < 64; i++ {
				angle := 2 * math.Pi * float64(i) / 64
				p := disc.Center.
					Add(disc.Right.Multiply(disc.Radius * math.Cos(angle))).
					Add(disc.Up.Multiply(disc.Radius * math.Sin(angle)))
				if !box.Contains(p) {
					t.Fatalf("Rim point %v outside box %v", p, box)
				}
			}
		})
	}

	flat := NewDisc(core.Vec3{}, core.NewVec3(0, 1, 0), 1, DummyMaterial{}).BoundingBox()
	if flat.Size().Y > 1e-3 {
		t.Errorf("Expected thin box along the normal, got %v", flat.Size())
	}
}
