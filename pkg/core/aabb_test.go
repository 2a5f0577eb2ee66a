package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"from behind", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
		{"passes beside", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), false},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), true},
		{"axis parallel outside slab", NewRay(NewVec3(0, 3, -5), NewVec3(0, 0, 1)), false},
		{"origin on slab plane with zero component", NewRay(NewVec3(1, 0, -5), NewVec3(0, 0, 1)), true},
		{"negative zero direction component", NewRay(NewVec3(0, 0, -5), NewVec3(math.Copysign(0, -1), 0, 1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0.001, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected hit=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_Hit_RespectsWindow(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, 4), NewVec3(1, 1, 6))
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	if box.Hit(ray, 0.001, 3.0) {
		t.Error("Expected miss when box lies beyond tMax")
	}
	if box.Hit(ray, 7.0, 100.0) {
		t.Error("Expected miss when box lies before tMin")
	}
	if !box.Hit(ray, 0.001, 5.0) {
		t.Error("Expected hit when window overlaps box")
	}
}

func TestAABB_OriginInsideAlwaysHits(t *testing.T) {
	box := NewAABB(NewVec3(-2, -1, -3), NewVec3(2, 1, 3))
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		s := sampler.Get3D()
		origin := NewVec3(
			box.Min.X+s.X*(box.Max.X-box.Min.X),
			box.Min.Y+s.Y*(box.Max.Y-box.Min.Y),
			box.Min.Z+s.Z*(box.Max.Z-box.Min.Z),
		)
		dir := RandomUnitVector(sampler)
		if !box.Hit(NewRay(origin, dir), 0, math.Inf(1)) {
			t.Fatalf("Ray from inside %v with direction %v missed", origin, dir)
		}
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 4))
	u := a.Union(b)

	if u.Min != NewVec3(-1, 0, 0) || u.Max != NewVec3(1, 3, 4) {
		t.Errorf("Unexpected union %v", u)
	}
}

func TestAABB_Pad(t *testing.T) {
	flat := NewAABB(NewVec3(0, 2, 0), NewVec3(4, 2, 4))
	padded := flat.Pad(1e-4)

	if size := padded.Size(); math.Abs(size.Y-1e-4) > 1e-12 {
		t.Errorf("Expected padded Y extent 1e-4, got %g", size.Y)
	}
	if padded.Min.X != 0 || padded.Max.X != 4 {
		t.Errorf("Expected thick axes untouched, got %v", padded)
	}
	if !padded.Contains(NewVec3(1, 2, 1)) {
		t.Error("Expected padded box to contain the original plane")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		box      AABB
		expected int
	}{
		{NewAABB(NewVec3(0, 0, 0), NewVec3(5, 1, 1)), 0},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 1)), 1},
		{NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 5)), 2},
	}
	for _, tt := range tests {
		if got := tt.box.LongestAxis(); got != tt.expected {
			t.Errorf("Expected axis %d for %v, got %d", tt.expected, tt.box, got)
		}
	}
}
