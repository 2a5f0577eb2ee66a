package scene

import (
	"errors"
	"fmt"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/material"
)

var (
	// ErrUnknownPreset is returned when a preset name is not registered
	ErrUnknownPreset = errors.New("scene: unknown preset")
	// ErrInvalidScene is returned for malformed scene files
	ErrInvalidScene = errors.New("scene: invalid scene description")
)

// Description bundles everything needed to render a scene
type Description struct {
	Name       string
	Shapes     []geometry.Shape
	Camera     geometry.CameraConfig
	Background Background
}

// DefaultSize returns a preview resolution 80 pixels tall that matches the camera aspect ratio
func (d *Description) DefaultSize() (width, height int) {
	aspect := d.Camera.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	return int(80 * aspect), 80
}

// Scene is the immutable, render-ready form of a Description
type Scene struct {
	BVH        *geometry.BVH
	Background Background
	shapeCount int
}

// NewScene builds the acceleration structure over shapes.
// A nil background renders as black.
func NewScene(shapes []geometry.Shape, background Background) *Scene {
	if background == nil {
		background = Black{}
	}
	return &Scene{
		BVH:        geometry.NewBVH(shapes),
		Background: background,
		shapeCount: len(shapes),
	}
}

// Build turns a description into a scene
func (d *Description) Build() *Scene {
	return NewScene(d.Shapes, d.Background)
}

// Hit returns the nearest surface hit in [tMin, tMax]
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return s.BVH.Hit(ray, tMin, tMax)
}

// BackgroundColor returns the radiance for a ray that escapes the scene
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	return s.Background.Color(ray)
}

// ShapeCount returns the number of top-level shapes
func (s *Scene) ShapeCount() int {
	return s.shapeCount
}

// String summarizes the scene for logs
func (s *Scene) String() string {
	stats := s.BVH.Stats()
	return fmt.Sprintf("%d shapes, %d BVH nodes, max depth %d", s.shapeCount, stats.TotalNodes, stats.MaxDepth)
}
