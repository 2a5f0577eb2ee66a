package renderer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/material"
	"github.com/df07/photon/pkg/scene"
)

func testCamera(aspect float64) *geometry.Camera {
	return geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: aspect,
	})
}

// enclosedScene surrounds the camera with a light so every path ends on it
func enclosedScene(emission core.Vec3) *scene.Scene {
	light := &material.DiffuseLight{Emission: emission}
	return scene.NewScene([]geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 50, light),
	}, scene.Black{})
}

func TestRender_EnclosingLightGivesUniformImage(t *testing.T) {
	emission := core.NewVec3(4, 2, 1)
	fb, err := Render(enclosedScene(emission), testCamera(2), 8, 4, 4, 5)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if fb.Width != 8 || fb.Height != 4 || len(fb.Pixels) != 32 {
		t.Fatalf("Unexpected framebuffer shape %dx%d (%d pixels)", fb.Width, fb.Height, len(fb.Pixels))
	}
	for i, p := range fb.Pixels {
		if p != emission {
			t.Fatalf("Pixel %d: expected %v, got %v", i, emission, p)
		}
	}
}

func TestRender_EmptySceneIsBackground(t *testing.T) {
	sky := core.NewVec3(0.25, 0.5, 0.75)
	s := scene.NewScene(nil, scene.Solid{Value: sky})

	fb, err := Render(s, testCamera(1), 4, 4, 2, 3)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, p := range fb.Pixels {
		if p != sky {
			t.Fatalf("Pixel %d: expected %v, got %v", i, sky, p)
		}
	}
}

func TestRender_InvalidArguments(t *testing.T) {
	s := scene.NewScene(nil, nil)

	if _, err := Render(s, testCamera(1), 0, 4, 1, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero width, got %v", err)
	}
	if _, err := Render(s, testCamera(1), 4, 4, 0, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero samples, got %v", err)
	}
	if _, err := Render(nil, testCamera(1), 4, 4, 1, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil scene, got %v", err)
	}
}

func renderMinimal(t *testing.T, workers, tileSize int) (*Framebuffer, RenderStats) {
	t.Helper()

	desc, err := scene.Load("minimal", 7)
	if err != nil {
		t.Fatalf("Failed to load scene: %v", err)
	}

	config := DefaultConfig()
	config.Width = 24
	config.Height = 12
	config.SamplesPerPixel = 3
	config.MaxBounces = 4
	config.NumWorkers = workers
	config.TileSize = tileSize
	desc.Camera.AspectRatio = float64(config.Width) / float64(config.Height)

	rt, err := NewRaytracer(desc.Build(), geometry.NewCamera(desc.Camera), config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	fb, stats, err := rt.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return fb, stats
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	reference, _ := renderMinimal(t, 1, 8)

	for _, workers := range []int{1, 3, 8} {
		fb, _ := renderMinimal(t, workers, 8)
		for i := range reference.Pixels {
			if fb.Pixels[i] != reference.Pixels[i] {
				t.Fatalf("workers=%d: pixel %d differs: %v vs %v", workers, i, fb.Pixels[i], reference.Pixels[i])
			}
		}
	}
}

func TestRaytracer_RenderTwiceStartsFromBlack(t *testing.T) {
	s := enclosedScene(core.NewVec3(1, 1, 1))
	config := DefaultConfig()
	config.Width, config.Height, config.SamplesPerPixel = 4, 4, 2

	rt, err := NewRaytracer(s, testCamera(1), config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	first, _, _ := rt.Render()
	second, _, _ := rt.Render()
	for i := range first.Pixels {
		if first.Pixels[i] != second.Pixels[i] {
			t.Fatalf("Pixel %d differs between renders: %v vs %v", i, first.Pixels[i], second.Pixels[i])
		}
	}
}

func TestRaytracer_Stats(t *testing.T) {
	_, stats := renderMinimal(t, 2, 8)

	if stats.Width != 24 || stats.Height != 12 || stats.SamplesPerPixel != 3 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.Tiles != 6 {
		t.Errorf("Expected 6 tiles, got %d", stats.Tiles)
	}
	if stats.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", stats.Workers)
	}
	// every camera ray issues at least one scene query
	if stats.Rays < stats.TotalSamples() {
		t.Errorf("Expected at least %d rays, got %d", stats.TotalSamples(), stats.Rays)
	}
}

func TestRaytracer_ProgressivePasses(t *testing.T) {
	config := DefaultConfig()
	config.Width, config.Height = 4, 2
	config.SamplesPerPixel = 10
	config.Passes = 4

	rt, err := NewRaytracer(enclosedScene(core.NewVec3(1, 2, 3)), testCamera(2), config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	passChan, errChan := rt.RenderProgressive(context.Background())
	var samples []int
	var last PassResult
	for result := range passChan {
		samples = append(samples, result.Stats.SamplesPerPixel)
		last = result
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Progressive render failed: %v", err)
	}

	expected := []int{1, 4, 7, 10}
	if len(samples) != len(expected) {
		t.Fatalf("Expected %d passes, got %d", len(expected), len(samples))
	}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("Pass %d: expected %d samples, got %d", i+1, expected[i], samples[i])
		}
	}
	if !last.IsLast || last.PassNumber != 4 {
		t.Errorf("Expected final pass 4 flagged last, got pass %d last=%v", last.PassNumber, last.IsLast)
	}
}

func TestRaytracer_CancelledBeforeStart(t *testing.T) {
	config := DefaultConfig()
	config.Width, config.Height = 4, 4

	rt, err := NewRaytracer(enclosedScene(core.NewVec3(1, 1, 1)), testCamera(1), config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := rt.RenderProgressive(ctx)
	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

type panickingIntegrator struct{}

func (panickingIntegrator) Trace(ray core.Ray, s *scene.Scene, sampler core.Sampler) (core.Vec3, int) {
	panic("boom")
}

func TestRaytracer_TilePanicBecomesError(t *testing.T) {
	config := DefaultConfig()
	config.Width, config.Height, config.SamplesPerPixel = 4, 4, 1

	rt, err := NewRaytracer(scene.NewScene(nil, nil), testCamera(1), config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	rt.SetIntegrator(panickingIntegrator{})

	if _, _, err := rt.Render(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected tile error mentioning the panic, got %v", err)
	}
}

func TestRenderStats_Table(t *testing.T) {
	stats := RenderStats{Width: 10, Height: 5, SamplesPerPixel: 4, Passes: 1, Tiles: 1, Workers: 2, Rays: 500}

	var buf bytes.Buffer
	stats.Table(&buf)
	out := buf.String()
	for _, want := range []string{"10x5", "Camera rays", "200", "500"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, out)
		}
	}
	if stats.MRaysPerSecond() != 0 {
		t.Error("Expected zero throughput without elapsed time")
	}
}

func TestRaytracer_ProgressOncePerTile(t *testing.T) {
	config := DefaultConfig()
	config.Width, config.Height = 20, 10
	config.TileSize = 8
	config.SamplesPerPixel = 4
	config.Passes = 2
	config.NumWorkers = 3

	rt, err := NewRaytracer(enclosedScene(core.NewVec3(1, 1, 1)), testCamera(2), config)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	var updates []Progress
	rt.SetProgress(func(p Progress) {
		updates = append(updates, p)
	})
	if _, _, err := rt.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// 3x2 tiles over 2 passes
	if len(updates) != 12 {
		t.Fatalf("Expected 12 progress updates, got %d", len(updates))
	}
	for i, p := range updates {
		if p.TilesDone != i+1 || p.TotalTiles != 12 {
			t.Errorf("Update %d: expected %d/12 tiles, got %d/%d", i, i+1, p.TilesDone, p.TotalTiles)
		}
		if expectedPass := i/6 + 1; p.Pass != expectedPass {
			t.Errorf("Update %d: expected pass %d, got %d", i, expectedPass, p.Pass)
		}
	}

	last := updates[len(updates)-1]
	if last.Fraction() != 1 {
		t.Errorf("Expected final fraction 1, got %f", last.Fraction())
	}
	if last.ETA() != 0 {
		t.Errorf("Expected zero ETA when done, got %v", last.ETA())
	}
}

func TestProgress_ETA(t *testing.T) {
	p := Progress{TilesDone: 1, TotalTiles: 4, Elapsed: 2 * time.Second}
	if p.Fraction() != 0.25 {
		t.Errorf("Expected fraction 0.25, got %f", p.Fraction())
	}
	if p.ETA() != 6*time.Second {
		t.Errorf("Expected 6s remaining, got %v", p.ETA())
	}
	if (Progress{TotalTiles: 4}).ETA() != 0 {
		t.Error("Expected zero ETA before the first tile")
	}
}
