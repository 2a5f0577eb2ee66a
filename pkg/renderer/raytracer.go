package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/integrator"
	"github.com/df07/photon/pkg/log"
	"github.com/df07/photon/pkg/scene"
)

var logger = log.New("renderer")

// PassResult represents the result of a single progressive pass
type PassResult struct {
	PassNumber  int
	Framebuffer *Framebuffer
	Stats       RenderStats
	IsLast      bool
}

// Progress reports how much of a render has completed
type Progress struct {
	Pass       int           // Pass the last finished tile belongs to
	TilesDone  int           // Tiles finished over all passes so far
	TotalTiles int           // Tiles per pass times passes
	Elapsed    time.Duration // Wall time since the render started
}

// Fraction returns the completed share of the render in [0, 1]
func (p Progress) Fraction() float64 {
	if p.TotalTiles == 0 {
		return 1
	}
	return float64(p.TilesDone) / float64(p.TotalTiles)
}

// ETA extrapolates the remaining time from the average time per tile so far
func (p Progress) ETA() time.Duration {
	if p.TilesDone == 0 {
		return 0
	}
	return time.Duration(float64(p.Elapsed) * float64(p.TotalTiles-p.TilesDone) / float64(p.TilesDone))
}

// ProgressFunc receives a Progress after every finished tile. It is called
// from the goroutine that collects tile results, never concurrently.
type ProgressFunc func(Progress)

// Raytracer renders a scene through a camera into a framebuffer
type Raytracer struct {
	scene      *scene.Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     Config
	tiles      []*Tile
	pixelStats []PixelStats // Row-major accumulators, one per pixel
	progress   ProgressFunc
}

// NewRaytracer creates a raytracer for the given scene, camera and configuration
func NewRaytracer(s *scene.Scene, camera *geometry.Camera, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s == nil || camera == nil {
		return nil, fmt.Errorf("%w: scene and camera are required", ErrInvalidConfig)
	}

	return &Raytracer{
		scene:      s,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxBounces),
		config:     config,
		tiles:      NewTileGrid(config.Width, config.Height, config.TileSize),
		pixelStats: make([]PixelStats, config.Width*config.Height),
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// SetProgress installs a callback that is told about every finished tile
func (rt *Raytracer) SetProgress(fn ProgressFunc) {
	rt.progress = fn
}

// Render runs every pass to completion and returns the final framebuffer
func (rt *Raytracer) Render() (*Framebuffer, RenderStats, error) {
	passChan, errChan := rt.RenderProgressive(context.Background())

	var last PassResult
	for result := range passChan {
		last = result
	}
	if err := <-errChan; err != nil {
		return nil, RenderStats{}, err
	}

	return last.Framebuffer, last.Stats, nil
}

// RenderProgressive renders pass by pass, publishing a framebuffer snapshot
// after each one. Cancellation is checked between passes. Both channels are
// closed when rendering stops; the error channel carries at most one error.
// A Raytracer runs one render at a time, and each render starts from black.
func (rt *Raytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		clear(rt.pixelStats)
		pool := NewWorkerPool(rt, len(rt.tiles), rt.config.NumWorkers)
		pool.Start()
		defer pool.Stop()

		passes := rt.config.passCount()
		stats := RenderStats{
			Width:   rt.config.Width,
			Height:  rt.config.Height,
			Tiles:   len(rt.tiles),
			Workers: pool.GetNumWorkers(),
		}

		logger.Infof("rendering %dx%d at %d spp in %d pass(es) using %d workers (%s)",
			rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, passes, pool.GetNumWorkers(), rt.scene)

		start := time.Now()
		samples := 0
		for pass := 1; pass <= passes; pass++ {
			select {
			case <-ctx.Done():
				logger.Infof("rendering cancelled before pass %d", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			target := rt.config.samplesForPass(pass)
			rays, err := rt.renderPass(pool, pass, samples, target, start)
			if err != nil {
				errChan <- err
				return
			}
			samples = target

			stats.Passes = pass
			stats.SamplesPerPixel = samples
			stats.Rays += rays
			stats.Elapsed = time.Since(start)

			logger.Debugf("pass %d completed in %v (%d samples/pixel)", pass, stats.Elapsed, samples)

			result := PassResult{
				PassNumber:  pass,
				Framebuffer: rt.snapshot(),
				Stats:       stats,
				IsLast:      pass == passes,
			}
			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}

// renderPass submits every tile and waits for all of them to finish
func (rt *Raytracer) renderPass(pool *WorkerPool, pass, from, to int, start time.Time) (int64, error) {
	for _, tile := range rt.tiles {
		pool.SubmitTask(TileTask{
			Tile:        tile,
			PassNumber:  pass,
			FromSamples: from,
			ToSamples:   to,
		})
	}

	var rays int64
	var firstErr error
	for i := range rt.tiles {
		result, ok := pool.GetResult()
		if !ok {
			return rays, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		rays += result.Rays

		if rt.progress != nil {
			rt.progress(Progress{
				Pass:       pass,
				TilesDone:  (pass-1)*len(rt.tiles) + i + 1,
				TotalTiles: rt.config.passCount() * len(rt.tiles),
				Elapsed:    time.Since(start),
			})
		}
	}

	return rays, firstErr
}

// renderTile accumulates samples for every pixel in the task's tile and
// returns the number of scene queries issued. The tile's generator depends
// only on the seed, tile and pass, so output is independent of scheduling.
func (rt *Raytracer) renderTile(task TileTask) int64 {
	sampler := core.NewSeededSampler(tileSeed(rt.config.Seed, task.Tile.ID, task.PassNumber))
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)

	var rays int64
	bounds := task.Tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats := &rt.pixelStats[y*rt.config.Width+x]
			for s := task.FromSamples; s < task.ToSamples; s++ {
				jitter := sampler.Get2D()
				u := (float64(x) + jitter.X) / width
				v := 1.0 - (float64(y)+jitter.Y)/height

				ray := rt.camera.GetRay(u, v, sampler)
				color, queries := rt.integrator.Trace(ray, rt.scene, sampler)
				stats.AddSample(color)
				rays += int64(queries)
			}
		}
	}

	return rays
}

// snapshot averages the accumulated samples into a new framebuffer
func (rt *Raytracer) snapshot() *Framebuffer {
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	for i := range rt.pixelStats {
		fb.Pixels[i] = rt.pixelStats[i].GetColor()
	}
	return fb
}
