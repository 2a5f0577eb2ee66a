package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a render configuration cannot be used
var ErrInvalidConfig = errors.New("renderer: invalid config")

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Total camera rays per pixel
	MaxBounces      int   // Maximum scatter events per path
	TileSize        int   // Edge length of the square tiles handed to workers
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed, every tile derives its own generator from it
	Passes          int   // Progressive passes the samples are spread over (0 or 1 = single pass)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           160,
		Height:          80,
		SamplesPerPixel: 32,
		MaxBounces:      12,
		TileSize:        16,
		NumWorkers:      0,
		Seed:            42,
		Passes:          1,
	}
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxBounces < 0:
		return fmt.Errorf("%w: %d max bounces", ErrInvalidConfig, c.MaxBounces)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d", ErrInvalidConfig, c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.NumWorkers)
	case c.Passes < 0 || c.Passes > c.SamplesPerPixel:
		return fmt.Errorf("%w: %d passes for %d samples", ErrInvalidConfig, c.Passes, c.SamplesPerPixel)
	}
	return nil
}

// passCount normalizes Passes
func (c Config) passCount() int {
	return max(1, c.Passes)
}

// samplesForPass returns the total samples per pixel reached after pass
// (1-based). A multi-pass render starts with a one-sample preview and spreads
// the rest evenly, the last pass picking up the remainder.
func (c Config) samplesForPass(pass int) int {
	passes := c.passCount()
	if passes == 1 || pass >= passes {
		return c.SamplesPerPixel
	}
	if pass == 1 {
		return 1
	}
	perPass := (c.SamplesPerPixel - 1) / (passes - 1)
	return 1 + (pass-1)*perPass
}
