package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/photon/pkg/display"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/renderer"
	"github.com/df07/photon/pkg/scene"
	"github.com/urfave/cli"
)

// Render a scene to the terminal and optionally to an image file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	mode, err := display.ParseMode(ctx.String("mode"))
	if err != nil {
		return err
	}
	toneMap, err := display.ParseToneMap(ctx.String("tonemap"))
	if err != nil {
		return err
	}

	desc, err := loadScene(ctx.String("scene"), int64(ctx.Int("seed")))
	if err != nil {
		return err
	}

	// width and height count terminal cells; each cell covers several pixels
	cellW, cellH := mode.CellSize()
	config := renderer.DefaultConfig()
	config.Width = ctx.Int("width") * cellW
	config.Height = ctx.Int("height") * cellH
	config.SamplesPerPixel = ctx.Int("spp")
	config.MaxBounces = ctx.Int("bounces")
	config.NumWorkers = ctx.Int("workers")
	config.TileSize = ctx.Int("tile-size")
	config.Seed = int64(ctx.Int("seed"))
	if config.Width > 0 && config.Height > 0 {
		desc.Camera.AspectRatio = float64(config.Width) / float64(config.Height)
	}

	rt, err := renderer.NewRaytracer(desc.Build(), geometry.NewCamera(desc.Camera), config)
	if err != nil {
		return err
	}

	if !ctx.Bool("no-progress") {
		rt.SetProgress(newProgressBar(errWriter(ctx)))
	}

	logger.Noticef("rendering %q at %dx%d (%s), %d spp, %d bounces",
		desc.Name, config.Width, config.Height, mode, config.SamplesPerPixel, config.MaxBounces)

	fb, stats, err := rt.Render()
	if err != nil {
		return err
	}
	displayRenderStats(stats)

	output := display.Prepare(fb, toneMap, !ctx.Bool("no-gamma"))

	if out := ctx.String("out"); out != "" {
		if err := display.SaveFile(out, output); err != nil {
			return err
		}
		logger.Noticef("saved render to %s", out)
	}

	if ctx.Bool("no-display") {
		return nil
	}
	return display.WriteTerminal(ctx.App.Writer, output, mode)
}

// errWriter returns the app's error stream, stderr unless overridden
func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

// loadScene resolves a preset name or a path to a JSON scene file
func loadScene(name string, seed int64) (*scene.Description, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return scene.LoadFile(name)
	}

	desc, err := scene.Load(name, seed)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(scene.Names(), ", "))
	}
	return desc, nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.Table(&buf)
	logger.Noticef("render statistics\n%s", buf.String())
}
