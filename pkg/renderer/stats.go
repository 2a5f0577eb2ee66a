package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/df07/photon/pkg/core"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	SamplesPerPixel int           // Samples per pixel reached so far
	Passes          int           // Passes completed
	Tiles           int           // Tiles per pass
	Workers         int           // Parallel workers used
	Rays            int64         // Scene intersection queries issued
	Elapsed         time.Duration // Wall time spent rendering
}

// TotalPixels returns the number of pixels in the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// TotalSamples returns the number of camera rays traced
func (s RenderStats) TotalSamples() int64 {
	return int64(s.TotalPixels()) * int64(s.SamplesPerPixel)
}

// MRaysPerSecond returns the intersection throughput in millions of rays per second
func (s RenderStats) MRaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Elapsed.Seconds() / 1e6
}

// Table writes a tabular summary of the statistics to w
func (s RenderStats) Table(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Samples/pixel", fmt.Sprintf("%d", s.SamplesPerPixel)})
	table.Append([]string{"Passes", fmt.Sprintf("%d", s.Passes)})
	table.Append([]string{"Tiles", fmt.Sprintf("%d", s.Tiles)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Camera rays", fmt.Sprintf("%d", s.TotalSamples())})
	table.Append([]string{"Scene rays", fmt.Sprintf("%d", s.Rays)})
	table.SetFooter([]string{s.Elapsed.Round(time.Millisecond).String(), fmt.Sprintf("%.2f Mrays/s", s.MRaysPerSecond())})
	table.Render()
}

// PixelStats accumulates the samples of a single pixel across passes
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
