package display

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/photon/pkg/renderer"
)

// ToImage quantizes a display-ready framebuffer into an RGBA image
func ToImage(fb *renderer.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := ToRGB8(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// WritePPM encodes the framebuffer as a binary PPM (P6)
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	out := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(out, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}
	for _, p := range fb.Pixels {
		r, g, b := ToRGB8(p)
		if _, err := out.Write([]byte{r, g, b}); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WritePNG encodes the framebuffer as a PNG
func WritePNG(w io.Writer, fb *renderer.Framebuffer) error {
	return png.Encode(w, ToImage(fb))
}

// SaveFile writes the framebuffer to path, choosing PNG or PPM by extension
func SaveFile(path string, fb *renderer.Framebuffer) error {
	var encode func(io.Writer, *renderer.Framebuffer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = WritePNG
	case ".ppm":
		encode = WritePPM
	default:
		return fmt.Errorf("display: unsupported output format %q (want .png or .ppm)", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("display: creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("display: creating %s: %w", path, err)
	}
	defer file.Close()

	if err := encode(file, fb); err != nil {
		return fmt.Errorf("display: writing %s: %w", path, err)
	}
	return file.Close()
}
