package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/renderer"
)

// ErrUnknownMode is returned by ParseMode for unsupported terminal modes
var ErrUnknownMode = errors.New("display: unknown terminal mode")

// Mode selects how a framebuffer is rasterized to terminal cells
type Mode int

const (
	// ModeBraille packs 2x4 pixels into one braille glyph colored by its lit pixels
	ModeBraille Mode = iota
	// ModeTrueColor prints one full block per pixel
	ModeTrueColor
	// ModeHalfBlock prints an upper half block per two rows
	ModeHalfBlock
	// ModeASCII prints a luminance ramp without color
	ModeASCII
)

var modeNames = map[Mode]string{
	ModeBraille:   "braille",
	ModeTrueColor: "truecolor",
	ModeHalfBlock: "halfblock",
	ModeASCII:     "ascii",
}

// ModeNames lists the accepted mode names
func ModeNames() []string {
	return []string{"braille", "truecolor", "halfblock", "ascii"}
}

// ParseMode maps a case-insensitive mode name to a Mode
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(name, n) {
			return m, nil
		}
	}
	return ModeBraille, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMode, name, strings.Join(ModeNames(), ", "))
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// CellSize returns how many pixels one character covers in this mode
func (m Mode) CellSize() (width, height int) {
	switch m {
	case ModeBraille:
		return 2, 4
	case ModeHalfBlock:
		return 1, 2
	default:
		return 1, 1
	}
}

const (
	asciiRamp        = " .:-=+*#%@"
	brailleBase      = 0x2800
	brailleThreshold = 0.15
	resetColor       = "\x1b[0m"
)

// braille dot positions (dx, dy) indexed by pattern bit
var brailleDots = [8][2]int{
	{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {0, 3}, {1, 3},
}

// WriteTerminal rasterizes a display-ready framebuffer (see Prepare) to w
func WriteTerminal(w io.Writer, fb *renderer.Framebuffer, mode Mode) error {
	out := bufio.NewWriter(w)

	switch mode {
	case ModeBraille:
		writeBraille(out, fb)
	case ModeTrueColor:
		writeTrueColor(out, fb)
	case ModeHalfBlock:
		writeHalfBlock(out, fb)
	case ModeASCII:
		writeASCII(out, fb)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	return out.Flush()
}

func foreground(r, g, b uint8) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

func background(r, g, b uint8) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

func writeTrueColor(out *bufio.Writer, fb *renderer.Framebuffer) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			out.WriteString(foreground(ToRGB8(fb.At(x, y))))
			out.WriteString("█")
		}
		out.WriteString(resetColor + "\n")
	}
}

// writeHalfBlock drops a trailing odd row
func writeHalfBlock(out *bufio.Writer, fb *renderer.Framebuffer) {
	for row := 0; row < fb.Height/2; row++ {
		for x := 0; x < fb.Width; x++ {
			out.WriteString(foreground(ToRGB8(fb.At(x, row*2))))
			out.WriteString(background(ToRGB8(fb.At(x, row*2+1))))
			out.WriteString("▀")
		}
		out.WriteString(resetColor + "\n")
	}
}

func writeASCII(out *bufio.Writer, fb *renderer.Framebuffer) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			out.WriteByte(asciiGlyph(fb.At(x, y).Luminance()))
		}
		out.WriteByte('\n')
	}
}

func asciiGlyph(luminance float64) byte {
	if math.IsNaN(luminance) {
		luminance = 0
	}
	idx := int(max(0, min(0.999, luminance)) * float64(len(asciiRamp)))
	return asciiRamp[idx]
}

// writeBraille drops partial trailing cells
func writeBraille(out *bufio.Writer, fb *renderer.Framebuffer) {
	for row := 0; row < fb.Height/4; row++ {
		for col := 0; col < fb.Width/2; col++ {
			pattern, color := brailleCell(fb, col*2, row*4)
			out.WriteString(foreground(ToRGB8(color)))
			out.WriteRune(rune(brailleBase + int(pattern)))
		}
		out.WriteString(resetColor + "\n")
	}
}

// brailleCell returns the dot pattern of the cell at (bx, by) and the
// average color of its lit dots
func brailleCell(fb *renderer.Framebuffer, bx, by int) (uint8, core.Vec3) {
	var pattern uint8
	var sum core.Vec3
	lit := 0

	for bit, dot := range brailleDots {
		px, py := bx+dot[0], by+dot[1]
		if px >= fb.Width || py >= fb.Height {
			continue
		}
		c := fb.At(px, py)
		if c.Luminance() > brailleThreshold {
			pattern |= 1 << bit
			sum = sum.Add(c)
			lit++
		}
	}

	if lit == 0 {
		return pattern, sum
	}
	return pattern, sum.Multiply(1.0 / float64(lit))
}
