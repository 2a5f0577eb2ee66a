package display

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/renderer"
)

// ErrUnknownToneMap is returned by ParseToneMap for unsupported operator names
var ErrUnknownToneMap = errors.New("display: unknown tone map")

// DisplayGamma is the gamma applied before quantizing, a square root per channel
const DisplayGamma = 2.0

// ToneMap compresses linear HDR radiance into displayable range
type ToneMap int

const (
	ToneMapNone ToneMap = iota
	ToneMapReinhard
	ToneMapACES
)

var toneMapNames = map[ToneMap]string{
	ToneMapNone:     "none",
	ToneMapReinhard: "reinhard",
	ToneMapACES:     "aces",
}

// ToneMapNames lists the accepted operator names
func ToneMapNames() []string {
	return []string{"none", "reinhard", "aces"}
}

// ParseToneMap maps a case-insensitive operator name to a ToneMap
func ParseToneMap(name string) (ToneMap, error) {
	for tm, n := range toneMapNames {
		if strings.EqualFold(name, n) {
			return tm, nil
		}
	}
	return ToneMapNone, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownToneMap, name, strings.Join(ToneMapNames(), ", "))
}

func (tm ToneMap) String() string {
	if name, ok := toneMapNames[tm]; ok {
		return name
	}
	return fmt.Sprintf("ToneMap(%d)", int(tm))
}

// Apply maps a linear color through the operator
func (tm ToneMap) Apply(c core.Vec3) core.Vec3 {
	switch tm {
	case ToneMapReinhard:
		return core.NewVec3(reinhard(c.X), reinhard(c.Y), reinhard(c.Z))
	case ToneMapACES:
		return core.NewVec3(aces(c.X), aces(c.Y), aces(c.Z))
	default:
		return c
	}
}

// reinhard is the global operator x / (1 + x)
func reinhard(x float64) float64 {
	return x / (1.0 + x)
}

// aces is the Narkowicz fit of the ACES filmic curve, clamped to [0, 1]
func aces(x float64) float64 {
	const (
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	return max(0, min(1, (x*(a*x+b))/(x*(c*x+d)+e)))
}

// Prepare returns a copy of fb with the tone map and optional gamma applied
func Prepare(fb *renderer.Framebuffer, tm ToneMap, gamma bool) *renderer.Framebuffer {
	out := renderer.NewFramebuffer(fb.Width, fb.Height)
	for i, p := range fb.Pixels {
		c := tm.Apply(p)
		if gamma {
			c = c.GammaCorrect(DisplayGamma)
		}
		out.Pixels[i] = c
	}
	return out
}

// ToRGB8 saturates a display color and quantizes it to 8 bits per channel.
// NaN channels become 0.
func ToRGB8(c core.Vec3) (r, g, b uint8) {
	return quantize(c.X), quantize(c.Y), quantize(c.Z)
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(max(0, min(1, v)) * 255.999)
}
