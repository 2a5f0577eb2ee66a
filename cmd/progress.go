package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/df07/photon/pkg/renderer"
)

const progressBarWidth = 30

// newProgressBar returns a renderer callback that redraws a one-line bar on w
// whenever the whole percentage changes, ending the line at 100%.
func newProgressBar(w io.Writer) renderer.ProgressFunc {
	lastPercent := -1

	return func(p renderer.Progress) {
		percent := int(p.Fraction() * 100)
		if percent == lastPercent {
			return
		}
		lastPercent = percent

		filled := percent * progressBarWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
		fmt.Fprintf(w, "\r  [%s] %3d%%  pass %d  elapsed %v  ETA %v ",
			bar, percent, p.Pass, p.Elapsed.Round(100*time.Millisecond), p.ETA().Round(100*time.Millisecond))

		if percent == 100 {
			fmt.Fprintln(w)
		}
	}
}
