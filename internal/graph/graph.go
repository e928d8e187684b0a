// Package graph renders the tracker's short-term average history as
// ASCII bars, one block per region. Purely diagnostic; the driver
// writes it to the console on the slow tick.
package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pulseops/regionpulse/internal/happiness"
)

const (
	width        = 40
	positiveChar = '█'
	negativeChar = '░'
	zeroChar     = '─'
)

// Render writes one bar chart per region to w, regions in sorted order.
// Regions with no history yet are skipped.
func Render(w io.Writer, at time.Time, snaps map[string]happiness.Snapshot) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "HAPPINESS REPORT (%s)\n", at.Format("15:04:05"))
	fmt.Fprintln(w, rule)

	regions := make([]string, 0, len(snaps))
	for region := range snaps {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for _, region := range regions {
		snap := snaps[region]
		if len(snap.History) == 0 {
			continue
		}

		fmt.Fprintf(w, "\nRegion: %s (State: %s)\n", region, snap.State)
		pad := strings.Repeat(" ", width/2-2)
		fmt.Fprintf(w, "  (Negative) <%s 0 %s> (Positive)\n", pad, pad)

		zero := scale(0)
		for _, val := range snap.History {
			line := make([]rune, width+1)
			for i := range line {
				line[i] = ' '
			}

			pos := scale(val)
			switch {
			case pos > zero:
				for i := zero; i <= pos; i++ {
					line[i] = positiveChar
				}
			case pos < zero:
				for i := pos; i < zero; i++ {
					line[i] = negativeChar
				}
			}
			line[zero] = zeroChar

			fmt.Fprintf(w, "  %s | % .2f\n", string(line), val)
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
}

// scale maps a value in [-1, 1] onto the graph axis.
func scale(v float64) int {
	pos := int((v + 1) / 2 * width)
	if pos < 0 {
		return 0
	}
	if pos > width {
		return width
	}
	return pos
}
