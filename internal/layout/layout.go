// Package layout derives per-frame display geometry from the terminal
// dimensions. Compute is a pure function: resize handling is simply
// calling it again with the new dimensions, so there is no stale
// geometry to invalidate.
package layout

import (
	"math"

	"github.com/olivier-w/specviz/internal/dsp"
	"github.com/olivier-w/specviz/internal/util"
)

const (
	// The display works within this width bracket: terminals narrower
	// than MinWidth are treated as MinWidth wide, and columns beyond
	// MaxWidth stay blank.
	MinWidth = 80
	MaxWidth = 160

	// Blank columns on each side of the band area.
	margin = 2

	// Rows not available to the bars: header, spacer, axis, labels,
	// status.
	chromeRows = 5

	// Roughly one legend tick per this many bands, endpoints included.
	bandsPerTick = 24
	minTicks     = 4
)

// Tick is one legend mark under the band axis.
type Tick struct {
	Column int     // column within the band area
	Freq   float64 // frequency boundary the mark represents
	Label  string
}

// Geometry is the display layout for one frame. Ephemeral: recomputed
// every frame, never stored across frames.
type Geometry struct {
	Usable     int // columns devoted to the display
	LeftMargin int
	Bands      int // one column per band
	BarRows    int // rows available to the bars
	BandEdges  []float64
	Ticks      []Tick
}

// Compute derives the geometry for a terminal of the given dimensions
// and an axis topping out at nyquist Hz. Band count grows with usable
// width; every band spans exactly one column.
func Compute(width, height int, nyquist float64) Geometry {
	usable := width
	if usable < MinWidth {
		usable = MinWidth
	} else if usable > MaxWidth {
		usable = MaxWidth
	}

	bands := usable - 2*margin

	rows := height - chromeRows
	if rows < 1 {
		rows = 1
	}

	g := Geometry{
		Usable:     usable,
		LeftMargin: margin,
		Bands:      bands,
		BarRows:    rows,
		BandEdges:  dsp.BandEdges(nyquist, bands),
	}
	g.Ticks = ticks(bands, nyquist)
	return g
}

// ticks places count legend marks evenly along the band axis. Tick
// positions are fractional band-edge indices, so each mark is labeled
// with the frequency the continuous axis actually reaches there, not
// the nearest whole band boundary.
func ticks(bands int, nyquist float64) []Tick {
	count := bands/bandsPerTick + 1
	if count < minTicks {
		count = minTicks
	}

	ratio := nyquist / dsp.MinFrequency
	out := make([]Tick, count)
	for t := 0; t < count; t++ {
		x := float64(t) * float64(bands) / float64(count-1)
		freq := dsp.MinFrequency * math.Pow(ratio, x/float64(bands))
		col := int(math.Round(x))
		if col > bands-1 {
			col = bands - 1
		}
		out[t] = Tick{Column: col, Freq: freq, Label: util.FormatHz(freq)}
	}
	return out
}
