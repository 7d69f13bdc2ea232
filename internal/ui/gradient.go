package ui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// heatStops is the bar gradient, cold at the floor and hot at the cap.
var heatStops = []struct {
	col colorful.Color
	pos float64
}{
	{mustHex("#1d4ed8"), 0.0},
	{mustHex("#06b6d4"), 0.35},
	{mustHex("#22c55e"), 0.6},
	{mustHex("#eab308"), 0.8},
	{mustHex("#ef4444"), 1.0},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("bad gradient stop: " + s)
	}
	return c
}

// heatColor interpolates the gradient at t in [0, 1], blending in HCL
// space so the ramp stays perceptually even.
func heatColor(t float64) colorful.Color {
	if t <= 0 {
		return heatStops[0].col
	}
	for i := 0; i < len(heatStops)-1; i++ {
		c1, c2 := heatStops[i], heatStops[i+1]
		if c1.pos <= t && t <= c2.pos {
			return c1.col.BlendHcl(c2.col, (t-c1.pos)/(c2.pos-c1.pos)).Clamped()
		}
	}
	return heatStops[len(heatStops)-1].col
}

// barRowStyles returns one foreground style per bar row, bottom row
// first. Styles are built once per geometry change, not per frame.
func barRowStyles(rows int) []lipgloss.Style {
	styles := make([]lipgloss.Style, rows)
	for r := range styles {
		t := 0.0
		if rows > 1 {
			t = float64(r) / float64(rows-1)
		}
		styles[r] = lipgloss.NewStyle().Foreground(lipgloss.Color(heatColor(t).Hex()))
	}
	return styles
}
