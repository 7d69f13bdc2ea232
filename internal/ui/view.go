package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/specviz/internal/layout"
	"github.com/olivier-w/specviz/internal/playback"
	"github.com/olivier-w/specviz/internal/util"
)

// barChars maps eighths of a filled cell to partial block characters.
var barChars = []rune(" ▁▂▃▄▅▆▇█")

const peakChar = '▔'

// renderFrame lays out one full screen: header, bars, axis, tick
// labels, status line.
func renderFrame(m Model) string {
	var b strings.Builder
	pad := strings.Repeat(" ", m.geo.LeftMargin)

	b.WriteString(pad)
	b.WriteString(renderHeader(m.track))
	b.WriteString("\n\n")
	b.WriteString(renderBars(m.geo, m.levels, m.peaks.positions(), m.rowStyles))
	b.WriteString(pad)
	b.WriteString(renderAxis(m.geo))
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString(renderTickLabels(m.geo))
	b.WriteString("\n")
	b.WriteString(pad)
	b.WriteString(m.renderStatus())
	return b.String()
}

func renderHeader(track playback.TrackInfo) string {
	s := titleStyle.Render(track.Title)
	if track.Artist != "" {
		s += artistStyle.Render(" - " + track.Artist)
	}
	return s
}

// renderBars draws the band columns, top row first. A cell holds a
// full block below the bar top, a partial block at the top, and
// otherwise a peak marker when one is falling through it.
func renderBars(geo layout.Geometry, levels, peaks []float64, styles []lipgloss.Style) string {
	var b strings.Builder
	pad := strings.Repeat(" ", geo.LeftMargin)
	row := make([]rune, len(levels))

	for r := geo.BarRows - 1; r >= 0; r-- {
		for i, level := range levels {
			row[i] = cellAt(level, r)
			if row[i] == ' ' && peakRow(peaks[i], geo.BarRows) == r {
				row[i] = peakChar
			}
		}
		b.WriteString(pad)
		b.WriteString(styles[r].Render(string(row)))
		b.WriteString("\n")
	}
	return b.String()
}

// cellAt picks the character for one cell of a bar; row counts from
// the bottom, level is in row units.
func cellAt(level float64, row int) rune {
	idx := int((level - float64(row)) * 8)
	if idx < 0 {
		idx = 0
	} else if idx > 8 {
		idx = 8
	}
	return barChars[idx]
}

func peakRow(pos float64, rows int) int {
	r := int(pos)
	if r >= rows {
		r = rows - 1
	}
	return r
}

func renderAxis(geo layout.Geometry) string {
	line := make([]rune, geo.Bands)
	for i := range line {
		line[i] = '─'
	}
	for _, tk := range geo.Ticks {
		line[tk.Column] = '┴'
	}
	return axisStyle.Render(string(line))
}

// renderTickLabels centers each tick's frequency label under its
// column, shifting right when neighbors would collide.
func renderTickLabels(geo layout.Geometry) string {
	line := make([]rune, geo.Bands)
	for i := range line {
		line[i] = ' '
	}
	lastEnd := -1
	for _, tk := range geo.Ticks {
		label := []rune(tk.Label)
		start := tk.Column - len(label)/2
		if start <= lastEnd {
			start = lastEnd + 1
		}
		if start+len(label) > len(line) {
			start = len(line) - len(label)
		}
		if start <= lastEnd {
			continue
		}
		copy(line[start:], label)
		lastEnd = start + len(label) - 1
	}
	return axisStyle.Render(strings.TrimRight(string(line), " "))
}

func (m Model) renderStatus() string {
	elapsed := util.FormatDuration(m.elapsed)
	total := util.FormatDuration(m.duration)

	status := "playing"
	if m.paused {
		status = "paused"
	}
	tail := fmt.Sprintf("%s  %d bands  %s", status, m.geo.Bands, helpText())

	barWidth := m.geo.Usable - len(elapsed) - len(total) - len(tail) - 8
	if barWidth < 10 {
		barWidth = 10
	}
	prog := m.progress
	prog.Width = barWidth

	frac := 0.0
	if m.duration > 0 {
		frac = m.elapsed.Seconds() / m.duration.Seconds()
		if frac > 1 {
			frac = 1
		}
	}

	return fmt.Sprintf("%s %s %s   %s",
		timeStyle.Render(elapsed),
		prog.ViewAs(frac),
		timeStyle.Render(total),
		statusStyle.Render(tail))
}
