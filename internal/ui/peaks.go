package ui

import "github.com/charmbracelet/harmonica"

// Spring parameters for the falling peak markers. Critically damped so
// markers sink onto the bar below without bouncing through it.
const (
	peakFPS       = 60
	peakFrequency = 3.5
	peakDamping   = 1.0
)

// peakField keeps one spring-driven marker per band: markers jump with
// rising levels and sink smoothly once the level falls away.
type peakField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newPeakField() *peakField {
	return &peakField{
		spring: harmonica.NewSpring(harmonica.FPS(peakFPS), peakFrequency, peakDamping),
	}
}

// resize reshapes the marker state onto n bands, keeping what it can.
func (f *peakField) resize(n int) {
	if n == len(f.pos) {
		return
	}
	pos := make([]float64, n)
	vel := make([]float64, n)
	copy(pos, f.pos)
	copy(vel, f.vel)
	f.pos, f.vel = pos, vel
}

// update advances every marker toward its band's level.
func (f *peakField) update(levels []float64) {
	f.resize(len(levels))
	for i, level := range levels {
		if level >= f.pos[i] {
			f.pos[i] = level
			f.vel[i] = 0
			continue
		}
		f.pos[i], f.vel[i] = f.spring.Update(f.pos[i], f.vel[i], level)
	}
}

func (f *peakField) positions() []float64 {
	return f.pos
}
