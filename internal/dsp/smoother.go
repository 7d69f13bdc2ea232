package dsp

// smoothingAlpha is the blend weight of the newest raw frame. Constant
// across bands and time; 0.3 settles fast enough to track transients
// while keeping the display from flickering at the frame rate.
const smoothingAlpha = 0.3

// LevelFloor is the minimum display level in row units: one
// eighth-block, so every band stays visible through true silence.
const LevelFloor = 0.125

// Smoother carries per-band display levels across frames, folding each
// raw frame into the retained state.
type Smoother struct {
	state []float64
}

// NewSmoother returns a Smoother with empty state; the first Smooth
// call sizes it.
func NewSmoother() *Smoother {
	return &Smoother{}
}

// Smooth blends raw into the retained state, band by band, as
// prev*(1-alpha) + raw*alpha, then clamps every band to [floor, max].
// The returned slice is the state itself, valid until the next call.
// A raw frame of a different band count resizes the state first.
func (s *Smoother) Smooth(raw []float64, floor, max float64) []float64 {
	if len(s.state) != len(raw) {
		s.Resize(len(raw))
	}
	for i, r := range raw {
		v := s.state[i]*(1-smoothingAlpha) + r*smoothingAlpha
		if v < floor {
			v = floor
		} else if v > max {
			v = max
		}
		s.state[i] = v
	}
	return s.state
}

// Resize reshapes the retained state onto n bands, interpolating the
// old levels across the new axis so a terminal resize bends the
// animation instead of restarting it.
func (s *Smoother) Resize(n int) {
	if n == len(s.state) {
		return
	}
	next := make([]float64, n)
	switch {
	case len(s.state) > 1 && n > 1:
		scale := float64(len(s.state)-1) / float64(n-1)
		for i := range next {
			pos := float64(i) * scale
			j := int(pos)
			frac := pos - float64(j)
			if j+1 < len(s.state) {
				next[i] = s.state[j]*(1-frac) + s.state[j+1]*frac
			} else {
				next[i] = s.state[j]
			}
		}
	case len(s.state) > 0:
		for i := range next {
			next[i] = s.state[0]
		}
	}
	s.state = next
}

// Levels returns the current state without smoothing a new frame.
func (s *Smoother) Levels() []float64 {
	return s.state
}
