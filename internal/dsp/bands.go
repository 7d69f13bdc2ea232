package dsp

import "math"

// MinFrequency is the bottom of the displayable axis. Content below
// 20 Hz is inaudible and would waste the leftmost bands.
const MinFrequency = 20.0

// DefaultSensitivity scales magnitudes before display compression.
// Tuned so typical program material fills most of the bar height
// without pinning loud passages at the cap.
const DefaultSensitivity = 6.0

// gainCeiling is the multiplier applied to the topmost band. Lower
// bands ramp linearly from 1x up to this, offsetting the natural
// high-frequency roll-off of typical program material.
const gainCeiling = 3.0

// BandEdges returns bands+1 strictly increasing frequencies
// partitioning [20 Hz, nyquist] geometrically, so equal band counts
// cover equal frequency ratios rather than equal Hz.
func BandEdges(nyquist float64, bands int) []float64 {
	edges := make([]float64, bands+1)
	ratio := nyquist / MinFrequency
	for i := range edges {
		edges[i] = MinFrequency * math.Pow(ratio, float64(i)/float64(bands))
	}
	return edges
}

// BandMapper folds a magnitude spectrum into B perceptual bands and
// compresses the result into display row units.
type BandMapper struct {
	nyquist     float64
	sensitivity float64
	edges       []float64
	out         []float64
}

// NewBandMapper returns a mapper for spectra of streams at the given
// sample rate.
func NewBandMapper(sampleRate int, sensitivity float64) *BandMapper {
	return &BandMapper{
		nyquist:     float64(sampleRate) / 2,
		sensitivity: sensitivity,
	}
}

// Map aggregates frame into bands display levels in [0, max]. A band's
// raw magnitude is the peak of the bins whose center frequency falls
// inside it; peak rather than mean keeps sharp spectral lines from
// being diluted across the handful of bins a band covers. Bands too
// narrow to cover any bin take the bin nearest their midpoint. The
// returned slice is owned by the mapper and overwritten by the next
// call; edges are recomputed whenever bands differs from the previous
// call, so any count is valid at any time.
func (m *BandMapper) Map(frame []float64, bands int, max float64) []float64 {
	if len(m.edges) != bands+1 {
		m.edges = BandEdges(m.nyquist, bands)
		m.out = make([]float64, bands)
	}

	binWidth := m.nyquist / float64(len(frame))
	for b := 0; b < bands; b++ {
		lo, hi := m.edges[b], m.edges[b+1]
		loBin := int(math.Ceil(lo / binWidth))
		hiBin := int(math.Ceil(hi / binWidth))
		if hiBin > len(frame) {
			hiBin = len(frame)
		}

		var raw float64
		if loBin < hiBin {
			for k := loBin; k < hiBin; k++ {
				if frame[k] > raw {
					raw = frame[k]
				}
			}
		} else {
			// Bin 0 is DC; the axis starts at 20 Hz, so never fall
			// back onto it.
			k := int(math.Round((lo + hi) / 2 / binWidth))
			if k < 1 {
				k = 1
			}
			if k >= len(frame) {
				k = len(frame) - 1
			}
			raw = frame[k]
		}

		gain := 1.0
		if bands > 1 {
			gain += (gainCeiling - 1) * float64(b) / float64(bands-1)
		}

		level := math.Log10(1+9*raw*gain*m.sensitivity) * max
		if level < 0 {
			level = 0
		} else if level > max {
			level = max
		}
		m.out[b] = level
	}
	return m.out
}
