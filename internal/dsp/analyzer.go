package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// FrameSize is the number of mono samples consumed per spectral frame.
const FrameSize = 1024

// SpectrumBins is the number of usable magnitude bins per frame,
// spanning 0 Hz up to (but not including) Nyquist.
const SpectrumBins = FrameSize / 2

// Analyzer turns a window of mono samples into a magnitude spectrum.
// All working buffers are allocated once; Analyze itself is
// allocation-free and deterministic.
type Analyzer struct {
	rate    int
	fft     *fourier.FFT
	hann    []float64
	scratch []float64
	coeffs  []complex128
	frame   []float64
}

// NewAnalyzer returns an Analyzer for streams at the given sample rate.
func NewAnalyzer(sampleRate int) *Analyzer {
	a := &Analyzer{
		rate:    sampleRate,
		fft:     fourier.NewFFT(FrameSize),
		hann:    make([]float64, FrameSize),
		scratch: make([]float64, FrameSize),
		coeffs:  make([]complex128, FrameSize/2+1),
		frame:   make([]float64, SpectrumBins),
	}
	// The window functions scale a sequence in place, so applying one
	// to a run of ones yields the raw coefficient table.
	for i := range a.hann {
		a.hann[i] = 1
	}
	window.Hann(a.hann)
	return a
}

// Analyze computes the magnitude spectrum of a FrameSize-sample
// snapshot. Magnitudes are the moduli of the transform coefficients
// scaled by 1/FrameSize; phase is discarded. The returned slice is
// owned by the Analyzer and overwritten by the next call.
func (a *Analyzer) Analyze(snapshot []float64) []float64 {
	for i := range a.scratch {
		a.scratch[i] = snapshot[i] * a.hann[i]
	}
	a.fft.Coefficients(a.coeffs, a.scratch)
	for i := range a.frame {
		a.frame[i] = cmplx.Abs(a.coeffs[i]) / FrameSize
	}
	return a.frame
}

// BinFrequency returns the center frequency in Hz of spectrum bin k.
func (a *Analyzer) BinFrequency(k int) float64 {
	return a.fft.Freq(k) * float64(a.rate)
}

// Nyquist returns half the sample rate, the top of the displayable
// frequency axis.
func (a *Analyzer) Nyquist() float64 {
	return float64(a.rate) / 2
}

// SampleRate returns the stream rate the Analyzer was built for.
func (a *Analyzer) SampleRate() int {
	return a.rate
}
