package dsp

import "sync"

// SampleRing holds the most recently played mono samples. The playback
// path writes, the render loop snapshots; both critical sections are
// bounded copies, so neither side ever waits on I/O or transform work.
//
// The buffer starts zero-filled, so a snapshot taken before the first
// write is a valid silent window.
type SampleRing struct {
	mu  sync.Mutex
	buf []float64
	w   int // next write position
}

// NewSampleRing returns a ring holding size samples.
func NewSampleRing(size int) *SampleRing {
	return &SampleRing{buf: make([]float64, size)}
}

// ObserveSamples appends newly played samples, overwriting the oldest
// once capacity is exceeded. It satisfies playback.SampleObserver.
func (r *SampleRing) ObserveSamples(samples []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Only the tail can survive when the batch exceeds capacity.
	if len(samples) > len(r.buf) {
		samples = samples[len(samples)-len(r.buf):]
	}
	n := copy(r.buf[r.w:], samples)
	if n < len(samples) {
		copy(r.buf, samples[n:])
	}
	r.w = (r.w + len(samples)) % len(r.buf)
}

// Snapshot copies the most recent len(dst) samples into dst in
// chronological order, oldest first. dst is typically the analyzer's
// window-sized scratch buffer; no allocation occurs.
func (r *SampleRing) Snapshot(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(dst)
	if n > len(r.buf) {
		n = len(r.buf)
	}
	start := (r.w - n + len(r.buf)) % len(r.buf)
	m := copy(dst, r.buf[start:])
	if m < n {
		copy(dst[m:], r.buf[:n-m])
	}
}

// Size returns the ring capacity.
func (r *SampleRing) Size() int {
	return len(r.buf)
}
