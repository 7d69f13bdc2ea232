package playback

import (
	"encoding/binary"
	"io"
)

// SampleObserver receives the mono samples most recently handed to the
// audio device. Implementations must return quickly: the observer runs
// on the device's feed path.
type SampleObserver interface {
	ObserveSamples(samples []float64)
}

// tapReader decodes the s16le stream it passes through and mirrors it,
// down-mixed to mono floats in [-1, 1], to the observer.
type tapReader struct {
	r        io.Reader
	obs      SampleObserver
	channels int
	pending  []byte
	batch    []float64
}

func newTapReader(r io.Reader, obs SampleObserver, channels int) *tapReader {
	return &tapReader{r: r, obs: obs, channels: channels}
}

func (t *tapReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 && t.obs != nil {
		t.observe(p[:n])
	}
	return n, err
}

// observe consumes whole sample frames from the pass-through bytes,
// carrying partial frames over to the next read.
func (t *tapReader) observe(chunk []byte) {
	frameBytes := 2 * t.channels
	t.pending = append(t.pending, chunk...)
	frames := len(t.pending) / frameBytes
	if frames == 0 {
		return
	}

	if cap(t.batch) < frames {
		t.batch = make([]float64, frames)
	}
	batch := t.batch[:frames]
	for i := range batch {
		off := i * frameBytes
		var sum float64
		for ch := 0; ch < t.channels; ch++ {
			s := int16(binary.LittleEndian.Uint16(t.pending[off+2*ch:]))
			sum += float64(s) / 32768
		}
		batch[i] = sum / float64(t.channels)
	}

	rest := copy(t.pending, t.pending[frames*frameBytes:])
	t.pending = t.pending[:rest]
	t.obs.ObserveSamples(batch)
}
