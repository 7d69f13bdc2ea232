package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/specviz/internal/source"
)

// countingReader wraps the stream feeding the device and tracks bytes
// handed over; that count is the playback clock.
type countingReader struct {
	reader io.Reader
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

// Player streams a decoded source to the audio device while mirroring
// the played samples to a SampleObserver.
type Player struct {
	dec      source.Decoder
	counter  *countingReader
	device   *oto.Player
	byteRate int
	total    int64
	duration time.Duration
	paused   bool
	stopped  bool
	done     chan struct{}
	mu       sync.Mutex
}

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

// initOto creates the process-wide device context. The context is
// created once and sized for the session's source format.
func initOto(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// New wires dec through the observer tap into the audio device and
// starts playback immediately.
func New(dec source.Decoder, obs SampleObserver) (*Player, error) {
	ctx, err := initOto(dec.SampleRate(), dec.Channels())
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	byteRate := dec.SampleRate() * dec.Channels() * 2
	total := dec.Length()
	var dur time.Duration
	if total > 0 {
		dur = time.Duration(float64(total) / float64(byteRate) * float64(time.Second))
	}

	p := &Player{
		dec:      dec,
		counter:  &countingReader{reader: newTapReader(dec, obs, dec.Channels())},
		byteRate: byteRate,
		total:    total,
		duration: dur,
		done:     make(chan struct{}),
	}
	p.device = ctx.NewPlayer(p.counter)
	p.device.Play()

	go p.monitor()

	return p, nil
}

// monitor polls the playback clock and closes done when the source has
// been fully handed to the device.
func (p *Player) monitor() {
	for {
		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		pos := p.counter.Pos()
		paused := p.paused
		playing := p.device.IsPlaying()
		p.mu.Unlock()

		if !paused {
			if p.total > 0 && pos >= p.total {
				close(p.done)
				return
			}
			// Unknown length: the device stops itself at end of stream.
			if p.total <= 0 && !playing {
				close(p.done)
				return
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Done returns a channel that closes when playback completes on its
// own. It never closes on Stop.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// Finished reports whether playback has completed.
func (p *Player) Finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Elapsed returns how much of the stream has been handed to the device.
func (p *Player) Elapsed() time.Duration {
	if p.byteRate == 0 {
		return 0
	}
	secs := float64(p.counter.Pos()) / float64(p.byteRate)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total stream duration, zero when unknown.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// TogglePause switches between playing and paused.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if p.paused {
		p.device.Play()
	} else {
		p.device.Pause()
	}
	p.paused = !p.paused
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Stop halts the device and releases the source. Calls after the first
// are no-ops.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	p.device.Pause()
	p.dec.Close()
}
