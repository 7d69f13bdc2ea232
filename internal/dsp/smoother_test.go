package dsp

import (
	"math"
	"testing"
)

func TestSmoothZeroRawScalesByPointSeven(t *testing.T) {
	s := NewSmoother()

	first := []float64{4, 8, 15, 16, 23, 42}
	s.Smooth(first, 0, 100)

	prev := make([]float64, len(first))
	copy(prev, s.Levels())

	got := s.Smooth(make([]float64, len(first)), 0, 100)
	for i := range got {
		want := prev[i] * 0.7
		if got[i] != want {
			t.Fatalf("band %d = %v, want exactly prev*0.7 = %v", i, got[i], want)
		}
	}
}

func TestSmoothConvergesExactlyToFloor(t *testing.T) {
	const floor = LevelFloor
	const max = 40.0
	s := NewSmoother()

	tall := make([]float64, 10)
	for i := range tall {
		tall[i] = max
	}
	s.Smooth(tall, floor, max)

	atFloor := make([]float64, len(tall))
	for i := range atFloor {
		atFloor[i] = floor
	}
	var out []float64
	for i := 0; i < 500; i++ {
		out = s.Smooth(atFloor, floor, max)
	}
	for i, v := range out {
		if v != floor {
			t.Fatalf("band %d = %v after settling, want exactly %v", i, v, floor)
		}
	}

	// Idempotent at the boundary.
	out = s.Smooth(atFloor, floor, max)
	for i, v := range out {
		if v != floor {
			t.Fatalf("band %d = %v, floor input moved settled state", i, v)
		}
	}
}

func TestSmoothClampsToRange(t *testing.T) {
	const floor = LevelFloor
	const max = 20.0
	s := NewSmoother()

	loud := []float64{1e6, 1e6, 1e6}
	for i := 0; i < 50; i++ {
		for _, v := range s.Smooth(loud, floor, max) {
			if v < floor || v > max {
				t.Fatalf("level %v escaped [%v, %v]", v, floor, max)
			}
		}
	}
	if v := s.Levels()[0]; v != max {
		t.Fatalf("sustained loud input settled at %v, want cap %v", v, max)
	}

	for i := 0; i < 200; i++ {
		for _, v := range s.Smooth([]float64{0, 0, 0}, floor, max) {
			if v < floor || v > max {
				t.Fatalf("level %v escaped [%v, %v]", v, floor, max)
			}
		}
	}
	if v := s.Levels()[0]; v != floor {
		t.Fatalf("sustained silence settled at %v, want floor %v", v, floor)
	}
}

func TestResizeInterpolatesState(t *testing.T) {
	s := NewSmoother()

	ramp := make([]float64, 11)
	for i := range ramp {
		ramp[i] = float64(i)
	}
	s.Smooth(ramp, 0, 100)
	old := make([]float64, len(ramp))
	copy(old, s.Levels())

	s.Resize(21)
	state := s.Levels()
	if len(state) != 21 {
		t.Fatalf("state has %d bands after Resize(21)", len(state))
	}
	if state[0] != old[0] || state[20] != old[10] {
		t.Fatalf("endpoints moved: got %v..%v, want %v..%v",
			state[0], state[20], old[0], old[10])
	}
	if math.Abs(state[10]-old[5]) > 1e-9 {
		t.Fatalf("midpoint = %v, want %v", state[10], old[5])
	}

	// Same count is a no-op.
	s.Resize(21)
	if len(s.Levels()) != 21 {
		t.Fatalf("Resize to the current count changed the state size")
	}
}

func TestResizeFromEmptyStateIsZero(t *testing.T) {
	s := NewSmoother()
	s.Resize(8)
	for i, v := range s.Levels() {
		if v != 0 {
			t.Fatalf("band %d = %v, want 0 from empty state", i, v)
		}
	}
}

// Silence through the whole analysis pipeline still draws the
// full-width baseline.
func TestPipelineSilenceKeepsVisibleBaseline(t *testing.T) {
	const maxLevel = 30.0
	a := NewAnalyzer(44100)
	m := NewBandMapper(44100, DefaultSensitivity)
	s := NewSmoother()

	frame := a.Analyze(make([]float64, FrameSize))
	raw := m.Map(frame, 100, maxLevel)
	levels := s.Smooth(raw, LevelFloor, maxLevel)

	if len(levels) != 100 {
		t.Fatalf("got %d bands, want 100", len(levels))
	}
	for b, v := range levels {
		if v != LevelFloor {
			t.Fatalf("band %d = %v, want the floor %v", b, v, LevelFloor)
		}
	}
}
