package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/specviz/internal/dsp"
	"github.com/olivier-w/specviz/internal/playback"
)

type stubPlayer struct {
	elapsed  time.Duration
	duration time.Duration
	paused   bool
	stops    int
	done     chan struct{}
}

func newStubPlayer(duration time.Duration) *stubPlayer {
	return &stubPlayer{duration: duration, done: make(chan struct{})}
}

func (s *stubPlayer) Elapsed() time.Duration  { return s.elapsed }
func (s *stubPlayer) Duration() time.Duration { return s.duration }
func (s *stubPlayer) TogglePause()            { s.paused = !s.paused }
func (s *stubPlayer) Paused() bool            { return s.paused }
func (s *stubPlayer) Stop()                   { s.stops++ }
func (s *stubPlayer) Done() <-chan struct{}   { return s.done }

func newTestModel(p Player) Model {
	ring := dsp.NewSampleRing(dsp.FrameSize)
	track := playback.TrackInfo{Title: "Test Tone", Artist: "Sine"}
	return New(p, ring, 44100, track)
}

func pump(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFirstFrameStartsRendering(t *testing.T) {
	m := newTestModel(newStubPlayer(time.Minute))
	if m.state != stateStarting {
		t.Fatalf("expected starting state, got %d", m.state)
	}

	next, cmd := m.Update(frameMsg(time.Now()))
	m = next.(Model)
	if m.state != statePlaying {
		t.Fatalf("expected playing state, got %d", m.state)
	}
	if cmd == nil {
		t.Fatal("expected follow-up frame command")
	}
}

func TestQuitKeyStopsPlayerOnce(t *testing.T) {
	stub := newStubPlayer(time.Minute)
	m := pump(t, newTestModel(stub), frameMsg(time.Now()))

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if m.state != stateFinished {
		t.Fatalf("expected finished state, got %d", m.state)
	}
	if stub.stops != 1 {
		t.Fatalf("expected one stop, got %d", stub.stops)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	next, cmd = m.Update(keyMsg("q"))
	m = next.(Model)
	if stub.stops != 1 {
		t.Fatalf("expected stop count unchanged, got %d", stub.stops)
	}
	if cmd != nil {
		t.Fatal("expected no command after finish")
	}
}

func TestPlaybackEndedPinsElapsedAndQuits(t *testing.T) {
	stub := newStubPlayer(90 * time.Second)
	m := pump(t, newTestModel(stub), frameMsg(time.Now()))

	next, cmd := m.Update(playbackEndedMsg{})
	m = next.(Model)
	if m.state != stateFinished {
		t.Fatalf("expected finished state, got %d", m.state)
	}
	if m.elapsed != 90*time.Second {
		t.Fatalf("expected elapsed pinned to duration, got %v", m.elapsed)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	next, cmd = m.Update(playbackEndedMsg{})
	m = next.(Model)
	if cmd != nil {
		t.Fatal("expected repeat completion to be a no-op")
	}
	if m.state != stateFinished {
		t.Fatalf("expected state to stay finished, got %d", m.state)
	}
}

func TestWindowSizeDrivesBandCount(t *testing.T) {
	m := newTestModel(newStubPlayer(time.Minute))

	m = pump(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, frameMsg(time.Now()))
	if m.geo.Bands != 96 {
		t.Fatalf("expected 96 bands at width 100, got %d", m.geo.Bands)
	}
	if m.geo.BarRows != 25 {
		t.Fatalf("expected 25 bar rows at height 30, got %d", m.geo.BarRows)
	}
	if len(m.levels) != 96 {
		t.Fatalf("expected 96 levels, got %d", len(m.levels))
	}
	for i, lv := range m.levels {
		if lv < dsp.LevelFloor || lv > float64(m.geo.BarRows) {
			t.Fatalf("level %d out of range: %v", i, lv)
		}
	}

	m = pump(t, m, tea.WindowSizeMsg{Width: 160, Height: 40}, frameMsg(time.Now()))
	if m.geo.Bands != 156 {
		t.Fatalf("expected 156 bands at width 160, got %d", m.geo.Bands)
	}
	if len(m.levels) != 156 {
		t.Fatalf("expected 156 levels after resize, got %d", len(m.levels))
	}
	if len(m.rowStyles) != 35 {
		t.Fatalf("expected 35 row styles at height 40, got %d", len(m.rowStyles))
	}
}

func TestPauseKeyTogglesPlayer(t *testing.T) {
	stub := newStubPlayer(time.Minute)
	m := pump(t, newTestModel(stub), frameMsg(time.Now()))

	m = pump(t, m, keyMsg(" "))
	if !stub.paused {
		t.Fatal("expected player paused after space")
	}
	if !m.paused {
		t.Fatal("expected model to mirror paused state")
	}

	m = pump(t, m, keyMsg(" "))
	if stub.paused {
		t.Fatal("expected player resumed after second space")
	}
	if m.paused {
		t.Fatal("expected model to mirror resumed state")
	}
}

func TestViewEmptyOutsidePlayingState(t *testing.T) {
	m := newTestModel(newStubPlayer(time.Minute))
	if got := m.View(); got != "" {
		t.Fatalf("expected empty view before first frame, got %q", got)
	}

	m = pump(t, m, frameMsg(time.Now()), keyMsg("q"))
	if got := m.View(); got != "" {
		t.Fatalf("expected empty view after quit, got %q", got)
	}
}

func TestViewLaysOutFullFrame(t *testing.T) {
	m := newTestModel(newStubPlayer(time.Minute))
	m = pump(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, frameMsg(time.Now()))

	view := m.View()
	if view == "" {
		t.Fatal("expected rendered frame")
	}
	if !strings.Contains(view, "Test Tone") {
		t.Fatal("expected track title in view")
	}
	if !strings.Contains(view, "▁") {
		t.Fatal("expected baseline bars in view")
	}
	if !strings.Contains(view, "22k") {
		t.Fatal("expected top axis label in view")
	}
	if got := strings.Count(view, "\n"); got != 29 {
		t.Fatalf("expected 29 newlines for a 30-row frame, got %d", got)
	}
}
