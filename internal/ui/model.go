package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/specviz/internal/dsp"
	"github.com/olivier-w/specviz/internal/layout"
	"github.com/olivier-w/specviz/internal/playback"
)

// Player is the playback surface the display drives.
type Player interface {
	Elapsed() time.Duration
	Duration() time.Duration
	TogglePause()
	Paused() bool
	Stop()
	Done() <-chan struct{}
}

// state is the render loop's lifecycle position.
type state int

const (
	stateStarting state = iota
	statePlaying
	stateFinished
)

// Model drives the spectrum display: once per frame it snapshots the
// sample ring, analyzes, maps, smooths, and draws.
type Model struct {
	state    state
	player   Player
	ring     *dsp.SampleRing
	analyzer *dsp.Analyzer
	mapper   *dsp.BandMapper
	smoother *dsp.Smoother
	peaks    *peakField
	track    playback.TrackInfo
	progress progress.Model

	width     int
	height    int
	geo       layout.Geometry
	rowStyles []lipgloss.Style
	snapshot  []float64
	levels    []float64
	elapsed   time.Duration
	duration  time.Duration
	paused    bool
}

// New assembles the display and its analysis pipeline for a stream at
// the given sample rate. Real dimensions arrive with the first
// WindowSizeMsg; until then the minimum usable width applies.
func New(p Player, ring *dsp.SampleRing, sampleRate int, track playback.TrackInfo) Model {
	return Model{
		player:   p,
		ring:     ring,
		analyzer: dsp.NewAnalyzer(sampleRate),
		mapper:   dsp.NewBandMapper(sampleRate, dsp.DefaultSensitivity),
		smoother: dsp.NewSmoother(),
		peaks:    newPeakField(),
		track:    track,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:    layout.MinWidth,
		height:   24,
		snapshot: make([]float64, dsp.FrameSize),
		duration: p.Duration(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), checkDone(m.player), tea.SetWindowTitle(windowTitle(m.track.Title, false)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateFinished {
		// Terminal state: late ticks, input, and completion signals
		// are all no-ops.
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			// Audio stops before the program exits so nothing keeps
			// sounding after the display ends.
			m.player.Stop()
			m.state = stateFinished
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		if isPause(msg) {
			m.player.TogglePause()
			m.paused = m.player.Paused()
			return m, tea.SetWindowTitle(windowTitle(m.track.Title, m.paused))
		}
		return m, nil

	case frameMsg:
		if m.state == stateStarting {
			m.state = statePlaying
		}
		m.advanceFrame()
		return m, frameCmd()

	case playbackEndedMsg:
		m.elapsed = m.duration
		m.state = stateFinished
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// advanceFrame recomputes geometry from the current dimensions and runs
// one pass of the analysis pipeline.
func (m *Model) advanceFrame() {
	m.geo = layout.Compute(m.width, m.height, m.analyzer.Nyquist())
	if len(m.rowStyles) != m.geo.BarRows {
		m.rowStyles = barRowStyles(m.geo.BarRows)
	}

	m.ring.Snapshot(m.snapshot)
	frame := m.analyzer.Analyze(m.snapshot)
	maxLevel := float64(m.geo.BarRows)
	raw := m.mapper.Map(frame, m.geo.Bands, maxLevel)
	m.levels = m.smoother.Smooth(raw, dsp.LevelFloor, maxLevel)
	m.peaks.update(m.levels)

	m.elapsed = m.player.Elapsed()
	m.paused = m.player.Paused()
}

func (m Model) View() string {
	if m.state != statePlaying || len(m.levels) == 0 {
		return ""
	}
	return renderFrame(m)
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " — specviz"
	}
	return "▶ " + title + " — specviz"
}
