package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/specviz/internal/dsp"
	"github.com/olivier-w/specviz/internal/playback"
	"github.com/olivier-w/specviz/internal/source"
	"github.com/olivier-w/specviz/internal/ui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: specviz <audio-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	dec, err := source.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ring := dsp.NewSampleRing(dsp.FrameSize)
	p, err := playback.New(dec, ring)
	if err != nil {
		dec.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer p.Stop()

	track := playback.ReadTrackInfo(path)
	model := ui.New(p, ring, dec.SampleRate(), track)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
