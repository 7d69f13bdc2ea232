package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval is the render cadence, roughly sixty frames per second.
const frameInterval = 16 * time.Millisecond

type frameMsg time.Time
type playbackEndedMsg struct{}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func checkDone(p Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{}
	}
}
