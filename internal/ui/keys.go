package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func isPause(msg tea.KeyMsg) bool {
	return msg.String() == " "
}

func helpText() string {
	return "space pause  q quit"
}
