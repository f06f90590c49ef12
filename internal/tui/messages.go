package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type changedMsg struct{}

// playbackEndedMsg carries the Done channel it waited on so a stale message
// from a previous mount can be told apart.
type playbackEndedMsg struct {
	done <-chan struct{}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func checkDone(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return playbackEndedMsg{done: done}
	}
}
