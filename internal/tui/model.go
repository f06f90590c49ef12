// Package tui renders a playing scene's view model in the terminal.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/petrijr/choreo"
	"github.com/petrijr/choreo/pkg/api"
)

const barWidth = 20

// Model is the Bubbletea model for the scene player.
type Model struct {
	ctx    context.Context
	player *choreo.Player
	title  string

	changes     <-chan struct{}
	unsubscribe func()

	snapshot map[string]any
	status   string
	width    int
	quitting bool
}

// New creates a Model for p. The player is mounted by Init and unmounted on
// quit; ctx bounds every mount.
func New(ctx context.Context, p *choreo.Player) Model {
	sc := p.Scene()
	title := sc.Title
	if title == "" {
		title = sc.Name
	}
	changes, unsubscribe := p.ViewModel.Subscribe()
	return Model{
		ctx:         ctx,
		player:      p,
		title:       title,
		changes:     changes,
		unsubscribe: unsubscribe,
		snapshot:    p.ViewModel.Snapshot(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return mountMsg{} }, waitForChange(m.changes), tea.SetWindowTitle(m.title+" - choreo"))
}

type mountMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			m.player.Unmount()
			m.unsubscribe()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		if msg.String() == "r" {
			m.player.Unmount()
			return m.mount()
		}
		return m, nil

	case mountMsg:
		return m.mount()

	case changedMsg:
		m.snapshot = m.player.ViewModel.Snapshot()
		return m, waitForChange(m.changes)

	case playbackEndedMsg:
		if msg.done != m.player.Done() {
			return m, nil
		}
		res := m.player.Result()
		m.status = string(res.Outcome)
		if res.Err != nil {
			m.status += ": " + res.Err.Error()
		}
		m.snapshot = m.player.ViewModel.Snapshot()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) mount() (tea.Model, tea.Cmd) {
	if err := m.player.Mount(m.ctx); err != nil {
		m.status = "error: " + err.Error()
		return m, nil
	}
	m.status = "playing"
	if m.player.Scene().Loop {
		m.status += " (loop)"
	}
	return m, checkDone(m.player.Done())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return Render(m.title, m.snapshot, m.status, m.width)
}

// Render draws every field of snapshot in name order.
func Render(title string, snapshot map[string]any, status string, width int) string {
	if width < 30 {
		width = 60
	}

	names := make([]string, 0, len(snapshot))
	nameWidth := 0
	for name := range snapshot {
		names = append(names, name)
		nameWidth = max(nameWidth, len(name))
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("choreo") + "\n\n")
	b.WriteString("  " + titleStyle.Render(title) + "\n\n")
	for _, name := range names {
		label := fieldStyle.Render(fmt.Sprintf("%-*s", nameWidth, name))
		value := renderValue(snapshot[name], width-nameWidth-6)
		b.WriteString("  " + label + "  " + value + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + statusStyle.Render(status) + "\n")
	b.WriteString("  " + helpStyle.Render(helpText()) + "\n")
	return b.String()
}

func renderValue(v any, room int) string {
	switch x := v.(type) {
	case bool:
		if x {
			return onStyle.Render("●")
		}
		return valueStyle.Render("○")
	case float64:
		s := valueStyle.Render(api.FormatValue(x))
		if x >= 0 && x <= 1 {
			s = renderBar(x, barWidth) + " " + s
		}
		return s
	case string:
		if lipgloss.Width(x) > room && room > 1 {
			runes := []rune(x)
			x = string(runes[:min(len(runes), room-1)]) + "…"
		}
		return valueStyle.Render(x + "▌")
	}
	return valueStyle.Render(api.FormatValue(v))
}

func renderBar(frac float64, width int) string {
	filled := int(frac*float64(width) + 0.5)
	return onStyle.Render(strings.Repeat("█", filled)) + helpStyle.Render(strings.Repeat("░", width-filled))
}
