package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/choreo"
	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
	"github.com/petrijr/choreo/pkg/scene"
)

func newPlayer(t *testing.T) *choreo.Player {
	t.Helper()

	sc, err := scene.Parse([]byte(`
name: tiny
title: Tiny demo
fields: {visible: false, url: "", opacity: 0, cursor: {x: 1, y: 2}}
steps:
  - set: {visible: true}
  - type: {field: url, text: go.dev, per_char: 10ms}
  - tween: {field: opacity, to: 0.5, duration: 100ms}
`))
	require.NoError(t, err)

	p, err := choreo.NewPlayer(sc, choreo.WithClock(clock.NewSimulated(time.Unix(0, 0), 0)))
	require.NoError(t, err)
	return p
}

func TestRenderShowsEveryField(t *testing.T) {
	t.Parallel()

	out := Render("Demo", map[string]any{
		"visible": true,
		"url":     "www.ai-search.com",
		"opacity": 0.5,
		"cursor":  api.Vec{X: 50, Y: 15.2},
	}, "playing", 80)

	require.Contains(t, out, "Demo")
	require.Contains(t, out, "www.ai-search.com")
	require.Contains(t, out, "(50, 15.2)")
	require.Contains(t, out, "0.5")
	require.Contains(t, out, "playing")
	require.Less(t, strings.Index(out, "cursor"), strings.Index(out, "opacity"))
	require.Less(t, strings.Index(out, "url"), strings.Index(out, "visible"))
}

func TestModelPlaysSceneToCompletion(t *testing.T) {
	t.Parallel()

	p := newPlayer(t)
	m := New(context.Background(), p)
	require.Equal(t, "ready", m.status)

	next, cmd := m.Update(mountMsg{})
	m = next.(Model)
	require.Equal(t, "playing", m.status)
	require.NotNil(t, cmd)

	ended := cmd()
	next, _ = m.Update(ended)
	m = next.(Model)
	require.Equal(t, "completed", m.status)
	require.Equal(t, "go.dev", m.snapshot["url"])
	require.Equal(t, 0.5, m.snapshot["opacity"])
	require.Contains(t, m.View(), "Tiny demo")

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	require.True(t, m.quitting)
	require.NotNil(t, cmd)
	require.Empty(t, m.View())
}

func TestModelIgnoresStaleEndedMessages(t *testing.T) {
	t.Parallel()

	p := newPlayer(t)
	m := New(context.Background(), p)

	next, _ := m.Update(mountMsg{})
	m = next.(Model)

	stale := make(chan struct{})
	next, cmd := m.Update(playbackEndedMsg{done: stale})
	m = next.(Model)
	require.Nil(t, cmd)
	require.Equal(t, "playing", m.status)

	p.Unmount()
}

func TestModelRefreshesOnChange(t *testing.T) {
	t.Parallel()

	p := newPlayer(t)
	m := New(context.Background(), p)

	p.ViewModel.SetText("url", "changed")
	next, cmd := m.Update(changedMsg{})
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Equal(t, "changed", m.snapshot["url"])
}
