// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive tutoring view.
package chat

import (
	"strings"
	"time"

	"github.com/jeranaias/tutor-tui/internal/session"
	"github.com/jeranaias/tutor-tui/internal/ui/components"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full tutoring screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting..."
	}

	header := components.Header{
		Subject:   m.session.Subject().Name,
		Level:     m.session.Level(),
		ModelName: m.CurrentModelName(),
		Width:     m.width,
	}.Render()

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString("> " + m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// statusLine renders either the current error or the key hints.
func (m Model) statusLine() string {
	if m.statusErr != "" {
		return styles.RenderError(m.statusErr)
	}
	if m.session.State() == session.StateOpening {
		return styles.HintStyle.Render(m.spinner.View() + " connecting...")
	}

	var hints []string
	for _, binding := range m.keyMap.ShortHelp() {
		h := binding.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return styles.HintStyle.Render(strings.Join(hints, " | "))
}

// refreshViewport rebuilds the scrollback content from the transcript.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	now := time.Now()
	tr := m.session.Transcript()
	var blocks []string
	for _, turn := range tr.All() {
		blocks = append(blocks, components.Message{
			Turn:    turn,
			Width:   m.viewport.Width,
			Copied:  m.actions.Indicator(turn.ID).Active(now),
			Spinner: m.spinner.View(),
		}.Render())
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}
