// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the tutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/render"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// Message renders one chat turn as a bordered bubble.
type Message struct {
	Turn *model.Turn
	// Width is the total width available to the bubble.
	Width int
	// Copied lights the "copied" indicator in the footer row.
	Copied bool
	// Spinner is the current spinner frame shown while the turn is streaming.
	Spinner string
}

// Render renders the message bubble.
func (m Message) Render() string {
	width := m.Width
	if width < 30 {
		width = 30
	}
	bodyWidth := width - 6

	label, border, fg := m.roleStyle()

	body := m.renderBody(bodyWidth)

	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Padding(0, 1).
		MaxWidth(width - 2).
		Render(body)

	header := lipgloss.NewStyle().Foreground(border).Bold(true).Render(label)
	if footer := m.renderFooter(); footer != "" {
		return header + "\n" + bubble + "\n" + footer
	}
	return header + "\n" + bubble
}

func (m Message) roleStyle() (string, lipgloss.AdaptiveColor, lipgloss.AdaptiveColor) {
	if m.Turn.Status == model.StatusError {
		return m.Turn.Role.DisplayName(), styles.ErrorBubbleBorder, styles.ErrorBubbleFg
	}
	switch m.Turn.Role {
	case model.RoleUser:
		return m.Turn.Role.DisplayName(), styles.UserBubbleBorder, styles.UserBubbleFg
	default:
		return m.Turn.Role.DisplayName(), styles.TutorBubbleBorder, styles.TutorBubbleFg
	}
}

func (m Message) renderBody(width int) string {
	switch {
	case m.Turn.Status == model.StatusStreaming:
		frame := m.Spinner
		if frame == "" {
			frame = "..."
		}
		return styles.HintStyle.Render(frame + " Thinking")

	case m.Turn.Status == model.StatusError:
		text := m.Turn.Err
		if text == "" {
			text = m.Turn.Content
		}
		return strings.Join(util.WrapText(text, width), "\n")

	case m.Turn.Role == model.RoleAssistant:
		// Assistant output is markup; parse and style it.
		return RenderNodes(render.Render(m.Turn.Content), width)

	default:
		return strings.Join(util.WrapText(m.Turn.Content, width), "\n")
	}
}

func (m Message) renderFooter() string {
	if m.Turn.Role != model.RoleAssistant || !m.Turn.Status.Terminal() {
		return ""
	}
	var parts []string
	switch m.Turn.Feedback {
	case model.FeedbackLike:
		parts = append(parts, styles.RenderSuccess("helpful"))
	case model.FeedbackDislike:
		parts = append(parts, styles.ErrorStyle.Render("not helpful"))
	}
	if m.Copied {
		parts = append(parts, styles.RenderSuccess("copied"))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}
