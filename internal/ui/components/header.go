// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the tutor TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// SESSION HEADER
// =============================================================================

// Header renders the session header bar: subject, learning level, and the
// active model.
type Header struct {
	Subject   string
	Level     model.LearningLevel
	ModelName string
	Width     int
}

// Render renders the header as a single full-width line.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	title := "AI Tutor"
	if h.Subject != "" {
		title += " - " + h.Subject
	}

	var tags []string
	if h.Level != "" {
		tags = append(tags, string(h.Level))
	}
	if h.ModelName != "" {
		tags = append(tags, h.ModelName)
	}
	right := lipgloss.NewStyle().Foreground(styles.Sky).Render(strings.Join(tags, " | "))

	left := util.TruncateWidth(title, width-util.StringWidth(strings.Join(tags, " | "))-3)
	gap := width - util.StringWidth(left) - util.StringWidth(strings.Join(tags, " | ")) - 2
	if gap < 1 {
		gap = 1
	}

	return styles.HeaderStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
