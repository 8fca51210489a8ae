// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive tutoring view.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/session"
)

// =============================================================================
// COMMANDS
// =============================================================================

// openCmd performs a staged session open off the event loop.
func (m Model) openCmd(attempt *session.OpenAttempt) tea.Cmd {
	sess, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return SessionOpenedMsg{Result: sess.PerformOpen(ctx, attempt)}
	}
}

// sendCmd performs a staged message send off the event loop.
func (m Model) sendCmd(attempt *session.SendAttempt) tea.Cmd {
	sess, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return SendResultMsg{Result: sess.PerformSend(ctx, attempt)}
	}
}

// loadModelsCmd fetches the model catalog.
func (m Model) loadModelsCmd() tea.Cmd {
	cat, timeout := m.catalog, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		models, err := cat.List(ctx)
		return ModelsLoadedMsg{Models: models, Err: err}
	}
}

// copyExpiryCmd schedules the revert of a copied indicator.
func copyExpiryCmd(turnID string, at time.Time) tea.Cmd {
	return tea.Tick(time.Until(at), func(time.Time) tea.Msg {
		return CopyExpiredMsg{TurnID: turnID, At: at}
	})
}
