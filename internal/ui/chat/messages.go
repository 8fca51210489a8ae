// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive tutoring view.
//
// This file defines the Bubble Tea message types used by the view. Each
// blocking portal call performed inside a tea.Cmd reports back through
// exactly one of these.
package chat

import (
	"time"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/session"
)

// SessionOpenedMsg carries the outcome of a session open or reopen.
type SessionOpenedMsg struct {
	Result session.OpenResult
}

// SendResultMsg carries the outcome of a message send.
type SendResultMsg struct {
	Result session.SendResult
}

// ModelsLoadedMsg delivers the model catalog fetched at startup.
type ModelsLoadedMsg struct {
	Models []model.Descriptor
	Err    error
}

// CopyExpiredMsg fires when a copied indicator should revert.
type CopyExpiredMsg struct {
	TurnID string
	At     time.Time
}
