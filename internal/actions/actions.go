// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package actions implements the per-turn side actions for assistant turns:
// copy to clipboard, like/dislike feedback, and regenerate.
//
// The copy indicator is modeled as a small state value attached to the
// action rather than transient UI state, so its 2-second auto-revert is
// testable without any rendering layer.
package actions

import (
	"context"
	"time"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/tutor-tui/internal/model"
)

// copiedWindow is how long the "copied" indicator stays lit.
const copiedWindow = 2 * time.Second

// =============================================================================
// COPY INDICATOR
// =============================================================================

// CopyIndicator tracks the post-copy confirmation state for one turn. The
// zero value is inactive.
type CopyIndicator struct {
	copiedAt time.Time
}

// Mark lights the indicator as of now.
func (ci *CopyIndicator) Mark(now time.Time) {
	ci.copiedAt = now
}

// Active reports whether the indicator is still lit at the given instant.
// It reverts on its own once the window passes.
func (ci *CopyIndicator) Active(now time.Time) bool {
	if ci.copiedAt.IsZero() {
		return false
	}
	return now.Sub(ci.copiedAt) < copiedWindow
}

// RevertAt returns when the indicator goes dark. Zero when never lit.
func (ci *CopyIndicator) RevertAt() time.Time {
	if ci.copiedAt.IsZero() {
		return time.Time{}
	}
	return ci.copiedAt.Add(copiedWindow)
}

// =============================================================================
// CONTROLLER DEPENDENCIES
// =============================================================================

// SessionActions is the session surface the controller calls back into.
type SessionActions interface {
	Regenerate() (string, bool)
	SetFeedback(turnID string, kind model.Feedback)
	SessionID() (int, bool)
}

// FeedbackSender posts feedback toward the portal. *portal.Client satisfies
// it.
type FeedbackSender interface {
	SendFeedback(ctx context.Context, sessionID int, turnID string, kind model.Feedback) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller wires the three per-turn actions to their effects. It never
// surfaces an error to the chat: clipboard failures are swallowed and
// feedback posts are fire-and-forget.
type Controller struct {
	session SessionActions
	sender  FeedbackSender

	// writeClipboard is swappable for tests; defaults to the system
	// clipboard.
	writeClipboard func(string) error

	indicators map[string]*CopyIndicator
}

// New creates a controller for one session.
func New(session SessionActions, sender FeedbackSender) *Controller {
	return &Controller{
		session:        session,
		sender:         sender,
		writeClipboard: clipboard.WriteAll,
		indicators:     make(map[string]*CopyIndicator),
	}
}

// Copy places turn text on the system clipboard and lights the turn's copy
// indicator. It always succeeds from the caller's perspective.
func (c *Controller) Copy(turnID, text string) {
	_ = c.writeClipboard(text)
	ind := c.indicators[turnID]
	if ind == nil {
		ind = &CopyIndicator{}
		c.indicators[turnID] = ind
	}
	ind.Mark(time.Now())
}

// Indicator returns the copy indicator for a turn. Never nil.
func (c *Controller) Indicator(turnID string) *CopyIndicator {
	if ind := c.indicators[turnID]; ind != nil {
		return ind
	}
	return &CopyIndicator{}
}

// Feedback records like/dislike against a turn and posts it toward the
// portal without blocking or retrying. Send failures are dropped.
func (c *Controller) Feedback(turnID string, kind model.Feedback) {
	c.session.SetFeedback(turnID, kind)

	sid, ok := c.session.SessionID()
	if !ok || c.sender == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = c.sender.SendFeedback(ctx, sid, turnID, kind)
	}()
}

// Regenerate recalls the last user prompt through the session. The turn the
// action was invoked from is deliberately ignored: regenerate always targets
// the most recent user turn.
func (c *Controller) Regenerate(turnID string) (string, bool) {
	_ = turnID
	return c.session.Regenerate()
}
