// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tutoring chat transcripts.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "AI Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN STATUS TYPE
// =============================================================================

// TurnStatus is the lifecycle state of a turn.
//
// StatusPending and StatusStreaming turns may be mutated in place, but only
// by the session that created them. StatusComplete and StatusError are
// terminal.
type TurnStatus string

const (
	StatusPending   TurnStatus = "pending"
	StatusStreaming TurnStatus = "streaming"
	StatusComplete  TurnStatus = "complete"
	StatusError     TurnStatus = "error"
)

// Terminal reports whether the status allows no further mutation.
func (s TurnStatus) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// =============================================================================
// FEEDBACK TYPE
// =============================================================================

// Feedback is the user's reaction to an assistant turn. At most one kind is
// active per turn; selecting the opposite kind replaces the previous one.
type Feedback string

const (
	FeedbackNone    Feedback = ""
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
)

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is a single message in a conversation.
type Turn struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Status    TurnStatus `json:"status"`
	Err       string     `json:"error,omitempty"`
	Feedback  Feedback   `json:"feedback,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewUserTurn creates a completed user turn. User turns are appended
// optimistically and are complete the moment they exist.
func NewUserTurn(content string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleUser,
		Content:   content,
		Status:    StatusComplete,
		Timestamp: time.Now(),
	}
}

// NewAssistantPlaceholder creates an empty assistant turn in streaming state.
// The placeholder drives the "thinking" indicator; content arrives whole when
// the backend responds, not token by token.
func NewAssistantPlaceholder() *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleAssistant,
		Status:    StatusStreaming,
		Timestamp: time.Now(),
	}
}

// NewGreetingTurn creates the completed assistant greeting that opens every
// fresh session.
func NewGreetingTurn(content string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleAssistant,
		Content:   content,
		Status:    StatusComplete,
		Timestamp: time.Now(),
	}
}

// Complete finalizes a streaming turn with the backend's content.
func (t *Turn) Complete(content string) {
	if t.Status.Terminal() {
		return
	}
	t.Content = content
	t.Err = ""
	t.Status = StatusComplete
}

// Fail finalizes a streaming turn with a human-readable error message.
func (t *Turn) Fail(message string) {
	if t.Status.Terminal() {
		return
	}
	t.Err = message
	t.Status = StatusError
}

// SetFeedback records the user's reaction. Selecting the kind that is already
// active is a no-op; selecting the opposite kind replaces it.
func (t *Turn) SetFeedback(kind Feedback) {
	t.Feedback = kind
}

// Preview returns a truncated preview of the turn content.
// Uses rune-based truncation to handle Unicode correctly.
func (t *Turn) Preview(maxLen int) string {
	runes := []rune(t.Content)
	if len(runes) <= maxLen {
		return t.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the turn has no content.
func (t *Turn) IsEmpty() bool {
	return len(t.Content) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	return "turn_" + uuid.NewString()
}
