// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tutoring chat transcripts.
package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only ordered log of turns for one session.
// Insertion order is the sole ordering guarantee: turns are never reordered
// and never deleted. Reset replaces the whole log, which is how a session
// reopen discards history.
type Transcript struct {
	turns     []*Turn
	UpdatedAt time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{turns: make([]*Turn, 0)}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the end of the log.
func (tr *Transcript) Append(t *Turn) {
	tr.turns = append(tr.turns, t)
	tr.UpdatedAt = time.Now()
}

// Reset discards all turns and installs the given turns as the new log.
// Used when a session is (re)opened with a fresh greeting.
func (tr *Transcript) Reset(turns ...*Turn) {
	tr.turns = make([]*Turn, 0, len(turns))
	tr.turns = append(tr.turns, turns...)
	tr.UpdatedAt = time.Now()
}

// Len returns the number of turns.
func (tr *Transcript) Len() int {
	return len(tr.turns)
}

// IsEmpty returns true if there are no turns.
func (tr *Transcript) IsEmpty() bool {
	return len(tr.turns) == 0
}

// Turn returns the turn at index i, or nil if out of range.
func (tr *Transcript) Turn(i int) *Turn {
	if i < 0 || i >= len(tr.turns) {
		return nil
	}
	return tr.turns[i]
}

// ByID returns the turn with the given ID, or nil.
func (tr *Transcript) ByID(id string) *Turn {
	for _, t := range tr.turns {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Last returns the most recent turn, or nil if empty.
func (tr *Transcript) Last() *Turn {
	if len(tr.turns) == 0 {
		return nil
	}
	return tr.turns[len(tr.turns)-1]
}

// LastUserTurn returns the most recent user turn, scanning from the end of
// the log backward, or nil if no user turn exists.
func (tr *Transcript) LastUserTurn() *Turn {
	for i := len(tr.turns) - 1; i >= 0; i-- {
		if tr.turns[i].Role == RoleUser {
			return tr.turns[i]
		}
	}
	return nil
}

// All returns the turns in insertion order. The slice is a copy; the turns
// themselves are shared and must be treated as read-only by callers.
func (tr *Transcript) All() []*Turn {
	out := make([]*Turn, len(tr.turns))
	copy(out, tr.turns)
	return out
}

// StreamingCount returns the number of turns currently in streaming state.
// The session invariant keeps this at most one.
func (tr *Transcript) StreamingCount() int {
	n := 0
	for _, t := range tr.turns {
		if t.Status == StatusStreaming {
			n++
		}
	}
	return n
}
