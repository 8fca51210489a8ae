// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tutoring chat transcripts.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// LEARNING LEVEL TESTS
// =============================================================================

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LearningLevel
		wantErr bool
	}{
		{name: "beginner", input: "beginner", want: LevelBeginner},
		{name: "mixed case", input: "Intermediate", want: LevelIntermediate},
		{name: "padded", input: "  advanced ", want: LevelAdvanced},
		{name: "unknown", input: "expert", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLevel(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) expected error, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestLearningLevel_NextCycles(t *testing.T) {
	seen := map[LearningLevel]bool{}
	l := LevelBeginner
	for i := 0; i < len(Levels); i++ {
		seen[l] = true
		l = l.Next()
	}
	if l != LevelBeginner {
		t.Errorf("Next() did not cycle back to beginner, got %q", l)
	}
	for _, lv := range Levels {
		if !seen[lv] {
			t.Errorf("Next() never visited %q", lv)
		}
	}
}

// =============================================================================
// TURN TESTS
// =============================================================================

func TestTurn_Lifecycle(t *testing.T) {
	turn := NewAssistantPlaceholder()
	if turn.Status != StatusStreaming {
		t.Fatalf("placeholder status = %q, want %q", turn.Status, StatusStreaming)
	}
	if !turn.IsEmpty() {
		t.Error("placeholder should start empty")
	}

	turn.Complete("Recursion is...")
	if turn.Status != StatusComplete {
		t.Errorf("status after Complete = %q, want %q", turn.Status, StatusComplete)
	}
	if turn.Content != "Recursion is..." {
		t.Errorf("content = %q", turn.Content)
	}

	// Complete turns are immutable.
	turn.Fail("too late")
	if turn.Status != StatusComplete || turn.Err != "" {
		t.Errorf("terminal turn was mutated: status=%q err=%q", turn.Status, turn.Err)
	}
}

func TestTurn_FailKeepsNoContentRequirement(t *testing.T) {
	turn := NewAssistantPlaceholder()
	turn.Fail("rate limited")

	if turn.Status != StatusError {
		t.Errorf("status = %q, want %q", turn.Status, StatusError)
	}
	if turn.Err != "rate limited" {
		t.Errorf("err = %q, want %q", turn.Err, "rate limited")
	}

	// Error turns are terminal too.
	turn.Complete("never mind")
	if turn.Status != StatusError {
		t.Errorf("error turn was completed after the fact")
	}
}

func TestTurn_IDsAreUnique(t *testing.T) {
	a := NewUserTurn("a")
	b := NewUserTurn("b")
	if a.ID == b.ID {
		t.Errorf("two turns share ID %q", a.ID)
	}
	if !strings.HasPrefix(a.ID, "turn_") {
		t.Errorf("ID %q missing turn_ prefix", a.ID)
	}
}

func TestTurn_Preview(t *testing.T) {
	turn := NewUserTurn("héllo wörld, this is a long message")
	got := turn.Preview(10)
	if len([]rune(got)) != 10 {
		t.Errorf("Preview length = %d runes, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview %q missing ellipsis", got)
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendOrder(t *testing.T) {
	tr := NewTranscript()
	first := NewUserTurn("one")
	second := NewUserTurn("two")
	third := NewAssistantPlaceholder()

	tr.Append(first)
	tr.Append(second)
	tr.Append(third)

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
	for i, want := range []*Turn{first, second, third} {
		if tr.Turn(i) != want {
			t.Errorf("Turn(%d) out of insertion order", i)
		}
	}
}

func TestTranscript_ResetDiscardsHistory(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewUserTurn("old question"))
	tr.Append(NewGreetingTurn("old answer"))

	greeting := NewGreetingTurn("Hello! Fresh session.")
	tr.Reset(greeting)

	if tr.Len() != 1 {
		t.Fatalf("Len() after Reset = %d, want 1", tr.Len())
	}
	if tr.Turn(0) != greeting {
		t.Error("Reset did not install the greeting turn")
	}
	if tr.LastUserTurn() != nil {
		t.Error("prior user turns survived Reset")
	}
}

func TestTranscript_LastUserTurnScansBackward(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewGreetingTurn("hi"))
	tr.Append(NewUserTurn("first"))
	tr.Append(NewGreetingTurn("answer"))
	tr.Append(NewUserTurn("second"))
	tr.Append(NewAssistantPlaceholder())

	got := tr.LastUserTurn()
	if got == nil || got.Content != "second" {
		t.Errorf("LastUserTurn() = %v, want the turn containing %q", got, "second")
	}
}

func TestTranscript_LastUserTurnEmpty(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewGreetingTurn("hi"))
	if tr.LastUserTurn() != nil {
		t.Error("LastUserTurn() should be nil when no user turn exists")
	}
}

func TestTranscript_StreamingCount(t *testing.T) {
	tr := NewTranscript()
	tr.Append(NewGreetingTurn("hi"))
	tr.Append(NewUserTurn("q"))
	placeholder := NewAssistantPlaceholder()
	tr.Append(placeholder)

	if got := tr.StreamingCount(); got != 1 {
		t.Fatalf("StreamingCount() = %d, want 1", got)
	}
	placeholder.Complete("a")
	if got := tr.StreamingCount(); got != 0 {
		t.Errorf("StreamingCount() after completion = %d, want 0", got)
	}
}

func TestTranscript_ByID(t *testing.T) {
	tr := NewTranscript()
	turn := NewUserTurn("find me")
	tr.Append(turn)

	if tr.ByID(turn.ID) != turn {
		t.Error("ByID did not return the appended turn")
	}
	if tr.ByID("turn_missing") != nil {
		t.Error("ByID for unknown ID should be nil")
	}
}
