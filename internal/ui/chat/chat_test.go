// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tutor-tui/internal/actions"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/session"
)

// fakeBackend answers every call successfully with canned content.
type fakeBackend struct {
	nextID int
	answer string
}

func (f *fakeBackend) StartChat(ctx context.Context, subjectID int, level model.LearningLevel, modelID int) (int, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, sessionID int, message string) (string, error) {
	return f.answer, nil
}

type noopSender struct{}

func (noopSender) SendFeedback(ctx context.Context, sessionID int, turnID string, kind model.Feedback) error {
	return nil
}

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	backend := &fakeBackend{answer: "A derivative is a **rate of change**."}
	sess := session.New(backend, model.Subject{ID: 1, Name: "Mathematics"}, model.LevelIntermediate, 2)
	ctrl := actions.New(sess, noopSender{})

	m := New(Options{Session: sess, Actions: ctrl})

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(Model), sess
}

// open runs the staged open synchronously against the fake backend.
func open(t *testing.T, m Model, sess *session.Session) Model {
	t.Helper()
	attempt := sess.StartOpen()
	result := sess.PerformOpen(context.Background(), attempt)
	updated, _ := m.Update(SessionOpenedMsg{Result: result})
	return updated.(Model)
}

func TestOpenShowsGreeting(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	require.Equal(t, session.StateReady, sess.State())
	require.Equal(t, 1, sess.Transcript().Len())
	require.Contains(t, sess.Transcript().Last().Content, "Mathematics")
	require.Contains(t, m.View(), "Mathematics")
}

func TestSubmitRoundTrip(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	m.input.SetValue("what is a derivative?")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.True(t, sess.InFlight())
	require.Equal(t, 3, sess.Transcript().Len())
	require.Equal(t, model.StatusStreaming, sess.Transcript().Last().Status)
	require.Empty(t, m.input.Value())
	require.NotNil(t, cmd)

	// Run the batched commands until the send result surfaces, then apply it.
	result, ok := findMsg[SendResultMsg](cmd())
	require.True(t, ok, "send result not produced")
	updated, _ = m.Update(result)
	m = updated.(Model)

	last := sess.Transcript().Last()
	require.Equal(t, model.StatusComplete, last.Status)
	require.Contains(t, last.Content, "rate of change")
	require.False(t, sess.InFlight())
}

func TestSubmitEmptyIsIgnored(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	m.input.SetValue("   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.Nil(t, cmd)
	require.Equal(t, 1, sess.Transcript().Len())
}

func TestStaleSendResultIsDiscarded(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	m.input.SetValue("first question")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	result, ok := findMsg[SendResultMsg](cmd())
	require.True(t, ok)

	// Level change reopens the session while the send is in flight.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	m = open(t, m, sess)
	require.Equal(t, model.LevelAdvanced, sess.Level())

	before := sess.Transcript().Len()
	updated, _ = m.Update(result)
	m = updated.(Model)
	require.Equal(t, before, sess.Transcript().Len(), "stale result mutated new session")
}

func TestNextModelReopensSession(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	updated, _ := m.Update(ModelsLoadedMsg{Models: []model.Descriptor{
		{ID: 2, Name: "Tutor A", IsActive: true},
		{ID: 5, Name: "Tutor B", IsActive: true},
		{ID: 9, Name: "Old", IsActive: false},
	}})
	m = updated.(Model)
	require.Equal(t, "Tutor A", m.CurrentModelName())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = updated.(Model)
	require.NotNil(t, cmd)
	require.Equal(t, 5, sess.ModelID())
	require.Equal(t, session.StateOpening, sess.State())
}

func TestRegeneratePrefillsInput(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	m.input.SetValue("explain limits")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	result, ok := findMsg[SendResultMsg](cmd())
	require.True(t, ok)
	updated, _ = m.Update(result)
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)
	require.Equal(t, "explain limits", m.input.Value())
}

func TestStatusLineShowsHints(t *testing.T) {
	m, sess := newTestModel(t)
	m = open(t, m, sess)

	view := m.View()
	require.True(t, strings.Contains(view, "send") || strings.Contains(view, "Enter"))
}

// findMsg digs through possibly-batched command output for a message type.
func findMsg[T tea.Msg](msg tea.Msg) (T, bool) {
	var zero T
	switch v := msg.(type) {
	case T:
		return v, true
	case tea.BatchMsg:
		for _, cmd := range v {
			if cmd == nil {
				continue
			}
			if found, ok := findMsg[T](cmd()); ok {
				return found, true
			}
		}
	}
	return zero, false
}
