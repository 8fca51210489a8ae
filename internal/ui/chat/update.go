// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive tutoring view.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/session"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.session.InFlight() || m.session.State() == session.StateOpening {
			m.refreshViewport()
			return m, cmd
		}
		return m, cmd

	case SessionOpenedMsg:
		return m.handleSessionOpened(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case ModelsLoadedMsg:
		if msg.Err != nil {
			m.statusErr = "could not load model list"
			return m, nil
		}
		m.models = msg.Models
		return m, nil

	case CopyExpiredMsg:
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	// Header, status line and input each take one row.
	vpHeight := msg.Height - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.input.Width = msg.Width - 4

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

func (m Model) handleSessionOpened(msg SessionOpenedMsg) (tea.Model, tea.Cmd) {
	err := m.session.FinishOpen(msg.Result)
	switch {
	case errors.Is(err, session.ErrStaleResponse):
		// A newer open superseded this one; drop it.
		return m, nil
	case err != nil:
		m.statusErr = "could not start the session; check your connection"
		m.refreshViewport()
		return m, nil
	}

	m.statusErr = ""
	m.archiveSession()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	err := m.session.FinishSend(msg.Result)
	if errors.Is(err, session.ErrStaleResponse) {
		return m, nil
	}

	m.archiveLatestExchange(msg.Result)
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.CycleLevel):
		attempt := m.session.ChangeLevel(m.session.Level().Next())
		m.refreshViewport()
		return m, tea.Batch(m.openCmd(attempt), m.spinner.Tick)

	case key.Matches(msg, m.keyMap.NextModel):
		next, ok := m.nextActiveModel()
		if !ok {
			return m, nil
		}
		attempt := m.session.ChangeModel(next.ID)
		m.refreshViewport()
		return m, tea.Batch(m.openCmd(attempt), m.spinner.Tick)

	case key.Matches(msg, m.keyMap.Regenerate):
		if text, ok := m.actions.Regenerate(""); ok {
			m.input.SetValue(text)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.CopyAnswer):
		return m.copyLastAnswer()

	case key.Matches(msg, m.keyMap.Like):
		return m.feedbackLastAnswer(model.FeedbackLike)

	case key.Matches(msg, m.keyMap.Dislike):
		return m.feedbackLastAnswer(model.FeedbackDislike)

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	attempt, err := m.session.StartSend(m.input.Value())
	switch {
	case errors.Is(err, session.ErrEmptyMessage):
		return m, nil
	case errors.Is(err, session.ErrBusy):
		m.statusErr = "still waiting for the previous answer"
		return m, nil
	case errors.Is(err, session.ErrNoSession):
		m.statusErr = "no session yet; wait for the greeting"
		return m, nil
	case err != nil:
		m.statusErr = err.Error()
		return m, nil
	}

	m.statusErr = ""
	m.input.Reset()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.sendCmd(attempt), m.spinner.Tick)
}

// lastAnswer returns the most recent terminal assistant turn.
func (m Model) lastAnswer() *model.Turn {
	tr := m.session.Transcript()
	for i := tr.Len() - 1; i >= 0; i-- {
		t := tr.Turn(i)
		if t.Role == model.RoleAssistant && t.Status == model.StatusComplete {
			return t
		}
	}
	return nil
}

func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	turn := m.lastAnswer()
	if turn == nil {
		return m, nil
	}
	m.actions.Copy(turn.ID, turn.Content)
	m.refreshViewport()
	revert := m.actions.Indicator(turn.ID).RevertAt()
	return m, copyExpiryCmd(turn.ID, revert)
}

func (m Model) feedbackLastAnswer(kind model.Feedback) (tea.Model, tea.Cmd) {
	turn := m.lastAnswer()
	if turn == nil {
		return m, nil
	}
	m.actions.Feedback(turn.ID, kind)
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// HISTORY ARCHIVE
// =============================================================================

// archiveSession records a freshly opened session in the local archive.
func (m *Model) archiveSession() {
	if m.store == nil {
		return
	}
	sid, ok := m.session.SessionID()
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := m.store.RecordSession(ctx, sid,
		m.session.Subject().Name, m.session.Level(), m.session.ModelID())
	if err == nil {
		m.storeID = id
	}
}

// archiveLatestExchange records the user turn and its answer after a send
// resolves, whether it completed or failed.
func (m *Model) archiveLatestExchange(r session.SendResult) {
	if m.store == nil || m.storeID == 0 || r.Attempt == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr := m.session.Transcript()
	if user := tr.LastUserTurn(); user != nil {
		_ = m.store.RecordTurn(ctx, m.storeID, user)
	}
	if answer := tr.ByID(r.Attempt.TurnID); answer != nil {
		_ = m.store.RecordTurn(ctx, m.storeID, answer)
	}
}
