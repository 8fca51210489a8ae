// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates one tutoring chat session against the portal.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/portal"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage rejects a send whose text is empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoSession rejects a send before a successful open.
	ErrNoSession = errors.New("no chat session open")

	// ErrBusy rejects a send while another is in flight. Sends are rejected,
	// never queued.
	ErrBusy = errors.New("a message is already in flight")

	// ErrSessionOpenFailed marks a failed session creation. The previous
	// transcript contents are preserved and chat stays disabled until a
	// retry succeeds.
	ErrSessionOpenFailed = errors.New("could not start chat session")

	// ErrSendFailed marks a failed message send. The user's turn stays in
	// the log; the assistant placeholder becomes an error turn.
	ErrSendFailed = errors.New("failed to get a response")

	// ErrStaleResponse marks a result that arrived for a session that is no
	// longer current. It is dropped, never shown to the user.
	ErrStaleResponse = errors.New("response belongs to a superseded session")
)

// fallbackErrText is shown when the backend gives no error text of its own.
const fallbackErrText = "Sorry, I encountered an error. Please try again."

// =============================================================================
// STATE TYPE
// =============================================================================

// State is the session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateOpening
	StateReady
	StateSending
	StateFailed
)

// String returns the name of the state, for status display and tests.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpening:
		return "opening"
	case StateReady:
		return "ready"
	case StateSending:
		return "sending"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the portal surface a session needs. *portal.Client satisfies it.
type Backend interface {
	StartChat(ctx context.Context, subjectID int, level model.LearningLevel, modelID int) (int, error)
	SendMessage(ctx context.Context, sessionID int, message string) (string, error)
}

// =============================================================================
// SESSION
// =============================================================================

// Session owns the transcript for one (subject, level, model) conversation.
// All mutation goes through its methods; other components only read.
type Session struct {
	mu     sync.Mutex
	portal Backend

	subject model.Subject
	level   model.LearningLevel
	modelID int

	transcript *model.Transcript

	// Backend session identity. hasSession is false before the first
	// successful open and after a change invalidates the session.
	sessionID  int
	hasSession bool

	state State

	// inFlight enforces at most one outstanding send per session.
	inFlight bool

	// openEpoch identifies the most recent StartOpen; results from earlier
	// epochs are stale.
	openEpoch uint64
}

// New creates a session for a subject. The session starts Uninitialized; the
// caller drives the first open.
func New(backend Backend, subject model.Subject, level model.LearningLevel, modelID int) *Session {
	return &Session{
		portal:     backend,
		subject:    subject,
		level:      level,
		modelID:    modelID,
		transcript: model.NewTranscript(),
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Transcript returns the session's transcript. Callers must treat it as
// read-only; the session is its only writer.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subject returns the session's subject.
func (s *Session) Subject() model.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subject
}

// Level returns the current learning level.
func (s *Session) Level() model.LearningLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// ModelID returns the current model descriptor id.
func (s *Session) ModelID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelID
}

// SessionID returns the backend session identifier. The second result is
// false before the first successful open.
func (s *Session) SessionID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID, s.hasSession
}

// InFlight reports whether a send is outstanding.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// =============================================================================
// OPEN
// =============================================================================

// OpenAttempt captures one session-creation request. The epoch ties the
// eventual result back to the StartOpen that produced it.
type OpenAttempt struct {
	Epoch   uint64
	Subject model.Subject
	Level   model.LearningLevel
	ModelID int
}

// OpenResult is the outcome of PerformOpen.
type OpenResult struct {
	Attempt   *OpenAttempt
	SessionID int
	Err       error
}

// StartOpen begins (re)creation of the backend session using the session's
// current subject, level and model. It invalidates any existing backend
// session immediately: sends are rejected until the open resolves, and any
// in-flight send's result will be discarded as stale.
func (s *Session) StartOpen() *OpenAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.openEpoch++
	s.hasSession = false
	s.inFlight = false
	s.state = StateOpening

	return &OpenAttempt{
		Epoch:   s.openEpoch,
		Subject: s.subject,
		Level:   s.level,
		ModelID: s.modelID,
	}
}

// PerformOpen does the blocking portal call for an attempt. Safe to run off
// the event loop; it touches no session state.
func (s *Session) PerformOpen(ctx context.Context, a *OpenAttempt) OpenResult {
	id, err := s.portal.StartChat(ctx, a.Subject.ID, a.Level, a.ModelID)
	return OpenResult{Attempt: a, SessionID: id, Err: err}
}

// FinishOpen applies an open result.
//
// A result from a superseded attempt returns ErrStaleResponse and changes
// nothing. On success the transcript is reset to a single greeting turn and
// the new session identifier becomes live. On failure the prior transcript
// contents are preserved, no identifier is stored, and the state is Failed.
func (s *Session) FinishOpen(r OpenResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Attempt == nil || r.Attempt.Epoch != s.openEpoch {
		return ErrStaleResponse
	}

	if r.Err != nil {
		s.state = StateFailed
		return errors.Join(ErrSessionOpenFailed, r.Err)
	}

	s.sessionID = r.SessionID
	s.hasSession = true
	s.inFlight = false
	s.state = StateReady
	s.transcript.Reset(model.NewGreetingTurn(greeting(r.Attempt.Subject, r.Attempt.Level)))
	return nil
}

// greeting builds the assistant turn that opens every fresh session.
func greeting(subject model.Subject, level model.LearningLevel) string {
	return "Hello! I'm your AI assistant for **" + subject.Name +
		"**. I'm set to **" + level.String() +
		"** level explanations. How can I help you?"
}

// =============================================================================
// SESSION KEY CHANGES
// =============================================================================

// ChangeLevel switches the learning level and begins a reopen. The old
// session is discarded; history does not migrate.
func (s *Session) ChangeLevel(level model.LearningLevel) *OpenAttempt {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
	return s.StartOpen()
}

// ChangeModel switches the model descriptor and begins a reopen.
func (s *Session) ChangeModel(modelID int) *OpenAttempt {
	s.mu.Lock()
	s.modelID = modelID
	s.mu.Unlock()
	return s.StartOpen()
}

// ChangeSubject switches the subject and begins a reopen.
func (s *Session) ChangeSubject(subject model.Subject) *OpenAttempt {
	s.mu.Lock()
	s.subject = subject
	s.mu.Unlock()
	return s.StartOpen()
}

// =============================================================================
// SEND
// =============================================================================

// SendAttempt captures one outbound message. The attempt is pinned to the
// backend session that issued it; a reopen makes it stale.
type SendAttempt struct {
	sid    int
	TurnID string
	Text   string
}

// SendResult is the outcome of PerformSend.
type SendResult struct {
	Attempt *SendAttempt
	Content string
	Err     error
}

// StartSend validates preconditions and stages a send.
//
// On acceptance it appends the user turn (complete, optimistic: it stays
// visible even if the network call later fails) followed by an empty
// assistant placeholder in streaming state, sets the in-flight flag, and
// returns the attempt. Rejections are synchronous no-ops that never set the
// flag: ErrEmptyMessage, ErrNoSession, or ErrBusy.
func (s *Session) StartSend(text string) (*SendAttempt, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSession {
		return nil, ErrNoSession
	}
	if s.inFlight {
		return nil, ErrBusy
	}

	user := model.NewUserTurn(trimmed)
	placeholder := model.NewAssistantPlaceholder()
	s.transcript.Append(user)
	s.transcript.Append(placeholder)

	s.inFlight = true
	s.state = StateSending

	return &SendAttempt{
		sid:    s.sessionID,
		TurnID: placeholder.ID,
		Text:   trimmed,
	}, nil
}

// PerformSend does the blocking portal call for an attempt. Safe to run off
// the event loop; it touches no session state.
func (s *Session) PerformSend(ctx context.Context, a *SendAttempt) SendResult {
	content, err := s.portal.SendMessage(ctx, a.sid, a.Text)
	return SendResult{Attempt: a, Content: content, Err: err}
}

// FinishSend applies a send result.
//
// If the attempt's session is no longer live (the session was reopened while
// the send was in flight), the result is discarded with ErrStaleResponse and
// the live session is untouched. Otherwise the placeholder either completes
// with the returned content or becomes an error turn carrying the backend's
// message (or a generic fallback). The in-flight flag clears on every path
// that belongs to the live session.
func (s *Session) FinishSend(r SendResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Attempt == nil || !s.hasSession || r.Attempt.sid != s.sessionID {
		return ErrStaleResponse
	}

	s.inFlight = false

	placeholder := s.transcript.ByID(r.Attempt.TurnID)
	if r.Err != nil {
		if placeholder != nil {
			placeholder.Fail(errText(r.Err))
		}
		s.state = StateFailed
		return errors.Join(ErrSendFailed, r.Err)
	}

	if placeholder != nil {
		placeholder.Complete(r.Content)
	}
	s.state = StateReady
	return nil
}

// errText extracts the backend's error text, falling back to a generic
// message when the failure carried none.
func errText(err error) string {
	var apiErr *portal.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallbackErrText
}

// =============================================================================
// REGENERATE AND FEEDBACK
// =============================================================================

// Regenerate recalls the text of the most recent user turn so the caller can
// place it back in the input for re-submission. It does not resend anything.
// The second result is false when no user turn exists.
func (s *Session) Regenerate() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.transcript.LastUserTurn()
	if last == nil {
		return "", false
	}
	return last.Content, true
}

// SetFeedback records like/dislike against a turn. At most one kind is
// active; selecting the opposite kind replaces it. Unknown turn IDs are
// ignored.
func (s *Session) SetFeedback(turnID string, kind model.Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.transcript.ByID(turnID); t != nil {
		t.SetFeedback(kind)
	}
}
