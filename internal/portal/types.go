// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the educational portal backend.
package portal

import (
	"time"

	"github.com/jeranaias/tutor-tui/internal/identity"
	"github.com/jeranaias/tutor-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StartChatRequest is the body for POST /chat/start.
type StartChatRequest struct {
	SubjectID     int    `json:"subject_id"`
	LearningLevel string `json:"learning_level"`
	LLMModelID    int    `json:"llm_model_id,omitempty"`
}

// SendMessageRequest is the body for POST /chat/{id}/message.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// FeedbackRequest is the body for POST /chat/{id}/feedback.
type FeedbackRequest struct {
	TurnID string `json:"turn_id"`
	Kind   string `json:"kind"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        identity.User `json:"user"`
}

// StartChatResponse is the body returned by POST /chat/start. Only the
// session identifier matters to this client.
type StartChatResponse struct {
	ID int `json:"id"`
}

// SendMessageResponse is the body returned by POST /chat/{id}/message.
type SendMessageResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// HistoryMessage is one element of GET /chat/{id}/history.
type HistoryMessage struct {
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// errorBody is the shape of every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}

// Descriptor re-exports the model list element for callers that only import
// portal.
type Descriptor = model.Descriptor

// Subject re-exports the subject list element.
type Subject = model.Subject
