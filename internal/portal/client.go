// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the educational portal backend.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/tutor-tui/internal/identity"
	"github.com/jeranaias/tutor-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a transport or protocol error from the portal client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnauthorized = &ClientError{Type: ErrTypeUnauthorized, Message: "not authenticated"}
)

// APIError is a non-2xx response whose body carried {"error": "..."}.
// Message is the backend's text, surfaced verbatim to the user where the
// chat contract says so.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "portal returned status " + strconv.Itoa(e.StatusCode)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the portal client.
type ClientConfig struct {
	// BaseURL is the portal API base URL (default: http://127.0.0.1:5000/api)
	BaseURL string

	// Timeout for requests (default: 60s; chat completions are slow)
	Timeout time.Duration

	// RequestsPerSecond caps outbound request rate (default: 5)
	RequestsPerSecond float64

	// Burst is the limiter burst size (default: 5)
	Burst int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:5000/api",
		Timeout:           60 * time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the portal API.
//
// The Client is safe for concurrent use. The bearer token is set once after
// login; callers that need a different identity create a new client.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
}

// NewClient creates a new portal client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new portal client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000/api"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RequestsPerSecond == 0 {
		config.RequestsPerSecond = 5
	}
	if config.Burst == 0 {
		config.Burst = 5
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}
}

// SetToken installs the bearer token used for all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticated reports whether a bearer token is installed.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// =============================================================================
// AUTH
// =============================================================================

// Login exchanges credentials for a bearer token and installs it on the
// client. The returned user record carries the role used for screen gating.
func (c *Client) Login(ctx context.Context, email, password string) (identity.User, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return identity.User{}, err
	}
	c.token = resp.AccessToken
	return resp.User, nil
}

// Me fetches the current user's record.
func (c *Client) Me(ctx context.Context) (identity.User, error) {
	var u identity.User
	if err := c.getJSON(ctx, "/auth/me", &u); err != nil {
		return identity.User{}, err
	}
	return u, nil
}

// =============================================================================
// CATALOG AND SUBJECTS
// =============================================================================

// ListModels retrieves the available LLM descriptors in backend order.
func (c *Client) ListModels(ctx context.Context) ([]model.Descriptor, error) {
	var out []model.Descriptor
	if err := c.getJSON(ctx, "/models", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSubjects retrieves the subjects available to the current student.
func (c *Client) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	var out []model.Subject
	if err := c.getJSON(ctx, "/subjects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// CHAT
// =============================================================================

// StartChat creates a backend chat session for (subject, level, model) and
// returns its opaque identifier.
func (c *Client) StartChat(ctx context.Context, subjectID int, level model.LearningLevel, modelID int) (int, error) {
	var resp StartChatResponse
	req := StartChatRequest{
		SubjectID:     subjectID,
		LearningLevel: level.String(),
		LLMModelID:    modelID,
	}
	if err := c.postJSON(ctx, "/chat/start", req, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// SendMessage posts one user message to a session and returns the
// assistant's whole reply. There is no token streaming in the wire contract;
// the reply arrives complete.
func (c *Client) SendMessage(ctx context.Context, sessionID int, message string) (string, error) {
	var resp SendMessageResponse
	path := "/chat/" + strconv.Itoa(sessionID) + "/message"
	if err := c.postJSON(ctx, path, SendMessageRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// History fetches the server-side transcript of a session.
func (c *Client) History(ctx context.Context, sessionID int) ([]HistoryMessage, error) {
	var out []HistoryMessage
	path := "/chat/" + strconv.Itoa(sessionID) + "/history"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendFeedback records like/dislike feedback for a turn. Fire-and-forget:
// the response body is ignored and errors are returned only so callers can
// choose to drop them.
func (c *Client) SendFeedback(ctx context.Context, sessionID int, turnID string, kind model.Feedback) error {
	path := "/chat/" + strconv.Itoa(sessionID) + "/feedback"
	return c.postJSON(ctx, path, FeedbackRequest{TurnID: turnID, Kind: string(kind)}, nil)
}

// =============================================================================
// GENERIC REQUEST LAYER
// =============================================================================

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// postJSON performs an authenticated POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON performs an authenticated PUT with a JSON body. Part of the
// collaborator surface; the chat core does not use it.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// DeleteJSON performs an authenticated DELETE. Part of the collaborator
// surface; the chat core does not use it.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

// doJSON is the single request path: rate limit, marshal, send, classify.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "rate limiter interrupted", Cause: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "portal unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// authorize attaches the bearer token when one is installed.
func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// decodeError turns a non-2xx response into an APIError, keeping the
// backend's {"error": ...} text verbatim when present.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	if resp.StatusCode == http.StatusUnauthorized && apiErr.Message == "" {
		return ErrUnauthorized
	}
	return apiErr
}
