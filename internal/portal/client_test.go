// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the educational portal backend.
package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeranaias/tutor-tui/internal/identity"
	"github.com/jeranaias/tutor-tui/internal/model"
)

// newTestClient points a client at a test server with rate limiting opened up
// so tests never stall on the limiter.
func newTestClient(srv *httptest.Server) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
}

func TestClient_LoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "s@example.edu" {
			t.Errorf("email = %q", req.Email)
		}
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "tok123",
			User:        identity.User{ID: 7, Role: identity.RoleStudent},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	user, err := c.Login(context.Background(), "s@example.edu", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 7 || user.Role != identity.RoleStudent {
		t.Errorf("user = %+v", user)
	}
	if !c.Authenticated() {
		t.Error("token not installed after login")
	}
}

func TestClient_BearerTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]model.Descriptor{})
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.SetToken("tok123")
	if _, err := c.ListModels(context.Background()); err != nil {
		t.Fatalf("ListModels: %v", err)
	}
}

func TestClient_ListModelsOrderPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Descriptor{
			{ID: 3, Name: "tutor-large", IsActive: false},
			{ID: 1, Name: "tutor-small", IsActive: true},
			{ID: 2, Name: "tutor-medium", IsActive: true},
		})
	}))
	defer srv.Close()

	models, err := newTestClient(srv).ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 3 || models[0].ID != 3 || models[1].ID != 1 {
		t.Errorf("order not preserved: %+v", models)
	}
}

func TestClient_StartChatAndSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat/start":
			var req StartChatRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.SubjectID != 5 || req.LearningLevel != "beginner" || req.LLMModelID != 2 {
				t.Errorf("start request = %+v", req)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(StartChatResponse{ID: 99})
		case "/chat/99/message":
			var req SendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Message != "What is recursion?" {
				t.Errorf("message = %q", req.Message)
			}
			var resp SendMessageResponse
			resp.Message.Content = "Recursion is..."
			json.NewEncoder(w).Encode(resp)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	id, err := c.StartChat(context.Background(), 5, model.LevelBeginner, 2)
	if err != nil {
		t.Fatalf("StartChat: %v", err)
	}
	if id != 99 {
		t.Errorf("session id = %d, want 99", id)
	}

	content, err := c.SendMessage(context.Background(), id, "What is recursion?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if content != "Recursion is..." {
		t.Errorf("content = %q", content)
	}
}

func TestClient_ErrorBodySurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "rate limited"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).SendMessage(context.Background(), 1, "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "rate limited" {
		t.Errorf("message = %q, want backend text verbatim", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ListSubjects(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "" {
		t.Errorf("message = %q, want empty", apiErr.Message)
	}
	if apiErr.Error() == "" {
		t.Error("Error() should fall back to a status description")
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{
		BaseURL:           "http://127.0.0.1:1",
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
	_, err := c.ListModels(context.Background())
	var cerr *ClientError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ClientError", err)
	}
	if cerr.Type != ErrTypeConnection {
		t.Errorf("type = %v, want connection", cerr.Type)
	}
}

func TestClient_DefaultsFilled(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})
	if c.config.BaseURL == "" || c.config.Timeout == 0 {
		t.Errorf("defaults not filled: %+v", c.config)
	}
}
