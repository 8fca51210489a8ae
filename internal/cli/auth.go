// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive command surface of tutor-tui.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/tutor-tui/internal/config"
	"github.com/jeranaias/tutor-tui/internal/identity"
	"github.com/jeranaias/tutor-tui/internal/portal"
)

// =============================================================================
// AUTHENTICATION
// =============================================================================

// NewPortalClient builds a portal client from the loaded configuration.
func NewPortalClient(cfg *config.Config) *portal.Client {
	cc := portal.DefaultConfig()
	cc.BaseURL = cfg.Portal.BaseURL
	cc.Timeout = cfg.Timeout()
	if cfg.Portal.RequestsPerSecond > 0 {
		cc.RequestsPerSecond = cfg.Portal.RequestsPerSecond
	}
	return portal.NewClientWithConfig(cc)
}

// Authenticate logs the user in, prompting for whatever credentials the
// configuration and environment do not provide. TUTOR_PASSWORD is honored
// for scripted use; interactive prompts hide the password.
func Authenticate(ctx context.Context, client *portal.Client, cfg *config.Config) (identity.User, error) {
	email := cfg.Portal.Email
	if email == "" {
		var err error
		email, err = PromptLine("Email: ")
		if err != nil {
			return identity.User{}, fmt.Errorf("reading email: %w", err)
		}
	}

	password := os.Getenv("TUTOR_PASSWORD")
	if password == "" {
		var err error
		password, err = PromptPassword("Password: ")
		if err != nil {
			return identity.User{}, fmt.Errorf("reading password: %w", err)
		}
	}

	user, err := client.Login(ctx, email, password)
	if err != nil {
		return identity.User{}, err
	}
	return user, nil
}

// RequireStudent rejects users whose role has no chat surface.
func RequireStudent(user identity.User) error {
	if !user.Role.CanChat() {
		return fmt.Errorf("the tutoring chat is only available to students; %s accounts use the web portal", user.Role)
	}
	return nil
}
