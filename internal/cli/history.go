// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive command surface of tutor-tui.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jeranaias/tutor-tui/internal/config"
	"github.com/jeranaias/tutor-tui/internal/history"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// HISTORY COMMAND
// =============================================================================

// RunHistory lists archived sessions, or dumps one session's turns when an
// id is given. With --remote the transcript is fetched from the portal
// instead of the local archive.
//
//	tutor history [--limit N]
//	tutor history <session-id>
//	tutor history --remote <portal-session-id>
func RunHistory(ctx context.Context, args []string) error {
	parser := NewArgParser(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if parser.BoolFlag("remote") {
		return printRemoteSession(ctx, cfg, parser)
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("the local history archive is disabled in the configuration")
	}

	store, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(parser.Positional()) > 0 {
		id, err := strconv.ParseInt(parser.Positional()[0], 10, 64)
		if err != nil {
			return fmt.Errorf("session id must be a number: %q", parser.Positional()[0])
		}
		return printSession(ctx, store, id)
	}

	return printRecent(ctx, store, parser.FlagInt("limit", 20))
}

func printRecent(ctx context.Context, store *history.Store, limit int) error {
	sessions, err := store.RecentSessions(ctx, limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No archived sessions yet.")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%4d  %s  %-12s %s\n",
			s.ID,
			s.OpenedAt.Format("2006-01-02 15:04"),
			s.Level,
			s.Subject)
	}
	return nil
}

// printRemoteSession fetches a transcript from the portal itself.
func printRemoteSession(ctx context.Context, cfg *config.Config, parser *ArgParser) error {
	if len(parser.Positional()) == 0 {
		return fmt.Errorf("usage: tutor history --remote <portal-session-id>")
	}
	id, err := strconv.Atoi(parser.Positional()[0])
	if err != nil {
		return fmt.Errorf("session id must be a number: %q", parser.Positional()[0])
	}

	client := NewPortalClient(cfg)
	user, err := Authenticate(ctx, client, cfg)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := RequireStudent(user); err != nil {
		return err
	}

	messages, err := client.History(ctx, id)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Printf("No messages in portal session %d.\n", id)
		return nil
	}

	width := GetTerminalWidth()
	for _, msg := range messages {
		fmt.Printf("[%s  %s]\n", msg.MessageType, msg.CreatedAt.Format("2006-01-02 15:04"))
		for _, line := range util.WrapText(msg.Content, width-2) {
			fmt.Println("  " + line)
		}
		fmt.Println()
	}
	return nil
}

func printSession(ctx context.Context, store *history.Store, id int64) error {
	turns, err := store.SessionTurns(ctx, id)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		fmt.Printf("No turns recorded for session %d.\n", id)
		return nil
	}

	width := GetTerminalWidth()
	for _, t := range turns {
		fmt.Printf("[%s]\n", t.Role.DisplayName())
		for _, line := range util.WrapText(t.Content, width-2) {
			fmt.Println("  " + line)
		}
		fmt.Println()
	}
	return nil
}
