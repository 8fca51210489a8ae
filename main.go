// tutor-tui - A terminal client for the campus portal's AI tutoring chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/actions"
	"github.com/jeranaias/tutor-tui/internal/catalog"
	"github.com/jeranaias/tutor-tui/internal/cli"
	"github.com/jeranaias/tutor-tui/internal/config"
	"github.com/jeranaias/tutor-tui/internal/history"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/portal"
	"github.com/jeranaias/tutor-tui/internal/session"
	"github.com/jeranaias/tutor-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "ask":
			exitOnError(cli.RunAsk(context.Background(), args[1:]))
			return
		case "history":
			exitOnError(cli.RunHistory(context.Background(), args[1:]))
			return
		case "version", "--version", "-v":
			fmt.Printf("tutor-tui %s (%s, %s)\n", Version, GitCommit, BuildDate)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	exitOnError(runTUI(args))
}

func printUsage() {
	fmt.Println(`tutor-tui - terminal client for the AI tutoring chat

Usage:
  tutor                                 Start the interactive chat
  tutor --subject NAME                  Start the chat in a subject
  tutor ask [flags] "question"          One-shot question, answer to stdout
  tutor history [--limit N] [id]        Browse the local session archive
  tutor version                         Print version information

Environment:
  TUTOR_PORTAL_URL    Portal API base URL
  TUTOR_EMAIL         Login email
  TUTOR_PASSWORD      Login password (otherwise prompted)
  TUTOR_LEVEL         Default learning level
  TUTOR_NO_HISTORY    Disable the local archive`)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INTERACTIVE MODE
// =============================================================================

func runTUI(args []string) error {
	parser := cli.NewArgParser(args)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := cli.NewPortalClient(cfg)
	user, err := cli.Authenticate(ctx, client, cfg)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := cli.RequireStudent(user); err != nil {
		return err
	}

	subject, err := chooseSubject(ctx, client, parser.Flag("subject"))
	if err != nil {
		return err
	}

	level := cfg.DefaultLevel()
	if v := parser.Flag("level"); v != "" {
		level, err = model.ParseLevel(v)
		if err != nil {
			return err
		}
	}

	cat := catalog.New(client)
	sess := session.New(client, subject, level, startupModelID(ctx, cat))
	ctrl := actions.New(sess, client)

	var store *history.Store
	if cfg.History.Enabled {
		// A broken archive should not keep the chat from starting.
		if s, err := history.Open(cfg.History.DatabasePath); err == nil {
			store = s
			defer store.Close()
		}
	}

	m := chat.New(chat.Options{
		Session: sess,
		Actions: ctrl,
		Catalog: cat,
		Store:   store,
		Timeout: cfg.Timeout(),
	})

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// startupModelID picks the backend model for the first session. A catalog
// failure degrades to the server-side default (id 0) instead of aborting;
// the chat retries the fetch once it is running.
func startupModelID(ctx context.Context, cat *catalog.Catalog) int {
	models, err := cat.List(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load model list; using the server default")
		return 0
	}
	def, ok := catalog.DefaultModel(models)
	if !ok {
		return 0
	}
	return def.ID
}

// chooseSubject resolves the --subject flag or prompts with a numbered list.
func chooseSubject(ctx context.Context, client *portal.Client, want string) (model.Subject, error) {
	subjects, err := client.ListSubjects(ctx)
	if err != nil {
		return model.Subject{}, fmt.Errorf("could not load subjects: %w", err)
	}
	if len(subjects) == 0 {
		return model.Subject{}, fmt.Errorf("no subjects are available for your account")
	}

	if want != "" {
		lower := strings.ToLower(want)
		for _, s := range subjects {
			if strings.ToLower(s.Name) == lower || strings.ToLower(s.Code) == lower {
				return s, nil
			}
		}
		return model.Subject{}, fmt.Errorf("unknown subject %q", want)
	}
	if len(subjects) == 1 {
		return subjects[0], nil
	}

	fmt.Println("Subjects:")
	for i, s := range subjects {
		fmt.Printf("  %2d. %s\n", i+1, s.Name)
	}
	line, err := cli.PromptLine("Choose a subject: ")
	if err != nil {
		return model.Subject{}, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(subjects) {
		return model.Subject{}, fmt.Errorf("invalid choice %q", line)
	}
	return subjects[n-1], nil
}
