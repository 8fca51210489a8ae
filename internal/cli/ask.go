// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive command surface of tutor-tui.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/tutor-tui/internal/catalog"
	"github.com/jeranaias/tutor-tui/internal/config"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/portal"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for answers printed to a TTY.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display. Returns the content
// unchanged if the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayAnswer prints an answer, rendered when stdout is a TTY so piped
// output stays plain.
func displayAnswer(answer string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
		return
	}
	fmt.Println(answer)
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// RunAsk performs a one-shot exchange and prints the answer.
//
// Flags:
//
//	-s, --subject NAME   Subject name or code (default: first available)
//	-l, --level LEVEL    beginner | intermediate | advanced
//	-m, --model ID       Model identifier (default: first active)
func RunAsk(ctx context.Context, args []string) error {
	parser := NewArgParser(args)
	question := parser.Rest()
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("usage: tutor ask [--subject NAME] [--level LEVEL] \"question\"")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := NewPortalClient(cfg)
	user, err := Authenticate(ctx, client, cfg)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := RequireStudent(user); err != nil {
		return err
	}

	subject, err := resolveSubject(ctx, client, firstFlag(parser, "subject", "s"))
	if err != nil {
		return err
	}

	level := cfg.DefaultLevel()
	if v := firstFlag(parser, "level", "l"); v != "" {
		level, err = model.ParseLevel(v)
		if err != nil {
			return err
		}
	}

	modelID := parser.FlagInt("model", 0)
	if modelID == 0 {
		modelID = parser.FlagInt("m", 0)
	}
	if modelID == 0 {
		models, err := catalog.New(client).List(ctx)
		if err != nil {
			return err
		}
		def, ok := catalog.DefaultModel(models)
		if !ok {
			return fmt.Errorf("no active models available")
		}
		modelID = def.ID
	}

	sessionID, err := client.StartChat(ctx, subject.ID, level, modelID)
	if err != nil {
		return fmt.Errorf("could not start session: %w", err)
	}

	answer, err := client.SendMessage(ctx, sessionID, question)
	if err != nil {
		return fmt.Errorf("could not get an answer: %w", err)
	}

	displayAnswer(answer)
	return nil
}

// resolveSubject matches the requested subject by name or code,
// case-insensitively. An empty request selects the first subject.
func resolveSubject(ctx context.Context, client *portal.Client, want string) (model.Subject, error) {
	subjects, err := client.ListSubjects(ctx)
	if err != nil {
		return model.Subject{}, err
	}
	if len(subjects) == 0 {
		return model.Subject{}, fmt.Errorf("no subjects available")
	}
	if want == "" {
		return subjects[0], nil
	}

	lower := strings.ToLower(want)
	for _, s := range subjects {
		if strings.ToLower(s.Name) == lower || strings.ToLower(s.Code) == lower {
			return s, nil
		}
	}

	var names []string
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	return model.Subject{}, fmt.Errorf("unknown subject %q (available: %s)", want, strings.Join(names, ", "))
}

// firstFlag returns the first non-empty value among flag aliases.
func firstFlag(parser *ArgParser, names ...string) string {
	for _, name := range names {
		if v := parser.Flag(name); v != "" {
			return v
		}
	}
	return ""
}
