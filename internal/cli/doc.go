// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-interactive command surface of tutor-tui.
//
// Two commands exist alongside the default TUI mode:
//
//	tutor ask [--subject NAME] [--level LEVEL] "question"
//	tutor history [--limit N]
//
// ask performs a one-shot exchange: log in, open a session, send the
// question, and print the rendered answer to stdout. history lists the
// locally archived sessions.
package cli
