// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive tutoring view.
//
// The package is a single Bubble Tea model wrapping one tutoring session:
// a scrollback viewport of turns, a text input, and a footer with key
// hints. All portal calls run inside tea.Cmd goroutines; their results come
// back as messages and are applied on the event loop, so session state is
// only ever mutated from Update.
package chat
