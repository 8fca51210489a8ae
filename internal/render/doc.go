// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render parses assistant markup into a sequence of typed nodes.
//
// Render is a pure function over the input text: no mutable state, no side
// effects, deterministic output. It is built on goldmark with the GFM
// extensions, so tables, strikethrough and autolinks parse the way the
// portal's web client parses them.
//
// The renderer is streaming-safe: malformed or unterminated fenced code never
// fails, it simply runs to the end of the input and comes back as a single
// trailing code node.
package render
