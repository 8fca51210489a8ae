// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tutoring chat transcripts.
//
// The central types are:
//   - Turn: a single message in a conversation, with lifecycle status
//   - Transcript: the append-only ordered log of turns for one session
//   - Subject, LearningLevel, Descriptor: the inputs that key a session
//
// A Transcript is owned by exactly one chat session; other components only
// read turn data handed to them. Turns are never reordered or deleted, and a
// turn is immutable once its status reaches StatusComplete.
package model
