// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates one tutoring chat session against the portal.
//
// A Session owns its transcript exclusively and moves through a small state
// machine:
//
//	Uninitialized -> Opening -> Ready -> Sending -> Ready -> ...
//
// with Opening and Sending able to fail into StateFailed, and StateFailed
// recoverable by another open.
//
// Network work is split into explicit phases so transcript mutation happens
// only on the event-loop goroutine: StartOpen/StartSend mutate synchronously
// and return an attempt, PerformOpen/PerformSend do the blocking portal call
// (safe to run inside a tea.Cmd), and FinishOpen/FinishSend apply the result.
// A result whose attempt no longer matches the live session is stale and is
// discarded silently: changing subject, level or model recreates the backend
// session, and replies belonging to a superseded session must never
// overwrite the new one.
package session
