// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the HTTP client for the educational portal backend.
//
// All requests are JSON over HTTP with bearer-token auth. The client covers
// the chat contract (session start, message send, model list) plus the
// collaborator surface the rest of the portal exposes: login/identity,
// subject listing, and a generic JSON/multipart request layer.
//
// Backend error bodies carry {"error": "..."}; the message is surfaced
// verbatim through APIError so the chat layer can show it as-is.
package portal
