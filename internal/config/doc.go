// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for tutor-tui.
//
// Configuration lives in TOML at ~/.tutor/config.toml, with sensible
// defaults, TUTOR_* environment variable overrides, and validation.
package config
