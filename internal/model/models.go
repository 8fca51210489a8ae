// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for tutoring chat transcripts.
package model

import (
	"errors"
	"strings"
)

// =============================================================================
// SUBJECT TYPE
// =============================================================================

// Subject is a course a student can chat about. It is supplied by the portal
// and immutable from the chat subsystem's point of view.
type Subject struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	DepartmentID int    `json:"department_id"`
}

// Display returns the subject's name with its code, if any.
func (s Subject) Display() string {
	if s.Code == "" {
		return s.Name
	}
	return s.Name + " (" + s.Code + ")"
}

// =============================================================================
// LEARNING LEVEL TYPE
// =============================================================================

// LearningLevel selects how the assistant pitches its explanations.
// Changing the level invalidates the current session.
type LearningLevel string

const (
	LevelBeginner     LearningLevel = "beginner"
	LevelIntermediate LearningLevel = "intermediate"
	LevelAdvanced     LearningLevel = "advanced"
)

// Levels lists all learning levels in selection order.
var Levels = []LearningLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ErrUnknownLevel is returned by ParseLevel for unrecognized input.
var ErrUnknownLevel = errors.New("unknown learning level")

// ParseLevel converts user or config input into a LearningLevel.
func ParseLevel(s string) (LearningLevel, error) {
	switch LearningLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, nil
	case LevelIntermediate:
		return LevelIntermediate, nil
	case LevelAdvanced:
		return LevelAdvanced, nil
	}
	return "", ErrUnknownLevel
}

// String returns the string representation of the level.
func (l LearningLevel) String() string {
	return string(l)
}

// Next cycles to the following level in selection order.
func (l LearningLevel) Next() LearningLevel {
	for i, lv := range Levels {
		if lv == l {
			return Levels[(i+1)%len(Levels)]
		}
	}
	return LevelIntermediate
}

// =============================================================================
// MODEL DESCRIPTOR TYPE
// =============================================================================

// Descriptor identifies one backend LLM the portal can route chats to.
// Only active descriptors are selectable.
type Descriptor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
