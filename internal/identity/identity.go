// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package identity models the authenticated user as an explicit value.
//
// Role information is passed into whatever component needs gating; nothing in
// this client reads ambient global state to find out who is logged in.
package identity

import (
	"errors"
	"strings"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role is the portal role of the authenticated user. It gates only which
// surface runs: students get the chat TUI, staff and admins are pointed at
// the web portal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// ErrUnknownRole is returned by ParseRole for unrecognized input.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts backend input into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleStudent:
		return RoleStudent, nil
	}
	return "", ErrUnknownRole
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// CanChat reports whether this role uses the tutoring chat surface.
func (r Role) CanChat() bool {
	return r == RoleStudent
}

// =============================================================================
// USER / IDENTITY TYPES
// =============================================================================

// User is the portal's user record as returned by /auth/login and /auth/me.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Identity is the minimal value handed to components that need role gating.
type Identity struct {
	UserID int
	Role   Role
}

// FromUser extracts the Identity from a full user record.
func FromUser(u User) Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}
