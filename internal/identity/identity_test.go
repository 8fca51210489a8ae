// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package identity models the authenticated user as an explicit value.
package identity

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "student", input: "student", want: RoleStudent},
		{name: "admin upper", input: "Admin", want: RoleAdmin},
		{name: "staff padded", input: " staff ", want: RoleStaff},
		{name: "unknown", input: "superuser", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			if tc.wantErr != (err != nil) {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRole_CanChat(t *testing.T) {
	if !RoleStudent.CanChat() {
		t.Error("students should get the chat surface")
	}
	if RoleAdmin.CanChat() || RoleStaff.CanChat() {
		t.Error("admin and staff should be gated off the chat surface")
	}
}

func TestFromUser(t *testing.T) {
	id := FromUser(User{ID: 42, Email: "s@example.edu", Role: RoleStudent})
	if id.UserID != 42 || id.Role != RoleStudent {
		t.Errorf("FromUser = %+v", id)
	}
}
