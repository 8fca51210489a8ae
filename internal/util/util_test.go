// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{name: "shorter than max", input: "hello", maxRunes: 10, want: "hello"},
		{name: "exactly max", input: "hello", maxRunes: 5, want: "hello"},
		{name: "truncated with ellipsis", input: "hello world", maxRunes: 8, want: "hello..."},
		{name: "tiny max", input: "hello", maxRunes: 2, want: "he"},
		{name: "zero max", input: "hello", maxRunes: 0, want: ""},
		{name: "multibyte safe", input: "日本語のテキスト", maxRunes: 5, want: "日本..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateRunes(tc.input, tc.maxRunes); got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	got := TruncateWidth("日本語テキスト", 8)
	if StringWidth(got) > 8 {
		t.Errorf("truncated string too wide: %q (%d cols)", got, StringWidth(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := WrapText("the quick brown fox jumps over the lazy dog", 15)
	for _, line := range lines {
		if StringWidth(line) > 15 {
			t.Errorf("line exceeds width: %q (%d cols)", line, StringWidth(line))
		}
	}
	if got := strings.Join(lines, " "); got != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("words lost in wrapping: %q", got)
	}

	// Existing line breaks are preserved.
	lines = WrapText("one\ntwo", 80)
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Errorf("newlines not preserved: %#v", lines)
	}

	// Oversized words are split rather than overflowing.
	lines = WrapText("abcdefghij", 4)
	for _, line := range lines {
		if StringWidth(line) > 4 {
			t.Errorf("unsplit oversized word: %q", line)
		}
	}
}

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
