// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render parses assistant markup into a sequence of typed nodes.
package render

import (
	"strings"
	"testing"
)

// =============================================================================
// BASIC STRUCTURE TESTS
// =============================================================================

func TestRender_Paragraph(t *testing.T) {
	nodes := Render("Just a sentence.")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	p := nodes[0]
	if p.Kind != KindParagraph {
		t.Fatalf("kind = %v, want paragraph", p.Kind)
	}
	if p.PlainText() != "Just a sentence." {
		t.Errorf("PlainText() = %q", p.PlainText())
	}
}

func TestRender_Headings(t *testing.T) {
	nodes := Render("# One\n\n## Two\n\n### Three\n")
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	for i, want := range []int{1, 2, 3} {
		if nodes[i].Kind != KindHeading {
			t.Errorf("node %d kind = %v, want heading", i, nodes[i].Kind)
		}
		if nodes[i].Level != want {
			t.Errorf("node %d level = %d, want %d", i, nodes[i].Level, want)
		}
	}
}

func TestRender_Lists(t *testing.T) {
	nodes := Render("- alpha\n- beta\n\n1. one\n2. two\n")
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}

	ul := nodes[0]
	if ul.Kind != KindList || ul.Ordered {
		t.Errorf("first list: kind=%v ordered=%v, want unordered list", ul.Kind, ul.Ordered)
	}
	if len(ul.Children) != 2 || ul.Children[0].Kind != KindListItem {
		t.Fatalf("unordered list items malformed: %+v", ul.Children)
	}
	if ul.Children[1].PlainText() != "beta" {
		t.Errorf("second item = %q, want beta", ul.Children[1].PlainText())
	}

	ol := nodes[1]
	if ol.Kind != KindList || !ol.Ordered {
		t.Errorf("second list: kind=%v ordered=%v, want ordered list", ol.Kind, ol.Ordered)
	}
}

func TestRender_Blockquote(t *testing.T) {
	nodes := Render("> quoted wisdom\n")
	if len(nodes) != 1 || nodes[0].Kind != KindBlockquote {
		t.Fatalf("got %+v, want one blockquote", nodes)
	}
	if nodes[0].PlainText() != "quoted wisdom" {
		t.Errorf("PlainText() = %q", nodes[0].PlainText())
	}
}

func TestRender_Table(t *testing.T) {
	src := "| Name | Value |\n| --- | --- |\n| pi | 3.14 |\n| e | 2.71 |\n"
	nodes := Render(src)
	if len(nodes) != 1 || nodes[0].Kind != KindTable {
		t.Fatalf("got %+v, want one table", nodes)
	}
	rows := nodes[0].Children
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2)", len(rows))
	}
	header := rows[0]
	if header.Kind != KindTableRow || len(header.Children) != 2 {
		t.Fatalf("header row malformed: %+v", header)
	}
	if header.Children[0].PlainText() != "Name" {
		t.Errorf("header cell = %q, want Name", header.Children[0].PlainText())
	}
	if rows[2].Children[1].PlainText() != "2.71" {
		t.Errorf("cell (2,1) = %q, want 2.71", rows[2].Children[1].PlainText())
	}
}

func TestRender_Link(t *testing.T) {
	nodes := Render("See [the docs](https://example.com/docs) for more.")
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	var link *Node
	for i := range nodes[0].Children {
		if nodes[0].Children[i].Kind == KindLink {
			link = &nodes[0].Children[i]
		}
	}
	if link == nil {
		t.Fatal("no link node found")
	}
	if link.Href != "https://example.com/docs" {
		t.Errorf("href = %q", link.Href)
	}
	if link.PlainText() != "the docs" {
		t.Errorf("link text = %q", link.PlainText())
	}
}

func TestRender_StrongAndEmphasis(t *testing.T) {
	nodes := Render("Hello! I'm your AI assistant for **Mathematics**. I'm set to *beginner* level.")
	if len(nodes) != 1 || nodes[0].Kind != KindParagraph {
		t.Fatalf("got %+v, want one paragraph", nodes)
	}
	var kinds []Kind
	for _, c := range nodes[0].Children {
		kinds = append(kinds, c.Kind)
	}
	wantStrong, wantEm := false, false
	for _, k := range kinds {
		if k == KindStrong {
			wantStrong = true
		}
		if k == KindEmphasis {
			wantEm = true
		}
	}
	if !wantStrong || !wantEm {
		t.Errorf("child kinds = %v, want strong and emphasis present", kinds)
	}
}

// =============================================================================
// CODE BLOCK TESTS
// =============================================================================

func TestRender_FencedCodeWithLanguage(t *testing.T) {
	src := "Before.\n\n```python\ndef f(n):\n    return n\n```\n\nAfter."
	nodes := Render(src)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	code := nodes[1]
	if code.Kind != KindCodeBlock {
		t.Fatalf("middle node kind = %v, want codeblock", code.Kind)
	}
	if code.Language != "python" {
		t.Errorf("language = %q, want python", code.Language)
	}
	if code.Text != "def f(n):\n    return n" {
		t.Errorf("code text = %q", code.Text)
	}
}

func TestRender_FencedCodeWithoutLanguage(t *testing.T) {
	nodes := Render("```\nplain\n```\n")
	if len(nodes) != 1 || nodes[0].Kind != KindCodeBlock {
		t.Fatalf("got %+v, want one code block", nodes)
	}
	if nodes[0].Language != "" {
		t.Errorf("language = %q, want empty", nodes[0].Language)
	}
	if nodes[0].Text != "plain" {
		t.Errorf("text = %q, want plain (trailing newline stripped)", nodes[0].Text)
	}
}

func TestRender_CodePreservesInteriorNewlines(t *testing.T) {
	nodes := Render("```\na\n\nb\n```\n")
	if nodes[0].Text != "a\n\nb" {
		t.Errorf("text = %q, want interior blank line preserved", nodes[0].Text)
	}
}

func TestRender_InlineCode(t *testing.T) {
	nodes := Render("Use `fmt.Println` to print.")
	var found bool
	for _, c := range nodes[0].Children {
		if c.Kind == KindInlineCode && c.Text == "fmt.Println" {
			found = true
		}
	}
	if !found {
		t.Errorf("inline code node missing: %+v", nodes[0].Children)
	}
}

// Unterminated fences arrive constantly while a response is still streaming;
// they must render as a single trailing code node running to end of text.
func TestRender_UnterminatedFence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		lang string
		text string
	}{
		{
			name: "open fence with language",
			src:  "Here is code:\n\n```go\nfunc main() {",
			lang: "go",
			text: "func main() {",
		},
		{
			name: "open fence only",
			src:  "```python\n",
			lang: "python",
			text: "",
		},
		{
			name: "bare marker at end",
			src:  "text\n\n```",
			lang: "",
			text: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes := Render(tc.src)
			if len(nodes) == 0 {
				t.Fatal("no nodes produced")
			}
			last := nodes[len(nodes)-1]
			if last.Kind != KindCodeBlock {
				t.Fatalf("trailing node kind = %v, want codeblock", last.Kind)
			}
			if last.Language != tc.lang {
				t.Errorf("language = %q, want %q", last.Language, tc.lang)
			}
			if last.Text != tc.text {
				t.Errorf("text = %q, want %q", last.Text, tc.text)
			}
			codeCount := 0
			for _, n := range nodes {
				if n.Kind == KindCodeBlock {
					codeCount++
				}
			}
			if codeCount != 1 {
				t.Errorf("got %d code nodes, want exactly 1", codeCount)
			}
		})
	}
}

// =============================================================================
// DETERMINISM AND ROUND-TRIP TESTS
// =============================================================================

func TestRender_Deterministic(t *testing.T) {
	inputs := []string{
		"",
		"plain prose",
		"# h\n\npara with `code` and **bold**\n\n```go\nx := 1\n```\n",
		"| a | b |\n| - | - |\n| 1 | 2 |\n",
		"broken ```fence\nno closing",
		strings.Repeat("- item\n", 50),
	}
	for _, src := range inputs {
		a := Render(src)
		b := Render(src)
		if !EqualNodes(a, b) {
			t.Errorf("Render not deterministic for %q", src)
		}
	}
}

func TestRender_RoundTrip(t *testing.T) {
	src := strings.Join([]string{
		"# Recursion",
		"",
		"A function that calls **itself** is *recursive*. See [docs](https://go.dev).",
		"",
		"## Example",
		"",
		"```go",
		"func fact(n int) int {",
		"\tif n == 0 {",
		"\t\treturn 1",
		"\t}",
		"\treturn n * fact(n-1)",
		"}",
		"```",
		"",
		"> Every recursive function needs a base case.",
		"",
		"- uses `fact`",
		"- terminates",
		"",
		"1. first",
		"2. second",
		"",
		"| n | fact |",
		"| --- | --- |",
		"| 0 | 1 |",
		"| 3 | 6 |",
		"",
	}, "\n")

	once := Render(src)
	again := Render(Markup(once))
	if !EqualNodes(once, again) {
		t.Errorf("round-trip not stable:\nfirst:  %+v\nsecond: %+v", once, again)
	}
}

func TestRender_RoundTripNestedStructures(t *testing.T) {
	inputs := []string{
		"- outer\n  - inner one\n  - inner two\n- outer two\n",
		"> quoted intro\n>\n> - first\n> - second\n",
		"| call | result |\n| --- | --- |\n| `fact(0)` | 1 |\n| `fact(3)` | 6 |\n",
		"> partial answer\n>\n> ```go\n> x := 1\n",
		"inline <em>markup</em> survives\n",
	}
	for _, src := range inputs {
		once := Render(src)
		again := Render(Markup(once))
		if !EqualNodes(once, again) {
			t.Errorf("round-trip not stable for %q:\nfirst:  %+v\nsecond: %+v", src, once, again)
		}
	}
}

func TestMarkup_EmptyNodes(t *testing.T) {
	if Markup(nil) != "" {
		t.Errorf("Markup(nil) = %q, want empty", Markup(nil))
	}
}
