// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render parses assistant markup into a sequence of typed nodes.
package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// markdown is the shared parser instance. Parsing through it is stateless,
// so a single instance serves every call.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// =============================================================================
// RENDER
// =============================================================================

// Render parses markup text into an ordered sequence of nodes. It is pure
// and deterministic: identical input yields structurally identical output,
// and no input makes it fail. An unterminated fenced code block runs to the
// end of the text and produces a single trailing code node.
func Render(text string) []Node {
	source := []byte(text)
	doc := markdown.Parser().Parse(gmtext.NewReader(source))
	return blocks(doc, source)
}

// blocks converts the block-level children of n.
func blocks(n ast.Node, source []byte) []Node {
	var out []Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if b, ok := block(c, source); ok {
			out = append(out, b)
		}
	}
	return out
}

// block converts a single block-level node. The bool result is false for
// constructs that produce no output (thematic breaks, raw HTML noise).
func block(n ast.Node, source []byte) (Node, bool) {
	switch b := n.(type) {
	case *ast.Paragraph:
		return Node{Kind: KindParagraph, Children: inlines(b, source)}, true

	case *ast.TextBlock:
		return Node{Kind: KindParagraph, Children: inlines(b, source)}, true

	case *ast.Heading:
		return Node{Kind: KindHeading, Level: b.Level, Children: inlines(b, source)}, true

	case *ast.List:
		return list(b, source), true

	case *ast.Blockquote:
		return Node{Kind: KindBlockquote, Children: blocks(b, source)}, true

	case *ast.FencedCodeBlock:
		return Node{
			Kind:     KindCodeBlock,
			Language: string(b.Language(source)),
			Text:     codeText(b, source),
		}, true

	case *ast.CodeBlock:
		return Node{Kind: KindCodeBlock, Text: codeText(b, source)}, true

	case *east.Table:
		return table(b, source), true

	case *ast.HTMLBlock:
		// Raw HTML is carried through verbatim as a paragraph of text.
		txt := strings.TrimSuffix(linesText(b, source), "\n")
		if txt == "" {
			return Node{}, false
		}
		return Node{Kind: KindParagraph, Children: []Node{{Kind: KindText, Text: txt}}}, true
	}

	return Node{}, false
}

// list converts a list and its items, recursing into nested lists.
func list(l *ast.List, source []byte) Node {
	node := Node{Kind: KindList, Ordered: l.IsOrdered()}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		li := Node{Kind: KindListItem}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch cb := c.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				li.Children = append(li.Children, inlines(cb, source)...)
			case *ast.List:
				li.Children = append(li.Children, list(cb, source))
			default:
				if b, ok := block(c, source); ok {
					li.Children = append(li.Children, b)
				}
			}
		}
		node.Children = append(node.Children, li)
	}
	return node
}

// table converts a GFM table. Rows are row-major; the first row is the
// header row.
func table(t *east.Table, source []byte) Node {
	node := Node{Kind: KindTable}
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		row := Node{Kind: KindTableRow}
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			row.Children = append(row.Children, Node{
				Kind:     KindTableCell,
				Children: inlines(c, source),
			})
		}
		node.Children = append(node.Children, row)
	}
	return node
}

// =============================================================================
// INLINE CONVERSION
// =============================================================================

// inlines converts the inline children of a block node, merging adjacent
// text runs so the output shape does not depend on how the parser split
// segments.
func inlines(n ast.Node, source []byte) []Node {
	var out []Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = appendInline(out, c, source)
	}
	return mergeText(out)
}

func appendInline(out []Node, n ast.Node, source []byte) []Node {
	switch i := n.(type) {
	case *ast.Text:
		txt := string(i.Segment.Value(source))
		if i.SoftLineBreak() || i.HardLineBreak() {
			txt += "\n"
		}
		return append(out, Node{Kind: KindText, Text: txt})

	case *ast.String:
		return append(out, Node{Kind: KindText, Text: string(i.Value)})

	case *ast.CodeSpan:
		return append(out, Node{Kind: KindInlineCode, Text: nodeText(i, source)})

	case *ast.Emphasis:
		kind := KindEmphasis
		if i.Level >= 2 {
			kind = KindStrong
		}
		return append(out, Node{Kind: kind, Children: inlines(i, source)})

	case *ast.Link:
		return append(out, Node{
			Kind:     KindLink,
			Href:     string(i.Destination),
			Children: inlines(i, source),
		})

	case *ast.AutoLink:
		url := string(i.URL(source))
		return append(out, Node{
			Kind:     KindLink,
			Href:     url,
			Children: []Node{{Kind: KindText, Text: string(i.Label(source))}},
		})

	case *ast.Image:
		// Images degrade to links in a text UI.
		return append(out, Node{
			Kind:     KindLink,
			Href:     string(i.Destination),
			Children: inlines(i, source),
		})

	case *east.Strikethrough:
		// No dedicated node kind; the content still renders.
		return append(out, inlines(i, source)...)

	case *ast.RawHTML:
		var sb strings.Builder
		for j := 0; j < i.Segments.Len(); j++ {
			seg := i.Segments.At(j)
			sb.Write(seg.Value(source))
		}
		return append(out, Node{Kind: KindText, Text: sb.String()})
	}

	// Unknown inline constructs degrade to their flattened children.
	var nested []Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		nested = appendInline(nested, c, source)
	}
	return append(out, nested...)
}

// mergeText collapses adjacent text nodes into one.
func mergeText(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == KindText && len(out) > 0 && out[len(out)-1].Kind == KindText {
			out[len(out)-1].Text += n.Text
			continue
		}
		out = append(out, n)
	}
	// Strip a trailing line break left by the block's last segment.
	if last := len(out) - 1; last >= 0 && out[last].Kind == KindText {
		out[last].Text = strings.TrimSuffix(out[last].Text, "\n")
		if out[last].Text == "" {
			out = out[:last]
		}
	}
	return out
}

// =============================================================================
// TEXT EXTRACTION HELPERS
// =============================================================================

// codeText returns the verbatim body of a code block with the single
// trailing newline before the closing fence stripped.
func codeText(n ast.Node, source []byte) string {
	return strings.TrimSuffix(linesText(n, source), "\n")
}

// linesText concatenates a block node's raw source lines.
func linesText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}

// nodeText concatenates the text segments beneath an inline node.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(nodeText(c, source))
		}
	}
	return sb.String()
}
