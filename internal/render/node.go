// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render parses assistant markup into a sequence of typed nodes.
package render

// =============================================================================
// NODE KIND
// =============================================================================

// Kind discriminates the node variants produced by Render.
type Kind int

const (
	KindText Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBlockquote
	KindTable
	KindTableRow
	KindTableCell
	KindCodeBlock
	KindInlineCode
	KindLink
	KindStrong
	KindEmphasis
)

// String returns the name of the kind, for test output and debugging.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindListItem:
		return "listitem"
	case KindBlockquote:
		return "blockquote"
	case KindTable:
		return "table"
	case KindTableRow:
		return "tablerow"
	case KindTableCell:
		return "tablecell"
	case KindCodeBlock:
		return "codeblock"
	case KindInlineCode:
		return "inlinecode"
	case KindLink:
		return "link"
	case KindStrong:
		return "strong"
	case KindEmphasis:
		return "emphasis"
	default:
		return "unknown"
	}
}

// =============================================================================
// NODE TYPE
// =============================================================================

// Node is one element of rendered output. Which fields carry meaning depends
// on Kind:
//
//   - KindText, KindInlineCode, KindCodeBlock: Text
//   - KindCodeBlock: Language (may be empty)
//   - KindHeading: Level (1-6), Children
//   - KindList: Ordered, Children (KindListItem)
//   - KindTable: Children (KindTableRow, first row is the header)
//   - KindLink: Href, Children
//   - everything else: Children
type Node struct {
	Kind     Kind
	Level    int
	Ordered  bool
	Language string
	Text     string
	Href     string
	Children []Node
}

// PlainText flattens the node and its children into unstyled text. Used for
// clipboard fallbacks and previews.
func (n Node) PlainText() string {
	switch n.Kind {
	case KindText, KindInlineCode, KindCodeBlock:
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += c.PlainText()
	}
	return out
}

// Equal reports structural equality with another node.
func (n Node) Equal(o Node) bool {
	if n.Kind != o.Kind || n.Level != o.Level || n.Ordered != o.Ordered ||
		n.Language != o.Language || n.Text != o.Text || n.Href != o.Href {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// EqualNodes reports structural equality of two node sequences.
func EqualNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
