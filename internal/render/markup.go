// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render parses assistant markup into a sequence of typed nodes.
package render

import (
	"strconv"
	"strings"
)

// =============================================================================
// MARKUP SERIALIZATION
// =============================================================================

// Markup re-serializes a node sequence into markup text. For the supported
// construct set it is the inverse of Render up to structural equality:
// Render(Markup(Render(text))) yields the same node sequence.
func Markup(nodes []Node) string {
	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeBlock(&sb, n, "")
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, n Node, prefix string) {
	switch n.Kind {
	case KindParagraph:
		sb.WriteString(prefix)
		writeInlines(sb, n.Children)
		sb.WriteString("\n")

	case KindHeading:
		sb.WriteString(prefix)
		sb.WriteString(strings.Repeat("#", n.Level))
		sb.WriteString(" ")
		writeInlines(sb, n.Children)
		sb.WriteString("\n")

	case KindList:
		writeList(sb, n, prefix)

	case KindBlockquote:
		var inner strings.Builder
		for i, c := range n.Children {
			if i > 0 {
				inner.WriteString("\n")
			}
			writeBlock(&inner, c, "")
		}
		for _, line := range strings.Split(strings.TrimSuffix(inner.String(), "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString("> ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}

	case KindCodeBlock:
		sb.WriteString(prefix)
		sb.WriteString("```")
		sb.WriteString(n.Language)
		sb.WriteString("\n")
		if n.Text != "" {
			for _, line := range strings.Split(n.Text, "\n") {
				sb.WriteString(prefix)
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString(prefix)
		sb.WriteString("```\n")

	case KindTable:
		writeTable(sb, n, prefix)

	default:
		// Inline node at block level: wrap it in a line of its own.
		sb.WriteString(prefix)
		writeInlines(sb, []Node{n})
		sb.WriteString("\n")
	}
}

func writeList(sb *strings.Builder, n Node, prefix string) {
	for i, item := range n.Children {
		marker := "- "
		if n.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		sb.WriteString(prefix)
		sb.WriteString(marker)

		indent := prefix + strings.Repeat(" ", len(marker))
		wroteLine := false
		for _, c := range item.Children {
			if c.Kind == KindList {
				if !wroteLine {
					sb.WriteString("\n")
					wroteLine = true
				}
				writeList(sb, c, indent)
				continue
			}
			writeInlines(sb, []Node{c})
		}
		if !wroteLine {
			sb.WriteString("\n")
		}
	}
}

func writeTable(sb *strings.Builder, n Node, prefix string) {
	for i, row := range n.Children {
		sb.WriteString(prefix)
		sb.WriteString("|")
		for _, cell := range row.Children {
			sb.WriteString(" ")
			writeInlines(sb, cell.Children)
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
		if i == 0 {
			// Delimiter row after the header.
			sb.WriteString(prefix)
			sb.WriteString("|")
			for range row.Children {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
}

func writeInlines(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			sb.WriteString(n.Text)
		case KindInlineCode:
			sb.WriteString("`")
			sb.WriteString(n.Text)
			sb.WriteString("`")
		case KindStrong:
			sb.WriteString("**")
			writeInlines(sb, n.Children)
			sb.WriteString("**")
		case KindEmphasis:
			sb.WriteString("*")
			writeInlines(sb, n.Children)
			sb.WriteString("*")
		case KindLink:
			sb.WriteString("[")
			writeInlines(sb, n.Children)
			sb.WriteString("](")
			sb.WriteString(n.Href)
			sb.WriteString(")")
		default:
			writeInlines(sb, n.Children)
		}
	}
}

