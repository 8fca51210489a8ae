// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the tutor TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tutor-tui/internal/render"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
	"github.com/jeranaias/tutor-tui/internal/util"
)

// =============================================================================
// MARKDOWN NODE RENDERER
// =============================================================================

var (
	headingStyle    = lipgloss.NewStyle().Foreground(styles.Indigo).Bold(true)
	blockquoteStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary).Italic(true)
	strongStyle     = lipgloss.NewStyle().Bold(true)
	emphasisStyle   = lipgloss.NewStyle().Italic(true)
	linkStyle       = lipgloss.NewStyle().Foreground(styles.Sky).Underline(true)
	tableHeadStyle  = lipgloss.NewStyle().Bold(true).Foreground(styles.Indigo)
)

// RenderNodes renders a parsed message body for terminal display, wrapped to
// the given width. Blocks are separated by blank lines.
func RenderNodes(nodes []render.Node, width int) string {
	if width <= 0 {
		width = 80
	}
	var blocks []string
	for _, n := range nodes {
		if block := renderBlock(n, width); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n render.Node, width int) string {
	switch n.Kind {
	case render.KindParagraph:
		return wrap(renderInlines(n.Children), width)

	case render.KindHeading:
		prefix := strings.Repeat("#", n.Level) + " "
		return headingStyle.Render(prefix + renderInlines(n.Children))

	case render.KindList:
		return renderList(n, width)

	case render.KindBlockquote:
		var inner []string
		for _, c := range n.Children {
			inner = append(inner, renderBlock(c, width-2))
		}
		var out []string
		for _, line := range strings.Split(strings.Join(inner, "\n"), "\n") {
			out = append(out, blockquoteStyle.Render("| "+line))
		}
		return strings.Join(out, "\n")

	case render.KindCodeBlock:
		cb := NewCodeBlock(n.Language, n.Text)
		cb.MaxWidth = width
		return cb.Render()

	case render.KindTable:
		return renderTable(n, width)

	case render.KindText:
		return wrap(n.Text, width)

	default:
		return wrap(renderInlines([]render.Node{n}), width)
	}
}

func renderList(n render.Node, width int) string {
	var lines []string
	for i, item := range n.Children {
		marker := "- "
		if n.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}

		var parts []string
		for _, c := range item.Children {
			parts = append(parts, renderBlock(c, width-len(marker)))
		}
		body := strings.Split(strings.Join(parts, "\n"), "\n")
		indent := strings.Repeat(" ", len(marker))
		for j, line := range body {
			if j == 0 {
				lines = append(lines, marker+line)
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func renderTable(n render.Node, width int) string {
	// Column widths come from the widest cell per column.
	var widths []int
	rows := make([][]string, 0, len(n.Children))
	for _, row := range n.Children {
		var cells []string
		for i, cell := range row.Children {
			text := renderInlines(cell.Children)
			cells = append(cells, text)
			if w := util.StringWidth(stripANSI(text)); i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, cells)
	}

	var out []string
	for ri, cells := range rows {
		var cols []string
		for i, cell := range cells {
			pad := widths[i] - util.StringWidth(stripANSI(cell))
			if pad < 0 {
				pad = 0
			}
			text := cell + strings.Repeat(" ", pad)
			if ri == 0 {
				text = tableHeadStyle.Render(text)
			}
			cols = append(cols, text)
		}
		out = append(out, strings.Join(cols, "  "))
		if ri == 0 {
			var rule []string
			for _, w := range widths {
				rule = append(rule, strings.Repeat("-", w))
			}
			out = append(out, styles.HintStyle.Render(strings.Join(rule, "  ")))
		}
	}
	return strings.Join(out, "\n")
}

// renderInlines flattens inline children into a styled single string.
func renderInlines(nodes []render.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case render.KindText:
			b.WriteString(n.Text)
		case render.KindInlineCode:
			b.WriteString(RenderInlineCode(n.Text))
		case render.KindStrong:
			b.WriteString(strongStyle.Render(renderInlines(n.Children)))
		case render.KindEmphasis:
			b.WriteString(emphasisStyle.Render(renderInlines(n.Children)))
		case render.KindLink:
			label := renderInlines(n.Children)
			b.WriteString(linkStyle.Render(label))
			if n.Href != "" && n.Href != stripANSI(label) {
				b.WriteString(styles.HintStyle.Render(" (" + n.Href + ")"))
			}
		default:
			b.WriteString(n.PlainText())
		}
	}
	return b.String()
}

// wrap wraps plain-ish text, leaving lines that contain ANSI sequences alone
// since escape codes would be miscounted.
func wrap(text string, width int) string {
	if strings.Contains(text, "\x1b[") {
		return text
	}
	return strings.Join(util.WrapText(text, width), "\n")
}

// stripANSI removes CSI escape sequences for width measurement.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
