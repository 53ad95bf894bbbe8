package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/schemaview/internal/compose"
)

// treeRenderer lays a composed tree out as terminal text. Percent widths are
// resolved against the width available to the parent box.
type treeRenderer struct {
	theme Theme
}

// renderTree renders tree into width columns. An empty tree renders nothing.
func renderTree(tree compose.Node, theme Theme, width int) string {
	if tree.Empty() {
		return ""
	}
	return treeRenderer{theme: theme}.render(tree, width)
}

func (r treeRenderer) render(n compose.Node, width int) string {
	width = max(width, 1)
	switch n.Kind {
	case compose.KindBox:
		return r.box(n, width)
	case compose.KindText:
		return r.text(n, width)
	case compose.KindIcon:
		return r.textStyle(n.Style).PaddingRight(n.Style.PaddingRight).Render(n.Text)
	default:
		return ""
	}
}

func (r treeRenderer) text(n compose.Node, width int) string {
	value := n.Text
	if !n.Style.PreserveWhitespace {
		value = strings.Join(strings.Fields(value), " ")
	}
	if value == "" {
		return ""
	}
	style := r.textStyle(n.Style).Width(width)
	if n.Style.PreserveWhitespace {
		style = style.TabWidth(lipgloss.NoTabConversion)
	}
	return style.Render(value)
}

func (r treeRenderer) textStyle(s compose.Style) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.theme.Text))
	if s.Color == compose.ColorLight {
		style = style.Foreground(lipgloss.Color(r.theme.Muted))
	}
	if s.Weight == compose.WeightStrong || s.Heading {
		style = style.Bold(true)
	}
	return style
}

func (r treeRenderer) box(n compose.Node, width int) string {
	s := n.Style
	outer := max(width-2*s.Margin, 1)
	vertical := s.Padding + s.PaddingY
	left := s.Padding
	right := s.Padding + s.PaddingRight
	inner := max(outer-left-right, 1)

	var body string
	if s.Direction == compose.Row {
		body = lipgloss.JoinHorizontal(lipgloss.Top, r.row(n.Children, inner)...)
	} else {
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			parts = append(parts, r.render(child, percentOf(inner, child.Style.WidthPercent)))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	style := lipgloss.NewStyle().
		Width(outer).
		Padding(vertical, right, vertical, left).
		Margin(s.Margin).
		MarginTop(s.Margin + s.MarginTop)
	switch s.Border {
	case compose.BorderThick:
		style = style.
			Border(lipgloss.ThickBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color(r.theme.BorderStrong))
	case compose.BorderDefault:
		style = style.
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color(r.theme.Border))
	}
	return style.Render(body)
}

// row renders children side by side. Children without a percent width take
// their natural width; the last child absorbs rounding and leftover space.
func (r treeRenderer) row(children []compose.Node, inner int) []string {
	if len(children) == 0 {
		return nil
	}
	parts := make([]string, 0, len(children))
	used := 0
	last := len(children) - 1
	for i, child := range children {
		var w int
		switch {
		case i == last:
			w = max(inner-used, 1)
		case child.Style.WidthPercent > 0:
			w = inner * child.Style.WidthPercent / 100
		default:
			w = lipgloss.Width(r.render(child, inner))
		}
		used += w
		parts = append(parts, r.render(child, w))
	}
	return parts
}

func percentOf(width, percent int) int {
	if percent <= 0 {
		return width
	}
	return max(width*percent/100, 1)
}
