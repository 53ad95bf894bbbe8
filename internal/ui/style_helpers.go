package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barStyle renders status bar segments on a solid background. Every cell,
// spaces and separators included, carries the background, otherwise the
// reset codes between styled runs leave gaps in the bar.
type barStyle struct {
	bg    lipgloss.Color
	space string
}

func newBarStyle(bgColor string) barStyle {
	bg := lipgloss.Color(bgColor)
	return barStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render applies style to text word by word, joining with background spaces.
func (b barStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Field renders "label value", e.g. "Fields: 12".
func (b barStyle) Field(label, value string, labelStyle, valueStyle lipgloss.Style) string {
	return b.Render(label, labelStyle) + b.space + b.Render(value, valueStyle)
}

// Hint renders a command hint as "key:desc".
func (b barStyle) Hint(key, desc string, keyStyle, descStyle lipgloss.Style) string {
	return b.Render(key, keyStyle) + b.fill(":") + b.Render(desc, descStyle)
}

// Join joins segments with gap background spaces between them.
func (b barStyle) Join(parts []string, gap int) string {
	return strings.Join(parts, b.fill(strings.Repeat(" ", gap)))
}

func (b barStyle) fill(s string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(s)
}
