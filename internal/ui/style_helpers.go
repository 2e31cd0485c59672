package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments that share one background color. Lipgloss
// emits a reset between styled segments, which leaves unstyled gaps on
// colored bars; BgStyle styles every word and every separator instead.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style, giving every character the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", max(n, 0)))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Join joins parts with a styled separator. In right-to-left layouts the
// parts are laid out from the right edge, so their order is reversed.
func (b BgStyle) Join(parts []string, sep string, rtl bool) string {
	if rtl {
		parts = slices.Clone(parts)
		slices.Reverse(parts)
	}
	return strings.Join(parts, b.Sep(sep))
}

// FillLine pads rendered content to width with the background color,
// aligned to the reading edge.
func (b BgStyle) FillLine(content string, width int, rtl bool) string {
	style := lipgloss.NewStyle().Background(b.bg).Width(width)
	if rtl {
		style = style.Align(lipgloss.Right)
	}
	return style.Render(content)
}
