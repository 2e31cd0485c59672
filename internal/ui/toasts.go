package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderToasts stacks the visible notifications, newest last.
func (m Model) renderToasts() string {
	toasts := m.notices.Visible()
	if len(toasts) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		color := m.theme.ToastColor(t.Type)
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(truncate(t.Title, ToastWidth-4))
		body := strings.Join(wrap(t.Message, ToastWidth-4), "\n")
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Background(lipgloss.Color(m.theme.Surface)).
			Foreground(lipgloss.Color(m.theme.Text)).
			Padding(0, 1).
			Width(ToastWidth - 2).
			Align(m.align()).
			Render(title + "\n" + body)
		boxes = append(boxes, box)
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

// overlayToasts draws the toast stack over the bottom corner of base: the
// right corner for left-to-right locales, the left one otherwise.
func (m Model) overlayToasts(base string) string {
	stack := m.renderToasts()
	if stack == "" || m.width < ToastWidth+2 {
		return base
	}
	return overlayBottom(base, stack, m.width, m.rtl())
}

// overlayBottom replaces the bottom lines of base with block, aligned to the
// right edge or, when left is set, the left edge.
func overlayBottom(base, block string, width int, left bool) string {
	lines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")
	blockWidth := lipgloss.Width(block)

	// Leave the last row of the content box border visible.
	start := len(lines) - len(blockLines) - 1
	if start < 0 {
		start = 0
	}
	for i, bl := range blockLines {
		row := start + i
		if row >= len(lines) {
			break
		}
		bl += strings.Repeat(" ", max(blockWidth-lipgloss.Width(bl), 0))
		line := lines[row]
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += strings.Repeat(" ", gap)
		}
		if left {
			lines[row] = bl + ansi.TruncateLeft(line, blockWidth, "")
		} else {
			lines[row] = ansi.Truncate(line, width-blockWidth, "") + bl
		}
	}
	return strings.Join(lines, "\n")
}
