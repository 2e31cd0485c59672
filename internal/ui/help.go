package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"help.navigation", "help.lists", "help.detail", "help.general"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.tr.T("help.title")))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	groups := m.keys.FullHelp()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, group := range groups {
		b.WriteString(styles.AccentText.Bold(true).Render(m.tr.T(helpSectionTitles[i])))
		b.WriteString("\n")

		seen := make(map[string]bool, len(group))
		for _, binding := range group {
			h := binding.Help()
			// Up and Down share one description.
			if seen[h.Desc] {
				continue
			}
			seen[h.Desc] = true
			keys := h.Key
			switch h.Desc {
			case "keys.move":
				keys = "j/k"
			case "keys.pages":
				keys = "[ ]"
			}
			b.WriteString(keyStyle.Render(keys))
			b.WriteString(styles.Text.Render(m.tr.T(h.Desc)))
			b.WriteString("\n")
		}

		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	align := lipgloss.Left
	if m.rtl() {
		align = lipgloss.Right
	}
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44).
		Align(align)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
