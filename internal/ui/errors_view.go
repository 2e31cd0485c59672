package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderFailure renders the error or not-found view in the content area.
func (m Model) renderFailure(info failureInfo) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	title := m.tr.T("errors.title")
	if info.notFound {
		title = m.tr.T("errors.not_found_title")
	}
	message := info.message
	if message == "" {
		message = m.tr.T("errors.failure")
	}

	inner := max(m.width-8, 10)
	lines := []string{styles.DangerText.Render(title), ""}
	for _, l := range wrap(message, inner) {
		lines = append(lines, styles.Text.Render(l))
	}
	if info.err != nil && !info.notFound {
		lines = append(lines, "", styles.FaintText.Render(truncate(info.err.Error(), inner)))
	}
	lines = append(lines, "", styles.MutedText.Render(m.tr.T("errors.actions")))

	body := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return m.renderTitledBox(m.screenTitle(), "\n"+body, m.width, m.contentHeight(), true)
}
