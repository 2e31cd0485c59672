package ui

import (
	"log/slog"
)

// logMinLevel is the lowest level the logs screen shows.
func (m Model) logMinLevel() slog.Level {
	if m.logWarnOnly {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// renderLogs shows the tail of the application log.
func (m Model) renderLogs() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	title := m.tr.T("logs.title")
	if m.logWarnOnly {
		title += " · " + m.tr.T("keys.warnings")
	}
	if m.logFile != "" {
		title += " · " + truncate(m.logFile, 48)
	}

	var content string
	switch {
	case m.logErr != nil:
		content = styles.DangerText.Render(m.logErr.Error())
	case m.logCount == 0:
		content = styles.MutedText.Render(m.tr.T("logs.empty"))
	default:
		content = m.logViewport.View()
	}
	return m.renderTitledBox(title, content, m.width, m.contentHeight(), true)
}
