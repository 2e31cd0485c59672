package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderHeader renders the status bar: app name, screen, API health,
// pending writes, locale and theme.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render(m.tr.T("app.name"), styles.Logo),
		bg.Render(m.screenTitle(), styles.Text.Bold(true)),
		m.renderHealth(styles, bg),
	}

	if pending := m.pendingCount(); pending > 0 {
		parts = append(parts, bg.Render(m.tr.Get("status.pending", map[string]any{"count": pending}), styles.WarningText))
	}

	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.Render(m.tr.T("locale."+m.tr.Locale()), styles.MutedText),
			bg.Render(m.tr.T("common.theme"), styles.FaintText)+bg.Space()+bg.Render(m.theme.Name, styles.MutedText),
		)
	}

	content := bg.Join(parts, "  ", m.rtl())
	return styles.Header.Width(m.width).Align(m.align()).Render(ansi.Truncate(content, max(m.width-2, 1), "…"))
}

// renderHealth shows what the background prober last saw.
func (m Model) renderHealth(styles Styles, bg BgStyle) string {
	snap := m.health.Snapshot()
	switch {
	case snap.LastChecked.IsZero():
		return bg.Render("● "+m.tr.T("status.checking"), styles.InfoText)
	case snap.IsOffline(), snap.Breaker == "open":
		return bg.Render("● "+m.tr.T("status.offline"), styles.DangerText)
	default:
		return bg.Render("● "+m.tr.T("status.online"), styles.SuccessText)
	}
}

func (m Model) screenTitle() string {
	switch m.route.screen {
	case ScreenUsers:
		return m.tr.T("nav.users")
	case ScreenPost:
		return m.tr.Get("post.title", map[string]any{"id": m.route.id})
	case ScreenUser:
		return m.tr.Get("user.title", map[string]any{"id": m.route.id})
	case ScreenLogs:
		return m.tr.T("nav.logs")
	default:
		return m.tr.T("nav.posts")
	}
}

// pendingCount is the number of writes and emails that have not settled.
func (m Model) pendingCount() int {
	n := len(m.postCtl.Pending()) + m.sharing
	if m.userPostCtl != nil {
		n += len(m.userPostCtl.Pending())
	}
	return n
}

// renderCommandBar renders the key hints for the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	if _, failed := m.failure(); failed {
		commands = []cmd{{"b", "keys.back"}, {"r", "keys.reload"}, {"h", "keys.home"}}
	} else {
		switch m.route.screen {
		case ScreenPosts:
			commands = []cmd{
				{"/", "keys.search"},
				{"a", "keys.author"},
				{"s", "keys.sort"},
				{"[ ]", "keys.pages"},
				{"n", "keys.new"},
				{"e", "keys.edit"},
				{"d", "keys.delete"},
				{"tab", "keys.tab"},
			}
		case ScreenUsers:
			commands = []cmd{
				{"/", "keys.search"},
				{"s", "keys.sort"},
				{"[ ]", "keys.pages"},
				{"enter", "keys.open"},
				{"tab", "keys.tab"},
			}
		case ScreenPost:
			commands = []cmd{
				{"[ ]", "keys.pages"},
				{"u", "keys.open_author"},
				{"m", "keys.share"},
				{"b", "keys.back"},
			}
		case ScreenUser:
			commands = []cmd{
				{"enter", "keys.open"},
				{"d", "keys.delete"},
				{"b", "keys.back"},
			}
		case ScreenLogs:
			commands = []cmd{
				{"j/k", "keys.move"},
				{"w", "keys.warnings"},
				{"r", "keys.reload"},
				{"b", "keys.back"},
			}
		}
		commands = append(commands, cmd{"L", "keys.locale"}, cmd{"?", "keys.help"})
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(m.tr.T(c.desc), styles.MutedText))
	}

	if term := m.activeSearch(); term != "" && !m.searching {
		segments = append(segments, bg.Render("/"+truncate(term, 18), styles.AccentText))
	}

	content := bg.Join(segments, "  ", m.rtl())
	return styles.Footer.Width(m.width).Align(m.align()).Render(ansi.Truncate(content, max(m.width-2, 1), "…"))
}

// activeSearch returns the search term of the visible list.
func (m Model) activeSearch() string {
	switch m.route.screen {
	case ScreenPosts:
		return m.postView.State().Search
	case ScreenUsers:
		return m.userView.State().Search
	}
	return ""
}

func (m Model) align() lipgloss.Position {
	if m.rtl() {
		return lipgloss.Right
	}
	return lipgloss.Left
}

// padLines pads s with empty lines to exactly height lines.
func padLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
