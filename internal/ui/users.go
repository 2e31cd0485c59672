package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/postdeck/internal/collection"
	"github.com/five82/postdeck/internal/placeholder"
)

func (m Model) currentUsers() collection.Page[placeholder.User] {
	return m.userView.Derive(m.users.Snapshot())
}

func (m Model) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.currentUsers()

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.route = route{screen: ScreenPosts}
	case key.Matches(msg, m.keys.Search):
		return m.startSearch(m.userView.State().Search)
	case key.Matches(msg, m.keys.Sort):
		m.userView.SetSort(m.userView.State().Sort.Next())
		m.userCursor = 0
	case key.Matches(msg, m.keys.PrevPage):
		m.userView.SetPage(page.Number-1, page.TotalPages)
		m.userCursor = 0
	case key.Matches(msg, m.keys.NextPage):
		m.userView.SetPage(page.Number+1, page.TotalPages)
		m.userCursor = 0
	case key.Matches(msg, m.keys.Open):
		if m.userCursor < len(page.Items) {
			return m, m.openUser(page.Items[m.userCursor].ID)
		}
	default:
		m.userCursor = moveCursor(m.userCursor, len(page.Items), msg, m.keys)
	}
	return m, nil
}

func (m Model) renderUsers() string {
	height := m.contentHeight()
	title := m.tr.T("users.title")
	if !m.users.Loaded() {
		return m.renderTitledBox(title, m.tr.T("status.loading"), m.width, height, true)
	}

	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	page := m.currentUsers()

	var lines []string
	lines = append(lines, m.renderListSummary(styles, m.userView.State(), page.Number, page.TotalPages, page.TotalItems, ""))
	if m.searching {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, "")

	if len(page.Items) == 0 {
		lines = append(lines, styles.MutedText.Render(m.tr.T("users.empty")))
	}

	inner := max(m.width-4, 10)
	col := max((inner-8)/3, 8)
	compact := m.width < LayoutCompactWidth
	for i, user := range page.Items {
		row := []string{
			fmt.Sprintf("#%-3d", user.ID),
			padRight(truncate(user.DisplayName(), col), col),
			padRight(truncate("@"+user.Username, col/2), col/2),
		}
		if !compact {
			row = append(row, truncate(user.Email, col))
		}
		if m.rtl() {
			for a, b := 0, len(row)-1; a < b; a, b = a+1, b-1 {
				row[a], row[b] = row[b], row[a]
			}
		}
		line := strings.Join(row, "  ")
		if i == m.userCursor {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Text.Render(line))
		}
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}
