package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/postdeck/internal/fetch"
	"github.com/five82/postdeck/internal/placeholder"
)

// selectedUserPost returns the post under the cursor on the user screen.
func (m Model) selectedUserPost() (placeholder.Post, bool) {
	if m.userPosts == nil {
		return placeholder.Post{}, false
	}
	posts := m.userPosts.Snapshot()
	if m.userPostCursor < 0 || m.userPostCursor >= len(posts) {
		return placeholder.Post{}, false
	}
	return posts[m.userPostCursor], true
}

func (m Model) handleUserDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.userDetail.Snapshot().Status != fetch.Success {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		if post, ok := m.selectedUserPost(); ok {
			return m, m.openPost(post.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if post, ok := m.selectedUserPost(); ok {
			m.modal = m.confirmDelete(post, deleteCmd(m.ctx, m.userPostCtl, post.ID))
		}
	case key.Matches(msg, m.keys.Share):
		if post, ok := m.selectedUserPost(); ok {
			return m, m.openShareForm(post)
		}
	default:
		m.userPostCursor = moveCursor(m.userPostCursor, m.userPosts.Len(), msg, m.keys)
	}
	return m, nil
}

func (m Model) renderUserDetail() string {
	height := m.contentHeight()
	title := m.screenTitle()
	snap := m.userDetail.Snapshot()
	if snap.Status != fetch.Success {
		return m.renderTitledBox(title, m.tr.T("status.loading"), m.width, height, true)
	}

	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	user := snap.Value.User
	inner := max(m.width-4, 10)

	none := m.tr.T("common.none")
	orNone := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return none
		}
		return s
	}
	address := strings.TrimSpace(strings.Join(nonEmpty(user.Address.Street, user.Address.Suite, user.Address.City, user.Address.Zipcode), ", "))

	label := func(k string) string { return styles.FaintText.Render(padRight(m.tr.T(k), 10)) }
	lines := []string{
		styles.Text.Bold(true).Render(user.DisplayName()) + "  " + styles.MutedText.Render("@"+user.Username),
		"",
		label("user.email") + styles.Text.Render(orNone(user.Email)),
		label("user.phone") + styles.Text.Render(orNone(user.Phone)),
		label("user.website") + styles.Text.Render(orNone(user.Website)),
		label("user.company") + styles.Text.Render(orNone(user.Company.Name)),
		label("user.address") + styles.Text.Render(orNone(address)),
		"",
	}

	switch {
	case snap.Value.PostsErr != nil:
		lines = append(lines, styles.WarningText.Render(m.tr.T("user.posts_unavailable")))
	default:
		posts := m.userPosts.Snapshot()
		lines = append(lines, styles.AccentText.Bold(true).Render(m.tr.Get("user.posts", map[string]any{"count": len(posts)})))
		if len(posts) == 0 {
			lines = append(lines, styles.MutedText.Render(m.tr.T("user.no_posts")))
		}
		for i, post := range posts {
			line := fmt.Sprintf("#%-4d %s", post.ID, truncate(singleLine(post.Title), inner-7))
			if i == m.userPostCursor {
				lines = append(lines, styles.Selected.Render(line))
			} else {
				lines = append(lines, styles.Text.Render(line))
			}
		}
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
