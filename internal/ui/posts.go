package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/postdeck/internal/collection"
	"github.com/five82/postdeck/internal/placeholder"
	"github.com/five82/postdeck/internal/prefs"
)

// currentPosts derives the visible page of the posts list.
func (m Model) currentPosts() collection.Page[placeholder.Post] {
	return m.postView.Derive(m.posts.Snapshot())
}

// selectedPost returns the post under the cursor.
func (m Model) selectedPost() (placeholder.Post, bool) {
	page := m.currentPosts()
	if m.postCursor < 0 || m.postCursor >= len(page.Items) {
		return placeholder.Post{}, false
	}
	return page.Items[m.postCursor], true
}

func (m Model) handlePostsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.currentPosts()

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.route = route{screen: ScreenUsers}
	case key.Matches(msg, m.keys.Search):
		return m.startSearch(m.postView.State().Search)
	case key.Matches(msg, m.keys.Author):
		m.postView.SetFilter(collection.Filter{AuthorID: m.nextAuthor(m.postView.State().Filter.AuthorID)})
		m.postCursor = 0
	case key.Matches(msg, m.keys.Sort):
		next := m.postView.State().Sort.Next()
		m.postView.SetSort(next)
		m.postCursor = 0
		m.savePrefs(func(p *prefs.Prefs) { p.Sort = string(next) })
	case key.Matches(msg, m.keys.PrevPage):
		m.postView.SetPage(page.Number-1, page.TotalPages)
		m.postCursor = 0
	case key.Matches(msg, m.keys.NextPage):
		m.postView.SetPage(page.Number+1, page.TotalPages)
		m.postCursor = 0
	case key.Matches(msg, m.keys.New):
		return m, m.openCreateForm()
	case key.Matches(msg, m.keys.Edit):
		if post, ok := m.selectedPost(); ok {
			return m, m.openEditForm(post)
		}
	case key.Matches(msg, m.keys.Delete):
		if post, ok := m.selectedPost(); ok {
			m.modal = m.confirmDelete(post, deleteCmd(m.ctx, m.postCtl, post.ID))
		}
	case key.Matches(msg, m.keys.Share):
		if post, ok := m.selectedPost(); ok {
			return m, m.openShareForm(post)
		}
	case key.Matches(msg, m.keys.OpenAuthor):
		if post, ok := m.selectedPost(); ok {
			return m, m.openUser(post.UserID)
		}
	case key.Matches(msg, m.keys.Open):
		if post, ok := m.selectedPost(); ok {
			return m, m.openPost(post.ID)
		}
	default:
		m.postCursor = moveCursor(m.postCursor, len(page.Items), msg, m.keys)
	}
	return m, nil
}

// focusPost moves the posts list to the page holding id and selects it.
// The list stays put when the current criteria hide id.
func (m *Model) focusPost(id int) {
	start := m.postView.State().Page
	total := m.currentPosts().TotalPages
	for n := 1; n <= total; n++ {
		m.postView.SetPage(n, total)
		for i, post := range m.currentPosts().Items {
			if post.ID == id {
				m.postCursor = i
				return
			}
		}
	}
	m.postView.SetPage(start, total)
}

// nextAuthor cycles the author filter: all, then each loaded user in id
// order, then all again.
func (m Model) nextAuthor(current int) int {
	ids := m.users.IDs()
	slices.Sort(ids)
	if len(ids) == 0 {
		return 0
	}
	if current == 0 {
		return ids[0]
	}
	for i, id := range ids {
		if id == current && i+1 < len(ids) {
			return ids[i+1]
		}
	}
	return 0
}

// moveCursor applies navigation keys to a cursor over n rows.
func moveCursor(cursor, n int, msg tea.KeyMsg, keys keyMap) int {
	if n == 0 {
		return 0
	}
	switch {
	case key.Matches(msg, keys.Up):
		cursor--
	case key.Matches(msg, keys.Down):
		cursor++
	case key.Matches(msg, keys.Top):
		cursor = 0
	case key.Matches(msg, keys.Bottom):
		cursor = n - 1
	}
	return min(max(cursor, 0), n-1)
}

// clampCursors keeps list cursors inside their pages after data changes.
func (m *Model) clampCursors() {
	clamp := func(cursor, n int) int { return min(max(cursor, 0), max(n-1, 0)) }
	m.postCursor = clamp(m.postCursor, len(m.currentPosts().Items))
	m.userCursor = clamp(m.userCursor, len(m.currentUsers().Items))
	if m.userPosts != nil {
		m.userPostCursor = clamp(m.userPostCursor, m.userPosts.Len())
	}
}

func (m Model) renderPosts() string {
	height := m.contentHeight()
	title := m.tr.T("posts.title")
	if !m.posts.Loaded() {
		return m.renderTitledBox(title, m.tr.T("status.loading"), m.width, height, true)
	}

	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	page := m.currentPosts()
	state := m.postView.State()

	var lines []string
	lines = append(lines, m.renderListSummary(styles, state, page.Number, page.TotalPages, page.TotalItems, m.authorFilterLabel(state.Filter.AuthorID)))
	if m.searching {
		lines = append(lines, m.search.View())
	}
	lines = append(lines, "")

	if len(page.Items) == 0 {
		lines = append(lines, styles.MutedText.Render(m.tr.T("posts.empty")))
	}

	inner := max(m.width-4, 10)
	authorWidth := min(24, inner/4)
	for i, post := range page.Items {
		author := m.authors.name(post.UserID)
		if author == "" {
			author = fmt.Sprintf("#%d", post.UserID)
		}
		id := fmt.Sprintf("#%-4d", post.ID)
		titleWidth := max(inner-lipgloss.Width(id)-authorWidth-4, 8)
		row := []string{id, padRight(truncate(singleLine(post.Title), titleWidth), titleWidth), truncate(author, authorWidth)}
		if m.rtl() {
			row = []string{truncate(author, authorWidth), padRight(truncate(singleLine(post.Title), titleWidth), titleWidth), id}
		}
		line := strings.Join(row, "  ")
		if i == m.postCursor {
			lines = append(lines, styles.Selected.Render(line))
		} else {
			lines = append(lines, styles.Text.Render(line))
		}
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

// renderListSummary renders the criteria line above a list.
func (m Model) renderListSummary(styles Styles, state collection.ViewState, pageNum, pages, total int, filter string) string {
	parts := []string{
		styles.MutedText.Render(m.tr.Get("common.page", map[string]any{"page": pageNum, "pages": pages})),
		styles.MutedText.Render(m.tr.Get("common.items", map[string]any{"count": total})),
		styles.FaintText.Render(m.tr.T("common.sort")+": ") + styles.AccentText.Render(m.sortLabel(state.Sort)),
	}
	if filter != "" {
		parts = append(parts, styles.FaintText.Render(m.tr.T("common.filter")+": ")+styles.AccentText.Render(filter))
	}
	if state.Search != "" && !m.searching {
		parts = append(parts, styles.FaintText.Render(m.tr.T("common.search")+": ")+styles.AccentText.Render(truncate(state.Search, 24)))
	}
	if m.rtl() {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}
	return strings.Join(parts, "   ")
}

func (m Model) authorFilterLabel(authorID int) string {
	if authorID == 0 {
		return m.tr.T("common.all_authors")
	}
	if name := m.authors.name(authorID); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", authorID)
}

// sortLabel names key for the visible list.
func (m Model) sortLabel(k collection.SortKey) string {
	if m.route.screen == ScreenUsers {
		switch k {
		case collection.SortTitle:
			return m.tr.T("sort.name")
		case collection.SortAuthor:
			return m.tr.T("sort.username")
		}
	}
	return m.tr.T("sort." + string(k))
}
