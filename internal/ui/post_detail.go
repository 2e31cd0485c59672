package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/postdeck/internal/collection"
	"github.com/five82/postdeck/internal/fetch"
	"github.com/five82/postdeck/internal/placeholder"
)

// commentsPage pages the comments of the loaded post.
func (m Model) commentsPage(detail fetch.PostDetail) collection.Page[placeholder.Comment] {
	return collection.Derive(detail.Comments, collection.CommentSpec(), collection.ViewState{
		PageSize: collection.CommentPageSize(detail.Post.ID),
		Page:     m.commentPage,
	})
}

func (m Model) handlePostDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.postDetail.Snapshot()
	if snap.Status != fetch.Success {
		return m, nil
	}
	detail := snap.Value
	page := m.commentsPage(detail)

	switch {
	case key.Matches(msg, m.keys.PrevPage):
		m.commentPage = collection.ClampPage(page.Number-1, page.TotalPages)
		m.detailScroll = 0
	case key.Matches(msg, m.keys.NextPage):
		m.commentPage = collection.ClampPage(page.Number+1, page.TotalPages)
		m.detailScroll = 0
	case key.Matches(msg, m.keys.Up):
		m.detailScroll = max(m.detailScroll-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.detailScroll++
	case key.Matches(msg, m.keys.Top):
		m.detailScroll = 0
	case key.Matches(msg, m.keys.OpenAuthor):
		return m, m.openUser(detail.Post.UserID)
	case key.Matches(msg, m.keys.Share):
		return m, m.openShareForm(detail.Post)
	}
	return m, nil
}

func (m Model) renderPostDetail() string {
	height := m.contentHeight()
	title := m.screenTitle()
	snap := m.postDetail.Snapshot()
	if snap.Status != fetch.Success {
		return m.renderTitledBox(title, m.tr.T("status.loading"), m.width, height, true)
	}

	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	detail := snap.Value
	inner := max(m.width-4, 10)

	author := m.tr.T("post.unknown_author")
	if detail.Author != nil {
		author = detail.Author.DisplayName()
	}

	var lines []string
	for _, l := range wrap(detail.Post.Title, inner) {
		lines = append(lines, styles.Text.Bold(true).Render(l))
	}
	lines = append(lines, styles.MutedText.Render(m.tr.Get("post.by", map[string]any{"author": author})), "")
	for _, l := range wrap(detail.Post.Body, inner) {
		lines = append(lines, styles.Text.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, m.renderComments(styles, detail, inner)...)

	// Keep at least one screen of text in view.
	offset := min(m.detailScroll, max(len(lines)-(height-2), 0))
	lines = lines[offset:]

	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

func (m Model) renderComments(styles Styles, detail fetch.PostDetail, inner int) []string {
	if detail.CommentsErr != nil {
		return []string{styles.WarningText.Render(m.tr.T("post.comments_unavailable"))}
	}

	page := m.commentsPage(detail)
	header := styles.AccentText.Bold(true).Render(m.tr.Get("post.comments", map[string]any{"count": page.TotalItems}))
	if page.TotalPages > 1 {
		header += "   " + styles.MutedText.Render(m.tr.Get("common.page", map[string]any{"page": page.Number, "pages": page.TotalPages}))
	}
	lines := []string{header}

	if page.TotalItems == 0 {
		return append(lines, styles.MutedText.Render(m.tr.T("post.no_comments")))
	}
	for _, c := range page.Items {
		lines = append(lines, "", styles.Text.Bold(true).Render(truncate(singleLine(c.Name), inner))+"  "+styles.FaintText.Render(c.Email))
		for _, l := range wrap(c.Body, inner) {
			lines = append(lines, styles.MutedText.Render(l))
		}
	}
	return lines
}
