package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"
)

// startSearch focuses the search input on the visible list.
func (m Model) startSearch(current string) (tea.Model, tea.Cmd) {
	m.searching = true
	m.search.SetValue(current)
	m.search.CursorEnd()
	switch m.route.screen {
	case ScreenUsers:
		m.search.Placeholder = m.tr.T("users.search_placeholder")
	default:
		m.search.Placeholder = m.tr.T("posts.search_placeholder")
	}
	m.search.Width = max(m.width-8, 10)
	return m, tea.Batch(m.search.Focus(), textinput.Blink)
}

// handleSearchKey filters as the user types. Enter keeps the term, esc
// clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch(m.search.Value())
	return m, cmd
}

func (m *Model) applySearch(term string) {
	switch m.route.screen {
	case ScreenPosts:
		if m.postView.State().Search != term {
			m.postView.SetSearch(term)
			m.postCursor = 0
		}
	case ScreenUsers:
		if m.userView.State().Search != term {
			m.userView.SetSearch(term)
			m.userCursor = 0
		}
	}
}
