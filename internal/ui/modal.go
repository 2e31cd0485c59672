package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/postdeck/internal/placeholder"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks before running a destructive command. Texts are
// translated when the dialog opens.
type confirmModal struct {
	title     string
	message   string
	hint      string
	onConfirm tea.Cmd
	rtl       bool
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		return c, c.onConfirm, true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	align := lipgloss.Left
	if c.rtl {
		align = lipgloss.Right
	}

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.message))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(c.hint))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(min(56, max(width-4, 20))).
		Align(align)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// confirmDelete builds the dialog shown before post is deleted.
func (m Model) confirmDelete(post placeholder.Post, onConfirm tea.Cmd) Modal {
	return confirmModal{
		title: m.tr.T("confirm.delete_title"),
		message: m.tr.Get("confirm.delete_message", map[string]any{
			"id":    post.ID,
			"title": truncate(singleLine(post.Title), 40),
		}),
		hint:      m.tr.T("confirm.hint"),
		onConfirm: onConfirm,
		rtl:       m.rtl(),
	}
}
