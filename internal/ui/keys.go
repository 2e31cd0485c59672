package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Locale     key.Binding
	Reload     key.Binding
	Tab        key.Binding
	Logs       key.Binding
	Back       key.Binding
	Home       key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Open     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Lists
	Search     key.Binding
	Author     key.Binding
	Sort       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Share      key.Binding
	OpenAuthor key.Binding

	// Logs
	Warnings key.Binding

	// Confirm dialog
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "keys.quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys.help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "keys.theme"),
		),
		Locale: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "keys.locale"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "keys.reload"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "keys.tab"),
		),
		Logs: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "keys.logs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "backspace"),
			key.WithHelp("esc/b", "keys.back"),
		),
		Home: key.NewBinding(
			key.WithKeys("h", "home"),
			key.WithHelp("h", "keys.home"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "keys.move"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "keys.move"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "keys.move"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "keys.move"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "keys.open"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup", "left"),
			key.WithHelp("[", "keys.pages"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown", "right"),
			key.WithHelp("]", "keys.pages"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "keys.search"),
		),
		Author: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "keys.author"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "keys.sort"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "keys.new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "keys.edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "keys.delete"),
		),
		Share: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "keys.share"),
		),
		OpenAuthor: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "keys.open_author"),
		),

		Warnings: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "keys.warnings"),
		),

		Yes: key.NewBinding(key.WithKeys("y", "enter")),
		No:  key.NewBinding(key.WithKeys("n", "esc")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped the way the help overlay shows them.
// Help texts are catalog keys.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Open, k.Back, k.Home, k.Tab, k.Logs},
		{k.Search, k.Author, k.Sort, k.PrevPage, k.New, k.Edit, k.Delete},
		{k.Share, k.OpenAuthor},
		{k.Warnings, k.CycleTheme, k.Locale, k.Reload, k.Help, k.Quit},
	}
}
