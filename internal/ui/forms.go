package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/postdeck/internal/mail"
	"github.com/five82/postdeck/internal/mutation"
	"github.com/five82/postdeck/internal/notify"
	"github.com/five82/postdeck/internal/placeholder"
)

type formKind int

const (
	formCreate formKind = iota
	formEdit
	formShare
)

// postDraft holds form values. huh writes into it through pointers, so it
// lives on the heap for the lifetime of the form.
type postDraft struct {
	Title  string
	Body   string
	UserID int
	Email  string
}

// formState is an open form and the errors from its last submit.
type formState struct {
	kind   formKind
	postID int
	post   placeholder.Post
	draft  *postDraft
	errs   []string
	form   *huh.Form
}

func (m Model) formWidth() int {
	return min(max(m.width-8, 30), 80)
}

// openCreateForm opens an empty post form authored by the first user.
func (m *Model) openCreateForm() tea.Cmd {
	draft := &postDraft{UserID: 1}
	if ids := m.users.IDs(); len(ids) > 0 {
		draft.UserID = slices.Min(ids)
	}
	m.form = &formState{kind: formCreate, draft: draft}
	m.form.form = m.buildPostForm(m.form)
	return m.form.form.Init()
}

// openEditForm opens the post form prefilled with post.
func (m *Model) openEditForm(post placeholder.Post) tea.Cmd {
	draft := &postDraft{Title: post.Title, Body: post.Body, UserID: post.UserID}
	m.form = &formState{kind: formEdit, postID: post.ID, draft: draft}
	m.form.form = m.buildPostForm(m.form)
	return m.form.form.Init()
}

// openShareForm asks for the recipient of post.
func (m *Model) openShareForm(post placeholder.Post) tea.Cmd {
	fs := &formState{kind: formShare, postID: post.ID, post: post, draft: &postDraft{}}
	fs.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(m.tr.T("form.recipient")).
			Placeholder("name@example.com").
			Value(&fs.draft.Email).
			Validate(func(s string) error {
				if _, err := mail.ValidateRecipient(s); err != nil {
					return errors.New(m.tr.T("validation.email"))
				}
				return nil
			}),
	)).WithTheme(m.theme.FormTheme()).WithWidth(m.formWidth()).WithShowHelp(true)
	m.form = fs
	return fs.form.Init()
}

func (m Model) buildPostForm(fs *formState) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(m.tr.T("form.title")).
			CharLimit(100).
			Value(&fs.draft.Title),
		huh.NewText().
			Title(m.tr.T("form.body")).
			CharLimit(500).
			Lines(5).
			Value(&fs.draft.Body),
		huh.NewSelect[int]().
			Title(m.tr.T("form.author")).
			Options(m.authorOptions()...).
			Value(&fs.draft.UserID),
	)).WithTheme(m.theme.FormTheme()).WithWidth(m.formWidth()).WithShowHelp(true)
}

// authorOptions lists loaded users by id, or the seeded id range when the
// user list is not available.
func (m Model) authorOptions() []huh.Option[int] {
	users := m.users.Snapshot()
	slices.SortFunc(users, func(a, b placeholder.User) int { return a.ID - b.ID })
	opts := make([]huh.Option[int], 0, max(len(users), 10))
	for _, u := range users {
		opts = append(opts, huh.NewOption(u.DisplayName(), u.ID))
	}
	if len(opts) == 0 {
		for id := 1; id <= 10; id++ {
			opts = append(opts, huh.NewOption(fmt.Sprintf("#%d", id), id))
		}
	}
	return opts
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	fs := m.form
	form, cmd := fs.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		fs.form = f
	}

	switch fs.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// submitForm runs the action behind a completed form. A rejected draft
// reopens the form with the reasons listed.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	fs := m.form

	if fs.kind == formShare {
		m.form = nil
		m.sharing++
		return m, shareCmd(m.ctx, m.mailer, mail.Message{
			To:        strings.TrimSpace(fs.draft.Email),
			PostTitle: fs.post.Title,
			PostBody:  fs.post.Body,
			FromName:  m.fromName,
		})
	}

	post := placeholder.Post{
		UserID: fs.draft.UserID,
		Title:  strings.TrimSpace(fs.draft.Title),
		Body:   strings.TrimSpace(fs.draft.Body),
	}

	switch fs.kind {
	case formCreate:
		created, err := m.postCtl.Create(m.ctx, post)
		if err != nil {
			return m.rejectForm(err)
		}
		m.form = nil
		m.focusPost(created.ID)
		return m, nil

	case formEdit:
		if err := mutation.ValidatePost(post); err != nil {
			return m.rejectForm(err)
		}
		m.form = nil
		return m, updateCmd(m.ctx, m.postCtl, fs.postID, post)
	}

	m.form = nil
	return m, nil
}

// rejectForm rebuilds the post form around the same draft with the
// validation messages shown above it.
func (m Model) rejectForm(err error) (tea.Model, tea.Cmd) {
	ve, ok := mutation.AsValidation(err)
	if !ok {
		m.logger.Warn("submit post failed", slog.Any("error", err))
		m.form = nil
		return m, nil
	}
	fs := &formState{kind: m.form.kind, postID: m.form.postID, draft: m.form.draft, errs: m.validationMessages(ve)}
	fs.form = m.buildPostForm(fs)
	m.form = fs
	return m, fs.form.Init()
}

// validationMessages translates field errors in field order.
func (m Model) validationMessages(ve *mutation.ValidationError) []string {
	var out []string
	for _, field := range []string{"title", "body", "userId"} {
		fe, ok := ve.Fields[field]
		if !ok {
			continue
		}
		name := m.tr.T("fields." + field)
		switch fe.Rule {
		case "required":
			out = append(out, m.tr.Get("validation.required", map[string]any{"field": name}))
		case "min", "max":
			out = append(out, m.tr.Get("validation."+fe.Rule, map[string]any{"field": name, "n": fe.Param}))
		case "range":
			lo, hi, _ := strings.Cut(fe.Param, "-")
			out = append(out, m.tr.Get("validation.range", map[string]any{"field": name, "min": lo, "max": hi}))
		default:
			out = append(out, m.tr.Get("validation.invalid", map[string]any{"field": name}))
		}
	}
	return out
}

func (m Model) notifyShare(msg shareDoneMsg) {
	switch {
	case msg.err == nil:
		m.notices.Notify(notify.Notification{
			Type:    notify.Success,
			Title:   m.tr.T("notify.share_sent.title"),
			Message: m.tr.Get("notify.share_sent.message", map[string]any{"email": msg.email}),
		})
	case errors.Is(msg.err, mail.ErrNotConfigured):
		m.notices.Notify(notify.Notification{
			Type:    notify.Error,
			Title:   m.tr.T("notify.share_unconfigured.title"),
			Message: m.tr.T("notify.share_unconfigured.message"),
		})
	default:
		m.logger.Warn("share post failed", slog.Any("error", msg.err))
		m.notices.Notify(notify.Notification{
			Type:    notify.Error,
			Title:   m.tr.T("notify.share_failed.title"),
			Message: m.tr.T("notify.share_failed.message"),
		})
	}
}

func (m Model) renderForm() string {
	fs := m.form
	styles := m.theme.Styles()

	var title string
	switch fs.kind {
	case formCreate:
		title = m.tr.T("form.new_post")
	case formEdit:
		title = m.tr.Get("form.edit_post", map[string]any{"id": fs.postID})
	case formShare:
		title = m.tr.Get("form.share", map[string]any{"id": fs.postID})
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")
	if len(fs.errs) > 0 {
		b.WriteString(styles.DangerText.Render(m.tr.T("form.fix_errors")))
		b.WriteString("\n")
		for _, e := range fs.errs {
			b.WriteString(styles.WarningText.Render("• " + e))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(fs.form.View())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(m.formWidth() + 6)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
