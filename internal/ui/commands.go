package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/postdeck/internal/fetch"
	"github.com/five82/postdeck/internal/logtail"
	"github.com/five82/postdeck/internal/mail"
	"github.com/five82/postdeck/internal/mutation"
	"github.com/five82/postdeck/internal/placeholder"
)

// Messages for async operations.
type (
	tickMsg time.Time

	// loadedMsg carries a fetch result back to the lifecycle that asked for it.
	loadedMsg[T any] struct {
		lc     *fetch.Lifecycle[T]
		ticket fetch.Ticket
		value  T
		err    error
	}

	mutationDoneMsg struct {
		kind mutation.Kind
		id   int
		err  error
	}

	shareDoneMsg struct {
		email string
		err   error
	}

	logsMsg struct {
		lines []string
		err   error
	}
)

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd enters loading on lc now and runs load in the background.
func loadCmd[T any](ctx context.Context, lc *fetch.Lifecycle[T], load func(context.Context) (T, error)) tea.Cmd {
	ticket := lc.Start()
	return func() tea.Msg {
		value, err := load(ctx)
		return loadedMsg[T]{lc: lc, ticket: ticket, value: value, err: err}
	}
}

func updateCmd(ctx context.Context, ctl *mutation.Controller[placeholder.Post], id int, post placeholder.Post) tea.Cmd {
	return func() tea.Msg {
		_, err := ctl.Update(ctx, id, post)
		return mutationDoneMsg{kind: mutation.KindUpdate, id: id, err: err}
	}
}

func deleteCmd(ctx context.Context, ctl *mutation.Controller[placeholder.Post], id int) tea.Cmd {
	return func() tea.Msg {
		err := ctl.Delete(ctx, id)
		return mutationDoneMsg{kind: mutation.KindDelete, id: id, err: err}
	}
}

func shareCmd(ctx context.Context, sender mail.Sender, msg mail.Message) tea.Cmd {
	return func() tea.Msg {
		return shareDoneMsg{email: msg.To, err: sender.Send(ctx, msg)}
	}
}

func readLogsCmd(path string, minLevel slog.Level) tea.Cmd {
	return func() tea.Msg {
		raw, err := logtail.Read(path, LogTailLines)
		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			if logtail.AtLeast(line, minLevel) {
				lines = append(lines, logtail.FormatLine(line))
			}
		}
		return logsMsg{lines: lines, err: err}
	}
}
