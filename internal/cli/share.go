package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/postdeck/internal/mail"
)

// ShareResult is the JSON payload of the share command.
type ShareResult struct {
	PostID int    `json:"postId"`
	To     string `json:"to"`
}

// NewShareCommand creates the share command.
func NewShareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "share <post-id> <email>",
		Short: "Email a post through the configured provider",
		Long: `Send one post by email. Requires service_id, template_id and public_key
under [email] in the config file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			id, err := parseID(args[0])
			if err != nil {
				return out.Fail(err)
			}
			to, err := mail.ValidateRecipient(args[1])
			if err != nil {
				return out.Fail(WrapExitError(ExitCommandError, "share", err))
			}
			return runShare(rootOpts, id, to, cmd, out)
		},
	}
}

func runShare(rootOpts *RootOptions, id int, to string, cmd *cobra.Command, out *OutputFormatter) error {
	svc, err := connect(rootOpts, out)
	if err != nil {
		return out.Fail(err)
	}
	defer func() { _ = svc.Close() }()

	post, err := svc.API.GetPost(cmd.Context(), id)
	if err != nil {
		return out.Fail(requestError(fmt.Sprintf("post %d", id), err))
	}

	err = svc.Mailer.Send(cmd.Context(), mail.Message{
		To:        to,
		PostTitle: post.Title,
		PostBody:  post.Body,
		FromName:  svc.Config.Email.FromName,
	})
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		return out.Fail(WrapExitError(ExitCommandError, "share", err))
	case err != nil:
		return out.Fail(WrapExitError(ExitFailure, "share", err))
	}

	return out.Emit(ShareResult{PostID: id, To: to}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Shared post %d with %s\n", id, to)
		return err
	})
}
