package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/postdeck/internal/fetch"
	"github.com/five82/postdeck/internal/placeholder"
)

// PostResult is the JSON payload of the post command.
type PostResult struct {
	Post     placeholder.Post      `json:"post"`
	Author   *placeholder.User     `json:"author,omitempty"`
	Comments []placeholder.Comment `json:"comments"`
	Warnings []string              `json:"warnings,omitempty"`
}

// NewPostCommand creates the post command.
func NewPostCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>",
		Short: "Show one post with its author and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			id, err := parseID(args[0])
			if err != nil {
				return out.Fail(err)
			}
			return runPost(rootOpts, id, cmd, out)
		},
	}
}

func runPost(rootOpts *RootOptions, id int, cmd *cobra.Command, out *OutputFormatter) error {
	svc, err := connect(rootOpts, out)
	if err != nil {
		return out.Fail(err)
	}
	defer func() { _ = svc.Close() }()

	detail, err := fetch.LoadPostDetail(cmd.Context(), svc.API, id)
	if err != nil {
		return out.Fail(requestError(fmt.Sprintf("post %d", id), err))
	}

	result := PostResult{Post: detail.Post, Author: detail.Author, Comments: detail.Comments}
	if result.Comments == nil {
		result.Comments = []placeholder.Comment{}
	}
	if detail.AuthorErr != nil {
		result.Warnings = append(result.Warnings, "author unavailable: "+detail.AuthorErr.Error())
	}
	if detail.CommentsErr != nil {
		result.Warnings = append(result.Warnings, "comments unavailable: "+detail.CommentsErr.Error())
	}

	return out.Emit(result, func(w io.Writer) error {
		author := "user " + strconv.Itoa(result.Post.UserID)
		if result.Author != nil {
			author = result.Author.DisplayName()
		}
		fmt.Fprintf(w, "#%d %s\nby %s\n\n%s\n", result.Post.ID, result.Post.Title, author, result.Post.Body)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "\n! %s\n", warning)
		}
		fmt.Fprintf(w, "\nComments (%d)\n", len(result.Comments))
		for _, c := range result.Comments {
			fmt.Fprintf(w, "\n- %s <%s>\n  %s\n", c.Name, c.Email, c.Body)
		}
		return nil
	})
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q: must be a positive integer", raw))
	}
	return id, nil
}
