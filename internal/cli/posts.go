package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/postdeck/internal/collection"
	"github.com/five82/postdeck/internal/fetch"
	"github.com/five82/postdeck/internal/placeholder"
)

// PostsOptions are the list criteria for the posts command.
type PostsOptions struct {
	Search   string
	AuthorID int
	Sort     string
	Page     int
	PageSize int
}

// PostRow is one post as printed by the CLI.
type PostRow struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	UserID int    `json:"userId"`
	Author string `json:"author"`
}

// PostsResult is the JSON payload of the posts command.
type PostsResult struct {
	Posts      []PostRow `json:"posts"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	TotalItems int       `json:"totalItems"`
}

// NewPostsCommand creates the posts command.
func NewPostsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PostsOptions{}

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts",
		Long: `List one page of posts using the same search, author filter and sort
as the dashboard. Search matches title and body, ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosts(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "filter by title or body")
	cmd.Flags().IntVarP(&opts.AuthorID, "author", "a", 0, "only posts by this user id")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(collection.SortID), "sort key (id|title|author)")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", collection.DefaultPageSize, "posts per page")

	return cmd
}

func runPosts(rootOpts *RootOptions, opts *PostsOptions, cmd *cobra.Command) error {
	out := newFormatter(rootOpts, cmd)

	sortKey, ok := collection.ParseSortKey(opts.Sort)
	if !ok {
		return out.Fail(NewExitError(ExitCommandError,
			fmt.Sprintf("invalid sort %q: must be one of %v", opts.Sort, collection.SortKeys)))
	}
	if opts.AuthorID < 0 {
		return out.Fail(NewExitError(ExitCommandError, "author must be a positive user id"))
	}

	svc, err := connect(rootOpts, out)
	if err != nil {
		return out.Fail(err)
	}
	defer func() { _ = svc.Close() }()

	dash, err := fetch.LoadDashboard(cmd.Context(), svc.API)
	if err != nil {
		return out.Fail(requestError("list posts", err))
	}
	names := fetch.AuthorNames(dash.Users)

	page := collection.Derive(dash.Posts, collection.PostSpec(func(id int) string { return names[id] }), collection.ViewState{
		Search:   opts.Search,
		Filter:   collection.Filter{AuthorID: opts.AuthorID},
		Sort:     sortKey,
		PageSize: opts.PageSize,
		Page:     opts.Page,
	})
	out.VerboseLog("matched %d of %d posts", page.TotalItems, len(dash.Posts))

	result := PostsResult{
		Posts:      make([]PostRow, 0, len(page.Items)),
		Page:       page.Number,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}
	for _, p := range page.Items {
		result.Posts = append(result.Posts, postRow(p, names))
	}

	return out.Emit(result, func(w io.Writer) error {
		if len(result.Posts) == 0 {
			_, err := fmt.Fprintln(w, "No posts match.")
			return err
		}
		rows := make([][]string, 0, len(result.Posts))
		for _, p := range result.Posts {
			rows = append(rows, []string{strconv.Itoa(p.ID), p.Title, p.Author})
		}
		if err := renderTable(w, []string{"ID", "TITLE", "AUTHOR"}, rows); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "Page %d of %d (%d posts)\n", result.Page, result.TotalPages, result.TotalItems)
		return err
	})
}

func postRow(p placeholder.Post, names map[int]string) PostRow {
	author := names[p.UserID]
	if author == "" {
		author = "user " + strconv.Itoa(p.UserID)
	}
	return PostRow{ID: p.ID, Title: p.Title, UserID: p.UserID, Author: author}
}
