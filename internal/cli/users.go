package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/postdeck/internal/collection"
	"github.com/five82/postdeck/internal/placeholder"
)

// NewUsersCommand creates the users command.
func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			svc, err := connect(rootOpts, out)
			if err != nil {
				return out.Fail(err)
			}
			defer func() { _ = svc.Close() }()

			users, err := svc.API.ListUsers(cmd.Context())
			if err != nil {
				return out.Fail(requestError("list users", err))
			}
			page := collection.Derive(users, collection.UserSpec(), collection.ViewState{
				Search:   search,
				Sort:     collection.SortID,
				PageSize: max(len(users), 1),
			})
			if page.Items == nil {
				page.Items = []placeholder.User{}
			}

			return out.Emit(page.Items, func(w io.Writer) error {
				rows := make([][]string, 0, len(page.Items))
				for _, u := range page.Items {
					rows = append(rows, []string{strconv.Itoa(u.ID), u.DisplayName(), u.Username, u.Email, u.Company.Name})
				}
				return renderTable(w, []string{"ID", "NAME", "USERNAME", "EMAIL", "COMPANY"}, rows)
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, username, email or company")
	return cmd
}
