package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/five82/postdeck/internal/app"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	PrefsPath  string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the postdeck command. Without a subcommand it
// starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "postdeck",
		Short: "postdeck - a terminal dashboard for posts and users",
		Long: `Browse, search and edit posts from a JSONPlaceholder-style API.

Run without a command to open the dashboard. The subcommands print the same
data for scripts and quick lookups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				PrefsPath:  opts.PrefsPath,
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/postdeck/config.toml)")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/postdeck/prefs.toml)")

	cmd.AddCommand(NewPostsCommand(opts))
	cmd.AddCommand(NewPostCommand(opts))
	cmd.AddCommand(NewUsersCommand(opts))
	cmd.AddCommand(NewShareCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))

	return cmd
}

// connect boots the shared services for one command.
func connect(opts *RootOptions, out *OutputFormatter) (*app.Services, error) {
	svc, err := app.Bootstrap(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "startup failed", err)
	}
	out.VerboseLog("api: %s", svc.Config.APIBaseURL)
	return svc, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
