package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/five82/postdeck/internal/config"
	"github.com/five82/postdeck/internal/logging"
	"github.com/five82/postdeck/internal/logtail"
)

const defaultLogLines = 50

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			if lines < 1 {
				return out.Fail(NewExitError(ExitCommandError, "lines must be at least 1"))
			}

			cfg, err := config.Load(rootOpts.ConfigPath)
			if err != nil {
				return out.Fail(WrapExitError(ExitCommandError, "load config", err))
			}
			out.VerboseLog("log file: %s", cfg.LogFile)

			raw, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return out.Fail(WrapExitError(ExitFailure, "read log", err))
			}
			minLevel := logging.ParseLevel(level)
			formatted := make([]string, 0, len(raw))
			for _, line := range raw {
				if logtail.AtLeast(line, minLevel) {
					formatted = append(formatted, logtail.FormatLine(line))
				}
			}

			return out.Emit(formatted, func(w io.Writer) error {
				if len(formatted) == 0 {
					_, err := fmt.Fprintln(w, "No log entries.")
					return err
				}
				for _, line := range formatted {
					if _, err := fmt.Fprintln(w, line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to read")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level (debug|info|warn|error)")
	return cmd
}
