package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clientctl/internal/cli"
	"clientctl/internal/console"
	"clientctl/pkg/logging"

	"github.com/spf13/cobra"
)

func newConsoleCmd() *cobra.Command {
	var flags cli.CommandFlags
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive client manager",
		Long: `Open an interactive grid of clients with search, sort, paging and
add/edit/delete dialogs. The prompt shows how many rows are visible.

Type 'help' inside the console for the list of commands. If the initial load
fails the console still opens with an empty grid; use 'refresh' to retry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := openSession(ctx, &flags)
			if err != nil {
				if s == nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("Could not load clients: %v", err)))
			}

			// Diagnostics stay quiet unless asked for, the prompt owns the terminal.
			if !flags.Debug {
				logging.InitForCLI(logging.LevelError, os.Stderr)
			}

			c := console.New(s.ctrl, console.Options{Out: cmd.OutOrStdout()})
			return c.Run(ctx)
		},
	}
	cli.RegisterConnectionFlags(cmd, &flags)
	return cmd
}
