package cmd

import (
	"clientctl/internal/cli"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var flags cli.CommandFlags
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one client",
		Long: `Show every field of one client, including the audit columns.

Examples:
  clientctl get 42
  clientctl get 42 -o yaml`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: clientIDCompletion(&flags),
		RunE: traced(func(cmd *cobra.Command, args []string) error {
			printer, err := flags.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			c, err := s.findClient(id)
			if err != nil {
				return err
			}
			return printer.PrintClient(c)
		}),
	}
	cli.RegisterCommonFlags(cmd, &flags)
	return cmd
}
