package cmd

import (
	"fmt"

	"clientctl/internal/cli"
	"clientctl/internal/clients"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var (
		flags cli.CommandFlags
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Long: `Delete a client. The code and names are shown and confirmation is
asked for unless --yes is given.

Examples:
  clientctl delete 42
  clientctl delete 42 --yes`,
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: clientIDCompletion(&flags),
		RunE: traced(func(cmd *cobra.Command, args []string) error {
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			if err := s.ctrl.Dispatch(clients.RowAction{ID: id, Action: clients.ActionDelete}); err != nil {
				return err
			}
			if !yes {
				cli.RenderDeleteSummary(cmd.ErrOrStderr(), id, s.ctrl.DeleteSummary())
				if !confirmAction(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete this client?") {
					s.ctrl.CloseDelete()
					fmt.Fprintln(cmd.ErrOrStderr(), "Nothing deleted.")
					return nil
				}
			}

			err = cli.WithSpinner(flags.Quiet, "Deleting client...", func() error {
				return s.ctrl.ConfirmDelete(cmd.Context())
			})
			if err != nil {
				return cli.WrapConnectionError(err, s.cfg.Endpoint)
			}
			if !flags.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted client %d", id)))
			}
			return nil
		}),
	}
	cli.RegisterConnectionFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
