package cmd

import (
	"fmt"

	"clientctl/internal/cli"
	"clientctl/internal/clients"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var (
		flags cli.CommandFlags
		form  clients.Form
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a client's service and names",
		Long: `Update the service, Thai name or English name of a client. Fields
without a flag keep their current value. The code cannot be changed.

Examples:
  clientctl edit 42 --name-en "Acme Corporation"
  clientctl edit 42 --service crm -o json`,
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

			if err := s.ctrl.Dispatch(clients.RowAction{ID: id, Action: clients.ActionEdit}); err != nil {
				return err
			}
			// Start from the pre-filled dialog and apply only the flags given.
			next := s.ctrl.EditDialog().Form
			if cmd.Flags().Changed("service") {
				next.Service = form.Service
			}
			if cmd.Flags().Changed("name-th") {
				next.NameTh = form.NameTh
			}
			if cmd.Flags().Changed("name-en") {
				next.NameEn = form.NameEn
			}

			var updated clients.Client
			err = cli.WithSpinner(flags.Quiet, "Updating client...", func() error {
				var err error
				updated, err = s.ctrl.SubmitEdit(cmd.Context(), next)
				return err
			})
			if err != nil {
				return cli.WrapConnectionError(err, s.cfg.Endpoint)
			}

			if !flags.Quiet && printer.Format == cli.OutputFormatTable {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Updated client %d", updated.ID)))
			}
			return printer.PrintClient(updated)
		}),
	}
	cli.RegisterCommonFlags(cmd, &flags)
	registerFormFlags(cmd, &form, false)
	return cmd
}
