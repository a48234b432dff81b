package cmd

import (
	"fmt"

	"clientctl/internal/cli"
	"clientctl/internal/clients"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var (
		flags cli.CommandFlags
		form  clients.Form
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client",
		Long: `Create a client. All four fields are required and the pair
(code, service) must not exist yet.

Examples:
  clientctl add --code ACME --service billing --name-th "แอคมี" --name-en "Acme"`,
		Args: cobra.NoArgs,
		RunE: traced(func(cmd *cobra.Command, args []string) error {
			printer, err := flags.Printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), &flags)
			if err != nil {
				return err
			}

			s.ctrl.OpenAdd()
			var created clients.Client
			err = cli.WithSpinner(flags.Quiet, "Creating client...", func() error {
				var err error
				created, err = s.ctrl.SubmitAdd(cmd.Context(), form)
				return err
			})
			if err != nil {
				return cli.WrapConnectionError(err, s.cfg.Endpoint)
			}

			if !flags.Quiet && printer.Format == cli.OutputFormatTable {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Created client %d", created.ID)))
			}
			return printer.PrintClient(created)
		}),
	}
	cli.RegisterCommonFlags(cmd, &flags)
	registerFormFlags(cmd, &form, true)
	return cmd
}

// registerFormFlags binds the editable client fields. Code is only offered
// on create since edits never change it.
func registerFormFlags(cmd *cobra.Command, form *clients.Form, withCode bool) {
	if withCode {
		cmd.Flags().StringVar(&form.Code, "code", "", "Client code")
	}
	cmd.Flags().StringVar(&form.Service, "service", "", "Service the client belongs to")
	cmd.Flags().StringVar(&form.NameTh, "name-th", "", "Name in Thai")
	cmd.Flags().StringVar(&form.NameEn, "name-en", "", "Name in English")
}
