package commands

import (
	"context"

	"clientctl/internal/cli"
	"clientctl/internal/clients"
)

// AddCommand runs the create dialog
type AddCommand struct {
	*BaseCommand
}

// NewAddCommand creates a new add command
func NewAddCommand(base *BaseCommand) *AddCommand {
	return &AddCommand{BaseCommand: base}
}

// Execute prompts for a new client until it is created or the user gives up.
// A failed submission keeps what was typed as the next defaults.
func (a *AddCommand) Execute(ctx context.Context, args []string) error {
	a.ctrl.OpenAdd()
	for {
		form := a.ctrl.AddDialog().Form
		values, err := a.promptFields(
			[]string{"Code", "Service", "Name (Thai)", "Name (Eng)"},
			[]string{form.Code, form.Service, form.NameTh, form.NameEn},
		)
		if err != nil {
			a.ctrl.CloseAdd()
			if a.cancelled(err) {
				return nil
			}
			return err
		}

		created, err := a.ctrl.SubmitAdd(ctx, clients.Form{
			Code: values[0], Service: values[1], NameTh: values[2], NameEn: values[3],
		})
		if err == nil {
			a.output.Success("Created client %d (%s)", created.ID, created.Code)
			a.render(false)
			return nil
		}

		cli.RenderDialogError(a.output.Writer(), a.ctrl.AddDialog())
		again, err := a.retry(err)
		if err != nil && !a.cancelled(err) {
			a.ctrl.CloseAdd()
			return err
		}
		if !again {
			a.ctrl.CloseAdd()
			return nil
		}
	}
}

func (a *AddCommand) Usage() string {
	return "add"
}

func (a *AddCommand) Description() string {
	return "Create a client"
}

func (a *AddCommand) Completions(input string) []string {
	return []string{}
}

func (a *AddCommand) Aliases() []string {
	return []string{"new"}
}
