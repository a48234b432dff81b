package commands

import (
	"context"

	"clientctl/internal/cli"
	"clientctl/internal/clients"
)

// EditCommand runs the update dialog for one client
type EditCommand struct {
	*BaseCommand
}

// NewEditCommand creates a new edit command
func NewEditCommand(base *BaseCommand) *EditCommand {
	return &EditCommand{BaseCommand: base}
}

// Execute opens the dialog through the row action and prompts for the
// editable fields. The code is shown but cannot be changed.
func (e *EditCommand) Execute(ctx context.Context, args []string) error {
	if _, err := e.parseArgs(args, 1, e.Usage()); err != nil {
		return err
	}
	id, err := e.parseID(args[0])
	if err != nil {
		return err
	}
	if err := e.ctrl.Dispatch(clients.RowAction{ID: id, Action: clients.ActionEdit}); err != nil {
		return err
	}
	e.output.Info("Editing client %d, code %s", id, e.ctrl.EditDialog().Form.Code)

	for {
		form := e.ctrl.EditDialog().Form
		values, err := e.promptFields(
			[]string{"Service", "Name (Thai)", "Name (Eng)"},
			[]string{form.Service, form.NameTh, form.NameEn},
		)
		if err != nil {
			e.ctrl.CloseEdit()
			if e.cancelled(err) {
				return nil
			}
			return err
		}

		updated, err := e.ctrl.SubmitEdit(ctx, clients.Form{
			Service: values[0], NameTh: values[1], NameEn: values[2],
		})
		if err == nil {
			e.output.Success("Updated client %d (%s)", updated.ID, updated.Code)
			e.render(false)
			return nil
		}

		cli.RenderDialogError(e.output.Writer(), e.ctrl.EditDialog())
		again, err := e.retry(err)
		if err != nil && !e.cancelled(err) {
			e.ctrl.CloseEdit()
			return err
		}
		if !again {
			e.ctrl.CloseEdit()
			return nil
		}
	}
}

func (e *EditCommand) Usage() string {
	return "edit <id>"
}

func (e *EditCommand) Description() string {
	return "Update the service and names of a client"
}

func (e *EditCommand) Completions(input string) []string {
	return e.idCompletions()
}

func (e *EditCommand) Aliases() []string {
	return []string{}
}
