package commands

import (
	"context"

	"clientctl/internal/cli"
	"clientctl/internal/clients"
)

// DeleteCommand asks for confirmation and deletes one client
type DeleteCommand struct {
	*BaseCommand
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(base *BaseCommand) *DeleteCommand {
	return &DeleteCommand{BaseCommand: base}
}

// Execute opens the confirmation through the row action. Declining closes
// it without a request.
func (d *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if _, err := d.parseArgs(args, 1, d.Usage()); err != nil {
		return err
	}
	id, err := d.parseID(args[0])
	if err != nil {
		return err
	}
	if err := d.ctrl.Dispatch(clients.RowAction{ID: id, Action: clients.ActionDelete}); err != nil {
		return err
	}
	cli.RenderDeleteSummary(d.output.Writer(), id, d.ctrl.DeleteSummary())

	ok, err := d.prompter.Confirm("Delete this client?", false)
	if err != nil || !ok {
		d.ctrl.CloseDelete()
		if err != nil && !d.cancelled(err) {
			return err
		}
		if err == nil {
			d.output.Info("Nothing deleted")
		}
		return nil
	}

	for {
		err := d.ctrl.ConfirmDelete(ctx)
		if err == nil {
			d.output.Success("Deleted client %d", id)
			d.render(false)
			return nil
		}

		cli.RenderDialogError(d.output.Writer(), d.ctrl.DeleteDialog())
		again, err := d.retry(err)
		if err != nil && !d.cancelled(err) {
			d.ctrl.CloseDelete()
			return err
		}
		if !again {
			d.ctrl.CloseDelete()
			return nil
		}
	}
}

func (d *DeleteCommand) Usage() string {
	return "delete <id>"
}

func (d *DeleteCommand) Description() string {
	return "Delete a client after confirmation"
}

func (d *DeleteCommand) Completions(input string) []string {
	return d.idCompletions()
}

func (d *DeleteCommand) Aliases() []string {
	return []string{"rm"}
}
