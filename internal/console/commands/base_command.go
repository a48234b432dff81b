package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"clientctl/internal/cli"
	"clientctl/internal/clients"
)

// BaseCommand carries the dependencies shared by all console commands.
type BaseCommand struct {
	ctrl     *clients.Controller
	output   Output
	prompter Prompter
}

// NewBaseCommand creates a base command.
func NewBaseCommand(ctrl *clients.Controller, output Output, prompter Prompter) *BaseCommand {
	return &BaseCommand{ctrl: ctrl, output: output, prompter: prompter}
}

// parseArgs checks the minimum argument count.
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// parseID parses a client id argument.
func (b *BaseCommand) parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid client id %q", arg)
	}
	return id, nil
}

// render draws the current grid page.
func (b *BaseCommand) render(wide bool) {
	cli.RenderGrid(b.output.Writer(), cli.NewListView(b.ctrl), wide)
}

// idCompletions offers the ids of the rows on the current page.
func (b *BaseCommand) idCompletions() []string {
	rows := b.ctrl.Grid().PageRows()
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, strconv.FormatInt(r.ID, 10))
	}
	return ids
}

// retry asks whether to resubmit a dialog after err. Validation errors and
// request failures both leave the dialog open; anything else is returned.
func (b *BaseCommand) retry(err error) (bool, error) {
	var opErr *clients.OperationError
	if !clients.IsValidationError(err) && !errors.As(err, &opErr) {
		return false, err
	}
	if opErr != nil && opErr.Err != nil {
		b.output.Info("Cause: %v", opErr.Err)
	}
	return b.prompter.Confirm("Try again?", true)
}

// joinArgsFrom joins arguments starting from index into one string.
func (b *BaseCommand) joinArgsFrom(args []string, index int) string {
	if index >= len(args) {
		return ""
	}
	return strings.Join(args[index:], " ")
}

// promptFields asks for each label in turn, offering the matching default.
func (b *BaseCommand) promptFields(labels []string, defaults []string) ([]string, error) {
	values := make([]string, len(labels))
	for i, label := range labels {
		v, err := b.prompter.Prompt(label, defaults[i])
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// cancelled reports whether err means the user abandoned the dialog.
func (b *BaseCommand) cancelled(err error) bool {
	if errors.Is(err, ErrCancelled) {
		b.output.Warning("Cancelled")
		return true
	}
	return false
}
