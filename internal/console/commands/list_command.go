package commands

import (
	"context"
	"fmt"
	"strings"

	"clientctl/internal/cli"
)

// ListCommand draws the current page of the grid
type ListCommand struct {
	*BaseCommand
}

// NewListCommand creates a new list command
func NewListCommand(base *BaseCommand) *ListCommand {
	return &ListCommand{BaseCommand: base}
}

// Execute renders the page, with audit columns when "wide" is given
func (l *ListCommand) Execute(ctx context.Context, args []string) error {
	wide := false
	if len(args) > 0 {
		if !strings.EqualFold(args[0], "wide") {
			return fmt.Errorf("usage: %s", l.Usage())
		}
		wide = true
	}
	l.render(wide)
	cli.RenderState(l.output.Writer(), l.ctrl.Grid())
	return nil
}

func (l *ListCommand) Usage() string {
	return "list [wide]"
}

func (l *ListCommand) Description() string {
	return "Show the current page of clients"
}

func (l *ListCommand) Completions(input string) []string {
	return []string{"wide"}
}

func (l *ListCommand) Aliases() []string {
	return []string{"ls"}
}
