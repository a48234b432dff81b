package commands

import (
	"context"
	"fmt"

	"clientctl/internal/cli"
	"clientctl/internal/clients"
)

// ShowCommand prints every field of one cached client
type ShowCommand struct {
	*BaseCommand
}

// NewShowCommand creates a new show command
func NewShowCommand(base *BaseCommand) *ShowCommand {
	return &ShowCommand{BaseCommand: base}
}

// Execute looks the client up in the cache
func (s *ShowCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	id, err := s.parseID(args[0])
	if err != nil {
		return err
	}
	c, ok := s.ctrl.Cache().Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", clients.ErrClientNotFound, id)
	}
	cli.RenderClient(s.output.Writer(), c)
	return nil
}

func (s *ShowCommand) Usage() string {
	return "show <id>"
}

func (s *ShowCommand) Description() string {
	return "Show all fields of a client"
}

func (s *ShowCommand) Completions(input string) []string {
	return s.idCompletions()
}

func (s *ShowCommand) Aliases() []string {
	return []string{"get"}
}
