package commands

import "context"

// ExitCommand ends the console session
type ExitCommand struct {
	*BaseCommand
}

// NewExitCommand creates a new exit command
func NewExitCommand(base *BaseCommand) *ExitCommand {
	return &ExitCommand{BaseCommand: base}
}

// Execute returns ErrExit to stop the loop
func (e *ExitCommand) Execute(ctx context.Context, args []string) error {
	return ErrExit
}

func (e *ExitCommand) Usage() string {
	return "exit"
}

func (e *ExitCommand) Description() string {
	return "Exit the console"
}

func (e *ExitCommand) Completions(input string) []string {
	return []string{}
}

func (e *ExitCommand) Aliases() []string {
	return []string{"quit", "q"}
}
