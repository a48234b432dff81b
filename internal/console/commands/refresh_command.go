package commands

import "context"

// RefreshCommand reloads the clients from the server
type RefreshCommand struct {
	*BaseCommand
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(base *BaseCommand) *RefreshCommand {
	return &RefreshCommand{BaseCommand: base}
}

// Execute refetches the list keeping search, sort and page
func (r *RefreshCommand) Execute(ctx context.Context, args []string) error {
	if err := r.ctrl.Refresh(ctx); err != nil {
		return err
	}
	r.output.Success("Loaded %d clients", r.ctrl.Cache().Len())
	r.render(false)
	return nil
}

func (r *RefreshCommand) Usage() string {
	return "refresh"
}

func (r *RefreshCommand) Description() string {
	return "Reload clients from the server"
}

func (r *RefreshCommand) Completions(input string) []string {
	return []string{}
}

func (r *RefreshCommand) Aliases() []string {
	return []string{"reload"}
}
