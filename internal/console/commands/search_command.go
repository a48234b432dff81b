package commands

import "context"

// SearchCommand applies a search term to the grid
type SearchCommand struct {
	*BaseCommand
}

// NewSearchCommand creates a new search command
func NewSearchCommand(base *BaseCommand) *SearchCommand {
	return &SearchCommand{BaseCommand: base}
}

// Execute filters the grid by the joined arguments
func (s *SearchCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	s.ctrl.Grid().Search(s.joinArgsFrom(args, 0))
	s.render(false)
	return nil
}

func (s *SearchCommand) Usage() string {
	return "search <term>"
}

func (s *SearchCommand) Description() string {
	return "Filter rows; every word must appear in some column"
}

func (s *SearchCommand) Completions(input string) []string {
	return []string{}
}

func (s *SearchCommand) Aliases() []string {
	return []string{"find", "/"}
}

// ClearSearchCommand removes the search filter
type ClearSearchCommand struct {
	*BaseCommand
}

// NewClearSearchCommand creates a new clear-search command
func NewClearSearchCommand(base *BaseCommand) *ClearSearchCommand {
	return &ClearSearchCommand{BaseCommand: base}
}

// Execute clears the search and redraws
func (c *ClearSearchCommand) Execute(ctx context.Context, args []string) error {
	c.ctrl.Grid().Search("")
	c.render(false)
	return nil
}

func (c *ClearSearchCommand) Usage() string {
	return "clear-search"
}

func (c *ClearSearchCommand) Description() string {
	return "Remove the search filter"
}

func (c *ClearSearchCommand) Completions(input string) []string {
	return []string{}
}

func (c *ClearSearchCommand) Aliases() []string {
	return []string{"clear"}
}
