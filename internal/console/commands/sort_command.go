package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clientctl/internal/grid"
)

// SortCommand orders the grid by a column
type SortCommand struct {
	*BaseCommand
}

// NewSortCommand creates a new sort command
func NewSortCommand(base *BaseCommand) *SortCommand {
	return &SortCommand{BaseCommand: base}
}

// Execute sorts by the named column, ascending unless desc is given
func (s *SortCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	dir := grid.Asc
	if len(args) > 1 {
		d, err := grid.ParseDirection(args[1])
		if err != nil {
			return err
		}
		dir = d
	}

	if err := s.ctrl.Grid().SortBy(args[0], dir); err != nil {
		if _, known := s.ctrl.Grid().ColumnIndex(args[0]); !known || errors.Is(err, grid.ErrNotSortable) {
			return fmt.Errorf("cannot sort by %q, choose one of: %s", args[0], strings.Join(s.sortableKeys(), ", "))
		}
		return err
	}
	s.render(false)
	return nil
}

func (s *SortCommand) sortableKeys() []string {
	var keys []string
	for _, c := range s.ctrl.Grid().Columns() {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

func (s *SortCommand) Usage() string {
	return "sort <column> [asc|desc]"
}

func (s *SortCommand) Description() string {
	return "Sort the grid by a column"
}

func (s *SortCommand) Completions(input string) []string {
	return s.sortableKeys()
}

func (s *SortCommand) Aliases() []string {
	return []string{}
}
