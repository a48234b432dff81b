package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// PageCommand moves between grid pages
type PageCommand struct {
	*BaseCommand
}

// NewPageCommand creates a new page command
func NewPageCommand(base *BaseCommand) *PageCommand {
	return &PageCommand{BaseCommand: base}
}

// Execute jumps to a 1-based page number or moves relative to the current one
func (p *PageCommand) Execute(ctx context.Context, args []string) error {
	if _, err := p.parseArgs(args, 1, p.Usage()); err != nil {
		return err
	}
	g := p.ctrl.Grid()

	switch strings.ToLower(args[0]) {
	case "next", "n":
		if !g.Next() {
			p.output.Info("Already on the last page")
		}
	case "prev", "previous", "p":
		if !g.Prev() {
			p.output.Info("Already on the first page")
		}
	case "first":
		g.First()
	case "last":
		g.Last()
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page %q: use a number from 1 or next, prev, first, last", args[0])
		}
		g.SetPage(n - 1)
	}
	p.render(false)
	return nil
}

func (p *PageCommand) Usage() string {
	return "page <n|next|prev|first|last>"
}

func (p *PageCommand) Description() string {
	return "Move between pages of the grid"
}

func (p *PageCommand) Completions(input string) []string {
	return []string{"next", "prev", "first", "last"}
}

func (p *PageCommand) Aliases() []string {
	return []string{}
}

// SizeCommand sets how many rows a page holds
type SizeCommand struct {
	*BaseCommand
}

// NewSizeCommand creates a new size command
func NewSizeCommand(base *BaseCommand) *SizeCommand {
	return &SizeCommand{BaseCommand: base}
}

// Execute sets the page size; "all" shows every row on one page
func (s *SizeCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	size := 0
	if !strings.EqualFold(args[0], "all") {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid page size %q: use a positive number or all", args[0])
		}
		size = n
	}
	s.ctrl.Grid().SetPageSize(size)
	s.render(false)
	return nil
}

func (s *SizeCommand) Usage() string {
	return "size <n|all>"
}

func (s *SizeCommand) Description() string {
	return "Set the number of rows per page"
}

func (s *SizeCommand) Completions(input string) []string {
	return []string{"10", "25", "50", "100", "all"}
}

func (s *SizeCommand) Aliases() []string {
	return []string{}
}
