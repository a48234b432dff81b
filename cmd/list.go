package cmd

import (
	"fmt"
	"strings"

	"clientctl/internal/cli"
	"clientctl/internal/clients"
	"clientctl/internal/grid"

	"github.com/spf13/cobra"
)

type listOptions struct {
	flags    cli.CommandFlags
	search   string
	sort     string
	page     int
	pageSize int
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Long: `List clients the way the grid shows them: filtered by --search,
ordered by --sort and cut into pages.

Every word of --search must appear in at least one column. --sort takes a
column key with an optional direction, e.g. "nameEn:desc". Total Rows counts
every row matching --search, across all pages.

Sortable columns: ` + strings.Join(sortableColumnKeys(), ", ") + `

Examples:
  clientctl list
  clientctl list --search "acme billing"
  clientctl list --sort service:desc --page 2
  clientctl list -o wide --page-size 0
  clientctl list -o json
  clientctl list -o template --template '{{range .items}}{{.code}} {{.service | upper}}{{"\n"}}{{end}}'`,
		Args: cobra.NoArgs,
		RunE: traced(func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		}),
	}

	cli.RegisterCommonFlags(cmd, &opts.flags)
	cmd.Flags().StringVar(&opts.search, "search", "", "Only show rows matching every word")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort column and direction, e.g. code or nameEn:desc")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Rows per page, 0 for all (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, k := range sortableColumnKeys() {
			out = append(out, k, k+":desc")
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	printer, err := opts.flags.Printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if opts.page < 1 {
		return fmt.Errorf("invalid page %d: pages start at 1", opts.page)
	}
	if opts.pageSize < 0 {
		return fmt.Errorf("invalid page size %d: use 0 for all rows", opts.pageSize)
	}
	key, dir, err := parseSortFlag(opts.sort)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), &opts.flags)
	if err != nil {
		return err
	}

	g := s.ctrl.Grid()
	if cmd.Flags().Changed("page-size") {
		g.SetPageSize(opts.pageSize)
	}
	if key != "" {
		if err := g.SortBy(key, dir); err != nil {
			return fmt.Errorf("invalid --sort: %w", err)
		}
	}
	if opts.search != "" {
		g.Search(opts.search)
	}
	g.SetPage(opts.page - 1)

	return printer.PrintList(cli.NewListView(s.ctrl))
}

// parseSortFlag splits "key[:asc|desc]".
func parseSortFlag(v string) (string, grid.Direction, error) {
	if v == "" {
		return "", grid.Asc, nil
	}
	key, dirPart, _ := strings.Cut(v, ":")
	dir, err := grid.ParseDirection(dirPart)
	if err != nil {
		return "", grid.Asc, err
	}
	return key, dir, nil
}

func sortableColumnKeys() []string {
	var keys []string
	for _, c := range clients.Columns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
