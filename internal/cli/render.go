package cli

import (
	"fmt"
	"io"
	"strconv"

	"clientctl/internal/clients"
	"clientctl/internal/grid"
	pkgstrings "clientctl/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderGrid draws a page of the grid as a rounded table with the actions
// column, followed by the row indicator. It is the console's main view.
func RenderGrid(w io.Writer, view ListView, wide bool) {
	if len(view.Rows) == 0 {
		msg := "No clients found"
		if view.Page.Total > 0 {
			msg = "No clients match the current search"
		}
		fmt.Fprintf(w, "%s %s\n", text.FgYellow.Sprint("📋"), text.FgYellow.Sprint(msg))
		fmt.Fprintln(w, text.FgHiBlue.Sprint(FormatTotalRows(view.VisibleCount)))
		return
	}

	t := newTable(w)

	header := table.Row{text.FgHiCyan.Sprint("ID")}
	var indices []int
	for i, col := range view.Columns {
		if col.Wide && !wide {
			continue
		}
		header = append(header, text.FgHiCyan.Sprint(col.Title))
		indices = append(indices, i)
	}
	t.AppendHeader(header)

	for _, r := range view.Rows {
		row := table.Row{strconv.FormatInt(r.ID, 10)}
		for _, i := range indices {
			cell := r.Cell(i)
			if !wide {
				cell = pkgstrings.TruncateCell(cell, pkgstrings.DefaultCellMaxWidth)
			}
			if !view.Columns[i].Searchable {
				cell = text.FgHiBlack.Sprint(cell)
			}
			row = append(row, cell)
		}
		t.AppendRow(row)
	}
	t.Render()

	fmt.Fprintf(w, "%s  %s\n",
		text.FgHiBlue.Sprint(FormatTotalRows(view.VisibleCount)),
		text.FgHiBlack.Sprint(FormatPageInfo(view.Page)))
}

// RenderState prints the active search and sort under the grid.
func RenderState(w io.Writer, g *grid.Grid) {
	col, dir := g.SortState()
	sortDesc := "none"
	if col != nil {
		sortDesc = col.Key + " " + dir.String()
	}
	search := g.SearchTerm()
	if search == "" {
		search = "-"
	}
	pageSize := strconv.Itoa(g.PageSize())
	if g.PageSize() <= 0 {
		pageSize = "all"
	}
	fmt.Fprintf(w, "%s %s  %s %s  %s %s\n",
		text.FgHiBlack.Sprint("search:"), search,
		text.FgHiBlack.Sprint("sort:"), sortDesc,
		text.FgHiBlack.Sprint("page size:"), pageSize)
}

// RenderClient draws one client as a key/value table.
func RenderClient(w io.Writer, c clients.Client) {
	t := newTable(w)
	t.AppendHeader(table.Row{text.FgHiCyan.Sprint("PROPERTY"), text.FgHiCyan.Sprint("VALUE")})
	for _, kv := range ClientProperties(c) {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint(kv[0]), dash(kv[1])})
	}
	t.Render()
}

// RenderDeleteSummary shows what is about to be deleted.
func RenderDeleteSummary(w io.Writer, id int64, s clients.DeleteSummary) {
	fmt.Fprintf(w, "%s client %s (%s): %s\n",
		text.FgRed.Sprint("Delete"),
		text.FgHiWhite.Sprint(id),
		text.FgHiWhite.Sprint(s.Code),
		s.Name)
}

// RenderDialogError prints the inline message of a dialog.
func RenderDialogError(w io.Writer, d clients.Dialog) {
	if d.Error == "" {
		return
	}
	fmt.Fprintln(w, text.FgRed.Sprint(d.Error))
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}
