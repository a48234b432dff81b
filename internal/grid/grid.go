package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of rows per page after Load.
const DefaultPageSize = 10

// ErrNotSortable is returned when sorting by a column that does not allow it.
var ErrNotSortable = errors.New("column is not sortable")

// Column describes one fixed grid column.
type Column struct {
	Key   string
	Title string
	// Sortable columns can be ordered by Sort.
	Sortable bool
	// Searchable columns are matched by Search.
	Searchable bool
	// Wide columns are only shown by detailed renderers.
	Wide bool
}

// Row is one record projected into cells, aligned with the grid's columns.
type Row struct {
	ID    int64
	Cells []string
}

// Cell returns the value of column i, or "" when the row is short.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc", "desc" and "" (asc).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return Asc, fmt.Errorf("invalid sort direction %q: must be asc or desc", s)
	}
}

// PageInfo describes the current page. Start and End are indices into the
// filtered rows, End exclusive.
type PageInfo struct {
	Page     int
	Pages    int
	PageSize int
	Start    int
	End      int
	Filtered int
	Total    int
}

// DrawEvent is passed to draw listeners.
type DrawEvent struct {
	VisibleCount int
	Page         PageInfo
}

// Grid holds rows and the current search, sort and paging state.
type Grid struct {
	columns []Column

	rows     []Row
	filtered []Row

	search string
	tokens []string

	sortColumn int
	sortDir    Direction

	page     int
	pageSize int

	listeners []func(DrawEvent)
}

// New creates an empty grid with the given columns. The default sort is the
// first sortable column, ascending.
func New(columns []Column) *Grid {
	g := &Grid{
		columns:  append([]Column(nil), columns...),
		pageSize: DefaultPageSize,
	}
	g.sortColumn = g.defaultSortColumn()
	return g
}

func (g *Grid) defaultSortColumn() int {
	for i, c := range g.columns {
		if c.Sortable {
			return i
		}
	}
	return -1
}

// Columns returns the column definitions.
func (g *Grid) Columns() []Column {
	return append([]Column(nil), g.columns...)
}

// ColumnIndex finds a column by key, case-insensitively.
func (g *Grid) ColumnIndex(key string) (int, bool) {
	for i, c := range g.columns {
		if strings.EqualFold(c.Key, key) {
			return i, true
		}
	}
	return -1, false
}

// OnDraw registers a listener called after every draw.
func (g *Grid) OnDraw(fn func(DrawEvent)) {
	g.listeners = append(g.listeners, fn)
}

// Load replaces the rows and resets search, sort and paging to their
// defaults before drawing.
func (g *Grid) Load(rows []Row) {
	g.search = ""
	g.tokens = nil
	g.sortColumn = g.defaultSortColumn()
	g.sortDir = Asc
	g.page = 0
	g.pageSize = DefaultPageSize
	g.setRows(rows)
	g.Draw()
}

// Redraw replaces the rows and draws again keeping the current page, sort and
// search. The page is clamped when the filtered set shrinks.
func (g *Grid) Redraw(rows []Row) {
	g.setRows(rows)
	g.Draw()
}

func (g *Grid) setRows(rows []Row) {
	g.rows = append(make([]Row, 0, len(rows)), rows...)
}

// Draw recomputes the filtered, sorted projection and notifies listeners.
func (g *Grid) Draw() {
	filtered := make([]Row, 0, len(g.rows))
	for _, r := range g.rows {
		if g.matches(r) {
			filtered = append(filtered, r)
		}
	}

	if g.sortColumn >= 0 {
		col, desc := g.sortColumn, g.sortDir == Desc
		compare := compareText
		if numericColumn(filtered, col) {
			compare = compareNumbers
		}
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compare(filtered[i].Cell(col), filtered[j].Cell(col))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	g.filtered = filtered

	if pages := g.pageCount(); g.page >= pages {
		g.page = pages - 1
	}
	if g.page < 0 {
		g.page = 0
	}

	event := DrawEvent{VisibleCount: len(g.filtered), Page: g.PageInfo()}
	for _, fn := range g.listeners {
		fn(event)
	}
}

// Search applies a term. It is split on whitespace and every token must be a
// case-insensitive substring of at least one searchable cell. The grid
// returns to the first page, as it does when a user types in the search box.
func (g *Grid) Search(term string) {
	g.search = strings.TrimSpace(term)
	g.tokens = strings.Fields(strings.ToLower(g.search))
	g.page = 0
	g.Draw()
}

// SearchTerm returns the applied search term.
func (g *Grid) SearchTerm() string {
	return g.search
}

func (g *Grid) matches(r Row) bool {
	for _, tok := range g.tokens {
		found := false
		for i, c := range g.columns {
			if c.Searchable && strings.Contains(strings.ToLower(r.Cell(i)), tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Sort orders rows by column index. Ties keep their load order.
func (g *Grid) Sort(column int, dir Direction) error {
	if column < 0 || column >= len(g.columns) {
		return fmt.Errorf("column index %d out of range", column)
	}
	if !g.columns[column].Sortable {
		return fmt.Errorf("%s: %w", g.columns[column].Key, ErrNotSortable)
	}
	g.sortColumn = column
	g.sortDir = dir
	g.Draw()
	return nil
}

// SortBy orders rows by column key.
func (g *Grid) SortBy(key string, dir Direction) error {
	i, ok := g.ColumnIndex(key)
	if !ok {
		return fmt.Errorf("unknown column %q", key)
	}
	return g.Sort(i, dir)
}

// SortState returns the sorted column (nil when nothing sorts) and direction.
func (g *Grid) SortState() (*Column, Direction) {
	if g.sortColumn < 0 {
		return nil, g.sortDir
	}
	c := g.columns[g.sortColumn]
	return &c, g.sortDir
}

// SetPage moves to page n (zero-based), clamped to the available pages.
func (g *Grid) SetPage(n int) {
	g.page = n
	g.Draw()
}

// Next moves one page forward. It reports false on the last page.
func (g *Grid) Next() bool {
	if g.page+1 >= g.pageCount() {
		return false
	}
	g.SetPage(g.page + 1)
	return true
}

// Prev moves one page back. It reports false on the first page.
func (g *Grid) Prev() bool {
	if g.page == 0 {
		return false
	}
	g.SetPage(g.page - 1)
	return true
}

// First moves to the first page.
func (g *Grid) First() {
	g.SetPage(0)
}

// Last moves to the last page.
func (g *Grid) Last() {
	g.SetPage(g.pageCount() - 1)
}

// SetPageSize changes the rows per page and returns to the first page.
// A size of zero or less shows every row on one page.
func (g *Grid) SetPageSize(n int) {
	if n < 0 {
		n = 0
	}
	g.pageSize = n
	g.page = 0
	g.Draw()
}

// PageSize returns the rows per page, 0 meaning all rows.
func (g *Grid) PageSize() int {
	return g.pageSize
}

func (g *Grid) pageCount() int {
	n := len(g.filtered)
	if g.pageSize <= 0 || n == 0 {
		return 1
	}
	return (n + g.pageSize - 1) / g.pageSize
}

// PageInfo describes the current page of the last draw.
func (g *Grid) PageInfo() PageInfo {
	filtered := len(g.filtered)
	start, end := 0, filtered
	if g.pageSize > 0 {
		start = g.page * g.pageSize
		if start > filtered {
			start = filtered
		}
		end = start + g.pageSize
		if end > filtered {
			end = filtered
		}
	}
	return PageInfo{
		Page:     g.page,
		Pages:    g.pageCount(),
		PageSize: g.pageSize,
		Start:    start,
		End:      end,
		Filtered: filtered,
		Total:    len(g.rows),
	}
}

// VisibleCount is the number of rows passing the current search, across
// all pages.
func (g *Grid) VisibleCount() int {
	return len(g.filtered)
}

// PageRows returns the rows of the current page in display order.
func (g *Grid) PageRows() []Row {
	info := g.PageInfo()
	return append([]Row(nil), g.filtered[info.Start:info.End]...)
}

// FilteredRows returns every row passing the search, in display order.
func (g *Grid) FilteredRows() []Row {
	return append([]Row(nil), g.filtered...)
}

// numericColumn reports whether every non-empty cell of col is a finite
// number. The type is decided once per column so one sort never mixes
// numeric and text ordering.
func numericColumn(rows []Row, col int) bool {
	seen := false
	for _, r := range rows {
		cell := r.Cell(col)
		if cell == "" {
			continue
		}
		if _, ok := parseNumber(cell); !ok {
			return false
		}
		seen = true
	}
	return seen
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// compareNumbers orders cells of a numeric column. Empty cells sort first.
func compareNumbers(a, b string) int {
	if c, done := compareEmpty(a, b); done {
		return c
	}
	fa, _ := parseNumber(a)
	fb, _ := parseNumber(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// compareText orders cells case-insensitively. Empty cells sort first.
func compareText(a, b string) int {
	if c, done := compareEmpty(a, b); done {
		return c
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareEmpty(a, b string) (int, bool) {
	switch {
	case a == b:
		return 0, true
	case a == "":
		return -1, true
	case b == "":
		return 1, true
	}
	return 0, false
}
