package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"clientctl/internal/clients"
	"clientctl/internal/grid"

	"github.com/Masterminds/sprig/v3"
	"sigs.k8s.io/yaml"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide formats output as a table with the audit columns
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON formats output as JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatTemplate renders a Go template with sprig functions
	OutputFormatTemplate OutputFormat = "template"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatWide,
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatTemplate,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
func ValidateOutputFormat(format string) error {
	for _, f := range ValidOutputFormats {
		if OutputFormat(format) == f {
			return nil
		}
	}
	valid := make([]string, 0, len(ValidOutputFormats))
	for _, f := range ValidOutputFormats {
		valid = append(valid, string(f))
	}
	return fmt.Errorf("invalid output format %q: must be one of %s", format, strings.Join(valid, ", "))
}

// ListView is one page of the grid together with the clients behind its rows.
type ListView struct {
	Columns      []grid.Column
	Rows         []grid.Row
	Items        []clients.Client
	Page         grid.PageInfo
	VisibleCount int
}

// NewListView captures the current page of a controller's grid.
func NewListView(ctrl *clients.Controller) ListView {
	g := ctrl.Grid()
	rows := g.PageRows()
	items := make([]clients.Client, 0, len(rows))
	for _, r := range rows {
		if c, ok := ctrl.Cache().Find(r.ID); ok {
			items = append(items, c)
		}
	}
	return ListView{
		Columns:      g.Columns(),
		Rows:         rows,
		Items:        items,
		Page:         g.PageInfo(),
		VisibleCount: g.VisibleCount(),
	}
}

// listDocument is the machine-readable form of a ListView.
type listDocument struct {
	Items     []clients.Client `json:"items"`
	TotalRows int              `json:"totalRows"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	Pages     int              `json:"pages"`
	PageSize  int              `json:"pageSize"`
}

// Printer writes command results in the selected format.
type Printer struct {
	Format    OutputFormat
	NoHeaders bool
	// Template is the text/template source used by OutputFormatTemplate.
	Template string
	Out      io.Writer
}

// PrintList writes a page of clients followed, for tables, by the row count
// and page indicator.
func (p *Printer) PrintList(view ListView) error {
	switch p.Format {
	case OutputFormatTable, OutputFormatWide, "":
		p.printListTable(view)
		return nil
	default:
		items := view.Items
		if items == nil {
			items = []clients.Client{}
		}
		return p.printStructured(listDocument{
			Items:     items,
			TotalRows: view.VisibleCount,
			Total:     view.Page.Total,
			Page:      view.Page.Page + 1,
			Pages:     view.Page.Pages,
			PageSize:  view.Page.PageSize,
		})
	}
}

func (p *Printer) printListTable(view ListView) {
	wide := p.Format == OutputFormatWide

	var headers []string
	var indices []int
	headers = append(headers, "ID")
	for i, col := range view.Columns {
		if !col.Searchable || (col.Wide && !wide) {
			continue
		}
		headers = append(headers, col.Title)
		indices = append(indices, i)
	}

	tw := NewPlainTableWriter(p.Out)
	tw.SetHeaders(headers)
	tw.SetNoHeaders(p.NoHeaders)
	for _, row := range view.Rows {
		cells := []string{strconv.FormatInt(row.ID, 10)}
		for _, i := range indices {
			cells = append(cells, dash(row.Cell(i)))
		}
		tw.AppendRow(cells)
	}
	tw.Render()

	if p.NoHeaders {
		return
	}
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, FormatTotalRows(view.VisibleCount))
	fmt.Fprintln(p.Out, FormatPageInfo(view.Page))
}

// PrintClient writes a single client. Tables show it as property/value pairs.
func (p *Printer) PrintClient(c clients.Client) error {
	switch p.Format {
	case OutputFormatTable, OutputFormatWide, "":
		tw := NewPlainTableWriter(p.Out)
		tw.SetHeaders([]string{"PROPERTY", "VALUE"})
		tw.SetNoHeaders(p.NoHeaders)
		for _, kv := range ClientProperties(c) {
			tw.AppendRow([]string{kv[0], dash(kv[1])})
		}
		tw.Render()
		return nil
	default:
		return p.printStructured(c)
	}
}

// ClientProperties lists the fields of a client in display order.
func ClientProperties(c clients.Client) [][2]string {
	return [][2]string{
		{"id", strconv.FormatInt(c.ID, 10)},
		{"code", c.Code},
		{"service", c.Service},
		{"nameTh", c.NameTh},
		{"nameEn", c.NameEn},
		{"createdBy", c.CreatedBy},
		{"createdAt", c.CreatedAt},
		{"updatedBy", c.UpdatedBy},
		{"updatedAt", c.UpdatedAt},
	}
}

func (p *Printer) printStructured(v interface{}) error {
	switch p.Format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(p.Out, string(data))
		return err
	case OutputFormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		_, err = p.Out.Write(data)
		return err
	case OutputFormatTemplate:
		return p.printTemplate(v)
	default:
		return fmt.Errorf("unsupported output format: %s", p.Format)
	}
}

// printTemplate executes the template against the JSON form of v, so
// templates use the same field names as json and yaml output.
func (p *Printer) printTemplate(v interface{}) error {
	if strings.TrimSpace(p.Template) == "" {
		return fmt.Errorf("--template is required with -o template")
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(p.Template)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode template data: %w", err)
	}
	var data interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode template data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(p.Out, out)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
