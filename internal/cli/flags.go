package cli

import (
	"io"

	"clientctl/internal/config"

	"github.com/spf13/cobra"
)

// CommandFlags holds the flag values shared by the commands that talk to the
// client API.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, wide, json, yaml, template)
	OutputFormat string
	// Template is the Go template used with -o template
	Template string
	// NoHeaders suppresses the header row and footer in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables debug logging of HTTP requests
	Debug bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
	// Endpoint overrides the configured endpoint URL
	Endpoint string
}

// RegisterCommonFlags registers the output flags and the connection flags.
//
// The registered flags are:
//   - --output/-o: Output format (table, wide, json, yaml, template), default: "table"
//   - --template: Go template for -o template
//   - --no-headers: Suppress header row in table output
//   - plus everything RegisterConnectionFlags registers
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, wide, json, yaml, template)")
	cmd.Flags().StringVar(&flags.Template, "template", "", "Go template used with -o template (sprig functions available)")
	cmd.Flags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	RegisterConnectionFlags(cmd, flags)
}

// RegisterConnectionFlags registers the flags needed to reach the API
// without any output formatting flags.
//
// The registered flags are:
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging
//   - --config-path: Configuration directory
//   - --endpoint: Client page URL (env: CLIENTCTL_ENDPOINT)
func RegisterConnectionFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging of HTTP requests")
	cmd.Flags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", "", "Client page URL; API paths resolve against it (env: "+config.EnvEndpoint+")")
}

// Printer validates the output flags and returns a Printer writing to out.
func (f *CommandFlags) Printer(out io.Writer) (*Printer, error) {
	format := f.OutputFormat
	if format == "" {
		format = string(OutputFormatTable)
	}
	if err := ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	return &Printer{
		Format:    OutputFormat(format),
		NoHeaders: f.NoHeaders,
		Template:  f.Template,
		Out:       out,
	}, nil
}
