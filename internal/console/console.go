package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"clientctl/internal/clients"
	"clientctl/internal/console/commands"
	"clientctl/internal/grid"
	"clientctl/internal/telemetry"
	"clientctl/pkg/logging"

	"github.com/chzyer/readline"
)

const (
	promptPrefixUnicode  = "👥"
	promptPrefixASCII    = "clients"
	promptChevronUnicode = "»"
	promptChevronASCII   = ">"
)

// commandExecutionTimeout bounds a single command including its dialog.
const commandExecutionTimeout = 5 * time.Minute

const subsystem = "Console"

// Options configures a Console.
type Options struct {
	// Out receives tables and messages. Defaults to stdout.
	Out io.Writer
	// HistoryFile defaults to a file in the temp directory.
	HistoryFile string
	// Prompter overrides the readline prompter, mainly for tests.
	Prompter commands.Prompter
}

// Console is the interactive read-eval-print loop around a controller.
type Console struct {
	ctrl     *clients.Controller
	registry *commands.Registry
	output   *terminalOutput
	prompter commands.Prompter
	history  string

	rl         *readline.Instance
	useUnicode bool

	mu      sync.RWMutex
	visible int
	dialog  bool
}

// New creates a console for ctrl and registers all commands.
func New(ctrl *clients.Controller, opts Options) *Console {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	history := opts.HistoryFile
	if history == "" {
		history = filepath.Join(os.TempDir(), ".clientctl_history")
	}

	c := &Console{
		ctrl:       ctrl,
		registry:   commands.NewRegistry(),
		output:     newTerminalOutput(out),
		history:    history,
		useUnicode: detectUnicodeSupport(),
		visible:    ctrl.Grid().VisibleCount(),
	}
	c.prompter = opts.Prompter
	if c.prompter == nil {
		c.prompter = &linePrompter{console: c}
	}

	ctrl.Grid().OnDraw(c.onDraw)
	c.registerCommands()
	return c
}

func (c *Console) registerCommands() {
	base := commands.NewBaseCommand(c.ctrl, c.output, c.prompter)

	c.registry.Register("help", commands.NewHelpCommand(base, c.registry))
	c.registry.Register("list", commands.NewListCommand(base))
	c.registry.Register("search", commands.NewSearchCommand(base))
	c.registry.Register("clear-search", commands.NewClearSearchCommand(base))
	c.registry.Register("sort", commands.NewSortCommand(base))
	c.registry.Register("page", commands.NewPageCommand(base))
	c.registry.Register("size", commands.NewSizeCommand(base))
	c.registry.Register("refresh", commands.NewRefreshCommand(base))
	c.registry.Register("show", commands.NewShowCommand(base))
	c.registry.Register("add", commands.NewAddCommand(base))
	c.registry.Register("edit", commands.NewEditCommand(base))
	c.registry.Register("delete", commands.NewDeleteCommand(base))
	c.registry.Register("exit", commands.NewExitCommand(base))
}

// Registry exposes the registered commands.
func (c *Console) Registry() *commands.Registry {
	return c.registry
}

func (c *Console) onDraw(ev grid.DrawEvent) {
	c.mu.Lock()
	c.visible = ev.VisibleCount
	c.mu.Unlock()
	c.updatePrompt()
}

// detectUnicodeSupport checks if the terminal likely supports unicode characters.
func detectUnicodeSupport() bool {
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "" || term == "dumb" {
		return false
	}
	for _, v := range []string{os.Getenv("LANG"), os.Getenv("LC_ALL")} {
		v = strings.ToLower(v)
		if strings.Contains(v, "utf-8") || strings.Contains(v, "utf8") {
			return true
		}
	}
	return term != "vt100"
}

// buildPrompt shows the number of visible rows, e.g. "👥 12 » ".
func (c *Console) buildPrompt() string {
	c.mu.RLock()
	visible := c.visible
	useUnicode := c.useUnicode
	c.mu.RUnlock()

	prefix, chevron := promptPrefixASCII, promptChevronASCII
	if useUnicode {
		prefix, chevron = promptPrefixUnicode, promptChevronUnicode
	}
	return strings.Join([]string{prefix, strconv.Itoa(visible), chevron}, " ") + " "
}

// updatePrompt refreshes the readline prompt unless a dialog owns it.
func (c *Console) updatePrompt() {
	c.mu.RLock()
	inDialog := c.dialog
	c.mu.RUnlock()
	if c.rl != nil && !inDialog {
		c.rl.SetPrompt(c.buildPrompt())
	}
}

// Execute parses one input line and runs the matching command.
func (c *Console) Execute(ctx context.Context, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	commandName := strings.ToLower(parts[0])
	args := parts[1:]
	if commandName == "?" {
		commandName = "help"
	}

	command, exists := c.registry.Get(commandName)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	commandCtx, cancel := context.WithTimeout(ctx, commandExecutionTimeout)
	defer cancel()

	commandCtx, end := telemetry.StartCommand(commandCtx, "console "+commandName, args...)
	logging.Debug(subsystem, "Executing %s %v", commandName, args)
	err := command.Execute(commandCtx, args)
	if errors.Is(err, commands.ErrExit) {
		end(nil)
	} else {
		end(err)
	}
	return err
}

// Run draws the first page and processes commands until exit, Ctrl+D or
// cancellation of ctx.
func (c *Console) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.buildPrompt(),
		HistoryFile:     c.history,
		AutoComplete:    c.createCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	c.rl = rl
	c.output.setWriter(rl.Stdout())

	c.output.Info("Client manager started. Type 'help' for available commands. Use TAB for completion.")
	if err := c.Execute(ctx, "list"); err != nil {
		c.output.Error("Error: %v", err)
	}
	c.output.OutputLine("")

	for {
		select {
		case <-ctx.Done():
			c.output.Info("Shutting down...")
			return nil
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			c.output.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := c.Execute(ctx, input); err != nil {
			if errors.Is(err, commands.ErrExit) {
				c.output.Info("Goodbye!")
				return nil
			}
			c.output.Error("Error: %v", err)
		}
		c.output.OutputLine("")
	}
}

// enterDialog hands the prompt to a dialog; the returned func restores it.
func (c *Console) enterDialog(label string) func() {
	c.mu.Lock()
	c.dialog = true
	c.mu.Unlock()
	if c.rl != nil {
		c.rl.SetPrompt(label)
	}
	return func() {
		c.mu.Lock()
		c.dialog = false
		c.mu.Unlock()
		c.updatePrompt()
	}
}
