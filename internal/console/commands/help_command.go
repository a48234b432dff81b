package commands

import (
	"context"
	"strings"
)

// HelpCommand shows available commands and usage information
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command
func NewHelpCommand(base *BaseCommand, registry *Registry) *HelpCommand {
	return &HelpCommand{BaseCommand: base, registry: registry}
}

// Execute shows help information
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.showGeneralHelp()
		return nil
	}

	commandName := strings.ToLower(args[0])
	command, exists := h.registry.Get(commandName)
	if !exists {
		h.output.Error("Unknown command: %s", commandName)
		h.output.OutputLine("Use 'help' to see all available commands.")
		return nil
	}

	h.output.OutputLine("Command: %s", commandName)
	h.output.OutputLine("Description: %s", command.Description())
	h.output.OutputLine("Usage: %s", command.Usage())
	if aliases := command.Aliases(); len(aliases) > 0 {
		h.output.OutputLine("Aliases: %s", strings.Join(aliases, ", "))
	}
	return nil
}

func (h *HelpCommand) showGeneralHelp() {
	h.output.OutputLine("Available commands:")
	h.output.OutputLine("  help, ?                        - Show this help message")
	h.output.OutputLine("  list, ls [wide]                - Show the current page of clients")
	h.output.OutputLine("  search <term>                  - Filter rows; every word must match a column")
	h.output.OutputLine("  clear-search                   - Remove the search filter")
	h.output.OutputLine("  sort <column> [asc|desc]       - Sort by a column")
	h.output.OutputLine("  page <n|next|prev|first|last>  - Move between pages")
	h.output.OutputLine("  size <n|all>                   - Set rows per page")
	h.output.OutputLine("  refresh                        - Reload clients from the server")
	h.output.OutputLine("  show <id>                      - Show all fields of a client")
	h.output.OutputLine("  add                            - Create a client")
	h.output.OutputLine("  edit <id>                      - Update service and names of a client")
	h.output.OutputLine("  delete <id>                    - Delete a client after confirmation")
	h.output.OutputLine("  exit, quit                     - Exit the console")
	h.output.OutputLine("")
	h.output.OutputLine("Keyboard shortcuts:")
	h.output.OutputLine("  TAB                            - Auto-complete commands and arguments")
	h.output.OutputLine("  ↑/↓ (arrow keys)               - Navigate command history")
	h.output.OutputLine("  Ctrl+R                         - Search command history")
	h.output.OutputLine("  Ctrl+C                         - Cancel current line or dialog")
	h.output.OutputLine("  Ctrl+D                         - Exit the console")
}

// Usage returns the usage string
func (h *HelpCommand) Usage() string {
	return "help [command]"
}

// Description returns the command description
func (h *HelpCommand) Description() string {
	return "Show help information for commands"
}

// Completions returns all command names
func (h *HelpCommand) Completions(input string) []string {
	return h.registry.AllCompletions()
}

// Aliases returns command aliases
func (h *HelpCommand) Aliases() []string {
	return []string{"?"}
}
