package console

import (
	"github.com/chzyer/readline"
)

// createCompleter builds tab completion from the registry. Arguments are
// completed dynamically so ids follow the current page.
func (c *Console) createCompleter() *readline.PrefixCompleter {
	commandNames := c.registry.AllCompletions()
	names := make([]readline.PrefixCompleterInterface, len(commandNames))
	for i, name := range commandNames {
		names[i] = readline.PcItem(name)
	}

	var items []readline.PrefixCompleterInterface
	for _, name := range commandNames {
		if name == "help" || name == "?" {
			items = append(items, readline.PcItem(name, names...))
			continue
		}
		cmd, ok := c.registry.Get(name)
		if !ok {
			continue
		}
		items = append(items, readline.PcItem(name, readline.PcItemDynamic(cmd.Completions)))
	}
	return readline.NewPrefixCompleter(items...)
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
