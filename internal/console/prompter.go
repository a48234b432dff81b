package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"clientctl/internal/console/commands"

	"github.com/chzyer/readline"
)

// linePrompter reads dialog fields through the console's readline instance,
// so history and line editing work inside dialogs too.
type linePrompter struct {
	console *Console
}

func (p *linePrompter) Prompt(label, def string) (string, error) {
	rl := p.console.rl
	if rl == nil {
		return "", fmt.Errorf("console is not running")
	}
	restore := p.console.enterDialog(label + ": ")
	defer restore()

	line, err := rl.ReadlineWithDefault(def)
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", commands.ErrCancelled
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

func (p *linePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		answer, err := p.Prompt(question+" "+hint, "")
		if err != nil {
			return false, err
		}
		if v, ok := parseConfirm(answer, def); ok {
			return v, nil
		}
		p.console.output.Warning("Please answer y or n")
	}
}

// parseConfirm maps an answer to yes or no. An empty answer takes def.
func parseConfirm(answer string, def bool) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
