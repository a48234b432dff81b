// Package commands provides the commands of the interactive console.
//
// Every command implements Command, which lets the console keep a registry
// with aliases, help text and tab completion. Commands act on the shared
// clients.Controller and never render rows themselves beyond asking the cli
// package to draw the current grid page.
package commands

import (
	"context"
	"errors"
	"io"
	"sort"
)

var (
	// ErrExit is returned by the exit command to end the console loop.
	ErrExit = errors.New("exit")

	// ErrCancelled is returned by a Prompter when the user abandons a dialog.
	ErrCancelled = errors.New("cancelled")
)

// Command represents a console command.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns possible completions for the command.
	// The input parameter is the current partial input for context.
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// Output separates user-facing output from diagnostic logging.
type Output interface {
	// Writer is where tables are rendered.
	Writer() io.Writer
	OutputLine(format string, args ...interface{})
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Prompter reads dialog input from the user.
type Prompter interface {
	// Prompt asks for a value, offering def as editable default.
	Prompt(label, def string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(question string, def bool) (bool, error)
}

// Registry manages available commands for the console.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string // alias -> primary command name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd

	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = name
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, true
	}

	if primary, exists := r.aliases[name]; exists {
		if cmd, exists := r.commands[primary]; exists {
			return cmd, true
		}
	}

	return nil, false
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllCompletions returns command names and aliases, sorted.
func (r *Registry) AllCompletions() []string {
	completions := r.List()
	for alias := range r.aliases {
		completions = append(completions, alias)
	}
	sort.Strings(completions)
	return completions
}
