// Package console implements the interactive client manager.
//
// The console owns one clients.Controller for the whole session. It reads
// commands with readline, offers tab completion for command names, column
// keys and the ids on the current page, and keeps the number of visible rows
// in the prompt. Add, edit and delete run as dialogs: the console prompts for
// each field with the current value as an editable default and keeps the
// dialog open after a failed submission until the user gives up.
//
//	c := console.New(ctrl, console.Options{})
//	if err := c.Run(ctx); err != nil {
//	    return err
//	}
package console
