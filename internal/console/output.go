package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// terminalOutput writes user-facing messages, colored by kind.
type terminalOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func newTerminalOutput(w io.Writer) *terminalOutput {
	return &terminalOutput{w: w}
}

func (o *terminalOutput) setWriter(w io.Writer) {
	o.mu.Lock()
	o.w = w
	o.mu.Unlock()
}

func (o *terminalOutput) Writer() io.Writer {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w
}

func (o *terminalOutput) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(o.Writer(), format+"\n", args...)
}

func (o *terminalOutput) Info(format string, args ...interface{}) {
	fmt.Fprintln(o.Writer(), text.FgHiBlue.Sprintf(format, args...))
}

func (o *terminalOutput) Success(format string, args ...interface{}) {
	fmt.Fprintln(o.Writer(), text.FgGreen.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

func (o *terminalOutput) Warning(format string, args ...interface{}) {
	fmt.Fprintln(o.Writer(), text.FgYellow.Sprintf(format, args...))
}

func (o *terminalOutput) Error(format string, args ...interface{}) {
	fmt.Fprintln(o.Writer(), text.FgRed.Sprintf(format, args...))
}
