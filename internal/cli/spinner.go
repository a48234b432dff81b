package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// progressWriter is where spinners draw. Results go to stdout, so progress
// stays on stderr.
var progressWriter io.Writer = os.Stderr

// isInteractive reports whether progress output would reach a terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// WithSpinner runs fn while a spinner shows message. No spinner is drawn in
// quiet mode or when stderr is not a terminal. A failure leaves a short red
// marker behind; the error itself is returned for the caller to report.
func WithSpinner(quiet bool, message string, fn func() error) error {
	if quiet || !isInteractive() {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(progressWriter))
	s.Suffix = " " + message
	s.Start()

	err := fn()
	if err != nil {
		s.FinalMSG = fmt.Sprintf("%s\n", text.FgRed.Sprint("❌ "+message+" failed"))
	}
	s.Stop()
	return err
}
