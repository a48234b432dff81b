package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"clientctl/internal/cli"

	"github.com/spf13/cobra"
)

// parseClientID parses a positive client id argument.
func parseClientID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid client id %q: must be a positive integer", arg)
	}
	return id, nil
}

// clientIDCompletion completes ids as "id\tcode / service" when the server
// is reachable; otherwise it offers nothing.
func clientIDCompletion(flags *cli.CommandFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		quiet := *flags
		quiet.Quiet = true
		s, err := openSession(ctx, &quiet)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []string
		for _, c := range s.ctrl.Cache().All() {
			id := strconv.FormatInt(c.ID, 10)
			if strings.HasPrefix(id, toComplete) {
				completions = append(completions, id+"\t"+c.Code+" / "+c.Service)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// confirmAction prompts the user for confirmation and returns true if they confirm.
func confirmAction(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
