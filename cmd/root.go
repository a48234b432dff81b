package cmd

import (
	"context"
	"os"
	"time"

	"clientctl/internal/cli"
	"clientctl/internal/telemetry"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the clientctl application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "clientctl",
	Short: "Manage Client records of the back-office service",
	Long: `clientctl lists, searches, creates, edits and deletes Client records
through the service's REST resource. Each record is identified by the pair
(code, service) and carries a Thai and an English name.

Use 'clientctl console' for the interactive grid, or the one-shot commands
for scripting.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "clientctl version %s\n" .Version}}`)

	shutdown := telemetry.Setup("clientctl", rootCmd.Version)

	err := rootCmd.Execute()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = shutdown(ctx)
	cancel()

	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	return cli.ExitCodeFor(err)
}

// traced wraps a RunE so that each invocation is one span.
func traced(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, end := telemetry.StartCommand(cmd.Context(), cmd.CommandPath(), args...)
		cmd.SetContext(ctx)
		err := run(cmd, args)
		end(err)
		return err
	}
}

func init() {
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newConsoleCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
