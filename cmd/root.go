package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"ratectl/internal/cli"
	"ratectl/internal/config"
	"ratectl/internal/overrides"
	"ratectl/internal/rates"
	"ratectl/internal/script"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeValidation indicates invalid input or configuration; nothing
	// was sent to the device.
	ExitCodeValidation = 2
	// ExitCodeScriptFailure indicates the helper script reported a failure.
	ExitCodeScriptFailure = 3
)

const versionTemplate = `{{printf "ratectl version %s\n" .Version}}`

// version is injected by main. Command trees read it when they are built,
// never rootCmd.
var version string

// rootSession backs rootCmd for one-shot invocations.
var rootSession = newSession()

// rootCmd represents the base command for the ratectl application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = newRootCmd(rootSession)

// newRootCmd builds the command tree bound to s. The shell builds a fresh
// tree per input line so flag values never leak between lines.
func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "ratectl",
		Short: "Manage display refresh rates on a rooted device",
		Long: `ratectl drives the refresh-rate module installed on a rooted Android
device. It picks the global display mode and per-application overrides,
edits refresh-rate timing nodes in the device tree overlay, and flashes
or restores the DTBO partition.

Every device operation runs through the module's helper script.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		Version:      version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(s.flags.OutputFormat); err != nil {
				return err
			}
			if !s.interactive {
				s.initLogging()
			}
			return nil
		},
	}

	cli.RegisterCommonFlags(root, &s.flags)

	root.AddCommand(
		newStatusCmd(s),
		newModesCmd(s),
		newModeCmd(s),
		newAppsCmd(s),
		newAppCmd(s),
		newRatesCmd(s),
		newFlashCmd(s),
		newRestoreCmd(s),
		newADFRCmd(s),
		newLogsCmd(s),
		newUninstallCmd(s),
		newDiagCmd(s),
		newShellCmd(s),
		newVersionCmd(s),
		newSelfUpdateCmd(),
	)
	return root
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(versionTemplate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	rootSession.Close()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var failure *script.FailureError
	var partial *rates.PartialError
	var parseErr *rates.ParseError
	if errors.As(err, &failure) || errors.As(err, &partial) || errors.As(err, &parseErr) {
		return ExitCodeScriptFailure
	}

	var cfgErr config.ConfigurationError
	var cfgErrs config.ConfigurationErrorCollection
	switch {
	case cli.IsUsageError(err),
		errors.As(err, &cfgErr),
		errors.As(err, &cfgErrs),
		errors.Is(err, rates.ErrNoBaseNode),
		errors.Is(err, rates.ErrInvalidFPS),
		errors.Is(err, rates.ErrUnchanged),
		errors.Is(err, overrides.ErrNoModeSelected):
		return ExitCodeValidation
	}

	return ExitCodeError
}
