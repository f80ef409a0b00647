package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// CommandFlags holds the global flag values shared by every command.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables debug logging to stderr
	Debug bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
	// Yes answers every confirmation prompt with yes
	Yes bool
	// LegacyCallback forces the callback host convention
	LegacyCallback bool
}

// RegisterCommonFlags registers the global flags on cmd.
//
// The registered flags are:
//   - --output/-o: Output format (table, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging
//   - --config: Configuration directory
//   - --yes/-y: Skip confirmation prompts
//   - --legacy-callback: Use the callback host convention
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, json, yaml)")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Configuration directory (default ~/.config/ratectl)")
	cmd.PersistentFlags().BoolVarP(&flags.Yes, "yes", "y", false, "Answer yes to every confirmation prompt")
	cmd.PersistentFlags().BoolVar(&flags.LegacyCallback, "legacy-callback", false, "Deliver command results through named callbacks")
}

// Printer builds the output printer for the selected flags.
func (f *CommandFlags) Printer(out io.Writer) (*Printer, error) {
	if err := ValidateOutputFormat(f.OutputFormat); err != nil {
		return nil, err
	}
	return NewPrinter(out, OutputFormat(f.OutputFormat), f.NoHeaders), nil
}

// DefaultCommandFlags returns the values RegisterCommonFlags starts from.
func DefaultCommandFlags() CommandFlags {
	var flags CommandFlags
	RegisterCommonFlags(&cobra.Command{}, &flags)
	return flags
}
