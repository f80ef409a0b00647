package cmd

import (
	"fmt"
	"strings"

	"ratectl/internal/cli"
	"ratectl/internal/device"

	"github.com/spf13/cobra"
)

func newLogsCmd(s *session) *cobra.Command {
	var (
		lines    int
		clearLog bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show or clear the module daemon log",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if lines < 0 {
				return cli.Usage(fmt.Errorf("--lines must not be negative"))
			}
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			n := s.notifier(cmd)

			if clearLog {
				confirm, err := s.Confirmer()
				if err != nil {
					return err
				}
				if err := state.Device.ClearLog(ctx, confirm); err != nil {
					return cancelled(n, err)
				}
				n.Success("Cleared %s", state.Device.LogFile())
				return nil
			}

			var out string
			s.spin("Reading log...", func() {
				out = state.Device.TailLog(ctx, lines)
			})
			if out == "" {
				n.Warn("Log %s is empty or missing", state.Device.LogFile())
				return nil
			}
			writeLine(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", device.DefaultLogLines, "Number of lines to show")
	cmd.Flags().BoolVar(&clearLog, "clear", false, "Clear the log instead of showing it")
	return cmd
}
