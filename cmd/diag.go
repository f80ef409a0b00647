package cmd

import (
	"fmt"

	"ratectl/internal/cli"

	"github.com/spf13/cobra"
)

func newDiagCmd(s *session) *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Show the command bridge diagnostic log",
		Long: `Show every command sent to the device in this session and how it
resolved. Outside the shell this covers the commands issued during startup.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tail < 0 {
				return cli.Usage(fmt.Errorf("--tail must not be negative"))
			}
			state, err := s.State(cmd.Context())
			if err != nil {
				return err
			}
			p, err := s.printer(cmd)
			if err != nil {
				return err
			}
			return p.Diagnostics(state.Bridge.Log().Tail(tail))
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 0, "Show only the last N entries (0 for all)")
	return cmd
}
