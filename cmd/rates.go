package cmd

import (
	"context"
	"fmt"

	"ratectl/internal/app"
	"ratectl/internal/cli"

	"github.com/spf13/cobra"
)

func newRatesCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Edit refresh-rate timing nodes in the device tree workspace",
		Long: `Edit the refresh-rate timing nodes of the extracted device tree.

Typical flow:
  ratectl rates init        extract the DTBO into the workspace
  ratectl rates scan        list the timing nodes
  ratectl rates add 144     clone the base node with a new rate
  ratectl rates apply       repack and flash the workspace`,
	}

	cmd.AddCommand(
		newRatesScanCmd(s),
		newRatesInitCmd(s),
		newRatesAddCmd(s),
		newRatesRemoveCmd(s),
		newRatesModifyCmd(s),
		newRatesApplyCmd(s),
	)
	return cmd
}

// printRates prints the current rate table.
func printRates(s *session, cmd *cobra.Command, state *app.State) error {
	p, err := s.printer(cmd)
	if err != nil {
		return err
	}
	base, _ := state.Rates.DefaultBase()
	return p.Rates(state.Rates.Table(), base.Node)
}

// ensureScanned scans the workspace unless a table is already loaded.
func ensureScanned(ctx context.Context, s *session, state *app.State) error {
	if len(state.Rates.Table()) > 0 {
		return nil
	}
	var err error
	s.spin("Scanning rate nodes...", func() {
		err = state.Rates.Scan(ctx)
	})
	return err
}

func newRatesScanCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the workspace for timing nodes",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			s.spin("Scanning rate nodes...", func() {
				err = state.Rates.Scan(ctx)
			})
			if err != nil {
				return err
			}
			return printRates(s, cmd, state)
		},
	}
}

func newRatesInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Extract the DTBO partition into a fresh workspace",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			s.spin("Initializing workspace...", func() {
				_, err = state.Rates.InitWorkspace(ctx)
			})
			if err != nil {
				return err
			}
			s.notifier(cmd).Success("Workspace initialized")
			return printRates(s, cmd, state)
		},
	}
}

func newRatesAddCmd(s *session) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "add <fps>",
		Short: "Add a timing node cloned from a base node",
		Long: `Clone a base timing node with a new target refresh rate. The base
defaults to the 120Hz node, or the first node when there is none.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}

			if base == "" {
				if err := ensureScanned(ctx, s, state); err != nil {
					return err
				}
				if node, ok := state.Rates.DefaultBase(); ok {
					base = node.Node
				}
			}

			s.spin(fmt.Sprintf("Adding %s Hz node...", args[0]), func() {
				_, err = state.Rates.Add(ctx, base, args[0])
			})
			if err != nil {
				return err
			}
			s.notifier(cmd).Success("Added %s Hz node based on %s", args[0], base)
			return printRates(s, cmd, state)
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base node to clone (default: the 120Hz node)")
	return cmd
}

func newRatesRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <node>",
		Short: "Remove a timing node",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			confirm, err := s.Confirmer()
			if err != nil {
				return err
			}

			n := s.notifier(cmd)
			if _, err := state.Rates.Remove(ctx, args[0], confirm); err != nil {
				return cancelled(n, err)
			}
			n.Success("Removed %s", args[0])
			return printRates(s, cmd, state)
		},
	}
}

func newRatesModifyCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "modify <node> <fps>",
		Short: "Change the refresh rate of a timing node",
		Long: `Change a node's refresh rate. A node with the new rate is added first
and the old node removed afterwards. If the removal fails both nodes are
left in place and the command exits with status 3.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			if err := ensureScanned(ctx, s, state); err != nil {
				return err
			}

			node, fps := args[0], args[1]
			current := -1
			for _, n := range state.Rates.Table() {
				if n.Node == node {
					current = n.FPS
					break
				}
			}
			if current < 0 {
				return cli.Usage(fmt.Errorf("unknown rate node %q (see 'ratectl rates scan')", node))
			}

			s.spin(fmt.Sprintf("Changing %s to %s Hz...", node, fps), func() {
				_, err = state.Rates.Modify(ctx, node, current, fps)
			})
			if err != nil {
				return err
			}
			s.notifier(cmd).Success("Changed %s from %d Hz to %s Hz", node, current, fps)
			return printRates(s, cmd, state)
		},
	}
}

func newRatesApplyCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Repack the workspace and flash it",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			confirm, err := s.Confirmer()
			if err != nil {
				return err
			}

			n := s.notifier(cmd)
			resp, err := state.Rates.ApplyChanges(ctx, confirm)
			if err != nil {
				return cancelled(n, err)
			}
			n.Alert("Apply result", resp)
			n.Warn("Reboot the device for the new rates to take effect")
			return nil
		},
	}
}
