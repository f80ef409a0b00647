package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"ratectl/internal/overrides"

	"github.com/spf13/cobra"
)

func newAppsCmd(s *session) *cobra.Command {
	var withLabels bool

	list := func(cmd *cobra.Command, term string) error {
		ctx := cmd.Context()
		state, err := s.State(ctx)
		if err != nil {
			return err
		}
		p, err := s.printer(cmd)
		if err != nil {
			return err
		}

		s.spin("Listing applications...", func() {
			state.LoadPackages(ctx, withLabels)
			if withLabels {
				err = state.Labels.Wait(ctx)
			}
		})
		if err != nil {
			return err
		}

		pkgs := state.Packages()
		if term != "" {
			pkgs = state.SearchPackages(term)
		}
		return p.Apps(state.AppEntries(pkgs))
	}

	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List third-party applications and their display modes",
		Long: `List installed third-party applications with the display mode
assigned to each one. Applications without an override follow the global
mode.

With --labels the human-readable application names are looked up first;
this issues one helper call per application.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd, "")
		},
	}
	cmd.PersistentFlags().BoolVar(&withLabels, "labels", false, "Resolve application labels")

	cmd.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search applications by package, label or assigned refresh rate",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd, args[0])
		},
	})
	return cmd
}

// clearOverride is the mode argument that removes an application's
// assignment. "-1" is also accepted after "--".
const clearOverride = "none"

func newAppCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage per-application display modes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <package> <id|none>",
		Short: "Assign a display mode to an application",
		Long: `Assign a display mode to one application. Use "none" to remove the
assignment so the application follows the global mode. The numeric form
-1 works too when written after "--":

  ratectl app set com.example.game -- -1`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAppMode(cmd, s, args[0], args[1])
		},
	}, &cobra.Command{
		Use:   "unset <package>",
		Short: "Make an application follow the global mode",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAppMode(cmd, s, args[0], clearOverride)
		},
	})
	return cmd
}

func setAppMode(cmd *cobra.Command, s *session, pkg, arg string) error {
	ctx := cmd.Context()
	state, err := s.State(ctx)
	if err != nil {
		return err
	}

	modeID := overrides.NoOverride
	desc := ""
	if !isClearArg(arg) {
		mode, err := lookupMode(state, arg)
		if err != nil {
			return err
		}
		modeID = mode.ID
		desc = fmt.Sprintf("#%d (%s @ %dHz)", mode.ID, mode.Resolution(), mode.FPS)
	}

	s.spin("Saving application mode...", func() {
		_, err = state.Overrides.SaveAppOverride(ctx, pkg, modeID)
	})
	if err != nil {
		return err
	}

	n := s.notifier(cmd)
	if modeID == overrides.NoOverride {
		n.Success("%s now follows the global mode", pkg)
		return nil
	}
	n.Success("%s set to %s", pkg, desc)
	return nil
}

func isClearArg(arg string) bool {
	if strings.EqualFold(arg, clearOverride) {
		return true
	}
	id, err := strconv.Atoi(arg)
	return err == nil && id == overrides.NoOverride
}
