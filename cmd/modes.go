package cmd

import (
	"ratectl/internal/catalog"
	"ratectl/internal/cli"

	"github.com/spf13/cobra"
)

func newModesCmd(s *session) *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List display modes",
		Long: `List the display modes reported by the panel, sorted by refresh rate
and width. Without --class the list is filtered by the class of the
configured global mode.

Classes: 1080p (width below 1200), 2k (width 1200 and above), all.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := s.State(cmd.Context())
			if err != nil {
				return err
			}
			p, err := s.printer(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("class") {
				c, err := catalog.ParseClass(class)
				if err != nil {
					return cli.Usage(err)
				}
				state.Catalog.SetClass(c)
			}

			return p.Modes(state.Catalog.Filtered(), state.Catalog.Class(), state.Overrides.Global())
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Resolution class to show (1080p, 2k, all)")
	return cmd
}

func newModeCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Manage the global display mode",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <id>",
		Short: "Set the global display mode",
		Long: `Write the global display mode to the module configuration. The mode
list and configuration are reloaded afterwards.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			mode, err := lookupMode(state, args[0])
			if err != nil {
				return err
			}

			s.spin("Saving global mode...", func() {
				_, err = state.Overrides.SaveGlobal(ctx, mode.ID)
			})
			if err != nil {
				return err
			}

			s.notifier(cmd).Success("Global mode set to #%d (%s @ %dHz)", mode.ID, mode.Resolution(), mode.FPS)
			return nil
		},
	})
	return cmd
}
