package cmd

import (
	"ratectl/internal/cli"
	"ratectl/internal/device"

	"github.com/spf13/cobra"
)

func newStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show device and configuration status",
		Long: `Show the boot slot, current refresh rate, DTBO backup state, the
configured global display mode and the number of per-application overrides.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}
			p, err := s.printer(cmd)
			if err != nil {
				return err
			}

			var st device.Status
			s.spin("Reading device status...", func() {
				st = state.Device.Status(ctx)
			})

			view := cli.StatusView{
				Bridge:       "unavailable",
				Slot:         st.Slot,
				FPS:          st.FPS,
				Backup:       st.Backup,
				GlobalModeID: state.Overrides.Global(),
				AppOverrides: len(state.Overrides.Apps()),
			}
			if state.Bridge.Available() {
				view.Bridge = "available"
			}
			if mode, ok := state.Catalog.Find(view.GlobalModeID); ok {
				view.GlobalMode = &mode
			}
			return p.Status(view)
		},
	}
}
