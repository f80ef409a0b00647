package cmd

import (
	"context"
	"errors"

	"ratectl/internal/device"

	"github.com/spf13/cobra"
)

// errNoBackup is returned by restore when the device has no stock backup.
var errNoBackup = errors.New("no DTBO backup found on the device; nothing to restore")

// deviceOp is a confirmed operation whose helper response is shown verbatim.
type deviceOp func(ctx context.Context, d *device.Device, confirm device.Confirmer) (string, error)

// runDeviceOp bootstraps state, asks for confirmation through op and
// prints the response under title.
func runDeviceOp(s *session, cmd *cobra.Command, title string, op deviceOp) error {
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
	resp, err := op(ctx, state.Device, confirm)
	if err != nil {
		return cancelled(n, err)
	}
	n.Alert(title, resp)
	return nil
}

func newFlashCmd(s *session) *cobra.Command {
	var rate string

	cmd := &cobra.Command{
		Use:   "flash",
		Short: "Flash the overclocked DTBO",
		Long: `Flash the module's overclocked DTBO to the active slot. A backup of
the stock DTBO is taken by the helper first.

--rate flashes an experimental custom refresh rate instead of the
module's presets. Unsupported rates can leave the screen black.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDeviceOp(s, cmd, "Flash result", func(ctx context.Context, d *device.Device, confirm device.Confirmer) (string, error) {
				return d.Flash(ctx, rate, confirm)
			})
			if err == nil {
				s.notifier(cmd).Warn("Reboot the device to apply the new DTBO")
			}
			return err
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "", "Experimental custom refresh rate in Hz")
	return cmd
}

func newRestoreCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the stock DTBO from backup",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := s.State(ctx)
			if err != nil {
				return err
			}

			switch st := state.Device.Status(ctx); st.Backup {
			case device.BackupAbsent:
				return errNoBackup
			case device.BackupUnknown:
				s.notifier(cmd).Warn("Could not check for a DTBO backup")
			}

			return runDeviceOp(s, cmd, "Restore result", func(ctx context.Context, d *device.Device, confirm device.Confirmer) (string, error) {
				return d.Restore(ctx, confirm)
			})
		},
	}
}

func newADFRCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adfr",
		Short: "Control adaptive dynamic refresh (ADFR)",
		Long: `Disable adaptive dynamic refresh so the selected mode is held, or
restore the system properties saved when it was disabled.`,
	}

	for _, enable := range []bool{true, false} {
		use, short := "disable", "Force adaptive refresh off"
		if enable {
			use, short = "enable", "Restore the previous adaptive refresh settings"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDeviceOp(s, cmd, "ADFR "+use, func(ctx context.Context, d *device.Device, confirm device.Confirmer) (string, error) {
					return d.ToggleADFR(ctx, enable, confirm)
				})
			},
		})
	}
	return cmd
}

func newUninstallCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall the module",
		Long: `Restore the stock DTBO when a backup exists and remove the module
from the device. Reboot afterwards.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeviceOp(s, cmd, "Uninstall result", func(ctx context.Context, d *device.Device, confirm device.Confirmer) (string, error) {
				return d.Uninstall(ctx, confirm)
			})
		},
	}
}
