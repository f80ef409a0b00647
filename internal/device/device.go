// Package device reports device state and runs the module's maintenance
// actions: flashing and restoring the display overlay, toggling adaptive
// refresh, uninstalling, and reading the daemon log.
package device

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"ratectl/internal/script"
	"ratectl/pkg/logging"
)

// DefaultLogLines is how much of the daemon log TailLog returns by default.
const DefaultLogLines = 1000

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

// Confirmer asks the user to approve a risky step.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Commands are the discovery command lines used by Status.
type Commands struct {
	Slot string
	FPS  string
}

// Device runs device-level queries and actions through the helper.
type Device struct {
	client   *script.Client
	commands Commands
	logFile  string
}

// New creates a Device.
func New(client *script.Client, commands Commands, logFile string) *Device {
	return &Device{client: client, commands: commands, logFile: logFile}
}

// LogFile returns the daemon log path.
func (d *Device) LogFile() string {
	return d.logFile
}

// Flash writes the overclocked overlay. customRate may be empty; a
// non-empty rate is experimental and the prompt says so. The helper's
// answer is returned verbatim, since it has no success marker.
func (d *Device) Flash(ctx context.Context, customRate string, confirm Confirmer) (string, error) {
	customRate = strings.TrimSpace(customRate)
	prompt := "Flash the overclocked DTBO? The device may fail to boot; make sure a backup exists."
	if customRate != "" {
		prompt = "Custom refresh rate " + customRate + " Hz is experimental and may cause a black screen or instability. Flash anyway?"
	}
	if !confirm.Confirm(ctx, prompt) {
		return "", ErrCancelled
	}

	resp, err := d.client.Do(ctx, script.OpFlashDTBO, customRate)
	logging.Info("Device", "Flash finished: %s", script.Snippet(resp))
	return resp, err
}

// Restore puts the stock overlay back.
func (d *Device) Restore(ctx context.Context, confirm Confirmer) (string, error) {
	if !confirm.Confirm(ctx, "Restore the stock DTBO?") {
		return "", ErrCancelled
	}
	return d.client.Do(ctx, script.OpRestoreDTBO)
}

// ToggleADFR disables adaptive refresh, or restores the previous system
// properties when enable is true.
func (d *Device) ToggleADFR(ctx context.Context, enable bool, confirm Confirmer) (string, error) {
	action, prompt := "disable", "Disable ADFR? Variable refresh is forced off, which may increase power draw."
	if enable {
		action, prompt = "enable", "Restore the ADFR settings? Previous system properties are put back."
	}
	if !confirm.Confirm(ctx, prompt) {
		return "", ErrCancelled
	}
	return d.client.Do(ctx, script.OpToggleADFR, action)
}

// Uninstall restores the stock overlay if a backup exists and removes the
// module.
func (d *Device) Uninstall(ctx context.Context, confirm Confirmer) (string, error) {
	if !confirm.Confirm(ctx, "Uninstall the module? The stock DTBO is restored if backed up and module files are removed.") {
		return "", ErrCancelled
	}
	return d.client.Do(ctx, script.OpUninstallModule)
}

// TailLog returns the last n lines of the daemon log, or "" when it is
// missing or empty. n <= 0 means DefaultLogLines.
func (d *Device) TailLog(ctx context.Context, n int) string {
	if n <= 0 {
		n = DefaultLogLines
	}
	out := d.client.Exec(ctx, "tail -n "+strconv.Itoa(n)+" "+script.Quote(d.logFile))
	if strings.TrimSpace(out) == "" {
		return ""
	}
	return out
}

// ClearLog truncates the daemon log after confirm approves.
func (d *Device) ClearLog(ctx context.Context, confirm Confirmer) error {
	if !confirm.Confirm(ctx, "Clear the daemon log?") {
		return ErrCancelled
	}
	d.client.Exec(ctx, `echo "" > `+script.Quote(d.logFile))
	return nil
}
