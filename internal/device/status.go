package device

import (
	"context"
	"strings"

	"ratectl/internal/script"
)

// BackupState is whether a stock DTBO backup exists.
type BackupState string

const (
	BackupPresent BackupState = "present"
	BackupAbsent  BackupState = "absent"
	BackupUnknown BackupState = "unknown" // the check produced no answer
)

// Status is a snapshot of the device.
type Status struct {
	Slot   string      `json:"slot"` // empty when unknown
	FPS    string      `json:"fps"`  // current refresh rate, empty when unknown
	Backup BackupState `json:"backup"`
}

// CanRestore reports whether a restore has something to restore from.
func (s Status) CanRestore() bool {
	return s.Backup == BackupPresent
}

// Status queries the boot slot, current refresh rate and backup state.
// Each query fails independently to an empty or unknown value.
func (d *Device) Status(ctx context.Context) Status {
	var st Status

	st.Slot = strings.TrimSpace(d.client.Exec(ctx, d.commands.Slot))

	if _, fps, ok := strings.Cut(d.client.Exec(ctx, d.commands.FPS), "="); ok {
		st.FPS = strings.TrimSpace(fps)
	}

	resp := d.client.Run(ctx, script.OpCheckBackup)
	switch script.Classify(script.OpCheckBackup, resp) {
	case script.Succeeded:
		st.Backup = BackupPresent
	case script.Unknown:
		st.Backup = BackupUnknown
	default:
		st.Backup = BackupAbsent
	}
	return st
}
