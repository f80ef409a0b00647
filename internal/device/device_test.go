package device

import (
	"context"
	"testing"

	"ratectl/internal/bridge/bridgetest"
	"ratectl/internal/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *fixedConfirmer) Confirm(_ context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

var yes = &fixedConfirmer{answer: true}

const testLog = "/data/adb/modules/m/daemon.log"

func newTestDevice(host *bridgetest.FakeHost) *Device {
	client := script.NewClient(bridgetest.NewBridge(host), "/m/web_handler.sh")
	return New(client, Commands{
		Slot: "getprop ro.boot.slot_suffix",
		FPS:  "dumpsys display | grep -oE 'fps=[0-9.]+' | head -n1",
	}, testLog)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		backup string
		want   BackupState
	}{
		{"present", "EXIST", BackupPresent},
		{"absent", "NONE", BackupAbsent},
		{"garbage", "???", BackupAbsent},
		{"no answer", "", BackupUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := bridgetest.NewFakeHost().
				On("getprop", "_b\n").
				On("dumpsys", "fps=120.00001\n").
				On("check_backup", tt.backup)

			st := newTestDevice(host).Status(context.Background())
			assert.Equal(t, "_b", st.Slot)
			assert.Equal(t, "120.00001", st.FPS)
			assert.Equal(t, tt.want, st.Backup)
			assert.Equal(t, tt.want == BackupPresent, st.CanRestore())
		})
	}
}

func TestStatus_Unavailable(t *testing.T) {
	st := newTestDevice(bridgetest.NewFakeHost()).Status(context.Background())
	assert.Equal(t, Status{Backup: BackupUnknown}, st)
}

func TestFlash(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		host := bridgetest.NewFakeHost()
		c := &fixedConfirmer{}
		_, err := newTestDevice(host).Flash(context.Background(), "", c)
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Empty(t, host.Calls())
		assert.Contains(t, c.prompts[0], "backup")
	})

	t.Run("custom rate warns and is passed through", func(t *testing.T) {
		host := bridgetest.NewFakeHost().On("flash_dtbo", "Patched 3 nodes\nFlashed to _a")
		c := &fixedConfirmer{answer: true}
		resp, err := newTestDevice(host).Flash(context.Background(), " 165 ", c)
		require.NoError(t, err)
		assert.Equal(t, "Patched 3 nodes\nFlashed to _a", resp)
		assert.Contains(t, c.prompts[0], "165 Hz is experimental")
		assert.Equal(t, 1, host.CallsMatching(`flash_dtbo "165"`))
	})

	t.Run("no custom rate sends empty argument", func(t *testing.T) {
		host := bridgetest.NewFakeHost().On("flash_dtbo", "Done")
		_, err := newTestDevice(host).Flash(context.Background(), "", yes)
		require.NoError(t, err)
		assert.Equal(t, 1, host.CallsMatching(`flash_dtbo ""`))
	})
}

func TestRestoreAndUninstall(t *testing.T) {
	host := bridgetest.NewFakeHost().
		On("restore_dtbo", "Success").
		On("uninstall_module", "Failed: busy")
	d := newTestDevice(host)

	_, err := d.Restore(context.Background(), yes)
	require.NoError(t, err)

	resp, err := d.Uninstall(context.Background(), yes)
	assert.True(t, script.IsFailure(err))
	assert.Equal(t, "Failed: busy", resp)

	_, err = d.Restore(context.Background(), &fixedConfirmer{})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestToggleADFR(t *testing.T) {
	host := bridgetest.NewFakeHost().On("toggle_adfr", "Success")
	d := newTestDevice(host)

	_, err := d.ToggleADFR(context.Background(), false, yes)
	require.NoError(t, err)
	_, err = d.ToggleADFR(context.Background(), true, yes)
	require.NoError(t, err)

	assert.Equal(t, 1, host.CallsMatching(`toggle_adfr "disable"`))
	assert.Equal(t, 1, host.CallsMatching(`toggle_adfr "enable"`))
}

func TestLogs(t *testing.T) {
	host := bridgetest.NewFakeHost().
		On("tail -n 1000", "line1\nline2\n").
		On("tail -n 5", "  \n").
		On("echo", "")
	d := newTestDevice(host)

	assert.Equal(t, "line1\nline2\n", d.TailLog(context.Background(), 0))
	assert.Equal(t, "", d.TailLog(context.Background(), 5))
	assert.Equal(t, 1, host.CallsMatching(`tail -n 1000 "`+testLog+`"`))

	assert.ErrorIs(t, d.ClearLog(context.Background(), &fixedConfirmer{}), ErrCancelled)
	require.NoError(t, d.ClearLog(context.Background(), yes))
	assert.Equal(t, 1, host.CallsMatching(`echo "" > "`+testLog+`"`))
}
