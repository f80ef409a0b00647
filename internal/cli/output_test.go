package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"ratectl/internal/apps"
	"ratectl/internal/bridge"
	"ratectl/internal/catalog"
	"ratectl/internal/device"
	"ratectl/internal/overrides"
	"ratectl/internal/rates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testModes = []catalog.DisplayMode{
	{ID: 1, Width: 1080, Height: 2400, FPS: 60, RawFPS: 60},
	{ID: 2, Width: 1440, Height: 3200, FPS: 120, RawFPS: 120.00001},
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range ValidOutputFormats {
		assert.NoError(t, ValidateOutputFormat(string(f)))
	}

	for _, f := range []string{"", "wide", "xml"} {
		err := ValidateOutputFormat(f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
		assert.True(t, IsUsageError(err))
	}
}

func TestNewPrinter_FallsBackToTable(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, "bogus", false)
	assert.Equal(t, OutputFormatTable, p.Format())
	assert.False(t, p.Structured())
}

func TestPrinter_ModesJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, OutputFormatJSON, false)

	require.NoError(t, p.Modes(testModes, catalog.ClassAll, 2))

	var got []catalog.DisplayMode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testModes, got)
}

func TestPrinter_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, OutputFormatJSON, false)

	require.NoError(t, p.Modes([]catalog.DisplayMode{}, catalog.ClassHigh, -1))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrinter_ModesYAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, OutputFormatYAML, false)

	require.NoError(t, p.Modes(testModes[:1], catalog.ClassAll, -1))
	out := buf.String()
	assert.Contains(t, out, "id: 1")
	assert.Contains(t, out, "width: 1080")
	assert.Contains(t, out, "rawFps: 60")
}

func TestPrinter_ModesTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, OutputFormatTable, false)

	require.NoError(t, p.Modes(testModes, catalog.ClassAll, 2))
	out := buf.String()
	assert.Contains(t, out, "RESOLUTION")
	assert.Contains(t, out, "1080x2400")
	assert.Contains(t, out, "1440x3200")
	assert.Contains(t, out, "2K")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "╭", "rounded style")
}

func TestPrinter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, OutputFormatTable, true)

	require.NoError(t, p.Modes(testModes, catalog.ClassAll, -1))
	assert.NotContains(t, buf.String(), "RESOLUTION")
	assert.Contains(t, buf.String(), "1080x2400")
}

func TestPrinter_EmptyTables(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer) error
		want  string
	}{
		{"modes", func(p *Printer) error { return p.Modes(nil, catalog.ClassHigh, -1) }, "No display modes found (class 2K)"},
		{"rates", func(p *Printer) error { return p.Rates(nil, "") }, "No refresh rate nodes found"},
		{"apps", func(p *Printer) error { return p.Apps(nil) }, "No applications found"},
		{"diagnostics", func(p *Printer) error { return p.Diagnostics(nil) }, "No bridge activity recorded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.print(NewPrinter(&buf, OutputFormatTable, false)))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrinter_Rates(t *testing.T) {
	var nodes []rates.RateNode
	require.NoError(t, json.Unmarshal(
		[]byte(`[{"node":"dsi_60","fps":60,"clock":"1000","file":"a.dts"},{"node":"dsi_120","fps":120,"clock":2000,"file":"b.dts"}]`),
		&nodes))

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, false).Rates(nodes, "dsi_120"))
	out := buf.String()
	assert.Contains(t, out, "dsi_60")
	assert.Contains(t, out, "b.dts")
	assert.Contains(t, out, "2000")
	assert.Contains(t, out, "*")

	buf.Reset()
	require.NoError(t, NewPrinter(&buf, OutputFormatJSON, false).Rates(nodes, "dsi_120"))
	assert.Contains(t, buf.String(), `"clock": "1000"`)
	assert.Contains(t, buf.String(), `"clock": 2000`)
}

func TestPrinter_Apps(t *testing.T) {
	entries := []apps.Entry{
		{PackageID: "com.game", Label: "Game", OverrideModeID: 2, OverrideFPS: 120},
		{PackageID: "com.maps", OverrideModeID: overrides.NoOverride},
		{PackageID: "com.old", OverrideModeID: 9},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, false).Apps(entries))
	out := buf.String()
	assert.Contains(t, out, "#2 @ 120Hz")
	assert.Contains(t, out, "global")
	assert.Contains(t, out, "#9")
	assert.Contains(t, out, "Game")
}

func TestPrinter_Status(t *testing.T) {
	mode := testModes[1]
	v := StatusView{
		Bridge:       "available",
		Slot:         "_a",
		Backup:       device.BackupPresent,
		GlobalModeID: 2,
		GlobalMode:   &mode,
		AppOverrides: 3,
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, false).Status(v))
	out := buf.String()
	assert.Contains(t, out, "_a")
	assert.Contains(t, out, "#2 1440x3200 @ 120Hz")
	assert.Contains(t, out, "present")
	assert.Contains(t, out, "unknown", "missing fps is shown as unknown")

	buf.Reset()
	v.GlobalModeID = overrides.NoOverride
	v.GlobalMode = nil
	require.NoError(t, NewPrinter(&buf, OutputFormatJSON, false).Status(v))
	assert.Contains(t, buf.String(), `"globalModeId": -1`)
	assert.NotContains(t, buf.String(), "globalMode\":")
}

func TestPrinter_Diagnostics(t *testing.T) {
	entries := []bridge.DiagnosticEntry{
		{Time: time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC), Message: "[Exec] getprop"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, OutputFormatTable, false).Diagnostics(entries))
	assert.Contains(t, buf.String(), "13:04:05")
	assert.Contains(t, buf.String(), "[Exec] getprop")
}
