package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommonFlags(t *testing.T) {
	var flags CommandFlags
	cmd := &cobra.Command{Use: "test"}
	RegisterCommonFlags(cmd, &flags)

	require.NoError(t, cmd.ParseFlags([]string{"-o", "json", "-q", "--yes", "--config", "/tmp/cfg", "--legacy-callback"}))

	assert.Equal(t, "json", flags.OutputFormat)
	assert.True(t, flags.Quiet)
	assert.True(t, flags.Yes)
	assert.True(t, flags.LegacyCallback)
	assert.False(t, flags.Debug)
	assert.Equal(t, "/tmp/cfg", flags.ConfigPath)
}

func TestCommandFlags_Printer(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"table", "table", false},
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"invalid", "csv", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := CommandFlags{OutputFormat: tt.format}
			p, err := flags.Printer(&bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, OutputFormat(tt.format), p.Format())
		})
	}
}

func TestDefaultCommandFlags(t *testing.T) {
	flags := DefaultCommandFlags()

	assert.Equal(t, string(OutputFormatTable), flags.OutputFormat)
	assert.False(t, flags.Yes)
	assert.False(t, flags.Quiet)

	_, err := flags.Printer(&bytes.Buffer{})
	assert.NoError(t, err)
}
