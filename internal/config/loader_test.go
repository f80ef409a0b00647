package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "murongchaopin", cfg.ModuleID)
	assert.Equal(t, "/data/adb/modules/murongchaopin", cfg.ModuleDir)
	assert.Equal(t, "/data/adb/modules/murongchaopin/scripts/web_handler.sh", cfg.ScriptPath)
	assert.Equal(t, "/data/adb/modules/murongchaopin/config/mode.txt", cfg.ConfigFile)
	assert.Equal(t, "/data/adb/modules/murongchaopin/daemon.log", cfg.LogFile)
	assert.Equal(t, 3*time.Second, cfg.Bridge.Timeout)
	assert.False(t, cfg.Bridge.LegacyCallback)
	assert.Equal(t, 3, cfg.Labels.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.Labels.BatchDelay)
	assert.Equal(t, DefaultSlotCommand, cfg.Commands.Slot)
}

func TestLoadConfig_UserOverride(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, `
moduleID: othermod
bridge:
  timeout: 10s
  legacyCallback: true
labels:
  batchDelay: 0s
logFile: '{{ .ModuleDir | upper }}/d.log'
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/adb/modules/othermod", cfg.ModuleDir)
	assert.Equal(t, "/data/adb/modules/othermod/config/mode.txt", cfg.ConfigFile)
	assert.Equal(t, "/DATA/ADB/MODULES/OTHERMOD/d.log", cfg.LogFile)
	assert.Equal(t, 10*time.Second, cfg.Bridge.Timeout)
	assert.True(t, cfg.Bridge.LegacyCallback)
	assert.Equal(t, 3, cfg.Labels.BatchSize, "untouched fields keep defaults")
	assert.Equal(t, time.Duration(0), cfg.Labels.BatchDelay)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, "moduleID: [unclosed")

	_, err := LoadConfig(dir)
	var ce ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeParse, ce.ErrorType)
	assert.Equal(t, filepath.Join(dir, configFileName), ce.FilePath)
}

func TestLoadConfig_ValidationCollectsAllErrors(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, `
moduleID: ""
bridge:
  timeout: 0s
labels:
  batchSize: 0
`)

	_, err := LoadConfig(dir)
	var coll ConfigurationErrorCollection
	require.True(t, errors.As(err, &coll))
	assert.Equal(t, 3, coll.Count())

	fields := make([]string, 0, coll.Count())
	for _, e := range coll.Errors {
		fields = append(fields, e.Field)
		assert.Equal(t, ErrorTypeValidation, e.ErrorType)
	}
	assert.ElementsMatch(t, []string{"moduleID", "bridge.timeout", "labels.batchSize"}, fields)
	assert.Contains(t, coll.Error(), "3 configuration errors")
	assert.Contains(t, coll.GetDetailedReport(), "Suggestions:")
}

func TestLoadConfig_BadTemplate(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, `scriptPath: "{{ .Nope }}/x.sh"`)

	_, err := LoadConfig(dir)
	var ce ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeTemplate, ce.ErrorType)
	assert.Equal(t, "scriptPath", ce.Field)
}

func TestDefaultConfigDir(t *testing.T) {
	orig := osUserHomeDir
	defer func() { osUserHomeDir = orig }()

	osUserHomeDir = func() (string, error) { return "/home/u", nil }
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".config", "ratectl"), dir)

	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = DefaultConfigDir()
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "/data/adb/modules/murongchaopin/scripts/web_handler.sh", cfg.ScriptPath)
}
