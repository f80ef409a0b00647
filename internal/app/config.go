package app

import (
	"ratectl/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Custom configuration directory (optional)
	ConfigPath string

	// LegacyCallback forces the callback host convention regardless of
	// the settings file.
	LegacyCallback bool

	// SkipRefresh leaves the catalog and overrides unloaded after bootstrap.
	SkipRefresh bool

	// Settings, when set, is used instead of loading from ConfigPath.
	Settings *config.Config

	// Host, when set, replaces the local shell host. It must implement
	// bridge.PromiseHost or bridge.CallbackHost.
	Host interface{}
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
