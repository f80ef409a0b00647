package config

import "time"

// Config is the top-level configuration structure for ratectl.
type Config struct {
	ModuleID   string `yaml:"moduleID"`
	ModuleDir  string `yaml:"moduleDir"`
	ScriptPath string `yaml:"scriptPath"` // helper script invoked for every write
	ConfigFile string `yaml:"configFile"` // mode.txt with global mode and app overrides
	LogFile    string `yaml:"logFile"`    // daemon log shown by `ratectl logs`

	Bridge   BridgeConfig   `yaml:"bridge"`
	Labels   LabelsConfig   `yaml:"labels"`
	Commands CommandsConfig `yaml:"commands"`
}

// BridgeConfig controls how commands reach the privileged host.
type BridgeConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	LegacyCallback bool          `yaml:"legacyCallback"` // use the callback-name convention instead of direct resolution
	Shell          string        `yaml:"shell,omitempty"`
}

// LabelsConfig tunes application label resolution.
type LabelsConfig struct {
	BatchSize  int           `yaml:"batchSize"`
	BatchDelay time.Duration `yaml:"batchDelay"`
}

// CommandsConfig holds the raw shell commands used for discovery.
type CommandsConfig struct {
	Modes    string `yaml:"modes"`
	Packages string `yaml:"packages"`
	Slot     string `yaml:"slot"`
	FPS      string `yaml:"fps"`
}
