package config

import "time"

const (
	// DefaultModuleID is the identifier of the installed module.
	DefaultModuleID = "murongchaopin"

	DefaultBridgeTimeout = 3 * time.Second
	DefaultBatchSize     = 3
	DefaultBatchDelay    = 50 * time.Millisecond
)

// Default command lines, as understood by the device shell.
const (
	DefaultModesCommand    = `dumpsys display | grep -oE "\{id=[0-9]+, width=[0-9]+, height=[0-9]+, fps=[0-9.]+" | sort -u`
	DefaultPackagesCommand = `pm list packages -3 | cut -d: -f2`
	DefaultSlotCommand     = `getprop ro.boot.slot_suffix`
	DefaultFPSCommand      = `dumpsys display | grep -oE 'fps=[0-9.]+' | head -n1`
)

// GetDefaultConfig returns the configuration used when no file overrides it.
// Path fields are still unrendered templates.
func GetDefaultConfig() Config {
	return Config{
		ModuleID:   DefaultModuleID,
		ModuleDir:  "/data/adb/modules/{{ .ModuleID }}",
		ScriptPath: "{{ .ModuleDir }}/scripts/web_handler.sh",
		ConfigFile: "{{ .ModuleDir }}/config/mode.txt",
		LogFile:    "{{ .ModuleDir }}/daemon.log",
		Bridge: BridgeConfig{
			Timeout: DefaultBridgeTimeout,
		},
		Labels: LabelsConfig{
			BatchSize:  DefaultBatchSize,
			BatchDelay: DefaultBatchDelay,
		},
		Commands: CommandsConfig{
			Modes:    DefaultModesCommand,
			Packages: DefaultPackagesCommand,
			Slot:     DefaultSlotCommand,
			FPS:      DefaultFPSCommand,
		},
	}
}
