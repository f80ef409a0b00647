package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Validate checks cfg and returns every problem found as a
// ConfigurationErrorCollection, or nil when cfg is usable.
func Validate(cfg Config, filePath string) error {
	errs := &ConfigurationErrorCollection{}
	add := func(field, message string, suggestions ...string) {
		errs.Add(ConfigurationError{
			FilePath:    filePath,
			FileName:    filepath.Base(filePath),
			Field:       field,
			ErrorType:   ErrorTypeValidation,
			Message:     message,
			Suggestions: suggestions,
		})
	}

	required := map[string]string{
		"moduleID":          cfg.ModuleID,
		"moduleDir":         cfg.ModuleDir,
		"scriptPath":        cfg.ScriptPath,
		"configFile":        cfg.ConfigFile,
		"logFile":           cfg.LogFile,
		"commands.modes":    cfg.Commands.Modes,
		"commands.packages": cfg.Commands.Packages,
		"commands.slot":     cfg.Commands.Slot,
		"commands.fps":      cfg.Commands.FPS,
	}
	for _, field := range slices.Sorted(maps.Keys(required)) {
		if strings.TrimSpace(required[field]) == "" {
			add(field, "is required", "remove the key to fall back to the default")
		}
	}

	if strings.ContainsAny(cfg.ModuleID, "/ ") {
		add("moduleID", "cannot contain spaces or slashes")
	}
	if cfg.Bridge.Timeout <= 0 {
		add("bridge.timeout", fmt.Sprintf("must be positive, got %s", cfg.Bridge.Timeout),
			fmt.Sprintf("use a duration such as %s", DefaultBridgeTimeout))
	}
	if cfg.Labels.BatchSize < 1 {
		add("labels.batchSize", fmt.Sprintf("must be at least 1, got %d", cfg.Labels.BatchSize))
	}
	if cfg.Labels.BatchDelay < 0 {
		add("labels.batchDelay", "must not be negative")
	}

	if errs.HasErrors() {
		return *errs
	}
	return nil
}
