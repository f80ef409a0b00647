package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"ratectl/internal/catalog"
	"ratectl/internal/config"
	"ratectl/pkg/logging"
)

// newState is swapped in tests.
var newState = NewState

// Bootstrap builds the application State described by cfg.
//
// Settings come from cfg.Settings when present, otherwise from
// cfg.ConfigPath (or the default directory). An empty mode list during the
// initial refresh is logged and tolerated; the returned State is usable
// for commands that do not need modes.
//
// Panics are recovered and returned as *InitError.
func Bootstrap(ctx context.Context, cfg *Config) (state *State, err error) {
	defer func() {
		if r := recover(); r != nil {
			state = nil
			err = &InitError{Message: fmt.Sprint(r), Stack: string(debug.Stack())}
			logging.Error("Bootstrap", err, "Recovered panic during bootstrap")
		}
	}()

	settings, err := loadSettings(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.LegacyCallback {
		settings.Bridge.LegacyCallback = true
	}

	state = newState(settings, cfg.Host)
	logging.Debug("Bootstrap", "State ready: script=%s legacyCallback=%t",
		settings.ScriptPath, settings.Bridge.LegacyCallback)

	if cfg.SkipRefresh {
		return state, nil
	}
	if err := state.Refresh(ctx); err != nil {
		if !errors.Is(err, catalog.ErrNoModes) {
			state.Close()
			return nil, err
		}
		logging.Warn("Bootstrap", "Starting without display modes: %v", err)
	}
	return state, nil
}

func loadSettings(cfg *Config) (config.Config, error) {
	if cfg.Settings != nil {
		return *cfg.Settings, nil
	}

	dir := cfg.ConfigPath
	if dir == "" {
		var err error
		if dir, err = config.DefaultConfigDir(); err != nil {
			return config.Config{}, err
		}
	}

	settings, err := config.LoadConfig(dir)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", dir)
		return config.Config{}, fmt.Errorf("failed to load configuration from %s: %w", dir, err)
	}
	return settings, nil
}
