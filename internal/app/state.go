package app

import (
	"context"
	"slices"
	"sync"

	"ratectl/internal/apps"
	"ratectl/internal/bridge"
	"ratectl/internal/catalog"
	"ratectl/internal/config"
	"ratectl/internal/device"
	"ratectl/internal/labels"
	"ratectl/internal/overrides"
	"ratectl/internal/rates"
	"ratectl/internal/script"
	"ratectl/pkg/logging"
)

// State is one running instance of every component.
type State struct {
	Settings config.Config

	Bridge    *bridge.Bridge
	Script    *script.Client
	Overrides *overrides.Store
	Catalog   *catalog.Catalog
	Rates     *rates.Manager
	Labels    *labels.Queue
	Device    *device.Device

	mu       sync.RWMutex
	packages []string
}

// NewState builds the components for settings on top of host.
func NewState(settings config.Config, host interface{}) *State {
	s := &State{Settings: settings}

	registry := bridge.NewRegistry()
	if host == nil {
		host = newShellHost(settings.Bridge, registry)
	}
	s.Bridge = bridge.New(bridge.Config{
		Host:     host,
		Registry: registry,
		Timeout:  settings.Bridge.Timeout,
	})

	s.Script = script.NewClient(s.Bridge, settings.ScriptPath)

	s.Overrides = overrides.NewStore(s.Script, settings.ConfigFile)
	s.Overrides.SetRefreshHook(s.Refresh)

	s.Catalog = catalog.New(s.Bridge, settings.Commands.Modes)

	s.Rates = rates.NewManager(s.Script)
	s.Labels = labels.NewQueue(s.Script, labels.Config{
		BatchSize:  settings.Labels.BatchSize,
		BatchDelay: settings.Labels.BatchDelay,
	})
	s.Device = device.New(s.Script, device.Commands{
		Slot: settings.Commands.Slot,
		FPS:  settings.Commands.FPS,
	}, settings.LogFile)

	return s
}

func newShellHost(cfg config.BridgeConfig, registry *bridge.Registry) interface{} {
	if cfg.LegacyCallback {
		host := bridge.NewLegacyShellHost(registry)
		host.Shell = cfg.Shell
		return host
	}
	return bridge.ShellHost{Shell: cfg.Shell}
}

// Refresh reloads the display modes, then the mode file, then picks the
// resolution class for the global mode. When the mode query fails the
// mode file is not read.
func (s *State) Refresh(ctx context.Context) error {
	if err := s.Catalog.Reload(ctx); err != nil {
		return err
	}
	if err := s.Overrides.Load(ctx); err != nil {
		return err
	}
	class := s.Catalog.AutoSelectClass(s.Overrides.Global())
	logging.Debug("Bootstrap", "Refreshed: global=%d class=%s", s.Overrides.Global(), class)
	return nil
}

// LoadPackages lists third-party applications, remembers them and, when
// resolveLabels is set, queues their labels for lookup.
func (s *State) LoadPackages(ctx context.Context, resolveLabels bool) []string {
	pkgs := apps.List(ctx, s.Bridge, s.Settings.Commands.Packages)

	s.mu.Lock()
	s.packages = pkgs
	s.mu.Unlock()

	if resolveLabels {
		s.Labels.EnqueueAll(pkgs)
	}
	return slices.Clone(pkgs)
}

// Packages returns the packages from the last LoadPackages.
func (s *State) Packages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.packages)
}

// SearchPackages filters the loaded packages by term.
func (s *State) SearchPackages(term string) []string {
	return apps.Search(s.Packages(), term, s.Labels, s.Overrides, s.Catalog)
}

// AppEntries builds list rows for pkgs from the current caches.
func (s *State) AppEntries(pkgs []string) []apps.Entry {
	return apps.Entries(pkgs, s.Labels, s.Overrides, s.Catalog)
}

// WatchOverrides reloads the mode file whenever the local copy at
// path changes. The caller stops the returned watcher.
func (s *State) WatchOverrides(path string) (*overrides.Watcher, error) {
	w := overrides.NewWatcher(overrides.WatcherConfig{
		Path: path,
		OnChange: func() {
			ctx := context.Background()
			if err := s.Overrides.Load(ctx); err != nil {
				logging.Warn("Overrides", "Reload after change failed: %v", err)
				return
			}
			s.Catalog.AutoSelectClass(s.Overrides.Global())
		},
	})
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

// Close stops background work.
func (s *State) Close() {
	s.Labels.Close()
}
