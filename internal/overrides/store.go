package overrides

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"sync"

	"ratectl/internal/script"
	"ratectl/pkg/logging"

	"golang.org/x/sync/singleflight"
)

// ErrNoModeSelected is returned when saving the global mode without a mode.
var ErrNoModeSelected = errors.New("no display mode selected")

// RefreshFunc reloads whatever depends on the saved global mode.
type RefreshFunc func(ctx context.Context) error

// Store is the in-memory copy of the mode file.
type Store struct {
	client     *script.Client
	configFile string

	mu      sync.RWMutex
	global  int
	apps    map[string]int
	refresh RefreshFunc

	loads singleflight.Group
}

// NewStore creates a store reading configFile through client. Until Load
// runs, no global mode is set and no application overrides exist.
func NewStore(client *script.Client, configFile string) *Store {
	return &Store{
		client:     client,
		configFile: configFile,
		global:     NoOverride,
		apps:       make(map[string]int),
	}
}

// SetRefreshHook replaces the action run after a successful SaveGlobal.
// Without a hook the store reloads itself.
func (s *Store) SetRefreshHook(fn RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = fn
}

// ConfigFile returns the path of the mode file on the device.
func (s *Store) ConfigFile() string {
	return s.configFile
}

// Load reads the mode file and replaces both the global mode and the
// application map. Concurrent calls share one read.
func (s *Store) Load(ctx context.Context) error {
	_, err, _ := s.loads.Do("load", func() (interface{}, error) {
		raw := s.client.Exec(ctx, "cat "+script.Quote(s.configFile))
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		global, apps := Parse(raw)

		s.mu.Lock()
		s.global = global
		s.apps = apps
		s.mu.Unlock()

		logging.Debug("Overrides", "Loaded global=%d apps=%d from %s", global, len(apps), s.configFile)
		return nil, nil
	})
	return err
}

// SaveGlobal stores modeID as the global mode and, on success, runs the
// refresh hook. The raw helper response is returned either way.
func (s *Store) SaveGlobal(ctx context.Context, modeID int) (string, error) {
	if modeID == NoOverride {
		return "", ErrNoModeSelected
	}

	resp, err := s.client.Do(ctx, script.OpSetConfig, strconv.Itoa(modeID))
	if err != nil {
		logging.Warn("Overrides", "Saving global mode %d failed", modeID)
		return resp, err
	}

	s.mu.RLock()
	refresh := s.refresh
	s.mu.RUnlock()
	if refresh == nil {
		refresh = s.Load
	}
	if err := refresh(ctx); err != nil {
		return resp, fmt.Errorf("global mode saved but refresh failed: %w", err)
	}
	return resp, nil
}

// SaveAppOverride assigns modeID to pkg, or clears the assignment when
// modeID is NoOverride. Local state only changes after the helper confirms.
func (s *Store) SaveAppOverride(ctx context.Context, pkg string, modeID int) (string, error) {
	resp, err := s.client.Do(ctx, script.OpSetAppConfig, pkg, strconv.Itoa(modeID))
	if err != nil {
		logging.Warn("Overrides", "Saving override for %s failed", pkg)
		return resp, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	apps := maps.Clone(s.apps)
	if modeID == NoOverride {
		delete(apps, pkg)
	} else {
		apps[pkg] = modeID
	}
	s.apps = apps
	return resp, nil
}

// Global returns the global mode id or NoOverride.
func (s *Store) Global() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.global
}

// AppOverride returns the mode assigned to pkg, if any.
func (s *Store) AppOverride(pkg string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.apps[pkg]
	return id, ok
}

// Apps returns a copy of the application override map.
func (s *Store) Apps() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.apps)
}
