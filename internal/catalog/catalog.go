package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"ratectl/internal/bridge"
	"ratectl/pkg/logging"
)

// ErrNoModes is returned when the mode query produced no output. The
// previous snapshot stays in place.
var ErrNoModes = errors.New("unable to read display modes")

// Catalog holds the current mode snapshot and the active class.
type Catalog struct {
	exec    bridge.Executor
	command string

	mu    sync.RWMutex
	modes []DisplayMode
	class Class
}

// New creates an empty catalog that discovers modes by running command.
func New(exec bridge.Executor, command string) *Catalog {
	return &Catalog{
		exec:    exec,
		command: command,
		class:   ClassStandard,
	}
}

// Reload queries the device and replaces the snapshot.
func (c *Catalog) Reload(ctx context.Context) error {
	raw := c.exec.Execute(ctx, c.command)
	if strings.TrimSpace(raw) == "" {
		logging.Warn("Catalog", "Mode query returned no output, keeping %d known modes", len(c.Modes()))
		return ErrNoModes
	}

	modes := Parse(raw)

	c.mu.Lock()
	c.modes = modes
	c.mu.Unlock()

	logging.Debug("Catalog", "Loaded %d display modes", len(modes))
	return nil
}

// AutoSelectClass picks the class of the mode currently selected globally:
// high when that mode is wider than the threshold, standard otherwise
// (including when the id is unknown).
func (c *Catalog) AutoSelectClass(globalID int) Class {
	class := ClassStandard
	if m, ok := c.Find(globalID); ok && m.Width > HighResolutionWidth {
		class = ClassHigh
	}
	c.SetClass(class)
	return class
}

// Modes returns a copy of the snapshot.
func (c *Catalog) Modes() []DisplayMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.modes)
}

// Filtered returns the snapshot restricted to the active class.
func (c *Catalog) Filtered() []DisplayMode {
	return Filter(c.Modes(), c.Class())
}

// Find looks a mode up by id.
func (c *Catalog) Find(id int) (DisplayMode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.modes {
		if m.ID == id {
			return m, true
		}
	}
	return DisplayMode{}, false
}

// Class returns the active resolution class.
func (c *Catalog) Class() Class {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.class
}

// SetClass overrides the active class.
func (c *Catalog) SetClass(class Class) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.class = class
}
