package bridgetest

import (
	"errors"
	"sync"
	"time"

	"ratectl/internal/bridge"
)

// CallbackMode selects how a CallbackHost answers.
type CallbackMode int

const (
	// Respond invokes the callback once after Delay.
	Respond CallbackMode = iota
	// Never leaves the callback pending.
	Never
	// Twice invokes the callback twice.
	Twice
	// Refuse fails the ExecCallback call itself.
	Refuse
)

// CallbackHost is a scripted bridge.CallbackHost.
type CallbackHost struct {
	Registry *bridge.Registry
	Mode     CallbackMode
	Delay    time.Duration
	ExitCode int
	Stdout   string
	Stderr   string

	mu      sync.Mutex
	names   []string
	invoked []bool
	wg      sync.WaitGroup
}

// NewCallbackHost creates a host bound to reg.
func NewCallbackHost(reg *bridge.Registry, mode CallbackMode) *CallbackHost {
	return &CallbackHost{Registry: reg, Mode: mode}
}

// ExecCallback implements bridge.CallbackHost.
func (h *CallbackHost) ExecCallback(_, _ string, callbackName string) error {
	h.mu.Lock()
	h.names = append(h.names, callbackName)
	h.mu.Unlock()

	switch h.Mode {
	case Never:
		return nil
	case Refuse:
		return errors.New("host refused command")
	}

	times := 1
	if h.Mode == Twice {
		times = 2
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if h.Delay > 0 {
			time.Sleep(h.Delay)
		}
		for i := 0; i < times; i++ {
			ok := h.Registry.Invoke(callbackName, h.ExitCode, h.Stdout, h.Stderr)
			h.mu.Lock()
			h.invoked = append(h.invoked, ok)
			h.mu.Unlock()
		}
	}()
	return nil
}

// Fire invokes the callback registered under name, as a late host would.
func (h *CallbackHost) Fire(name string) bool {
	return h.Registry.Invoke(name, h.ExitCode, h.Stdout, h.Stderr)
}

// Names returns the callback names received.
func (h *CallbackHost) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Invocations waits for background callbacks and reports, per attempt,
// whether a registered callback was found.
func (h *CallbackHost) Invocations() []bool {
	h.wg.Wait()
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]bool, len(h.invoked))
	copy(out, h.invoked)
	return out
}
