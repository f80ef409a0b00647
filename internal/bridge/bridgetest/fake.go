// Package bridgetest provides scripted hosts for exercising code that runs
// commands through the bridge.
package bridgetest

import (
	"context"
	"strings"
	"sync"
	"time"

	"ratectl/internal/bridge"
)

type rule struct {
	match     string
	responses []string
	err       error
	delay     time.Duration
}

// FakeHost is a PromiseHost answering commands from scripted rules.
// A rule matches when its pattern is a substring of the command; the first
// matching rule in registration order wins. Rules with several responses
// hand them out in order and keep returning the last one.
type FakeHost struct {
	mu    sync.Mutex
	rules []*rule
	calls []string
}

// NewFakeHost creates a host with no rules; unmatched commands resolve "".
func NewFakeHost() *FakeHost {
	return &FakeHost{}
}

// On registers responses for commands containing match.
func (h *FakeHost) On(match string, responses ...string) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rules = append(h.rules, &rule{match: match, responses: responses})
	return h
}

// OnError makes commands containing match fail with err.
func (h *FakeHost) OnError(match string, err error) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rules = append(h.rules, &rule{match: match, err: err})
	return h
}

// OnDelayed registers a response that is returned after delay.
func (h *FakeHost) OnDelayed(match string, delay time.Duration, response string) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rules = append(h.rules, &rule{match: match, responses: []string{response}, delay: delay})
	return h
}

// Exec implements bridge.PromiseHost.
func (h *FakeHost) Exec(ctx context.Context, command, _ string) (bridge.Result, error) {
	h.mu.Lock()
	h.calls = append(h.calls, command)
	var matched *rule
	for _, r := range h.rules {
		if strings.Contains(command, r.match) {
			matched = r
			break
		}
	}
	var out string
	if matched != nil && len(matched.responses) > 0 {
		out = matched.responses[0]
		if len(matched.responses) > 1 {
			matched.responses = matched.responses[1:]
		}
	}
	h.mu.Unlock()

	if matched == nil {
		return bridge.StdoutResult(""), nil
	}
	if matched.err != nil {
		return bridge.Result{}, matched.err
	}
	if matched.delay > 0 {
		select {
		case <-time.After(matched.delay):
		case <-ctx.Done():
			return bridge.Result{}, ctx.Err()
		}
	}
	return bridge.StdoutResult(out), nil
}

// Calls returns every command received so far.
func (h *FakeHost) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.calls))
	copy(out, h.calls)
	return out
}

// CallsMatching counts received commands containing match.
func (h *FakeHost) CallsMatching(match string) int {
	n := 0
	for _, c := range h.Calls() {
		if strings.Contains(c, match) {
			n++
		}
	}
	return n
}

// NewBridge wires a FakeHost into a bridge.
func NewBridge(h *FakeHost) *bridge.Bridge {
	return bridge.New(bridge.Config{Host: h})
}
