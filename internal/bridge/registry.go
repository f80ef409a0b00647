package bridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the named callbacks a CallbackHost invokes. It is shared
// between the Bridge and the host, replacing ambient global registration.
type Registry struct {
	mu        sync.Mutex
	callbacks map[string]Callback
}

// NewRegistry creates an empty callback registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]Callback)}
}

// newCallbackName returns a collision-free name for one invocation.
func newCallbackName() string {
	return fmt.Sprintf("cb_%d_%s", time.Now().UnixMilli(), uuid.NewString())
}

func (r *Registry) register(name string, cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[name] = cb
}

// unregister removes a callback and reports whether it was still present.
func (r *Registry) unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.callbacks[name]
	delete(r.callbacks, name)
	return ok
}

// Invoke runs and removes the callback registered under name. It returns
// false when no such callback exists (already settled or never registered),
// so a second invocation for the same name is always a no-op.
func (r *Registry) Invoke(name string, exitCode int, stdout, stderr string) bool {
	r.mu.Lock()
	cb, ok := r.callbacks[name]
	delete(r.callbacks, name)
	r.mu.Unlock()

	if !ok {
		return false
	}
	cb(exitCode, stdout, stderr)
	return true
}

// Len returns the number of pending callbacks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.callbacks)
}
