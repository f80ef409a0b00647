package bridge

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Config configures a Bridge.
type Config struct {
	// Host is a PromiseHost, a CallbackHost, or nil for degraded mode.
	// A host implementing both conventions is driven as a PromiseHost.
	Host interface{}

	// Registry receives callback registrations in callback mode. It must be
	// the same registry the CallbackHost invokes. Created when nil.
	Registry *Registry

	// Timeout bounds callback-mode invocations (default: DefaultTimeout).
	Timeout time.Duration

	// Log receives diagnostic entries. Created when nil.
	Log *DiagnosticLog
}

// Bridge normalizes the host conventions into Execute.
type Bridge struct {
	host     interface{}
	registry *Registry
	timeout  time.Duration
	log      *DiagnosticLog
}

// New creates a Bridge from the given configuration.
func New(cfg Config) *Bridge {
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Log == nil {
		cfg.Log = NewDiagnosticLog()
	}
	return &Bridge{
		host:     cfg.Host,
		registry: cfg.Registry,
		timeout:  cfg.Timeout,
		log:      cfg.Log,
	}
}

// Log returns the bridge's diagnostic log.
func (b *Bridge) Log() *DiagnosticLog {
	return b.log
}

// Registry returns the callback registry used in callback mode.
func (b *Bridge) Registry() *Registry {
	return b.registry
}

// Available reports whether a usable host is configured.
func (b *Bridge) Available() bool {
	switch b.host.(type) {
	case PromiseHost, CallbackHost:
		return true
	default:
		return false
	}
}

// Execute runs command on the host and returns its output. It never fails:
// every failure path resolves to "".
func (b *Bridge) Execute(ctx context.Context, command string) (out string) {
	b.log.Addf("[Exec] %s", command)

	defer func() {
		if r := recover(); r != nil {
			b.log.Addf("[Exception] %v", r)
			out = ""
		}
	}()

	switch h := b.host.(type) {
	case PromiseHost:
		return b.executePromise(ctx, h, command)
	case CallbackHost:
		return b.executeCallback(ctx, h, command)
	default:
		b.log.Addf("[Mock] host unavailable")
		return ""
	}
}

func (b *Bridge) executePromise(ctx context.Context, h PromiseHost, command string) string {
	res, err := h.Exec(ctx, command, DefaultOptions)
	if err != nil {
		b.log.Addf("[Err] %v", err)
		return ""
	}
	text := res.Text()
	if res.IsPlain {
		b.log.Addf("[Res] length=%d", len(text))
	} else {
		b.log.Addf("[Res] stdout length=%d", len(text))
	}
	return text
}

// settlement is a result cell written at most once.
type settlement struct {
	once sync.Once
	ch   chan string
}

func newSettlement() *settlement {
	return &settlement{ch: make(chan string, 1)}
}

// settle stores v if the cell is still empty and reports whether it did.
func (s *settlement) settle(v string) bool {
	won := false
	s.once.Do(func() {
		s.ch <- v
		won = true
	})
	return won
}

func (b *Bridge) executeCallback(ctx context.Context, h CallbackHost, command string) string {
	name := newCallbackName()
	cell := newSettlement()

	// Register before the timer starts so a timeout always finds the
	// callback to unregister.
	b.registry.register(name, func(code int, stdout, stderr string) {
		b.registry.unregister(name)

		b.log.Addf("[CB] code=%d out_len=%d", code, len(stdout))
		if code != 0 {
			b.log.Addf("[Err] command failed with code %d: %s", code, strings.TrimSpace(stderr))
		}
		cell.settle(strings.TrimSpace(stdout))
	})

	timer := time.AfterFunc(b.timeout, func() {
		b.registry.unregister(name)
		if cell.settle("") {
			b.log.Addf("[Timeout] %s", command)
		}
	})
	defer timer.Stop()

	if err := h.ExecCallback(command, DefaultOptions, name); err != nil {
		b.registry.unregister(name)
		if cell.settle("") {
			b.log.Addf("[Exception] %v", err)
		}
	}

	select {
	case v := <-cell.ch:
		return v
	case <-ctx.Done():
		b.registry.unregister(name)
		if cell.settle("") {
			b.log.Addf("[Cancelled] %s", command)
		}
		return <-cell.ch
	}
}
