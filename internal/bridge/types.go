package bridge

import (
	"context"
	"time"
)

// DefaultTimeout bounds a callback-mode invocation.
const DefaultTimeout = 3 * time.Second

// DefaultOptions is the opaque secondary argument passed to every host call.
// It is reserved for structured options and is currently always an empty object.
const DefaultOptions = "{}"

// Result is the value a PromiseHost resolves with. Hosts either return a
// bare string or an object exposing stdout; Text picks whichever is set.
type Result struct {
	// Plain holds the bare-string form.
	Plain string
	// Stdout holds the structured form.
	Stdout string
	// IsPlain reports whether the host resolved with a bare string.
	IsPlain bool
}

// StringResult wraps a bare-string resolution.
func StringResult(s string) Result {
	return Result{Plain: s, IsPlain: true}
}

// StdoutResult wraps a structured resolution carrying stdout.
func StdoutResult(stdout string) Result {
	return Result{Stdout: stdout}
}

// Text returns the output carried by the result.
func (r Result) Text() string {
	if r.IsPlain {
		return r.Plain
	}
	return r.Stdout
}

// PromiseHost is a host that resolves commands directly.
type PromiseHost interface {
	Exec(ctx context.Context, command, options string) (Result, error)
}

// CallbackHost is a host that reports completion by invoking the callback
// registered under callbackName in the bridge's Registry.
type CallbackHost interface {
	ExecCallback(command, options, callbackName string) error
}

// Callback receives the outcome of a callback-mode command.
type Callback func(exitCode int, stdout, stderr string)

// Executor is the contract consumed by the rest of ratectl.
type Executor interface {
	Execute(ctx context.Context, command string) string
}
