// Package bridge turns the host's command execution primitive into a single
// asynchronous contract: Execute a command string, get its output back.
//
// Two incompatible host conventions are supported:
//
//   - PromiseHost returns the result directly (either a bare string or a
//     structured value with a stdout field).
//   - CallbackHost takes the name of a callback and later invokes it through
//     a shared Registry with (exitCode, stdout, stderr).
//
// Execute never fails. An unavailable host, a host error, a panic, a timeout
// or a cancelled context all collapse to an empty string, and callers treat
// "" as "unknown". Every invocation and its outcome is appended to a
// DiagnosticLog for troubleshooting.
//
// In callback mode a timer races the callback. Settlement is written exactly
// once; whichever side loses finds the callback already deregistered, so a
// late callback is dropped and a fired timeout never resolves twice.
package bridge
