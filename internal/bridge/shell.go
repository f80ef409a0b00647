package bridge

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

const defaultShell = "sh"

// ShellHost runs commands through a local shell and resolves them directly.
type ShellHost struct {
	// Shell is the interpreter invoked as `<Shell> -c <command>` (default: sh).
	Shell string
}

// Exec implements PromiseHost. A non-zero exit status still resolves with
// the captured stdout; only failures to run the shell are errors.
func (h ShellHost) Exec(ctx context.Context, command, _ string) (Result, error) {
	stdout, _, _, err := runShell(ctx, h.Shell, command)
	if err != nil {
		return Result{}, err
	}
	return StdoutResult(stdout), nil
}

// LegacyShellHost runs commands through a local shell and reports completion
// by invoking a named callback, like hosts that predate direct resolution.
type LegacyShellHost struct {
	Shell    string
	Registry *Registry
}

// NewLegacyShellHost creates a callback-convention host bound to reg.
func NewLegacyShellHost(reg *Registry) *LegacyShellHost {
	return &LegacyShellHost{Registry: reg}
}

// ExecCallback implements CallbackHost. The command runs in the background.
func (h *LegacyShellHost) ExecCallback(command, _ string, callbackName string) error {
	go func() {
		stdout, stderr, code, err := runShell(context.Background(), h.Shell, command)
		if err != nil {
			stderr = err.Error()
			code = -1
		}
		h.Registry.Invoke(callbackName, code, stdout, stderr)
	}()
	return nil
}

// runShell executes command and returns stdout, stderr and the exit code.
// err is only set when the process could not be run at all.
func runShell(ctx context.Context, shell, command string) (string, string, int, error) {
	if shell == "" {
		shell = defaultShell
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return "", "", -1, err
	}
	return stdout.String(), stderr.String(), 0, nil
}
