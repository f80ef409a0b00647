package script

import (
	"context"
	"fmt"
	"strings"

	"ratectl/internal/bridge"
	"ratectl/pkg/logging"
)

// Client issues helper script subcommands through the bridge.
type Client struct {
	exec       bridge.Executor
	scriptPath string
}

// NewClient creates a client for the helper at scriptPath.
func NewClient(exec bridge.Executor, scriptPath string) *Client {
	return &Client{exec: exec, scriptPath: scriptPath}
}

// ScriptPath returns the helper script location.
func (c *Client) ScriptPath() string {
	return c.scriptPath
}

// Command builds the shell command line for op with quoted arguments.
func (c *Client) Command(op Op, args ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sh %s %s", Quote(c.scriptPath), op)
	for _, a := range args {
		sb.WriteString(" ")
		sb.WriteString(Quote(a))
	}
	return sb.String()
}

// Run sends op and returns the raw response ("" when the bridge failed).
func (c *Client) Run(ctx context.Context, op Op, args ...string) string {
	return c.exec.Execute(ctx, c.Command(op, args...))
}

// Do sends op and classifies the response. A response without the success
// marker is returned as a *FailureError alongside the raw text.
func (c *Client) Do(ctx context.Context, op Op, args ...string) (string, error) {
	resp := c.Run(ctx, op, args...)
	outcome := Classify(op, resp)
	logging.Debug("Script", "%s -> %s", op, outcome)
	if outcome != Succeeded {
		return resp, &FailureError{Op: op, Response: resp}
	}
	return resp, nil
}

// Exec runs an arbitrary shell command through the same bridge.
func (c *Client) Exec(ctx context.Context, command string) string {
	return c.exec.Execute(ctx, command)
}

// Quote wraps s in double quotes, escaping characters the shell would
// otherwise expand inside them.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}
