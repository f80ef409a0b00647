package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Notifier prints transient one-line notices, normally to stderr.
// Quiet suppresses everything except errors and alerts.
type Notifier struct {
	out   io.Writer
	quiet bool
}

// NewNotifier creates a notifier writing to out.
func NewNotifier(out io.Writer, quiet bool) *Notifier {
	return &Notifier{out: out, quiet: quiet}
}

// Info prints a neutral notice.
func (n *Notifier) Info(format string, args ...interface{}) {
	if n.quiet {
		return
	}
	fmt.Fprintln(n.out, fmt.Sprintf(format, args...))
}

// Success prints a green check line.
func (n *Notifier) Success(format string, args ...interface{}) {
	if n.quiet {
		return
	}
	fmt.Fprintln(n.out, text.FgGreen.Sprint("✓ "+fmt.Sprintf(format, args...)))
}

// Warn prints a yellow warning line.
func (n *Notifier) Warn(format string, args ...interface{}) {
	if n.quiet {
		return
	}
	fmt.Fprintln(n.out, text.FgYellow.Sprint("⚠ "+fmt.Sprintf(format, args...)))
}

// Error prints a red error line. It is shown even when quiet.
func (n *Notifier) Error(err error) {
	fmt.Fprintln(n.out, text.FgRed.Sprint("Error: "+err.Error()))
}

// Alert prints a titled block followed by body verbatim. Used for helper
// responses of operations that modify boot partitions, where the full
// text matters.
func (n *Notifier) Alert(title, body string) {
	fmt.Fprintln(n.out, text.Bold.Sprint(title))
	body = strings.TrimRight(body, "\n")
	if body == "" {
		body = "(no output)"
	}
	fmt.Fprintln(n.out, body)
}
