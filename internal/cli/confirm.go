package cli

import (
	"context"
	"strings"

	"github.com/chzyer/readline"
)

// Confirmer asks the user to approve a risky operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// AlwaysConfirm approves every prompt.
type AlwaysConfirm struct{}

// Confirm implements Confirmer.
func (AlwaysConfirm) Confirm(context.Context, string) bool { return true }

// LineReader is the part of a readline instance the confirmer needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// PromptConfirmer asks y/N questions on a line reader. Anything other
// than y or yes, including interrupt and EOF, declines.
type PromptConfirmer struct {
	reader LineReader
	// restore is put back as the prompt after asking, for readers shared
	// with an interactive shell.
	restore string
}

// NewPromptConfirmer creates a confirmer on reader. restore may be empty.
func NewPromptConfirmer(reader LineReader, restore string) *PromptConfirmer {
	return &PromptConfirmer{reader: reader, restore: restore}
}

// NewTerminalConfirmer creates a confirmer on its own readline instance
// bound to the terminal. Call the returned close function when done.
func NewTerminalConfirmer() (*PromptConfirmer, func() error, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "no",
	})
	if err != nil {
		return nil, nil, err
	}
	return NewPromptConfirmer(rl, ""), rl.Close, nil
}

// Confirm implements Confirmer.
func (c *PromptConfirmer) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}

	c.reader.SetPrompt(prompt + " [y/N]: ")
	defer c.reader.SetPrompt(c.restore)

	line, err := c.reader.Readline()
	if err != nil {
		return false
	}
	return IsYes(line)
}

// IsYes reports whether answer approves a y/N question.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
