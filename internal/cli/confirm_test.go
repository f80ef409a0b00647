package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
)

type scriptedReader struct {
	answers []string
	err     error
	prompts []string
}

func (r *scriptedReader) Readline() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if len(r.answers) == 0 {
		return "", io.EOF
	}
	a := r.answers[0]
	r.answers = r.answers[1:]
	return a, nil
}

func (r *scriptedReader) SetPrompt(p string) {
	r.prompts = append(r.prompts, p)
}

func TestPromptConfirmer(t *testing.T) {
	r := &scriptedReader{answers: []string{"y", " YES ", "n", "", "maybe"}}
	c := NewPromptConfirmer(r, "ratectl> ")
	ctx := context.Background()

	assert.True(t, c.Confirm(ctx, "Flash?"))
	assert.True(t, c.Confirm(ctx, "Flash?"))
	assert.False(t, c.Confirm(ctx, "Flash?"))
	assert.False(t, c.Confirm(ctx, "Flash?"))
	assert.False(t, c.Confirm(ctx, "Flash?"))
	assert.False(t, c.Confirm(ctx, "Flash?"), "EOF declines")

	assert.Equal(t, "Flash? [y/N]: ", r.prompts[0])
	assert.Equal(t, "ratectl> ", r.prompts[1], "prompt is restored")
}

func TestPromptConfirmer_InterruptDeclines(t *testing.T) {
	c := NewPromptConfirmer(&scriptedReader{err: readline.ErrInterrupt}, "")
	assert.False(t, c.Confirm(context.Background(), "Uninstall?"))
}

func TestPromptConfirmer_CancelledContext(t *testing.T) {
	r := &scriptedReader{answers: []string{"y"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, NewPromptConfirmer(r, "").Confirm(ctx, "Apply?"))
	assert.Empty(t, r.prompts, "nothing is asked")
}

func TestAlwaysConfirm(t *testing.T) {
	assert.True(t, AlwaysConfirm{}.Confirm(context.Background(), "anything"))
}

func TestUsageError(t *testing.T) {
	assert.Nil(t, Usage(nil))

	base := errors.New("bad mode id")
	err := Usage(base)
	assert.True(t, IsUsageError(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bad mode id", err.Error())
	assert.False(t, IsUsageError(base))
}
