package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf, false)

	n.Info("loading %d packages", 3)
	n.Success("global mode set to %d", 2)
	n.Warn("no modes")
	n.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "loading 3 packages")
	assert.Contains(t, out, "✓ global mode set to 2")
	assert.Contains(t, out, "⚠ no modes")
	assert.Contains(t, out, "Error: boom")
}

func TestNotifier_Quiet(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf, true)

	n.Info("hidden")
	n.Success("hidden")
	n.Warn("hidden")
	assert.Empty(t, buf.String())

	n.Error(errors.New("shown"))
	n.Alert("Flash result", "Flashed slot _a\n")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "Flashed slot _a")
}

func TestNotifier_AlertEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	NewNotifier(&buf, false).Alert("Restore", "")
	assert.Contains(t, buf.String(), "(no output)")
}

func TestSpin_RunsFunction(t *testing.T) {
	for _, quiet := range []bool{true, false} {
		ran := false
		Spin(os.Stderr, quiet, "working", func() { ran = true })
		assert.True(t, ran)
	}
}
