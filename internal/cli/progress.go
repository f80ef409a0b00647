package cli

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spin runs fn while showing a spinner with msg on f. No spinner is shown
// when quiet is set or f is not a terminal.
func Spin(f *os.File, quiet bool, msg string, fn func()) {
	if quiet {
		fn()
		return
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()
	fn()
}
