package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"ratectl/internal/app"
	"ratectl/internal/cli"
	"ratectl/internal/device"
	"ratectl/internal/rates"
	"ratectl/pkg/logging"

	"github.com/spf13/cobra"
)

// bootstrapFunc builds application state; swapped in tests.
type bootstrapFunc func(ctx context.Context, cfg *app.Config) (*app.State, error)

// session is what the commands of one invocation share. A one-shot run
// owns its state; commands run inside the shell borrow the shell's.
type session struct {
	flags     cli.CommandFlags
	bootstrap bootstrapFunc

	state     *app.State
	ownsState bool

	confirmer      cli.Confirmer
	closeConfirmer func() error

	// interactive is set for commands dispatched by the shell.
	interactive bool
}

// newSession starts from the default flag values, so a session is usable
// before any command tree binds its flags.
func newSession() *session {
	return &session{
		flags:     cli.DefaultCommandFlags(),
		bootstrap: app.Bootstrap,
	}
}

// child returns a session for one shell line. It shares state and the
// prompt confirmer, and starts from the shell's flag values.
func (s *session) child() *session {
	return &session{
		flags:       s.flags,
		bootstrap:   s.bootstrap,
		state:       s.state,
		confirmer:   s.confirmer,
		interactive: true,
	}
}

func (s *session) initLogging() {
	level := logging.LevelWarn
	if s.flags.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
}

// State bootstraps the application state on first use.
func (s *session) State(ctx context.Context) (*app.State, error) {
	if s.state != nil {
		return s.state, nil
	}

	cfg := app.NewConfig(s.flags.Debug, s.flags.ConfigPath)
	cfg.LegacyCallback = s.flags.LegacyCallback

	state, err := s.bootstrap(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.state = state
	s.ownsState = true
	return state, nil
}

// Confirmer returns the confirmation strategy for this session.
func (s *session) Confirmer() (cli.Confirmer, error) {
	if s.flags.Yes {
		return cli.AlwaysConfirm{}, nil
	}
	if s.confirmer != nil {
		return s.confirmer, nil
	}

	c, closeFn, err := cli.NewTerminalConfirmer()
	if err != nil {
		return nil, err
	}
	s.confirmer = c
	s.closeConfirmer = closeFn
	return c, nil
}

func (s *session) printer(cmd *cobra.Command) (*cli.Printer, error) {
	return s.flags.Printer(cmd.OutOrStdout())
}

func (s *session) notifier(cmd *cobra.Command) *cli.Notifier {
	return cli.NewNotifier(cmd.ErrOrStderr(), s.flags.Quiet)
}

// spin shows a spinner around fn unless output is quiet or structured.
func (s *session) spin(msg string, fn func()) {
	quiet := s.flags.Quiet || s.flags.OutputFormat != string(cli.OutputFormatTable)
	cli.Spin(os.Stderr, quiet, msg, fn)
}

// Close releases what this session created.
func (s *session) Close() {
	if s.closeConfirmer != nil {
		_ = s.closeConfirmer()
		s.closeConfirmer = nil
		s.confirmer = nil
	}
	if s.ownsState && s.state != nil {
		s.state.Close()
		s.state = nil
	}
}

// cancelled turns a declined confirmation into a notice. Other errors
// pass through.
func cancelled(n *cli.Notifier, err error) error {
	if errors.Is(err, rates.ErrCancelled) || errors.Is(err, device.ErrCancelled) {
		n.Info("Cancelled")
		return nil
	}
	return err
}

// writeLine writes s followed by a newline to w.
func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}
