package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"ratectl/internal/app"
	"ratectl/internal/cli"
	"ratectl/pkg/logging"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const shellPrompt = "ratectl> "

func newShellCmd(s *session) *cobra.Command {
	var watch string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session that keeps one connection to the device
open. Display modes, the module configuration and application labels are
loaded once and reused by every command typed at the prompt.

Type any ratectl command without the "ratectl" prefix, "help" for the
command list, and "exit" or Ctrl+D to leave. TAB completes commands,
package names and rate nodes.

--watch reloads the module configuration whenever the given local file
changes, for setups where the configuration is edited outside ratectl.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.interactive {
				return cli.Usage(errors.New("already inside a shell"))
			}
			return runShell(cmd, s, watch)
		},
	}

	cmd.Flags().StringVar(&watch, "watch", "", "Reload the configuration when this local file changes")
	return cmd
}

func runShell(cmd *cobra.Command, s *session, watch string) error {
	ctx := cmd.Context()
	state, err := s.State(ctx)
	if err != nil {
		return err
	}
	n := s.notifier(cmd)

	if watch != "" {
		w, err := state.WatchOverrides(watch)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", watch, err)
		}
		defer func() { _ = w.Stop() }()
	}

	// Labels resolve in the background while the user types.
	go state.LoadPackages(ctx, true)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            shellPrompt,
		HistoryFile:       filepath.Join(os.TempDir(), ".ratectl_history"),
		AutoComplete:      newShellCompleter(s, state),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdout:            cmd.OutOrStdout(),
		Stderr:            cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	if !s.flags.Yes {
		s.confirmer = cli.NewPromptConfirmer(rl, shellPrompt)
	}

	n.Info("ratectl shell. Type 'help' for available commands. Use TAB for completion.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			n.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		args, err := splitArgs(line)
		if err != nil {
			n.Error(err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			n.Info("Goodbye!")
			return nil
		}

		if err := runShellLine(ctx, s, args, rl.Stdout(), rl.Stderr()); err != nil {
			logging.Debug("Shell", "Command %q failed: %v", line, err)
		}
	}
}

// runShellLine executes one shell line against a fresh command tree
// sharing s's state. Errors are already printed by cobra.
func runShellLine(ctx context.Context, s *session, args []string, out, errOut io.Writer) error {
	child := s.child()
	root := newRootCmd(child)
	// Flag registration reset the child's values to defaults.
	child.flags = s.flags
	defer child.Close()

	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

// newShellCompleter completes command names from the command tree, plus
// package names and rate nodes where a command takes them.
func newShellCompleter(s *session, state *app.State) *readline.PrefixCompleter {
	dynamic := map[string]readline.DynamicCompleteFunc{
		"ratectl app set": func(string) []string {
			return state.Packages()
		},
		"ratectl app unset": func(string) []string {
			return state.Packages()
		},
		"ratectl rates remove": func(string) []string {
			return rateNodes(state)
		},
		"ratectl rates modify": func(string) []string {
			return rateNodes(state)
		},
	}

	items := completerItems(newRootCmd(s.child()), dynamic)
	items = append(items, readline.PcItem("exit"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}

func completerItems(c *cobra.Command, dynamic map[string]readline.DynamicCompleteFunc) []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, sub := range c.Commands() {
		if sub.Hidden || sub.Name() == "shell" {
			continue
		}
		children := completerItems(sub, dynamic)
		if fn, ok := dynamic[sub.CommandPath()]; ok {
			children = append(children, readline.PcItemDynamic(fn))
		}
		items = append(items, readline.PcItem(sub.Name(), children...))
	}
	return items
}

func rateNodes(state *app.State) []string {
	table := state.Rates.Table()
	nodes := make([]string, 0, len(table))
	for _, n := range table {
		nodes = append(nodes, n.Node)
	}
	return nodes
}

// splitArgs splits a shell line on whitespace. Single or double quotes
// group words; there are no escapes.
func splitArgs(line string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
