package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ratectl/internal/cli"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// updateRepository is the GitHub repository (owner/name) releases are
// published to. Release builds set it with
// -ldflags "-X ratectl/cmd.updateRepository=owner/name".
var updateRepository string

var errDevelopmentBuild = errors.New("cannot self-update a development version")

// releaseSource finds and installs releases. *selfupdate.Updater
// satisfies it.
type releaseSource interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
	UpdateTo(ctx context.Context, rel *selfupdate.Release, cmdPath string) error
}

type selfUpdateOptions struct {
	repo      string
	checkOnly bool
}

func newSelfUpdateCmd() *cobra.Command {
	opts := selfUpdateOptions{repo: updateRepository}

	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update ratectl to the latest version",
		Long: `Checks for the latest release of ratectl on GitHub and
updates the current binary if a newer version is found.

Release builds know their repository. Other builds pass it with --repo.
--check reports whether an update exists without installing it.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			updater, err := selfupdate.NewUpdater(selfupdate.Config{})
			if err != nil {
				return fmt.Errorf("failed to create updater: %w", err)
			}
			return runSelfUpdate(cmd.Context(), cmd.OutOrStdout(), updater, GetVersion(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", opts.repo, "GitHub repository (owner/name) to update from")
	cmd.Flags().BoolVar(&opts.checkOnly, "check", false, "Only report whether a newer release exists")
	return cmd
}

// runSelfUpdate moves the binary to the latest release of opts.repo when
// it is newer than current.
func runSelfUpdate(ctx context.Context, out io.Writer, src releaseSource, current string, opts selfUpdateOptions) error {
	if current == "" || current == "dev" {
		return errDevelopmentBuild
	}
	if opts.repo == "" {
		return cli.Usage(errors.New("no release repository configured, pass --repo owner/name"))
	}
	slug := selfupdate.ParseSlug(opts.repo)
	if _, _, err := slug.GetSlug(); err != nil {
		return cli.Usage(fmt.Errorf("invalid --repo %q: %w", opts.repo, err))
	}

	fmt.Fprintf(out, "Current version: %s\n", current)

	latest, found, err := src.DetectLatest(ctx, slug)
	if err != nil {
		return fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release for this platform found in %s", opts.repo)
	}
	if !latest.GreaterThan(current) {
		fmt.Fprintln(out, "Current version is the latest.")
		return nil
	}

	fmt.Fprintf(out, "Found newer version: %s (published at %s)\n", latest.Version(), latest.PublishedAt)
	if opts.checkOnly {
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := src.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Fprintf(out, "Updated %s to version %s\n", exe, latest.Version())
	return nil
}
