package cmd

import (
	"fmt"
	"strconv"

	"ratectl/internal/app"
	"ratectl/internal/catalog"
	"ratectl/internal/cli"

	"github.com/spf13/cobra"
)

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return cli.Usage(cobra.ExactArgs(n)(cmd, args))
	}
}

// lookupMode parses a display mode id and checks it against the catalog.
func lookupMode(state *app.State, arg string) (catalog.DisplayMode, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return catalog.DisplayMode{}, cli.Usage(fmt.Errorf("invalid display mode id %q", arg))
	}
	mode, ok := state.Catalog.Find(id)
	if !ok {
		return catalog.DisplayMode{}, cli.Usage(fmt.Errorf("unknown display mode id %d (see 'ratectl modes')", id))
	}
	return mode, nil
}
