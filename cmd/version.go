package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// buildInfo is the structured form of the version command.
type buildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func newVersionCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ratectl",
		Long: `Print the ratectl build version. Development builds report "dev".
With -o json or -o yaml the Go version and platform are included.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.printer(cmd)
			if err != nil {
				return err
			}
			if !p.Structured() {
				fmt.Fprintf(cmd.OutOrStdout(), "ratectl version %s\n", GetVersion())
				return nil
			}
			return p.Print(buildInfo{
				Version:   GetVersion(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}, nil)
		},
	}
}
