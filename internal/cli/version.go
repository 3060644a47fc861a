package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These variables are changed in compile time.
var (
	// Version is the application version.
	Version = "dev"

	// Build is the application build time.
	Build = "now"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Mimic\nVersion: %s\nBuild: %s\nGo: %s\n", Version, Build, runtime.Version())
			return nil
		},
	}
}
