package commands

import (
	"fmt"

	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display primerlint version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "primerlint v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Primer React lint engine with %d rules\n", lint.Count())
		},
	}
}
