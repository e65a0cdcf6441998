package commands

import (
	"os"

	"github.com/leapstack-labs/primerlint/internal/cli/config"
	"github.com/leapstack-labs/primerlint/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for IDE integration.

The server communicates over stdin/stdout using JSON-RPC. Open documents
are linted as they change and fixes are offered as code actions.
The project configuration is found from the client's
initialization request (rootUri parameter).`,
		Example: `  # Start LSP server (usually called by an IDE)
  primerlint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	logger := config.GetLogger(cmd.Context())
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, logger)
	return server.Run()
}
