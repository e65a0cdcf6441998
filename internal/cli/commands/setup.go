package commands

import (
	"log/slog"

	"github.com/leapstack-labs/primerlint/internal/cli/config"
	"github.com/leapstack-labs/primerlint/internal/cli/output"
	intconfig "github.com/leapstack-labs/primerlint/internal/config"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
// format, when set, overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	modeStr := cfg.OutputFormat
	if format != "" {
		modeStr = format
	}
	mode, err := output.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	var project intconfig.ProjectConfig
	intconfig.ApplyDefaults(&project)
	return &config.Config{
		ProjectRoot:  ".",
		OutputFormat: config.DefaultOutput,
		Lint:         project.Lint,
		Cache:        project.Cache,
	}
}
