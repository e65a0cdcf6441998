package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLSPCommand(t *testing.T) {
	cmd := NewLSPCommand()

	assert.Equal(t, "lsp", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestGetConfig_Fallback(t *testing.T) {
	cfg := getConfig()

	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, 10, cfg.Lint.MaxPasses)
	assert.Equal(t, "hint", cfg.Lint.MinSeverity)
	assert.False(t, cfg.Cache.Enabled)
}
