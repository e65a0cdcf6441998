package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "primerlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func lintFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-passes", 0, "fix passes")
	flags.String("severity", "", "minimum severity")
	flags.StringSlice("include", nil, "include globs")
	flags.String("cache-path", "", "cache path")
	flags.Bool("fix", false, "apply fixes")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "")
	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Dir(cfgPath), cfg.ProjectRoot)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 10, cfg.Lint.MaxPasses)
	assert.Equal(t, "hint", cfg.Lint.MinSeverity)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), DefaultCachePath), cfg.Cache.Path)
	assert.Empty(t, cfg.Catalog)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `output: json
catalog: tables
lint:
  disabled: [no-system-props]
  severity:
    no-deprecated-colors: error
  max_passes: 4
cache:
  enabled: true
  path: /tmp/primerlint.db
`)
	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "tables"), cfg.Catalog)
	assert.Equal(t, []string{"no-system-props"}, cfg.Lint.Disabled)
	assert.Equal(t, "error", cfg.Lint.Severity["no-deprecated-colors"])
	assert.Equal(t, 4, cfg.Lint.MaxPasses)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/primerlint.db", cfg.Cache.Path)

	project := cfg.Project()
	assert.Equal(t, cfg.Lint.Disabled, project.Lint.Disabled)
	assert.Equal(t, cfg.Catalog, project.Catalog)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "output mode", content: "output: html\n", errSubstr: "html"},
		{name: "min severity", content: "lint:\n  min_severity: loud\n", errSubstr: "lint.min_severity"},
		{name: "max passes", content: "lint:\n  max_passes: 0\n", errSubstr: "lint.max_passes"},
		{name: "concurrency", content: "lint:\n  concurrency: -1\n", errSubstr: "lint.concurrency"},
		{name: "pattern", content: "lint:\n  include: [\"src/[a\"]\n", errSubstr: "src/[a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfigFile(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "lint:\n  max_passes: 2\n")
	t.Setenv("PRIMERLINT_LINT__MAX_PASSES", "3")

	flags := lintFlags()
	require.NoError(t, flags.Set("max-passes", "4"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Lint.MaxPasses, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "lint:\n  max_passes: 2\n  min_severity: error\n")
	t.Setenv("PRIMERLINT_LINT__MAX_PASSES", "3")
	t.Setenv("PRIMERLINT_OUTPUT", "markdown")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Lint.MaxPasses, "env var should override config file")
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, "error", cfg.Lint.MinSeverity)
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "")
	t.Setenv("PRIMERLINT_LINT__MIN_SEVERITY", "warning")

	cfg, err := LoadConfig(cfgPath, lintFlags())
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.Lint.MinSeverity, "env var should be used when flag is not set")
	assert.Equal(t, 10, cfg.Lint.MaxPasses)
}

func TestLoadConfig_FlagMapping(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "")
	flags := lintFlags()
	require.NoError(t, flags.Set("severity", "error"))
	require.NoError(t, flags.Set("include", "src/**/*.tsx,app/**/*.jsx"))
	require.NoError(t, flags.Set("cache-path", "local.db"))
	require.NoError(t, flags.Set("fix", "true"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Lint.MinSeverity)
	assert.Equal(t, []string{"src/**/*.tsx", "app/**/*.jsx"}, cfg.Lint.Include)
	assert.Equal(t, filepath.Join(cwd, "local.db"), cfg.Cache.Path, "flag paths resolve against the working directory")
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(&buf, false))
	logger := GetLogger(ctx)
	logger.Debug("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewLogger(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
