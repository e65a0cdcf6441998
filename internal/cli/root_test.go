package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/internal/cli/commands"
	"github.com/leapstack-labs/primerlint/internal/cli/config"
	"github.com/leapstack-labs/primerlint/internal/cli/output"
	"github.com/leapstack-labs/primerlint/internal/cli/testutil"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "lint", "rules", "doctor", "init", "lsp", "completion"}, names)

	for _, flag := range []string{"config", "verbose", "output", "catalog"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "primerlint v"+Version)
}

func TestRootCommand_OutputFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "primerlint.yaml")

	out, _, err := execute(t, "--config", cfgPath, "--output", "json", "rules", "--group", "migration")
	require.NoError(t, err)

	var result commands.RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Count.Total)
}

func TestRootCommand_LintSeverityFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "primerlint.yaml")

	// The only finding is a warning
	_, _, err := execute(t, "--config", cfgPath, "lint", dir)
	require.Error(t, err)

	out, _, err := execute(t, "--config", cfgPath, "lint", dir, "--severity", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestRootCommand_ProjectConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "primerlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`lint:
  severity:
    no-system-props: "off"
`), 0o644))

	out, _, err := execute(t, "--config", cfgPath, "lint", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 2 files")
}

func TestRootCommand_Cache(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "primerlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cache:\n  enabled: true\n"), 0o644))

	for i := 0; i < 2; i++ {
		out, _, err := execute(t, "--config", cfgPath, "-o", "json", "lint", dir)
		require.Error(t, err)

		var result output.LintOutput
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 1, result.Summary.TotalIssues, "run %d", i)
	}
	assert.FileExists(t, filepath.Join(dir, config.DefaultCachePath))
}

func TestRootCommand_DocsURL(t *testing.T) {
	t.Cleanup(lint.ResetDocsBaseURL)
	t.Setenv("PRIMERLINT_DOCS_URL", "https://example.com/docs/")

	out, _, err := execute(t, "--config", filepath.Join(testutil.SetupTestProject(t), "primerlint.yaml"),
		"rules", "no-system-props", "-f", "json")
	require.NoError(t, err)

	var rule lint.RuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rule))
	assert.Equal(t, "https://example.com/docs/no-system-props", rule.DocURL)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "primerlint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: html\n"), 0o644))

	_, _, err := execute(t, "--config", cfgPath, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCommand_VerboseLogsConfigFile(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "primerlint.yaml")

	_, errOut, err := execute(t, "--config", cfgPath, "-v", "version")
	require.NoError(t, err)
	assert.Contains(t, errOut, "using config file")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "primerlint")
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, config.DefaultOutput, GetConfig(ctx).OutputFormat)
	assert.NotNil(t, GetRenderer(ctx))

	cfg := &config.Config{OutputFormat: "json"}
	ctx = context.WithValue(ctx, configKey{}, cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}
