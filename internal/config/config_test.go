package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFromDir(t *testing.T) {
	t.Run("no config", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("full config", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "primerlint.yaml", `
lint:
  disabled: [no-wildcard-imports]
  severity:
    no-system-props: error
  rules:
    no-deprecated-colors:
      checkAllStrings: true
  include: ["src/**/*.tsx"]
  max_passes: 3
cache:
  enabled: true
catalog: data
`)
		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, []string{"no-wildcard-imports"}, cfg.Lint.Disabled)
		assert.Equal(t, "error", cfg.Lint.Severity["no-system-props"])
		assert.Equal(t, true, cfg.Lint.Rules["no-deprecated-colors"]["checkAllStrings"])
		assert.Equal(t, []string{"src/**/*.tsx"}, cfg.Lint.Include)
		assert.Equal(t, 3, cfg.Lint.MaxPasses)
		assert.Equal(t, DefaultMinSeverity, cfg.Lint.MinSeverity)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, filepath.Join(dir, DefaultCachePath), cfg.Cache.Path)
		assert.Equal(t, filepath.Join(dir, "data"), cfg.Catalog)
	})

	t.Run("yml and dotfile names", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ".primerlint.yml", "lint:\n  max_passes: 2\n")
		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, 2, cfg.Lint.MaxPasses)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "primerlint.yaml", "lint: [\n")
		_, err := LoadFromDir(dir)
		assert.Error(t, err)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "primerlint.yaml", "")
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, root, FindProjectRoot(root))
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "memory", path: ":memory:", want: ":memory:"},
		{name: "absolute", path: "/tmp/cache.db", want: "/tmp/cache.db"},
		{name: "relative", path: ".primerlint/cache.db", want: filepath.Join("/project", ".primerlint/cache.db")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.path, "/project"))
		})
	}
}

func TestLintConfig_ToLintConfig(t *testing.T) {
	t.Run("disabled only and severity", func(t *testing.T) {
		cfg, err := LintConfig{
			Disabled: []string{" no-system-props "},
			Only:     []string{"no-deprecated-colors", "no-system-props"},
			Severity: map[string]string{"no-deprecated-colors": "error", "no-wildcard-imports": "off"},
			Rules:    map[string]RuleOptions{"no-deprecated-colors": {"checkAllStrings": true}},
		}.ToLintConfig()
		require.NoError(t, err)

		assert.True(t, cfg.IsDisabled("no-system-props"))
		assert.False(t, cfg.IsDisabled("no-deprecated-colors"))
		assert.True(t, cfg.IsDisabled("no-wildcard-imports"))
		assert.Equal(t, lint.SeverityError, cfg.GetSeverity("no-deprecated-colors", lint.SeverityWarning))
		assert.Equal(t, true, cfg.GetRuleOptions("no-deprecated-colors")["checkAllStrings"])
	})

	t.Run("unknown severity", func(t *testing.T) {
		_, err := LintConfig{Severity: map[string]string{"no-system-props": "fatal"}}.ToLintConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fatal")
	})
}

func TestLintConfig_Threshold(t *testing.T) {
	s, err := LintConfig{}.Threshold()
	require.NoError(t, err)
	assert.Equal(t, lint.SeverityHint, s)

	s, err = LintConfig{MinSeverity: "warning"}.Threshold()
	require.NoError(t, err)
	assert.Equal(t, lint.SeverityWarning, s)

	_, err = LintConfig{MinSeverity: "loud"}.Threshold()
	assert.Error(t, err)
}

func TestProjectConfig_LoadCatalog(t *testing.T) {
	cat, err := ProjectConfig{}.LoadCatalog()
	require.NoError(t, err)
	assert.NotNil(t, cat)

	_, err = ProjectConfig{Catalog: filepath.Join(t.TempDir(), "missing")}.LoadCatalog()
	assert.Error(t, err)
}

func TestProjectConfig_NewAnalyzer(t *testing.T) {
	a, err := ProjectConfig{
		Lint: LintConfig{Only: []string{"no-system-props"}},
	}.NewAnalyzer()
	require.NoError(t, err)
	rules := a.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, "no-system-props", rules[0].ID)

	_, err = ProjectConfig{Lint: LintConfig{Disabled: []string{"no-such-rule"}}}.NewAnalyzer()
	require.Error(t, err)
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
}
