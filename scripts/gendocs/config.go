package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	intconfig "github.com/leapstack-labs/primerlint/internal/config"
	"github.com/leapstack-labs/primerlint/internal/runner"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "general", "lint", "cache"
}

// getConfigSchema returns the configuration schema definition.
// This mirrors internal/config/types.go and internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "output", Type: "string", Default: "auto", Description: "Output format: auto, text, markdown, json", Category: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr", Category: "general"},
		{Name: "catalog", Type: "string", Description: "Directory of YAML catalog tables replacing the built-in ones", Category: "general"},
		{Name: "docs_url", Type: "string", Description: "Base URL of rule documentation links", Category: "general"},

		{Name: "include", Type: "[]string", Default: strings.Join(runner.DefaultInclude, ", "), Description: "Doublestar globs of files to lint", Category: "lint"},
		{Name: "exclude", Type: "[]string", Default: strings.Join(runner.DefaultExclude, ", "), Description: "Doublestar globs of files to skip", Category: "lint"},
		{Name: "min_severity", Type: "string", Default: intconfig.DefaultMinSeverity, Description: "Hide diagnostics less severe than this", Category: "lint"},
		{Name: "max_passes", Type: "int", Default: fmt.Sprint(intconfig.DefaultMaxPasses), Description: "Maximum fix passes per file", Category: "lint"},
		{Name: "concurrency", Type: "int", Default: "0", Description: "Files linted at once; 0 uses every CPU", Category: "lint"},
		{Name: "disabled", Type: "[]string", Description: "Rule IDs to turn off", Category: "lint"},
		{Name: "only", Type: "[]string", Description: "When set, run only these rule IDs", Category: "lint"},
		{Name: "severity", Type: "map[string]string", Description: "Per-rule severity: error, warning, info, hint or off", Category: "lint"},
		{Name: "rules", Type: "map[string]map[string]any", Description: "Per-rule options", Category: "lint"},

		{Name: "enabled", Type: "bool", Default: "false", Description: "Reuse results of unchanged files between runs", Category: "cache"},
		{Name: "path", Type: "string", Default: intconfig.DefaultCachePath, Description: "SQLite cache database, relative to the project root", Category: "cache"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "primerlint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("primerlint reads the first of %s found in the project root. Run `primerlint init` to create one.",
		joinCode(intconfig.ConfigFileNames)))

	fields := getConfigSchema()
	sections := []struct {
		category, title, intro string
	}{
		{"general", "General", "Top-level keys:"},
		{"lint", "Lint", "Keys under `lint`:"},
		{"cache", "Cache", "Keys under `cache`:"},
	}
	for _, sec := range sections {
		w.Header(2, sec.title)
		w.Paragraph(sec.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != sec.category {
				continue
			}
			defVal := "-"
			if f.Default != "" {
				defVal = InlineCode(f.Default)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		"Environment variables (`PRIMERLINT_LINT__MAX_PASSES=3` sets `lint.max_passes`)",
		"The configuration file",
		"Built-in defaults",
	})

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# primerlint.yaml
output: auto

lint:
  include: ["src/**/*.{ts,tsx}"]
  exclude: ["**/*.stories.tsx", "**/node_modules/**"]
  min_severity: warning
  max_passes: 10
  disabled: [css-module-identifier-casing]
  severity:
    no-system-props: error
  rules:
    no-deprecated-colors:
      checkAllStrings: true

cache:
  enabled: true
  path: .primerlint/cache.db`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func joinCode(items []string) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = InlineCode(s)
	}
	return strings.Join(out, ", ")
}
