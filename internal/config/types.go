// Package config provides shared configuration types for primerlint.
// This package is decoupled from CLI concerns and can be used by the LSP
// and other tools that need to load project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/catalog"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

// LintConfig holds lint rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Only, when non-empty, restricts the run to these rule IDs
	Only []string `koanf:"only"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules"`

	// MinSeverity hides diagnostics less severe than this level
	MinSeverity string `koanf:"min_severity"`

	// Include and Exclude are doublestar globs selecting source files
	Include []string `koanf:"include"`
	Exclude []string `koanf:"exclude"`

	// MaxPasses bounds the fix loop per file
	MaxPasses int `koanf:"max_passes"`

	// Concurrency is the number of files linted at once; 0 uses every CPU
	Concurrency int `koanf:"concurrency"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// ProjectConfig holds the project configuration needed by tools like the LSP.
// This is a subset of the full CLI Config.
type ProjectConfig struct {
	Lint  LintConfig  `koanf:"lint"`
	Cache CacheConfig `koanf:"cache"`

	// Catalog is a directory whose YAML tables replace the built-in ones
	Catalog string `koanf:"catalog"`

	// DocsURL overrides the base URL of rule documentation links
	DocsURL string `koanf:"docs_url"`
}

// ToLintConfig converts the configuration into an analyzer configuration.
// Unknown severities are reported; unknown rule IDs are left to
// lint.Config.Validate.
func (c LintConfig) ToLintConfig() (*lint.Config, error) {
	cfg := lint.NewConfig()
	var errs []error

	for _, id := range c.Disabled {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Disable(id)
		}
	}
	for _, id := range c.Only {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Only(id)
		}
	}
	for id, sev := range c.Severity {
		if strings.EqualFold(strings.TrimSpace(sev), "off") {
			cfg.Disable(id)
			continue
		}
		s, ok := lint.ParseSeverity(sev)
		if !ok {
			errs = append(errs, fmt.Errorf("lint.severity.%s: unknown severity %q", id, sev))
			continue
		}
		cfg.SetSeverity(id, s)
	}
	for id, opts := range c.Rules {
		cfg.SetRuleOptions(id, opts)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Threshold returns the minimum severity to report.
func (c LintConfig) Threshold() (lint.Severity, error) {
	if strings.TrimSpace(c.MinSeverity) == "" {
		return lint.SeverityHint, nil
	}
	s, ok := lint.ParseSeverity(c.MinSeverity)
	if !ok {
		return lint.SeverityHint, fmt.Errorf("lint.min_severity: unknown severity %q", c.MinSeverity)
	}
	return s, nil
}

// LoadCatalog returns the data tables for the project: the built-in ones,
// or those under Catalog when set.
func (c ProjectConfig) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	if info, err := os.Stat(c.Catalog); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("failed to load catalog: %s is not a directory", c.Catalog)
	}
	cat, err := catalog.Load(os.DirFS(c.Catalog))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", c.Catalog, err)
	}
	return cat, nil
}

// NewAnalyzer builds an analyzer over the registered rules. Rule IDs and
// options are checked against the registry.
func (c ProjectConfig) NewAnalyzer() (*lint.Analyzer, error) {
	lintCfg, err := c.Lint.ToLintConfig()
	if err != nil {
		return nil, err
	}
	if err := lintCfg.Validate(lint.GetAll()); err != nil {
		return nil, err
	}
	cat, err := c.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return lint.NewAnalyzer(lintCfg, lint.WithCatalog(cat)), nil
}
