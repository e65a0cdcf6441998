// Package config provides configuration management for the primerlint CLI.
//
// This package extends the shared project configuration from
// internal/config with CLI-specific fields. The shared types are
// re-exported here via type aliases for convenience.
package config

import (
	intconfig "github.com/leapstack-labs/primerlint/internal/config"
)

// LintConfig is an alias for the shared lint configuration.
type LintConfig = intconfig.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = intconfig.RuleOptions

// CacheConfig is an alias for the shared cache configuration.
type CacheConfig = intconfig.CacheConfig

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is the directory relative paths are resolved against
	ProjectRoot  string      `koanf:"-"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Catalog      string      `koanf:"catalog"`
	DocsURL      string      `koanf:"docs_url"`
	Lint         LintConfig  `koanf:"lint"`
	Cache        CacheConfig `koanf:"cache"`
}

// Project returns the shared part of the configuration.
func (c *Config) Project() intconfig.ProjectConfig {
	return intconfig.ProjectConfig{
		Lint:    c.Lint,
		Cache:   c.Cache,
		Catalog: c.Catalog,
		DocsURL: c.DocsURL,
	}
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultCachePath = intconfig.DefaultCachePath
	EnvPrefix        = "PRIMERLINT_"
)
