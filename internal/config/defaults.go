package config

import (
	"github.com/leapstack-labs/primerlint/internal/state"
	"github.com/leapstack-labs/primerlint/pkg/fix"
)

// Default configuration values.
const (
	DefaultCachePath   = state.DefaultPath
	DefaultMaxPasses   = fix.DefaultMaxPasses
	DefaultMinSeverity = "hint"
)

// Defaults returns the default values as a flat koanf map.
func Defaults() map[string]any {
	return map[string]any{
		"lint.max_passes":   DefaultMaxPasses,
		"lint.concurrency":  0,
		"lint.min_severity": DefaultMinSeverity,
		"cache.enabled":     false,
		"cache.path":        DefaultCachePath,
	}
}

// ApplyDefaults fills unset fields of a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.Lint.MaxPasses <= 0 {
		c.Lint.MaxPasses = DefaultMaxPasses
	}
	if c.Lint.MinSeverity == "" {
		c.Lint.MinSeverity = DefaultMinSeverity
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath
	}
}
