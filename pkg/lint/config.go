package lint

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrUnknownRule   = errors.New("unknown rule")
	ErrInvalidOption = errors.New("invalid rule option")
)

// Config controls which rules are enabled, their severity and options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// OnlyRules, when non-empty, restricts the run to these rule IDs
	OnlyRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions holds raw option values keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		OnlyRules:         make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	if len(c.OnlyRules) > 0 && !c.OnlyRules[ruleID] {
		return true
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the raw options configured for a rule.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// Only restricts the run to the given rule IDs.
func (c *Config) Only(ruleIDs ...string) *Config {
	for _, id := range ruleIDs {
		c.OnlyRules[id] = true
	}
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions sets options for a rule, merging with earlier values.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	if c.RuleOptions[ruleID] == nil {
		c.RuleOptions[ruleID] = make(map[string]any, len(opts))
	}
	for k, v := range opts {
		c.RuleOptions[ruleID][k] = v
	}
	return c
}

// Validate checks every rule ID and option against rules. All problems
// are reported together.
func (c *Config) Validate(rules []RuleDef) error {
	if c == nil {
		return nil
	}
	byID := make(map[string]RuleDef, len(rules))
	for _, r := range rules {
		byID[r.ID] = r
	}

	var errs []error
	check := func(kind, id string) {
		if _, ok := byID[id]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q in %s", ErrUnknownRule, id, kind))
		}
	}
	for id := range c.DisabledRules {
		check("disabled rules", id)
	}
	for id := range c.OnlyRules {
		check("selected rules", id)
	}
	for id := range c.SeverityOverrides {
		check("severity overrides", id)
	}
	for id, opts := range c.RuleOptions {
		r, ok := byID[id]
		if !ok {
			check("rule options", id)
			continue
		}
		if _, err := resolveOptions(r, opts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
