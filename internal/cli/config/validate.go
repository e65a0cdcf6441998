package config

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/primerlint/internal/cli/output"
	"github.com/leapstack-labs/primerlint/internal/runner"
)

// Validate checks the values that do not depend on the rule registry.
// Rule IDs and options are checked when the analyzer is built.
func (c *Config) Validate() error {
	var errs []error

	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Lint.Threshold(); err != nil {
		errs = append(errs, err)
	}
	if c.Lint.MaxPasses < 1 {
		errs = append(errs, fmt.Errorf("lint.max_passes must be at least 1, got %d", c.Lint.MaxPasses))
	}
	if c.Lint.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("lint.concurrency must not be negative, got %d", c.Lint.Concurrency))
	}
	if _, err := runner.NewDiscovery(c.Lint.Include, c.Lint.Exclude); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
