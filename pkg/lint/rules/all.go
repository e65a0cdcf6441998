package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Import rule categories - each registers its rules via init()
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules/a11y"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules/deprecated"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules/imports"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules/migration"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules/structure"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules/style"
)
