// Package rules provides the Primer lint rule implementations.
//
// Rules are organized by category:
//   - a11y: accessibility of tooltips, links and headings
//   - structure: slot components and their parents
//   - migration: styled-system props and className merging
//   - deprecated: deprecated color tokens and CSS variables
//   - imports: staging and internal import paths
//   - style: CSS module class name casing
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/primerlint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/primerlint/pkg/lint/rules/a11y"
//	import _ "github.com/leapstack-labs/primerlint/pkg/lint/rules/imports"
package rules
