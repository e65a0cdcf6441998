// Package lint provides the rule framework: rule definitions, the global
// registry, configuration, the per-file rule Context and the Analyzer that
// dispatches rule visitors over a parsed file.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/primerlint/pkg/lint/rules"
//
// # Writing Rules
//
// A rule declares its messages and options and returns a Visitor from
// Create. Create runs once per file, so per-file state such as an
// ancestor stack lives in its closure:
//
//	var MyRule = lint.RuleDef{
//		ID:       "my-rule",
//		Group:    "custom",
//		Severity: lint.SeverityWarning,
//		Messages: map[string]string{"bad": "{{ name }} is not allowed"},
//		Create: func(ctx *lint.Context) lint.Visitor {
//			return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
//				jsx.KindOpeningElement: func(n jsx.Node) { ... },
//			}}
//		},
//	}
//
// Report takes an optional Fix callback returning text edits. The edits
// are validated by fix.Compute; overlapping or out-of-range edits fail the
// file with fix.ErrInvalidFix instead of producing a corrupt fix.
//
// # Configuration
//
// Use Config to control which rules are enabled, their severity and options:
//
//	config := lint.NewConfig()
//	config.Disable("no-system-props")
//	config.SetSeverity("a11y-explicit-heading", lint.SeverityError)
//	config.SetRuleOptions("css-module-identifier-casing", map[string]any{"casing": "camel"})
package lint
