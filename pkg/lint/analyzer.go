package lint

import (
	"fmt"

	"github.com/leapstack-labs/primerlint/pkg/catalog"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// Analyzer runs lint rules against parsed files.
type Analyzer struct {
	config  *Config
	catalog *catalog.Catalog
	rules   []RuleDef // nil means every registered rule
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithCatalog sets the data tables handed to rules.
func WithCatalog(c *catalog.Catalog) AnalyzerOption {
	return func(a *Analyzer) { a.catalog = c }
}

// WithRules runs the given rules instead of the registry's.
func WithRules(rules ...RuleDef) AnalyzerOption {
	return func(a *Analyzer) { a.rules = rules }
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config, opts ...AnalyzerOption) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{config: config}
	for _, opt := range opts {
		opt(a)
	}
	if a.catalog == nil {
		a.catalog = catalog.Default()
	}
	return a
}

// Rules returns the enabled rules in ID order.
func (a *Analyzer) Rules() []RuleDef {
	all := a.rules
	if all == nil {
		all = GetAll()
	}
	enabled := make([]RuleDef, 0, len(all))
	for _, r := range all {
		if !a.config.IsDisabled(r.ID) {
			enabled = append(enabled, r)
		}
	}
	return enabled
}

// Analyze runs every enabled rule over file in a single pre-order
// traversal and returns the diagnostics in emission order. A rule bug
// (invalid fix, unknown message) fails the whole file.
func (a *Analyzer) Analyze(file *jsx.File) ([]Diagnostic, error) {
	if file == nil {
		return nil, nil
	}

	out := &sink{}
	rules := a.Rules()
	visitors := make([]Visitor, 0, len(rules))
	for i := range rules {
		rule := &rules[i]
		opts, err := resolveOptions(*rule, a.config.GetRuleOptions(rule.ID))
		if err != nil {
			return nil, err
		}
		ctx := &Context{
			file:     file,
			rule:     rule,
			severity: a.config.GetSeverity(rule.ID, rule.Severity),
			options:  opts,
			catalog:  a.catalog,
			out:      out,
		}
		visitors = append(visitors, rule.Create(ctx))
	}

	jsx.Traverse(file,
		func(n jsx.Node) bool {
			k := n.Kind()
			for _, v := range visitors {
				if fn := v.Enter[k]; fn != nil {
					fn(n)
				}
			}
			return true
		},
		func(n jsx.Node) {
			k := n.Kind()
			for _, v := range visitors {
				if fn := v.Exit[k]; fn != nil {
					fn(n)
				}
			}
		},
	)

	if out.err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, out.err)
	}
	return out.diags, nil
}
