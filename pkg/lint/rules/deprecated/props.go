package deprecated

import (
	"github.com/leapstack-labs/primerlint/pkg/catalog"
	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func init() {
	lint.Register(NoDeprecatedProps)
}

// NoDeprecatedProps flags component props that were renamed or removed.
var NoDeprecatedProps = lint.RuleDef{
	ID:          "no-deprecated-props",
	Group:       "deprecated",
	Description: "Renamed or removed component props must be updated.",
	Type:        lint.TypeSuggestion,
	Fixable:     true,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"propRenamed": "The {{ prop }} prop of {{ componentName }} is deprecated. Use {{ replacement }} instead.",
		"propRemoved": "The {{ prop }} prop of {{ componentName }} is deprecated and has no effect. Remove it.",
	},
	Options:     []lint.OptionDef{ast.SkipImportCheck},
	Create:      createNoDeprecatedProps,
	Rationale:   "Deprecated props keep working only until the next major release, and removed ones are already ignored.",
	BadExample:  `<Button leadingIcon={SearchIcon}>Search</Button>`,
	GoodExample: `<Button leadingVisual={SearchIcon}>Search</Button>`,
}

func createNoDeprecatedProps(ctx *lint.Context) lint.Visitor {
	cat := ctx.Catalog()

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindOpeningElement: func(n jsx.Node) {
			o := n.(*jsx.OpeningElement)
			name := ast.ComponentName(ctx, o)
			if name == "" {
				return
			}
			for i, a := range o.Attributes {
				attr, ok := a.(*jsx.Attribute)
				if !ok {
					continue
				}
				if ch, ok := cat.DeprecatedProp(name, attr.Name); ok {
					reportProp(ctx, o, attr, name, ch, spreadFollows(o, i))
				}
			}
		},
	}}
}

func reportProp(ctx *lint.Context, o *jsx.OpeningElement, attr *jsx.Attribute, component string, ch catalog.PropChange, spreadAfter bool) {
	d := lint.Descriptor{
		Node: attr,
		Data: map[string]string{
			"componentName": component,
			"prop":          attr.Name,
		},
	}
	if ch.Remove {
		d.MessageID = "propRemoved"
		d.Fix = func() []fix.TextEdit {
			if spreadAfter {
				return nil
			}
			return []fix.TextEdit{fix.RemoveSpan(ast.AttributeRemoval(ctx, o, attr))}
		}
	} else {
		d.MessageID = "propRenamed"
		d.Data["replacement"] = ch.Rename
		d.Fix = func() []fix.TextEdit {
			// A spread may carry the new prop, and an existing one would
			// end up duplicated.
			if spreadAfter || match.FindAttribute(o, ch.Rename) != nil {
				return nil
			}
			return []fix.TextEdit{fix.ReplaceSpan(attr.NameSpan, ch.Rename)}
		}
	}
	ctx.Report(d)
}

// spreadFollows reports whether a spread attribute comes after index i.
func spreadFollows(o *jsx.OpeningElement, i int) bool {
	for _, a := range o.Attributes[i+1:] {
		if _, ok := a.(*jsx.SpreadAttribute); ok {
			return true
		}
	}
	return false
}
