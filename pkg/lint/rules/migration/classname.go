package migration

import (
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func init() {
	lint.Register(NoUnmergedClassName)
}

// NoUnmergedClassName requires className to merge a spread's className.
var NoUnmergedClassName = lint.RuleDef{
	ID:          "no-unmerged-classname",
	Group:       "migration",
	Description: "className next to spread props must be merged with the spread's className.",
	Type:        lint.TypeProblem,
	Fixable:     true,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"noUnmergedClassName": "className may be overwritten by spread props. Merge it with the spread's className using clsx.",
	},
	Create:      createNoUnmergedClassName,
	Rationale:   "With both a spread and className, one silently replaces the other and the caller's classes are lost.",
	BadExample:  `<Example {...rest} className="foo" />`,
	GoodExample: `<Example {...rest} className={clsx(rest.className, "foo")} />`,
}

// classNameMergers are helpers whose call result counts as merged.
var classNameMergers = map[string]bool{
	"clsx":       true,
	"classnames": true,
	"classNames": true,
	"cx":         true,
	"cn":         true,
}

func createNoUnmergedClassName(ctx *lint.Context) lint.Visitor {
	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindOpeningElement: func(n jsx.Node) {
			o := n.(*jsx.OpeningElement)
			cls := match.FindAttribute(o, "className")
			if cls == nil || cls.Value == nil || !match.HasSpread(o) || isMerged(ctx, cls) {
				return
			}
			before, after := spreadsAround(o, cls)

			ctx.Report(lint.Descriptor{
				Node:      cls,
				MessageID: "noUnmergedClassName",
				Fix: func() []fix.TextEdit {
					// A later spread overrides the merged value anyway.
					if after {
						return nil
					}
					args := make([]string, 0, len(before)+1)
					for _, sp := range before {
						id, ok := sp.Argument.(*jsx.Ident)
						if !ok {
							return nil
						}
						args = append(args, id.Name+".className")
					}
					v, ok := ast.ValueExpr(ctx, cls)
					if !ok {
						return nil
					}
					args = append(args, v)
					return []fix.TextEdit{
						fix.Replace(cls.Value, "{clsx("+strings.Join(args, ", ")+")}"),
					}
				},
			})
		},
	}}
}

// spreadsAround returns the spreads written before cls and whether any
// spread follows it.
func spreadsAround(o *jsx.OpeningElement, cls *jsx.Attribute) (before []*jsx.SpreadAttribute, after bool) {
	seen := false
	for _, a := range o.Attributes {
		if a == jsx.Node(cls) {
			seen = true
			continue
		}
		if s, ok := a.(*jsx.SpreadAttribute); ok {
			if seen {
				after = true
			} else {
				before = append(before, s)
			}
		}
	}
	return before, after
}

// isMerged reports whether the className value already combines classes,
// through a merge helper or by referencing some className itself.
func isMerged(ctx *lint.Context, cls *jsx.Attribute) bool {
	v := ast.Unwrap(cls.Value)
	if call, ok := v.(*jsx.CallExpr); ok {
		if id, ok := call.Callee.(*jsx.Ident); ok && classNameMergers[id.Name] {
			return true
		}
	}
	if _, ok := v.(*jsx.StringLit); ok {
		return false
	}
	return strings.Contains(ctx.Text(v), ".className")
}
