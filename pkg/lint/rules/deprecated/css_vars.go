package deprecated

import (
	"regexp"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
)

func init() {
	lint.Register(NewCSSColorVars)
}

// NewCSSColorVars adds the new CSS color variables in front of the
// deprecated ones, keeping the old variable as fallback.
var NewCSSColorVars = lint.RuleDef{
	ID:          "new-css-color-vars",
	Group:       "deprecated",
	Description: "Deprecated CSS color variables must be wrapped by their replacement.",
	Type:        lint.TypeSuggestion,
	Fixable:     true,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"cssVarDeprecated": "Replace var({{ deprecated }}) with var({{ replacement }}, var({{ deprecated }}))",
	},
	Create:      createNewCSSColorVars,
	Rationale:   "The --color-* variables are being removed. Using the new variable with the old one as fallback works on both theme versions.",
	BadExample:  `<Box sx={{color: 'var(--color-fg-muted)'}} />`,
	GoodExample: `<Box sx={{color: 'var(--fgColor-muted, var(--color-fg-muted))'}} />`,
}

var (
	cssVarRef = regexp.MustCompile(`var\(\s*(--color-[a-z0-9-]+)\s*\)`)
	// fallbackOpen matches text ending inside another var() as its fallback.
	fallbackOpen = regexp.MustCompile(`var\(\s*--[\w-]+\s*,\s*$`)
)

func createNewCSSColorVars(ctx *lint.Context) lint.Visitor {
	check := func(n jsx.Node, raw string, template bool) {
		attr := jsx.Ancestor(n, jsx.KindAttribute)
		if attr == nil {
			return
		}
		dynamic := ast.IsDynamic(n, attr)

		base := n.Span().Start
		for _, m := range cssVarRef.FindAllStringSubmatchIndex(raw, -1) {
			if fallbackOpen.MatchString(raw[:m[0]]) {
				continue
			}
			old := raw[m[2]:m[3]]
			repl, ok := ctx.Catalog().CSSVar(old)
			if !ok {
				continue
			}
			sp := jsx.Span{Start: base + m[0], End: base + m[1]}
			d := lint.Descriptor{
				Span:      sp,
				MessageID: "cssVarDeprecated",
				Data:      map[string]string{"deprecated": old, "replacement": repl},
			}
			if !dynamic {
				text := "var(" + repl + ", var(" + old + "))"
				if template {
					text = fix.EscapeTemplate(text)
				}
				d.Fix = func() []fix.TextEdit {
					return []fix.TextEdit{fix.ReplaceSpan(sp, text)}
				}
			}
			ctx.Report(d)
		}
	}

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindStringLit: func(n jsx.Node) {
			check(n, n.(*jsx.StringLit).Raw, false)
		},
		jsx.KindTemplateElement: func(n jsx.Node) {
			check(n, n.(*jsx.TemplateElement).Raw, true)
		},
	}}
}
