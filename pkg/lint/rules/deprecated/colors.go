package deprecated

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func init() {
	lint.Register(NoDeprecatedColors)
}

const (
	optCheckAllStrings = "checkAllStrings"
	colorsPrefix       = "colors."
)

// NoDeprecatedColors replaces deprecated theme color tokens.
var NoDeprecatedColors = lint.RuleDef{
	ID:          "no-deprecated-colors",
	Group:       "deprecated",
	Description: "Deprecated theme color tokens must be replaced with functional colors.",
	Type:        lint.TypeProblem,
	Fixable:     true,
	Severity:    lint.SeverityError,
	Messages: map[string]string{
		"deprecatedColor":       "'{{ name }}' is deprecated. Use '{{ replacement }}' instead.",
		"deprecatedColorChoice": "'{{ name }}' is deprecated. Use one of the following instead: {{ replacements }}",
	},
	Options: []lint.OptionDef{
		ast.SkipImportCheck,
		{
			Name:        optCheckAllStrings,
			Type:        lint.OptionBool,
			Default:     false,
			Description: "Check every string in JSX attributes, not only color props and sx.",
		},
	},
	Create:      createNoDeprecatedColors,
	Rationale:   "The old color names are removed from the theme. Functional names keep working across color modes.",
	BadExample:  `<Text color="text.primary" sx={{bg: 'bg.canvas'}} />`,
	GoodExample: `<Text color="fg.default" sx={{bg: 'canvas.default'}} />`,
}

// colorProps are the props and sx keys that take theme colors.
var colorProps = map[string]bool{
	"color":             true,
	"bg":                true,
	"backgroundColor":   true,
	"borderColor":       true,
	"borderTopColor":    true,
	"borderRightColor":  true,
	"borderBottomColor": true,
	"borderLeftColor":   true,
	"fill":              true,
	"stroke":            true,
	"outlineColor":      true,
	"boxShadow":         true,
}

// themeGetters are helpers that read theme values by path.
var themeGetters = map[string]bool{
	"themeGet": true,
	"get":      true,
}

var primerPackages = match.Regexp(regexp.MustCompile(`^@primer/(?:react|components)(?:$|/)`))

func createNoDeprecatedColors(ctx *lint.Context) lint.Visitor {
	skipImportCheck := ctx.GetBoolOption(ast.SkipImportCheck.Name)
	checkAllStrings := ctx.GetBoolOption(optCheckAllStrings)

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindStringLit: func(n jsx.Node) {
			lit := n.(*jsx.StringLit)
			attr, ok := jsx.Ancestor(lit, jsx.KindAttribute).(*jsx.Attribute)
			if !ok {
				return
			}
			if !checkAllStrings {
				o, _ := attr.Parent().(*jsx.OpeningElement)
				if ast.ComponentName(ctx, o) == "" || !isColorValue(attr, lit) {
					return
				}
			}
			reportColor(ctx, lit, lit.Value, "")
		},
		jsx.KindCallExpr: func(n jsx.Node) {
			call := n.(*jsx.CallExpr)
			if len(call.Args) == 0 || !isThemeGetter(ctx, call.Callee, skipImportCheck) {
				return
			}
			lit, ok := call.Args[0].(*jsx.StringLit)
			if !ok || !strings.HasPrefix(lit.Value, colorsPrefix) {
				return
			}
			reportColor(ctx, lit, strings.TrimPrefix(lit.Value, colorsPrefix), colorsPrefix)
		},
	}}
}

// isColorValue reports whether lit is the value of a color prop, either
// directly or as a color key inside the sx object.
func isColorValue(attr *jsx.Attribute, lit *jsx.StringLit) bool {
	if colorProps[attr.Name] {
		return ast.Unwrap(attr.Value) == jsx.Node(lit)
	}
	if attr.Name != "sx" {
		return false
	}
	p, ok := lit.Parent().(*jsx.Property)
	if !ok || p.Value != jsx.Node(lit) {
		return false
	}
	key, ok := p.KeyName()
	return ok && colorProps[key]
}

func isThemeGetter(ctx *lint.Context, callee jsx.Node, skipImportCheck bool) bool {
	id, ok := callee.(*jsx.Ident)
	if !ok {
		return false
	}
	if skipImportCheck {
		return themeGetters[id.Name]
	}
	imp := match.Import(id, ctx.Scope(id))
	return imp != nil && themeGetters[imp.Imported] && primerPackages.Match(imp.Source)
}

func reportColor(ctx *lint.Context, lit *jsx.StringLit, token, prefix string) {
	repl, ok := ctx.Catalog().Color(token)
	if !ok || len(repl) == 0 {
		return
	}
	if len(repl) > 1 {
		ctx.Report(lint.Descriptor{
			Node:      lit,
			MessageID: "deprecatedColorChoice",
			Data: map[string]string{
				"name":         token,
				"replacements": strings.Join(repl, ", "),
			},
		})
		return
	}
	ctx.Report(lint.Descriptor{
		Node:      lit,
		MessageID: "deprecatedColor",
		Data:      map[string]string{"name": token, "replacement": repl[0]},
		Fix: func() []fix.TextEdit {
			return []fix.TextEdit{fix.Replace(lit, fix.QuoteLike(lit.Raw, prefix+repl[0]))}
		},
	})
}
