package style

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func init() {
	lint.Register(CSSModuleIdentifierCasing)
}

const (
	optCasing    = "casing"
	casingPascal = "pascal"
	casingCamel  = "camel"
)

// CSSModuleIdentifierCasing checks class names read from CSS modules.
var CSSModuleIdentifierCasing = lint.RuleDef{
	ID:          "css-module-identifier-casing",
	Group:       "style",
	Description: "Class names read from CSS modules must be identifiers in the configured case.",
	Type:        lint.TypeSuggestion,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"bad":            "Class names should be in {{ casing }} case. Use '{{ suggestion }}' instead of '{{ name }}'.",
		"noneIdentifier": "Class names should be read as identifiers. Use {{ object }}.{{ suggestion }} instead of {{ object }}['{{ name }}'].",
		"dynamic":        "Class names should not be read dynamically from {{ object }}.",
	},
	Options: []lint.OptionDef{{
		Name:        optCasing,
		Type:        lint.OptionString,
		Default:     casingPascal,
		Enum:        []string{casingPascal, casingCamel},
		Description: "Expected case of class names.",
	}},
	Create:      createCSSModuleIdentifierCasing,
	Rationale:   "Consistent identifier class names can be found with a text search and checked against the stylesheet.",
	BadExample:  "import classes from './Button.module.css'\n<div className={classes['primary-button']} />",
	GoodExample: "import classes from './Button.module.css'\n<div className={classes.PrimaryButton} />",
}

var (
	cssModule = match.Regexp(regexp.MustCompile(`\.module\.css$`))
	words     = regexp.MustCompile(`[A-Z]+[a-z0-9]*|[a-z0-9]+`)
	casings   = map[string]*regexp.Regexp{
		casingPascal: regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`),
		casingCamel:  regexp.MustCompile(`^[a-z][A-Za-z0-9]*$`),
	}
)

func createCSSModuleIdentifierCasing(ctx *lint.Context) lint.Visitor {
	casing := ctx.GetStringOption(optCasing)
	valid := casings[casing]

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindMemberExpr: func(n jsx.Node) {
			m := n.(*jsx.MemberExpr)
			obj, ok := m.Object.(*jsx.Ident)
			if !ok || !isStylesImport(ctx, obj) {
				return
			}
			data := map[string]string{"object": obj.Name, "casing": casing}

			if !m.Computed {
				prop, ok := m.Property.(*jsx.Ident)
				if !ok || valid.MatchString(prop.Name) {
					return
				}
				data["name"] = prop.Name
				data["suggestion"] = Suggest(prop.Name, casing)
				ctx.Report(lint.Descriptor{Node: m.Property, MessageID: "bad", Data: data})
				return
			}

			name, ok := match.StaticString(m.Property)
			if !ok {
				ctx.Report(lint.Descriptor{Node: m.Property, MessageID: "dynamic", Data: data})
				return
			}
			data["name"] = name
			data["suggestion"] = Suggest(name, casing)
			ctx.Report(lint.Descriptor{Node: m.Property, MessageID: "noneIdentifier", Data: data})
		},
	}}
}

// isStylesImport reports whether id is the default or namespace import of
// a CSS module.
func isStylesImport(ctx *lint.Context, id *jsx.Ident) bool {
	imp := match.Import(id, ctx.Scope(id))
	return imp != nil && (imp.Default || imp.Namespace) && cssModule.Match(imp.Source)
}

// Suggest converts a class name to the given casing ("pascal" or
// "camel"), splitting words at separators and case changes.
func Suggest(name, casing string) string {
	parts := words.FindAllString(name, -1)
	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	for i, p := range parts {
		if i == 0 && casing == casingCamel {
			b.WriteString(lower.String(p))
			continue
		}
		b.WriteString(title.String(p))
	}
	return b.String()
}
