package a11y

import (
	"regexp"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func init() {
	lint.Register(ExplicitHeading)
}

// ExplicitHeading requires Heading to state its level.
var ExplicitHeading = lint.RuleDef{
	ID:          "a11y-explicit-heading",
	Group:       "a11y",
	Description: "Heading must set an explicit level with the as prop.",
	Type:        lint.TypeProblem,
	Severity:    lint.SeverityError,
	Messages: map[string]string{
		"nonExplicitHeadingLevel": "Heading must have an explicit heading level applied through the `as` prop.",
		"invalidAsValue":          "Usage of `as` must only be used for heading elements (h1-h6), not {{ value }}.",
	},
	Options:     []lint.OptionDef{ast.SkipImportCheck},
	Create:      createExplicitHeading,
	Rationale:   "Heading renders an h2 by default. The document outline is only correct when each heading states its level.",
	BadExample:  `<Heading>Settings</Heading>`,
	GoodExample: `<Heading as="h2">Settings</Heading>`,
}

var headingTag = regexp.MustCompile(`^[hH][1-6]$`)

func createExplicitHeading(ctx *lint.Context) lint.Visitor {
	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindOpeningElement: func(n jsx.Node) {
			o := n.(*jsx.OpeningElement)
			if ast.ComponentName(ctx, o) != "Heading" || match.HasSpread(o) {
				return
			}
			as := match.FindAttribute(o, "as")
			if as == nil {
				ctx.Report(lint.Descriptor{Node: o, MessageID: "nonExplicitHeadingLevel"})
				return
			}
			v, ok := match.AttributeStringValue(as)
			if !ok {
				return // dynamic level
			}
			if !headingTag.MatchString(v) {
				ctx.Report(lint.Descriptor{Node: as, MessageID: "invalidAsValue", Data: map[string]string{"value": v}})
			}
		},
	}}
}
