package a11y

import (
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
	"github.com/leapstack-labs/primerlint/pkg/traverse"
)

func init() {
	lint.Register(LinkInTextBlock)
}

// LinkInTextBlock flags links embedded in prose that rely on color alone.
var LinkInTextBlock = lint.RuleDef{
	ID:          "a11y-link-in-text-block",
	Group:       "a11y",
	Description: "Links inside a block of text must set the inline prop.",
	Type:        lint.TypeProblem,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"linkInTextBlock": "Links should have the inline prop if it appear in a text block and only uses color to distinguish itself from surrounding text.",
	},
	Options:     []lint.OptionDef{ast.SkipImportCheck},
	Create:      createLinkInTextBlock,
	Rationale:   "Color alone does not distinguish a link from the text around it for people with low vision or color blindness. The inline prop adds an underline.",
	BadExample:  `<p>Read the <Link href="/docs">docs</Link> first.</p>`,
	GoodExample: `<p>Read the <Link inline href="/docs">docs</Link> first.</p>`,
}

func createLinkInTextBlock(ctx *lint.Context) lint.Visitor {
	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindElement: func(n jsx.Node) {
			e := n.(*jsx.Element)
			if ast.ComponentName(ctx, e.Opening) != "Link" || isInline(e.Opening) {
				return
			}
			if traverse.InTextBlock(e, traverse.Siblings(e)) {
				ctx.Report(lint.Descriptor{Node: e.Opening, MessageID: "linkInTextBlock"})
			}
		},
	}}
}

// isInline reports whether the inline prop is set to anything but a
// literal false. A spread may set it, so spreads count as inline.
func isInline(o *jsx.OpeningElement) bool {
	if match.HasSpread(o) {
		return true
	}
	attr := match.FindAttribute(o, "inline")
	if attr == nil {
		return false
	}
	if lit, ok := ast.Unwrap(attr.Value).(*jsx.Literal); ok && lit.LitKind == jsx.LiteralBool {
		return lit.Raw != "false"
	}
	return true
}
