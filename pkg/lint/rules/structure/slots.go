package structure

import (
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
	"github.com/leapstack-labs/primerlint/pkg/traverse"
)

func init() {
	lint.Register(DirectSlotChildren)
}

// DirectSlotChildren checks slot components against the slot catalog.
var DirectSlotChildren = lint.RuleDef{
	ID:          "direct-slot-children",
	Group:       "structure",
	Description: "Slot components must be direct children of their parent component.",
	Type:        lint.TypeProblem,
	Severity:    lint.SeverityError,
	Messages: map[string]string{
		"directSlotChildren": "{{ childName }} must be a direct child of {{ parentName }}.",
	},
	Options:     []lint.OptionDef{ast.SkipImportCheck},
	Create:      createDirectSlotChildren,
	Rationale:   "Slots are collected from the parent's direct children. A slot nested deeper is rendered in the wrong place or not at all.",
	BadExample:  "<PageLayout>\n  <div>\n    <PageLayout.Header>Title</PageLayout.Header>\n  </div>\n</PageLayout>",
	GoodExample: "<PageLayout>\n  <PageLayout.Header>Title</PageLayout.Header>\n</PageLayout>",
}

func createDirectSlotChildren(ctx *lint.Context) lint.Visitor {
	var stack traverse.AncestorStack
	skipImportCheck := ctx.GetBoolOption(ast.SkipImportCheck.Name)

	return lint.Visitor{
		Enter: map[jsx.Kind]func(jsx.Node){
			jsx.KindElement: func(n jsx.Node) {
				o := n.(*jsx.Element).Opening
				scope := ctx.Scope(o)
				name := match.CanonicalName(o.Name, scope)

				parents, isSlot := ctx.Catalog().SlotParents(name)
				if isSlot && (skipImportCheck || match.IsPrimerComponent(o.Name, scope)) && !stack.IsDirectChildOf(parents...) {
					ctx.Report(lint.Descriptor{
						Node:      o,
						MessageID: "directSlotChildren",
						Data: map[string]string{
							"childName":  name,
							"parentName": strings.Join(parents, " or "),
						},
					})
				}

				if !o.SelfClosing {
					stack.Push(name)
				}
			},
		},
		Exit: map[jsx.Kind]func(jsx.Node){
			jsx.KindClosingElement: func(jsx.Node) {
				stack.Pop()
			},
		},
	}
}
