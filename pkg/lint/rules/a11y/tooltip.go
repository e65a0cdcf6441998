package a11y

import (
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/traverse"
)

func init() {
	lint.Register(TooltipInteractiveTrigger)
}

// TooltipInteractiveTrigger requires Tooltip to wrap focusable content.
var TooltipInteractiveTrigger = lint.RuleDef{
	ID:          "a11y-tooltip-interactive-trigger",
	Group:       "a11y",
	Description: "Tooltip must be attached to a single interactive element.",
	Type:        lint.TypeProblem,
	Severity:    lint.SeverityError,
	Messages: map[string]string{
		"nonInteractiveTrigger": "The Tooltip component expects a single React element that contains interactive content. Consider using a <button> or equivalent interactive element instead.",
		"anchorTagWithoutHref":  "Anchor tags without an href attribute are not interactive, therefore they cannot be used as a trigger for a tooltip. Please add an href attribute or use an alternative interactive element instead.",
		"hiddenInput":           "Hidden inputs are not interactive and cannot be used as a trigger for a tooltip. Please use an alternate input type or use a different interactive element instead.",
		"singleChild":           "The Tooltip component expects a single React element as a child.",
	},
	Options:     []lint.OptionDef{ast.SkipImportCheck},
	Create:      createTooltipInteractiveTrigger,
	Rationale:   "Tooltips are shown on hover and focus. A trigger that cannot receive focus hides the tooltip from keyboard and screen reader users.",
	BadExample:  `<Tooltip text="Save"><span>Save</span></Tooltip>`,
	GoodExample: `<Tooltip text="Save"><button>Save</button></Tooltip>`,
}

var verdictMessages = map[traverse.TriggerVerdict]string{
	traverse.TriggerNotInteractive:    "nonInteractiveTrigger",
	traverse.TriggerAnchorWithoutHref: "anchorTagWithoutHref",
	traverse.TriggerHiddenInput:       "hiddenInput",
	traverse.TriggerMultipleChildren:  "singleChild",
}

func createTooltipInteractiveTrigger(ctx *lint.Context) lint.Visitor {
	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindElement: func(n jsx.Node) {
			e := n.(*jsx.Element)
			if ast.ComponentName(ctx, e.Opening) != "Tooltip" {
				return
			}
			verdict := traverse.ClassifyTrigger(e)
			if id, ok := verdictMessages[verdict]; ok {
				ctx.Report(lint.Descriptor{Node: e.Opening, MessageID: id})
			}
		},
	}}
}
