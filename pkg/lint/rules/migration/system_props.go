package migration

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func init() {
	lint.Register(NoSystemProps)
}

const optIncludeUtilityComponents = "includeUtilityComponents"

// NoSystemProps moves styled-system props into the sx prop.
var NoSystemProps = lint.RuleDef{
	ID:          "no-system-props",
	Group:       "migration",
	Description: "Styled-system props are deprecated; use sx instead.",
	Type:        lint.TypeSuggestion,
	Fixable:     true,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"noSystemProps": "Styled-system props are deprecated ({{ componentName }} called with props: {{ propNames }})",
	},
	Options: []lint.OptionDef{
		ast.SkipImportCheck,
		{
			Name:        optIncludeUtilityComponents,
			Type:        lint.OptionBool,
			Default:     false,
			Description: "Also check utility components such as Box and Text.",
		},
	},
	Create:      createNoSystemProps,
	Rationale:   "Styled-system props are being removed from Primer components. The sx prop takes the same values.",
	BadExample:  `<Button width={200} mr={2}>Save</Button>`,
	GoodExample: `<Button sx={{width: 200, mr: 2}}>Save</Button>`,
}

func createNoSystemProps(ctx *lint.Context) lint.Visitor {
	cat := ctx.Catalog()
	includeUtility := ctx.GetBoolOption(optIncludeUtilityComponents)

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindOpeningElement: func(n jsx.Node) {
			o := n.(*jsx.OpeningElement)
			name := ast.ComponentName(ctx, o)
			if name == "" || (cat.IsUtilityComponent(name) && !includeUtility) {
				return
			}

			var props []*jsx.Attribute
			for _, a := range o.Attributes {
				attr, ok := a.(*jsx.Attribute)
				if ok && cat.IsSystemProp(attr.Name) && !cat.IsExcludedProp(name, attr.Name) {
					props = append(props, attr)
				}
			}
			if len(props) == 0 {
				return
			}

			names := make([]string, len(props))
			for i, p := range props {
				names[i] = p.Name
			}
			sort.Strings(names)

			ctx.Report(lint.Descriptor{
				Node:      o,
				MessageID: "noSystemProps",
				Data: map[string]string{
					"componentName": name,
					"propNames":     strings.Join(names, ", "),
				},
				Fix: func() []fix.TextEdit { return moveToSx(ctx, o, props) },
			})
		},
	}}
}

// moveToSx removes props and adds them to a new or existing sx object.
// It abstains when sx is not an object literal or already sets one of
// the keys.
func moveToSx(ctx *lint.Context, o *jsx.OpeningElement, props []*jsx.Attribute) []fix.TextEdit {
	entries := make([]string, 0, len(props))
	edits := make([]fix.TextEdit, 0, len(props)+1)
	for _, p := range props {
		v, ok := ast.ValueExpr(ctx, p)
		if !ok {
			return nil
		}
		entries = append(entries, ast.PropertyKey(p.Name)+": "+v)
		edits = append(edits, fix.RemoveSpan(ast.AttributeRemoval(ctx, o, p)))
	}
	body := strings.Join(entries, ", ")

	sx := match.FindAttribute(o, "sx")
	if sx == nil {
		return append(edits, fix.InsertAt(ast.AttributesEnd(o), " sx={{"+body+"}}"))
	}

	obj, ok := ast.Unwrap(sx.Value).(*jsx.ObjectExpr)
	if !ok {
		return nil
	}
	existing := make(map[string]bool)
	for _, pn := range obj.Properties {
		switch p := pn.(type) {
		case *jsx.Property:
			if k, ok := p.KeyName(); ok {
				existing[k] = true
			}
		case *jsx.SpreadElement:
			// The spread might set any key.
			return nil
		}
	}
	for _, p := range props {
		if existing[p.Name] {
			return nil
		}
	}

	if len(obj.Properties) == 0 {
		return append(edits, fix.Replace(obj, "{"+body+"}"))
	}
	last := obj.Properties[len(obj.Properties)-1]
	return append(edits, fix.InsertAfter(last, ", "+body))
}
