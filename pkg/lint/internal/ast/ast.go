// Package ast provides syntax tree helpers shared by lint rules.
package ast

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

// SkipImportCheck is the option shared by rules gated on Primer imports.
var SkipImportCheck = lint.OptionDef{
	Name:        "skipImportCheck",
	Type:        lint.OptionBool,
	Default:     false,
	Description: "Check matching element names even when they are not imported from @primer/react.",
}

// ComponentName returns the exported name of the Primer component o
// renders, or "" when o is not one. Aliased imports are mapped back to the
// exported name. With skipImportCheck set, any component element counts
// and its name is returned as written.
func ComponentName(ctx *lint.Context, o *jsx.OpeningElement) string {
	if o == nil || match.IsHostElement(o) {
		return ""
	}
	if ctx.GetBoolOption(SkipImportCheck.Name) {
		return match.ElementName(o)
	}
	scope := ctx.Scope(o)
	if !match.IsPrimerComponent(o.Name, scope) {
		return ""
	}
	return match.CanonicalName(o.Name, scope)
}

// Unwrap returns the expression inside an ExprContainer, or n itself.
func Unwrap(n jsx.Node) jsx.Node {
	if c, ok := n.(*jsx.ExprContainer); ok {
		return c.Expr
	}
	return n
}

// ValueExpr returns source text that evaluates to the attribute's value:
// the literal for string values, the inner expression for containers and
// "true" for bare attributes. It fails on empty containers.
func ValueExpr(ctx *lint.Context, attr *jsx.Attribute) (string, bool) {
	if attr == nil {
		return "", false
	}
	switch v := attr.Value.(type) {
	case nil:
		return "true", true
	case *jsx.StringLit:
		return v.Raw, true
	case *jsx.ExprContainer:
		if jsx.IsNil(v.Expr) {
			return "", false
		}
		return ctx.Text(v.Expr), true
	default:
		return ctx.Text(v), true
	}
}

// AttributeRemoval returns the span deleting attr and the whitespace in
// front of it, so removing several adjacent attributes leaves no gaps.
func AttributeRemoval(ctx *lint.Context, o *jsx.OpeningElement, attr jsx.Node) jsx.Span {
	src := ctx.Source()
	sp := attr.Span()
	start := sp.Start
	for start > o.Span().Start && isSpace(src[start-1]) {
		start--
	}
	return jsx.Span{Start: start, End: sp.End}
}

// AttributesEnd returns the offset just past the last attribute, or past
// the element name when there are none.
func AttributesEnd(o *jsx.OpeningElement) int {
	if n := len(o.Attributes); n > 0 {
		return o.Attributes[n-1].Span().End
	}
	if !jsx.IsNil(o.Name) {
		return o.Name.Span().End
	}
	return o.Span().Start + 1
}

// IsDynamic reports whether a computed expression sits between n and its
// ancestor stop: a call, conditional, binary operation or computed member
// access. Text produced there cannot be rewritten literally.
func IsDynamic(n, stop jsx.Node) bool {
	for p := n.Parent(); p != nil && p != stop; p = p.Parent() {
		switch e := p.(type) {
		case *jsx.CallExpr, *jsx.CondExpr, *jsx.BinaryExpr:
			return true
		case *jsx.MemberExpr:
			if e.Computed {
				return true
			}
		}
	}
	return false
}

// PropertyKey renders name as an object literal key, quoting it when it
// is not a valid identifier.
func PropertyKey(name string) string {
	if IsIdentifierName(name) {
		return name
	}
	return strconv.Quote(name)
}

// IsIdentifierName reports whether s is a valid JavaScript identifier.
func IsIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Semicolon returns ";" when the statement n ends with one.
func Semicolon(ctx *lint.Context, n jsx.Node) string {
	text := ctx.Text(n)
	if r, _ := utf8.DecodeLastRuneInString(text); r == ';' {
		return ";"
	}
	return ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
