// Package match provides small, total predicates over jsx nodes.
//
// Every function accepts nil (or typed nil) input and returns the zero value
// instead of panicking. "Not found" is always a valid answer.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// NameOf renders an element name node: "Box", "ActionList.Item" or
// "svg:path". Computed or unknown names yield "".
func NameOf(name jsx.Node) string {
	switch n := name.(type) {
	case *jsx.Ident:
		if n == nil {
			return ""
		}
		return n.Name
	case *jsx.NamespaceName:
		if n == nil {
			return ""
		}
		return n.Namespace + ":" + n.Name
	case *jsx.MemberExpr:
		if n == nil || n.Computed {
			return ""
		}
		obj, prop := NameOf(n.Object), NameOf(n.Property)
		if obj == "" || prop == "" {
			return ""
		}
		return obj + "." + prop
	}
	return ""
}

// ElementName returns the name of an opening element.
func ElementName(o *jsx.OpeningElement) string {
	if o == nil {
		return ""
	}
	return NameOf(o.Name)
}

// FindAttribute returns the first attribute named name, or nil. The lookup
// is case-sensitive; spread attributes are ignored.
func FindAttribute(o *jsx.OpeningElement, name string) *jsx.Attribute {
	if o == nil {
		return nil
	}
	for _, a := range o.Attributes {
		if attr, ok := a.(*jsx.Attribute); ok && attr.Name == name {
			return attr
		}
	}
	return nil
}

// HasSpread reports whether the element has any {...spread} attribute.
func HasSpread(o *jsx.OpeningElement) bool {
	if o == nil {
		return false
	}
	for _, a := range o.Attributes {
		if _, ok := a.(*jsx.SpreadAttribute); ok {
			return true
		}
	}
	return false
}

// IsHostElement reports whether the element is a built-in tag (lowercase
// first character) rather than a component reference.
func IsHostElement(o *jsx.OpeningElement) bool {
	name := ElementName(o)
	if name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}

// RootIdent returns the leftmost identifier of a (possibly dotted) element
// name, e.g. ActionList for ActionList.Item.
func RootIdent(name jsx.Node) *jsx.Ident {
	for {
		switch n := name.(type) {
		case *jsx.Ident:
			if n == nil {
				return nil
			}
			return n
		case *jsx.MemberExpr:
			if n == nil {
				return nil
			}
			name = n.Object
		default:
			return nil
		}
	}
}

// StaticString returns the value of a string literal, a template literal
// without substitutions, or either wrapped in an expression container.
func StaticString(n jsx.Node) (string, bool) {
	switch v := n.(type) {
	case *jsx.StringLit:
		if v == nil {
			return "", false
		}
		return v.Value, true
	case *jsx.TemplateLit:
		if v == nil || len(v.Exprs) > 0 || len(v.Quasis) != 1 {
			return "", false
		}
		return v.Quasis[0].Raw, true
	case *jsx.ExprContainer:
		if v == nil {
			return "", false
		}
		return StaticString(v.Expr)
	}
	return "", false
}

// AttributeStringValue returns the static string value of an attribute:
// `a="x"`, `a={'x'}` or a substitution-free template.
func AttributeStringValue(attr *jsx.Attribute) (string, bool) {
	if attr == nil || attr.Value == nil {
		return "", false
	}
	return StaticString(attr.Value)
}

// IsWhitespaceText reports whether n is JSX text made only of whitespace, or
// an expression container holding a whitespace-only string such as {" "}.
func IsWhitespaceText(n jsx.Node) bool {
	switch v := n.(type) {
	case *jsx.Text:
		return v != nil && strings.TrimSpace(v.Value) == ""
	case *jsx.ExprContainer:
		if v == nil {
			return false
		}
		s, ok := v.Expr.(*jsx.StringLit)
		return ok && s != nil && strings.TrimSpace(s.Value) == ""
	}
	return false
}

// ElementChildren returns the direct element children of e, skipping text,
// expressions and fragments.
func ElementChildren(e *jsx.Element) []*jsx.Element {
	if e == nil {
		return nil
	}
	var out []*jsx.Element
	for _, c := range e.Children {
		if el, ok := c.(*jsx.Element); ok {
			out = append(out, el)
		}
	}
	return out
}
