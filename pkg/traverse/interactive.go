package traverse

import (
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

// TriggerVerdict classifies the content of a tooltip-like trigger.
type TriggerVerdict int

// Trigger verdicts, from acceptable to the most specific failure.
const (
	// TriggerInteractive means some descendant can receive focus.
	TriggerInteractive TriggerVerdict = iota
	// TriggerNotInteractive means no descendant is interactive.
	TriggerNotInteractive
	// TriggerAnchorWithoutHref means the only candidate is an anchor with no
	// usable href.
	TriggerAnchorWithoutHref
	// TriggerHiddenInput means the only candidate is a hidden input.
	TriggerHiddenInput
	// TriggerMultipleChildren means the trigger wraps more than one element.
	TriggerMultipleChildren
	// TriggerDynamic means the trigger renders only expressions, such as
	// {children}, whose elements cannot be known without running the code.
	TriggerDynamic
)

func (v TriggerVerdict) String() string {
	switch v {
	case TriggerInteractive:
		return "interactive"
	case TriggerNotInteractive:
		return "not-interactive"
	case TriggerAnchorWithoutHref:
		return "anchor-without-href"
	case TriggerHiddenInput:
		return "hidden-input"
	case TriggerMultipleChildren:
		return "multiple-children"
	case TriggerDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// interactiveTags are compared case-insensitively, so both host tags and
// the matching Primer components (IconButton, TextInput, Link) qualify.
var interactiveTags = map[string]bool{
	"button":     true,
	"summary":    true,
	"select":     true,
	"textarea":   true,
	"a":          true,
	"input":      true,
	"link":       true,
	"iconbutton": true,
	"textinput":  true,
}

func isAnchor(tag string) bool { return tag == "a" || tag == "link" }
func isInput(tag string) bool  { return tag == "input" || tag == "textinput" }

// Descendants returns every element nested below e in pre-order, looking
// through fragments and into expression containers, so both branches of
// {cond ? <A /> : <B />} and the element of {open && <A />} are included.
func Descendants(e *jsx.Element) []*jsx.Element {
	if e == nil {
		return nil
	}
	var out []*jsx.Element
	for _, c := range e.Children {
		jsx.Inspect(c, func(n jsx.Node) bool {
			if el, ok := n.(*jsx.Element); ok {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// hasDynamicContent reports whether some expression container below e
// renders a value that is not a literal.
func hasDynamicContent(e *jsx.Element) bool {
	found := false
	for _, c := range e.Children {
		jsx.Inspect(c, func(n jsx.Node) bool {
			if found {
				return false
			}
			if ec, ok := n.(*jsx.ExprContainer); ok && !isStaticExpr(ec.Expr) {
				found = true
			}
			return !found
		})
	}
	return found
}

func isStaticExpr(n jsx.Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *jsx.StringLit, *jsx.Literal:
		return true
	case *jsx.TemplateLit:
		return v == nil || len(v.Exprs) == 0
	}
	return jsx.IsNil(n)
}

// ClassifyElement classifies a single element, ignoring its descendants.
func ClassifyElement(e *jsx.Element) TriggerVerdict {
	if e == nil {
		return TriggerNotInteractive
	}
	tag := strings.ToLower(match.ElementName(e.Opening))
	if !interactiveTags[tag] {
		return TriggerNotInteractive
	}
	switch {
	case isAnchor(tag):
		href := match.FindAttribute(e.Opening, "href")
		if href == nil || href.Value == nil {
			return TriggerAnchorWithoutHref
		}
		if v, ok := match.AttributeStringValue(href); ok && strings.TrimSpace(v) == "" {
			return TriggerAnchorWithoutHref
		}
	case isInput(tag):
		if v, ok := match.AttributeStringValue(match.FindAttribute(e.Opening, "type")); ok && strings.EqualFold(v, "hidden") {
			return TriggerHiddenInput
		}
	}
	return TriggerInteractive
}

// ClassifyTrigger decides whether trigger (the element wrapping the
// tooltip target) contains something interactive. More than one direct
// element child wins over everything else; otherwise any interactive
// descendant makes the trigger acceptable, and the first specific failure
// (anchor without href, hidden input) is preferred over the generic one.
// A trigger with no elements at all but a dynamic expression child is
// TriggerDynamic.
func ClassifyTrigger(trigger *jsx.Element) TriggerVerdict {
	if trigger == nil {
		return TriggerNotInteractive
	}
	if len(match.ElementChildren(trigger)) > 1 {
		return TriggerMultipleChildren
	}

	descendants := Descendants(trigger)
	if len(descendants) == 0 && hasDynamicContent(trigger) {
		return TriggerDynamic
	}
	verdict := TriggerNotInteractive
	for _, d := range descendants {
		switch v := ClassifyElement(d); v {
		case TriggerInteractive:
			return TriggerInteractive
		case TriggerAnchorWithoutHref, TriggerHiddenInput:
			if verdict == TriggerNotInteractive {
				verdict = v
			}
		}
	}
	return verdict
}
