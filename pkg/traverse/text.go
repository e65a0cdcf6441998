package traverse

import (
	"regexp"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

// trailingPeriod matches a sentence-ending period after an inline element,
// which does not make the element part of body text.
var trailingPeriod = regexp.MustCompile(`^\s*\.+\s*$`)

// InTextBlock reports whether node sits directly next to prose among
// siblings (its parent's children). Whitespace-only text and {" "}
// containers are ignored when looking for neighbours.
//
// A text neighbour means the node is embedded in text, except when the only
// adjacent text is a period following the node.
func InTextBlock(node jsx.Node, siblings []jsx.Node) bool {
	if jsx.IsNil(node) {
		return false
	}

	filtered := make([]jsx.Node, 0, len(siblings))
	idx := -1
	for _, s := range siblings {
		if s == node {
			idx = len(filtered)
			filtered = append(filtered, s)
			continue
		}
		if match.IsWhitespaceText(s) {
			continue
		}
		filtered = append(filtered, s)
	}
	if idx < 0 {
		return false
	}

	var prev, next *jsx.Text
	if idx > 0 {
		prev, _ = filtered[idx-1].(*jsx.Text)
	}
	if idx+1 < len(filtered) {
		next, _ = filtered[idx+1].(*jsx.Text)
	}

	switch {
	case prev != nil:
		return true
	case next != nil:
		return !trailingPeriod.MatchString(next.Value)
	default:
		return false
	}
}

// Siblings returns the child list that contains n: its parent's children
// for elements and fragments, nil otherwise.
func Siblings(n jsx.Node) []jsx.Node {
	if jsx.IsNil(n) {
		return nil
	}
	switch p := n.Parent().(type) {
	case *jsx.Element:
		return p.Children
	case *jsx.Fragment:
		return p.Children
	}
	return nil
}
