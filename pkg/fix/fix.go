// Package fix computes, validates and applies text edits produced by lint
// rules.
//
// A Fix is an atomic group of edits tied to one diagnostic: either every
// edit applies or none does. Compute validates a rule's candidate edits and
// fails with ErrInvalidFix when they are out of range or overlap, which is
// always a bug in the rule. Apply resolves conflicts between fixes of
// different diagnostics by keeping the first applicable ones; callers re-run
// detection on the output to pick up the rest.
package fix

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// DefaultMaxPasses bounds the detect, apply and reparse loop so that
// fixes which keep re-triggering each other still terminate.
const DefaultMaxPasses = 10

// ErrInvalidFix reports an edit set that is out of range or overlapping.
var ErrInvalidFix = errors.New("invalid fix")

// TextEdit replaces the bytes in Span with NewText. An empty span inserts.
type TextEdit struct {
	Span    jsx.Span
	NewText string
}

func (e TextEdit) String() string {
	return fmt.Sprintf("%s→%q", e.Span, e.NewText)
}

// Fix is a sorted, non-overlapping, non-empty set of edits.
type Fix struct {
	Description string
	Edits       []TextEdit
}

// Span returns the range from the first edit's start to the last edit's end.
func (f *Fix) Span() jsx.Span {
	if f == nil || len(f.Edits) == 0 {
		return jsx.Span{}
	}
	return jsx.Span{Start: f.Edits[0].Span.Start, End: f.Edits[len(f.Edits)-1].Span.End}
}

// Compute validates candidate edits for a source of srcLen bytes and returns
// them as one Fix. No edits means the rule abstains: Compute returns nil,
// nil. Edits are sorted by position; touching edits and several insertions
// at one offset are allowed, overlapping ones are not.
func Compute(srcLen int, edits ...TextEdit) (*Fix, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sortEdits(sorted)

	for i, e := range sorted {
		if !e.Span.IsValidIn(srcLen) {
			return nil, fmt.Errorf("%w: edit %s out of range for source of length %d", ErrInvalidFix, e.Span, srcLen)
		}
		if i > 0 && e.Span.Start < sorted[i-1].Span.End {
			return nil, fmt.Errorf("%w: edits %s and %s overlap", ErrInvalidFix, sorted[i-1].Span, e.Span)
		}
	}
	return &Fix{Edits: sorted}, nil
}

// sortEdits orders edits by start, then end, so an insertion precedes a
// replacement starting at the same offset. Equal spans keep caller order.
func sortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start < edits[j].Span.Start
		}
		return edits[i].Span.End < edits[j].Span.End
	})
}

// ---------- Builders ----------

// Replace replaces the text of n.
func Replace(n jsx.Node, text string) TextEdit {
	return TextEdit{Span: n.Span(), NewText: text}
}

// ReplaceSpan replaces the bytes in sp.
func ReplaceSpan(sp jsx.Span, text string) TextEdit {
	return TextEdit{Span: sp, NewText: text}
}

// InsertBefore inserts text immediately before n.
func InsertBefore(n jsx.Node, text string) TextEdit {
	return InsertAt(n.Span().Start, text)
}

// InsertAfter inserts text immediately after n.
func InsertAfter(n jsx.Node, text string) TextEdit {
	return InsertAt(n.Span().End, text)
}

// InsertAt inserts text at offset.
func InsertAt(offset int, text string) TextEdit {
	return TextEdit{Span: jsx.Span{Start: offset, End: offset}, NewText: text}
}

// Remove deletes n.
func Remove(n jsx.Node) TextEdit {
	return TextEdit{Span: n.Span()}
}

// RemoveSpan deletes the bytes in sp.
func RemoveSpan(sp jsx.Span) TextEdit {
	return TextEdit{Span: sp}
}
