package fix

import (
	"bytes"
	"sort"
)

// SkippedFix records a fix left out of an Apply pass.
type SkippedFix struct {
	Index  int // position in the fixes passed to Apply
	Reason string
}

// ApplyResult describes one Apply pass.
type ApplyResult struct {
	Applied []int // indices of applied fixes, in application order
	Skipped []SkippedFix
	Edits   int
}

// Changed reports whether any fix was applied.
func (r ApplyResult) Changed() bool {
	return len(r.Applied) > 0
}

type acceptedEdit struct {
	TextEdit
	seq int
}

// Apply applies a maximal non-conflicting subset of fixes to src. Fixes are
// considered in order of their first edit (report order breaks ties); a fix
// whose edits conflict with an already accepted edit is skipped whole. All
// spans refer to src.
func Apply(src []byte, fixes []*Fix) ([]byte, ApplyResult) {
	var res ApplyResult

	order := make([]int, len(fixes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fixes[order[a]].Span().Start < fixes[order[b]].Span().Start
	})

	var accepted []acceptedEdit
	for _, i := range order {
		f := fixes[i]
		switch {
		case f == nil || len(f.Edits) == 0:
			res.Skipped = append(res.Skipped, SkippedFix{Index: i, Reason: "fix has no edits"})
			continue
		case !inRange(f, len(src)):
			res.Skipped = append(res.Skipped, SkippedFix{Index: i, Reason: "edit span out of range"})
			continue
		case conflictsWithExisting(accepted, f.Edits):
			res.Skipped = append(res.Skipped, SkippedFix{Index: i, Reason: "conflicts with previously applied edits"})
			continue
		}
		for _, e := range f.Edits {
			accepted = append(accepted, acceptedEdit{TextEdit: e, seq: len(accepted)})
		}
		res.Applied = append(res.Applied, i)
	}

	if len(accepted) == 0 {
		return src, res
	}
	res.Edits = len(accepted)

	sort.SliceStable(accepted, func(i, j int) bool {
		a, b := accepted[i], accepted[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		return a.seq < b.seq
	})

	var out bytes.Buffer
	out.Grow(len(src))
	pos := 0
	for _, e := range accepted {
		out.Write(src[pos:e.Span.Start])
		out.WriteString(e.NewText)
		pos = e.Span.End
	}
	out.Write(src[pos:])
	return out.Bytes(), res
}

func inRange(f *Fix, n int) bool {
	for _, e := range f.Edits {
		if !e.Span.IsValidIn(n) {
			return false
		}
	}
	return true
}

func conflictsWithExisting(existing []acceptedEdit, edits []TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev.TextEdit, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edits overlap. Spans are half-open. Two
// insertions never conflict; an insertion conflicts with a replacement when
// it falls in [Start, End).
func spansConflict(a, b TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
