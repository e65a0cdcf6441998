package lint

import (
	"sort"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID    string            `json:"rule_id"`
	Severity  Severity          `json:"severity"`
	MessageID string            `json:"message_id,omitempty"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Span      jsx.Span          `json:"-"`
	Pos       jsx.Position      `json:"pos"`
	EndPos    jsx.Position      `json:"end_pos"`
	Fix       *fix.Fix          `json:"-"` // nil when the rule abstained

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// Fixable reports whether the diagnostic carries a fix.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil
}

// SortDiagnostics orders diagnostics by position, then rule ID. Emission
// order is kept for ties.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Span.Start != diags[j].Span.Start {
			return diags[i].Span.Start < diags[j].Span.Start
		}
		return diags[i].RuleID < diags[j].RuleID
	})
}

// Fixes returns the non-nil fixes of diags in order.
func Fixes(diags []Diagnostic) []*fix.Fix {
	var out []*fix.Fix
	for _, d := range diags {
		if d.Fix != nil {
			out = append(out, d.Fix)
		}
	}
	return out
}

// CountBySeverity tallies diagnostics per severity.
func CountBySeverity(diags []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}
