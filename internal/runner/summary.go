package runner

import "github.com/leapstack-labs/primerlint/pkg/lint"

// Summary totals a set of file results.
type Summary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	Issues          int `json:"issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
	Fixable         int `json:"fixable"`
	FixedFiles      int `json:"fixed_files"`
	Failed          int `json:"failed"`
	Cached          int `json:"cached"`
}

// Summarize totals results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		if r.Cached {
			s.Cached++
		}
		if r.Changed() {
			s.FixedFiles++
		}
		if len(r.Diagnostics) > 0 {
			s.FilesWithIssues++
		}
		for _, d := range r.Diagnostics {
			s.Issues++
			if d.Fixable() {
				s.Fixable++
			}
			switch d.Severity {
			case lint.SeverityError:
				s.Errors++
			case lint.SeverityWarning:
				s.Warnings++
			case lint.SeverityInfo:
				s.Info++
			case lint.SeverityHint:
				s.Hints++
			}
		}
	}
	return s
}

// FilterBySeverity drops diagnostics less severe than threshold. The
// results are modified in place.
func FilterBySeverity(results []FileResult, threshold lint.Severity) {
	for i := range results {
		kept := results[i].Diagnostics[:0]
		for _, d := range results[i].Diagnostics {
			if d.Severity.AtLeast(threshold) {
				kept = append(kept, d)
			}
		}
		results[i].Diagnostics = kept
	}
}
