package output

// LintSummary totals a lint run.
type LintSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	FilesWithIssues int `json:"files_with_issues"`
	TotalIssues     int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hints           int `json:"hints"`
	Fixable         int `json:"fixable"`
	FixedFiles      int `json:"fixed_files"`
	Failed          int `json:"failed"`
}

// LintOutput is the JSON document written by the lint command.
type LintOutput struct {
	Files   []LintFileResult `json:"files"`
	Summary LintSummary      `json:"summary"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Fixed       bool             `json:"fixed,omitempty"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one finding in JSON output.
type LintDiagnostic struct {
	RuleID    string `json:"rule_id"`
	MessageID string `json:"message_id,omitempty"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Fixable   bool   `json:"fixable"`
	DocURL    string `json:"doc_url,omitempty"`
}
