// Package linttest runs table-driven valid/invalid cases against a single
// rule, checks the fixed output and re-lints it to confirm the fix settles.
package linttest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx/parser"
	"github.com/leapstack-labs/primerlint/pkg/lint"
)

// DefaultFilename is used when a case does not name its file.
const DefaultFilename = "test.tsx"

// Valid is code the rule must not report.
type Valid struct {
	Name     string
	Code     string
	Filename string
	Options  map[string]any
}

// Error describes one expected diagnostic. Zero fields are not checked.
type Error struct {
	MessageID string
	Message   string
	Data      map[string]string
	Line      int
	Fixable   *bool
}

// Invalid is code the rule must report.
type Invalid struct {
	Name     string
	Code     string
	Filename string
	Options  map[string]any
	Errors   []Error

	// Output is the source after fixes are applied until none applies.
	// Empty means no fix is expected to change the code.
	Output string

	// Remaining is the number of diagnostics the rule still reports on the
	// fixed output, for issues that cannot be fixed.
	Remaining int
}

// Cases groups the cases for one rule.
type Cases struct {
	Valid   []Valid
	Invalid []Invalid
}

// Bool returns a pointer to b, for Error.Fixable.
func Bool(b bool) *bool { return &b }

// Run executes every case against rule as a subtest.
func Run(t *testing.T, rule lint.RuleDef, cases Cases) {
	t.Helper()

	for _, tc := range cases.Valid {
		t.Run("valid/"+caseName(tc.Name, tc.Code), func(t *testing.T) {
			diags := Lint(t, rule, tc.Filename, tc.Code, tc.Options)
			assert.Empty(t, diags, "unexpected diagnostics: %v", messages(diags))
		})
	}

	for _, tc := range cases.Invalid {
		t.Run("invalid/"+caseName(tc.Name, tc.Code), func(t *testing.T) {
			diags := Lint(t, rule, tc.Filename, tc.Code, tc.Options)
			require.Len(t, diags, len(tc.Errors), "diagnostics: %v", messages(diags))
			for i, want := range tc.Errors {
				checkError(t, i, want, diags[i])
			}

			out, remaining := FixAll(t, rule, tc.Filename, tc.Code, tc.Options)
			want := tc.Output
			if want == "" {
				want = tc.Code
			}
			assert.Equal(t, want, out, "fixed output")
			assert.Len(t, remaining, tc.Remaining, "diagnostics after fixing: %v", messages(remaining))
		})
	}
}

// Lint parses code and returns the rule's diagnostics.
func Lint(t *testing.T, rule lint.RuleDef, filename, code string, opts map[string]any) []lint.Diagnostic {
	t.Helper()
	if filename == "" {
		filename = DefaultFilename
	}
	file, err := parser.Parse(context.Background(), filename, []byte(code))
	require.NoError(t, err, "parse %s", filename)

	cfg := lint.NewConfig()
	if opts != nil {
		cfg.SetRuleOptions(rule.ID, opts)
	}
	diags, err := lint.NewAnalyzer(cfg, lint.WithRules(rule)).Analyze(file)
	require.NoError(t, err)
	return diags
}

// FixAll applies the rule's fixes, reparsing between passes, until no fix
// applies or fix.DefaultMaxPasses is reached. It returns the final source
// and the diagnostics reported on it.
func FixAll(t *testing.T, rule lint.RuleDef, filename, code string, opts map[string]any) (string, []lint.Diagnostic) {
	t.Helper()
	src := code
	for pass := 0; pass < fix.DefaultMaxPasses; pass++ {
		diags := Lint(t, rule, filename, src, opts)
		out, res := fix.Apply([]byte(src), lint.Fixes(diags))
		if !res.Changed() {
			return src, diags
		}
		src = string(out)
	}
	t.Fatalf("fixes did not settle after %d passes:\n%s", fix.DefaultMaxPasses, src)
	return src, nil
}

func checkError(t *testing.T, i int, want Error, got lint.Diagnostic) {
	t.Helper()
	if want.MessageID != "" {
		assert.Equal(t, want.MessageID, got.MessageID, "diagnostic %d message id", i)
	}
	if want.Message != "" {
		assert.Equal(t, want.Message, got.Message, "diagnostic %d message", i)
	}
	for k, v := range want.Data {
		assert.Equal(t, v, got.Data[k], "diagnostic %d data %q", i, k)
	}
	if want.Line != 0 {
		assert.Equal(t, want.Line, got.Pos.Line, "diagnostic %d line", i)
	}
	if want.Fixable != nil {
		assert.Equal(t, *want.Fixable, got.Fixable(), "diagnostic %d fixable", i)
	}
}

func caseName(name, code string) string {
	if name != "" {
		return name
	}
	if len(code) > 40 {
		return code[:40]
	}
	return code
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Pos.String() + " " + d.Message
	}
	return out
}
