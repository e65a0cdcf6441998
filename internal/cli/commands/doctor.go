package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/primerlint/internal/cli/output"
	"github.com/leapstack-labs/primerlint/internal/runner"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules" // register rules
	"github.com/spf13/cobra"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Paths  []string // Files or directories to check
	Format string   // Output format: text, markdown, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor [path...]",
		Short: "Report how healthy a project's Primer React usage is",
		Long: `Lint the project with every enabled rule and summarize the result.

The report includes:
- Project summary (files, files with issues, fixable issues)
- Health checks grouped by rule group (a11y, deprecated, imports, ...)
- Health score (0-100)
- Actionable recommendations

Files are never modified.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  primerlint doctor

  # Check one package
  primerlint doctor packages/app

  # Output as JSON
  primerlint doctor --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains project-level statistics.
type ProjectSummary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	Fixable         int `json:"fixable"`
	Failed          int `json:"failed"`
	Rules           int `json:"rules"`
}

// HealthCheck is the result of one rule across the project.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	project := cmdCtx.Cfg.Project()

	analyzer, err := project.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("invalid lint configuration: %w", err)
	}
	discovery, err := runner.NewDiscovery(project.Lint.Include, project.Lint.Exclude)
	if err != nil {
		return err
	}

	roots := opts.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := discovery.Discover(roots...)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		r.Warn("No source files found")
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	lr := runner.New(analyzer, runner.Options{
		Concurrency: project.Lint.Concurrency,
		Logger:      cmdCtx.Logger,
	})
	results, err := lr.LintFiles(ctx, files)
	if err != nil {
		return err
	}

	doctorOutput := buildDoctorOutput(analyzer.Rules(), results)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(rules []lint.RuleDef, results []runner.FileResult) *DoctorOutput {
	summary := runner.Summarize(results)

	// Group diagnostics by rule
	diagsByRule := make(map[string][]located)
	for _, res := range results {
		for _, d := range res.Diagnostics {
			diagsByRule[d.RuleID] = append(diagsByRule[d.RuleID], located{path: res.Path, diag: d})
		}
	}

	healthChecks := make([]HealthCheck, 0, len(rules))
	for _, rule := range rules {
		ruleDiags := diagsByRule[rule.ID]
		status := "pass"
		details := make([]string, 0, len(ruleDiags))
		for _, l := range ruleDiags {
			if l.diag.Severity == lint.SeverityError {
				status = "error"
			} else if status == "pass" {
				status = "warn"
			}
			details = append(details, l.String())
		}

		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     rule.ID,
			Name:       rule.Description,
			Group:      rule.Group,
			Status:     status,
			IssueCount: len(ruleDiags),
			Details:    details,
		})
	}

	// Sort health checks by group then by rule ID
	sort.Slice(healthChecks, func(i, j int) bool {
		if healthChecks[i].Group != healthChecks[j].Group {
			return healthChecks[i].Group < healthChecks[j].Group
		}
		return healthChecks[i].RuleID < healthChecks[j].RuleID
	})

	return &DoctorOutput{
		Summary: ProjectSummary{
			Files:           summary.Files,
			FilesWithIssues: summary.FilesWithIssues,
			Fixable:         summary.Fixable,
			Failed:          summary.Failed,
			Rules:           len(rules),
		},
		HealthChecks:    healthChecks,
		Score:           calculateHealthScore(healthChecks, summary.Files),
		Recommendations: generateRecommendations(healthChecks, summary.Fixable),
		IssueCount:      summary.Issues,
	}
}

// located is a diagnostic with the file it was reported in.
type located struct {
	path string
	diag lint.Diagnostic
}

func (l located) String() string {
	return fmt.Sprintf("%s:%d:%d %s", l.path, l.diag.Pos.Line, l.diag.Pos.Column, l.diag.Message)
}

// calculateHealthScore computes a health score from 0-100.
// Each issue costs points, errors twice as many; the more files a
// project has, the less a single issue costs.
func calculateHealthScore(checks []HealthCheck, fileCount int) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0

	basePenalty := 5.0
	if fileCount > 10 {
		basePenalty = 3.0
	}
	if fileCount > 50 {
		basePenalty = 2.0
	}
	if fileCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	// Clamp to 0-100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on
// findings, led by the fix hint when anything is fixable.
func generateRecommendations(checks []HealthCheck, fixable int) []string {
	var recommendations []string
	seen := make(map[string]bool)

	if fixable > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Run `primerlint lint --fix` to apply %d automatic %s", fixable, pluralize(fixable, "fix", "fixes")))
	}

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "a11y-explicit-heading":
		return "Give every Heading an explicit `as` prop so the document outline is correct"
	case "a11y-link-in-text-block":
		return "Add the `inline` prop to Links that sit inside running text"
	case "a11y-tooltip-interactive-trigger":
		return "Wrap only interactive elements (buttons, links) in Tooltip"
	case "no-deprecated-colors":
		return "Replace deprecated color names with functional color tokens"
	case "no-deprecated-props":
		return "Rename or remove deprecated component props"
	case "new-css-color-vars":
		return "Wrap deprecated CSS color variables in their replacement variables"
	case "no-experimental-imports":
		return "Import promoted components from their stable entrypoint"
	case "no-wildcard-imports":
		return "Import from the public @primer/react entrypoints instead of internal build paths"
	case "no-unmerged-classname":
		return "Merge a spread className with the component's own className"
	case "no-system-props":
		return "Move system props into the sx prop"
	case "direct-slot-children":
		return "Render slot components as direct children of their parent"
	case "css-module-identifier-casing":
		return "Rename CSS module class names to identifiers in the configured case"
	default:
		return ""
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header1.Render("Primer React Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Project Summary
	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   Files: %d | With issues: %d | Fixable issues: %d\n", out.Summary.Files, out.Summary.FilesWithIssues, out.Summary.Fixable)
	r.Printf("   Rules: %d | Failed files: %d\n", out.Summary.Rules, out.Summary.Failed)
	r.Println("")

	// Health Checks grouped by rule group
	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Primer React Health Report")
	r.Println("")

	r.Println("## Project Summary")
	r.Println("")
	r.Printf("- **Files:** %d\n", out.Summary.Files)
	r.Printf("- **Files with issues:** %d\n", out.Summary.FilesWithIssues)
	r.Printf("- **Fixable issues:** %d\n", out.Summary.Fixable)
	r.Printf("- **Rules:** %d\n", out.Summary.Rules)
	if out.Summary.Failed > 0 {
		r.Printf("- **Failed files:** %d\n", out.Summary.Failed)
	}
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")
	r.Println("| Status | Rule | Group | Issues |")
	r.Println("|--------|------|-------|--------|")
	for _, check := range out.HealthChecks {
		icon := "✓"
		switch check.Status {
		case "warn":
			icon = "⚠"
		case "error":
			icon = "✗"
		}
		r.Printf("| %s | %s | %s | %d |\n", icon, check.RuleID, check.Group, check.IssueCount)
	}
	r.Println("")

	r.Printf("## Health Score: %d/100\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
