package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/leapstack-labs/primerlint/internal/cli/config"
	"github.com/leapstack-labs/primerlint/internal/cli/output"
	"github.com/leapstack-labs/primerlint/internal/runner"
	"github.com/leapstack-labs/primerlint/internal/state"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules" // register rules
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths   []string // Files or directories to lint
	Format  string   // Output format override
	Disable []string // Rule IDs to disable
	Rules   []string // Run only specific rules
	Fix     bool     // Apply fixes and write files back
	Watch   bool     // Re-lint on change
}

// NewLintCommand creates the lint command. version is mixed into cache
// keys so an upgrade never serves stale results.
func NewLintCommand(version string) *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Lint JavaScript and TypeScript files for Primer React issues",
		Long: `Analyze JSX sources for Primer React problems and migrations.

Directories are searched for source files matching lint.include and not
lint.exclude. Rules can be configured in primerlint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  primerlint lint

  # Lint specific paths
  primerlint lint src/components app/page.tsx

  # Apply fixes
  primerlint lint --fix

  # Output as JSON
  primerlint lint --format json

  # Run only some rules
  primerlint lint --rule no-system-props,no-deprecated-colors

  # Only report errors (ignore warnings/hints)
  primerlint lint --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts, version)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Apply fixes and write changed files")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Lint again whenever a file changes")

	// Config-backed flags, read through the config loader
	cmd.Flags().String("severity", "", "Minimum severity: error, warning, info, hint")
	cmd.Flags().Int("max-passes", 0, "Maximum fix passes per file")
	cmd.Flags().Int("concurrency", 0, "Files linted at once (0 = all CPUs)")
	cmd.Flags().StringSlice("include", nil, "Glob patterns of files to lint")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns of files to skip")
	cmd.Flags().Bool("cache", false, "Reuse results of unchanged files")
	cmd.Flags().String("cache-path", "", "Path to the cache database")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	all := lint.GetAll()
	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func runLint(cmd *cobra.Command, opts *LintOptions, version string) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	// CLI flags override the project config
	project := cfg.Project()
	project.Lint = applyLintOverrides(project.Lint, opts)

	analyzer, err := project.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("invalid lint configuration: %w", err)
	}
	threshold, err := project.Lint.Threshold()
	if err != nil {
		return err
	}
	discovery, err := runner.NewDiscovery(project.Lint.Include, project.Lint.Exclude)
	if err != nil {
		return err
	}

	roots := opts.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runOpts := runner.Options{
		Fix:         opts.Fix,
		MaxPasses:   project.Lint.MaxPasses,
		Concurrency: project.Lint.Concurrency,
		Logger:      logger,
	}

	var store *state.SQLiteStore
	var runID string
	if cfg.Cache.Enabled {
		store, runID, err = openCache(ctx, cfg.Cache.Path, logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		runOpts.Cache = store
		runOpts.RunID = runID
		runOpts.CacheSalt = cacheSalt(version, project.Lint, project.Catalog)
	}

	lr := runner.New(analyzer, runOpts)

	if opts.Watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		return lr.Watch(ctx, discovery, roots, func(results []runner.FileResult) {
			runner.FilterBySeverity(results, threshold)
			renderLintResults(r, results, opts.Fix)
		})
	}

	files, err := discovery.Discover(roots...)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	logger.Debug("discovered files", slog.Int("count", len(files)))

	results, err := lr.LintFiles(ctx, files)
	if err != nil {
		return err
	}
	runner.FilterBySeverity(results, threshold)
	summary := renderLintResults(r, results, opts.Fix)

	if store != nil {
		if err := store.CompleteRun(ctx, runID, summary.Files, summary.Issues, summary.FixedFiles); err != nil {
			logger.Warn("failed to record run", slog.Any("error", err))
		}
	}

	// Exit with code 1 if issues found
	if summary.Issues > 0 || summary.Failed > 0 {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

func applyLintOverrides(lc config.LintConfig, opts *LintOptions) config.LintConfig {
	if len(opts.Disable) > 0 {
		lc.Disabled = append(append([]string(nil), lc.Disabled...), opts.Disable...)
	}
	// If --rule specified, it replaces the configured selection
	if len(opts.Rules) > 0 {
		lc.Only = opts.Rules
	}
	return lc
}

func openCache(ctx context.Context, path string, logger *slog.Logger) (*state.SQLiteStore, string, error) {
	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		return nil, "", err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, "", err
	}
	run, err := store.CreateRun(ctx)
	if err != nil {
		_ = store.Close()
		return nil, "", err
	}
	logger.Debug("using cache", slog.String("path", path), slog.String("run", run.ID))
	return store, run.ID, nil
}

// cacheKeyInput identifies everything besides file content that affects
// results.
type cacheKeyInput struct {
	Version  string                        `json:"version"`
	Disabled []string                      `json:"disabled"`
	Only     []string                      `json:"only"`
	Severity map[string]string             `json:"severity"`
	Rules    map[string]config.RuleOptions `json:"rules"`
	Catalog  string                        `json:"catalog"`
}

func cacheSalt(version string, lc config.LintConfig, catalogDir string) string {
	b, _ := json.Marshal(cacheKeyInput{
		Version:  version,
		Disabled: lc.Disabled,
		Only:     lc.Only,
		Severity: lc.Severity,
		Rules:    lc.Rules,
		Catalog:  catalogDir,
	})
	return string(b)
}

func renderLintResults(r *output.Renderer, results []runner.FileResult, fixing bool) runner.Summary {
	summary := runner.Summarize(results)

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(buildLintOutput(results, summary))
		return summary
	}

	if summary.Issues == 0 && summary.Failed == 0 {
		msg := fmt.Sprintf("No lint issues found in %d files", summary.Files)
		if summary.FixedFiles > 0 {
			msg = fmt.Sprintf("%s (fixed %d)", msg, summary.FixedFiles)
		}
		r.Success(msg)
		return summary
	}

	// Text/Markdown output
	for _, res := range results {
		if res.Err == nil && len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(r.Styles().FilePath.Render(res.Path))
		if res.Err != nil {
			r.Printf("  %s  %s\n", r.Styles().Error.Render("failed "), res.Err)
		}
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			line := fmt.Sprintf("  %s  %s  %s  %s",
				r.Styles().Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityStyle(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
			if d.Fixable() {
				line += " " + r.Styles().Muted.Render("(fixable)")
			}
			r.Println(line)
		}
		r.Println("")
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d issues", summary.Issues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	if summary.Failed > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d files failed", summary.Failed))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.Files)

	switch {
	case summary.FixedFiles > 0:
		r.Printf("Fixed %d files\n", summary.FixedFiles)
	case !fixing && summary.Fixable > 0:
		r.Printf("%d issues can be fixed with --fix\n", summary.Fixable)
	}

	return summary
}

func buildLintOutput(results []runner.FileResult, summary runner.Summary) output.LintOutput {
	out := output.LintOutput{
		Files: make([]output.LintFileResult, 0, len(results)),
		Summary: output.LintSummary{
			FilesAnalyzed:   summary.Files,
			FilesWithIssues: summary.FilesWithIssues,
			TotalIssues:     summary.Issues,
			Errors:          summary.Errors,
			Warnings:        summary.Warnings,
			Info:            summary.Info,
			Hints:           summary.Hints,
			Fixable:         summary.Fixable,
			FixedFiles:      summary.FixedFiles,
			Failed:          summary.Failed,
		},
	}
	for _, res := range results {
		if res.Err == nil && len(res.Diagnostics) == 0 && !res.Changed() {
			continue
		}
		fileResult := output.LintFileResult{
			Path:        res.Path,
			Fixed:       res.Changed(),
			Diagnostics: make([]output.LintDiagnostic, 0, len(res.Diagnostics)),
		}
		if res.Err != nil {
			fileResult.Error = res.Err.Error()
		}
		for _, d := range res.Diagnostics {
			fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
				RuleID:    d.RuleID,
				MessageID: d.MessageID,
				Severity:  d.Severity.String(),
				Message:   d.Message,
				Line:      d.Pos.Line,
				Column:    d.Pos.Column,
				EndLine:   d.EndPos.Line,
				EndColumn: d.EndPos.Column,
				Fixable:   d.Fixable(),
				DocURL:    d.DocumentationURL,
			})
		}
		out.Files = append(out.Files, fileResult)
	}
	return out
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
