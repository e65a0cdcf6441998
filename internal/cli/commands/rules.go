package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/primerlint/internal/cli/output"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules" // register rules
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Fixable bool   // Only rules with fixes
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (e.g., a11y, migration).
Use --verbose to see descriptions and rationale.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  primerlint rules

  # Show details for a specific rule
  primerlint rules no-system-props

  # List rules in the a11y group
  primerlint rules --group a11y

  # Show full documentation
  primerlint rules -V

  # Output as JSON
  primerlint rules --format json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRuleArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVar(&opts.Fixable, "fixable", false, "Only list rules that provide fixes")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return lint.Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func completeRuleArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeRuleIDs(cmd, args, toComplete)
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var rules []lint.RuleInfo
	for _, def := range lint.GetAll() {
		if opts.Group != "" && def.Group != opts.Group {
			continue
		}
		if opts.Fixable && !def.Fixable {
			continue
		}
		rules = append(rules, def.Info())
	}
	if opts.Group != "" && len(rules) == 0 && len(lint.GetByGroup(opts.Group)) == 0 {
		return fmt.Errorf("unknown group %q (available: %s)", opts.Group, strings.Join(lint.Groups(), ", "))
	}

	sortRuleInfos(rules)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

// sortRuleInfos orders rules by group, then ID.
func sortRuleInfos(rules []lint.RuleInfo) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	def, ok := lint.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	rule := def.Info()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, &rule)
	default:
		return showRuleText(r, &rule)
	}
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	styles := r.Styles()

	fixable := 0
	for _, rule := range rules {
		if rule.Fixable {
			fixable++
		}
	}

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d, %d fixable)", len(rules), fixable)))
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		// Group header
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Header2.Render(capitalizeFirst(currentGroup)))
		}

		marker := " "
		if rule.Fixable {
			marker = styles.Success.Render("*")
		}
		r.Printf("  %s %s - %s\n",
			marker,
			styles.Bold.Render(rule.ID),
			getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
		)

		if verbose {
			r.Println(styles.Muted.Render("      " + rule.Description))
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("      Why: " + truncateOneLine(rule.Rationale, 80)))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("* provides fixes. Use 'primerlint rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

// listRulesMarkdown outputs rules as a markdown table.
func listRulesMarkdown(r *output.Renderer, rules []lint.RuleInfo, verbose bool) error {
	r.Println("# Lint Rules")
	r.Println("")

	header := []string{"Rule", "Group", "Type", "Severity", "Fixable"}
	if verbose {
		header = append(header, "Description")
	}
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		fixable := ""
		if rule.Fixable {
			fixable = "yes"
		}
		row := []string{rule.ID, rule.Group, string(rule.Type), rule.DefaultSeverity.String(), fixable}
		if verbose {
			row = append(row, rule.Description)
		}
		rows = append(rows, row)
	}
	r.Table(header, rows)
	r.Println("")
	return nil
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Rules []lint.RuleInfo `json:"rules"`
	Count struct {
		Fixable int `json:"fixable"`
		Total   int `json:"total"`
	} `json:"count"`
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []lint.RuleInfo) error {
	jsonOutput := RulesJSONOutput{
		Rules: rules,
	}
	if jsonOutput.Rules == nil {
		jsonOutput.Rules = []lint.RuleInfo{}
	}
	for _, rule := range rules {
		if rule.Fixable {
			jsonOutput.Count.Fixable++
		}
	}
	jsonOutput.Count.Total = len(rules)

	return r.JSON(jsonOutput)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *lint.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(rule.ID))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Type"), rule.Type)
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity.String())
	r.Printf("  %s: %t\n", styles.Bold.Render("Fixable"), rule.Fixable)
	r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), rule.DocURL)
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if len(rule.Options) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		for _, opt := range rule.Options {
			r.Printf("  %s (%s, default %v): %s\n", opt.Name, opt.Type, opt.Default, opt.Description)
		}
		r.Println("")
	}

	return nil
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *lint.RuleInfo) error {
	r.Printf("# %s\n\n", rule.ID)
	r.Printf("**Type:** %s | **Group:** %s | **Severity:** `%s` | **Fixable:** %t\n\n",
		rule.Type, rule.Group, rule.DefaultSeverity.String(), rule.Fixable)
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```tsx")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```tsx")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if len(rule.Options) > 0 {
		r.Println("## Configuration")
		r.Println("")
		rows := make([][]string, 0, len(rule.Options))
		for _, opt := range rule.Options {
			rows = append(rows, []string{opt.Name, string(opt.Type), fmt.Sprintf("%v", opt.Default), opt.Description})
		}
		r.Table([]string{"Option", "Type", "Default", "Description"}, rows)
		r.Println("")
	}

	r.Printf("[Documentation](%s)\n", rule.DocURL)
	return nil
}

// Helper functions

func getSeverityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// truncateOneLine returns the first line of s, cut to maxLen runes.
func truncateOneLine(s string, maxLen int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// capitalizeFirst turns a group name into a heading, e.g. "a11y" -> "A11y".
func capitalizeFirst(s string) string {
	return cases.Title(language.English).String(s)
}
