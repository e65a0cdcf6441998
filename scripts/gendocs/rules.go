package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"a11y":       "Accessibility of Primer components.",
	"deprecated": "Deprecated color tokens, CSS variables and component props.",
	"imports":    "Where Primer components are imported from.",
	"migration":  "Props and patterns removed in newer Primer releases.",
	"structure":  "How compound components are composed.",
	"style":      "CSS module usage.",
}

// generateRuleDocs writes an index of all rules and one page per rule.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := make([]lint.RuleInfo, 0)
	for _, r := range lint.GetAll() {
		rules = append(rules, r.Info())
	}

	if err := generateRuleIndex(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, rule := range rules {
		if err := generateRulePage(outDir, rule); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", rule.ID, err)
		}
		log.Printf("  Generated %s.md", rule.ID)
	}
	return nil
}

// generateRuleIndex generates the rules overview page.
func generateRuleIndex(outDir string, rules []lint.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Lint rules for Primer React")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("primerlint ships **%d rules**. Rules marked fixable are rewritten by `primerlint lint --fix` and offered as quick fixes in editors.", len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are configured in `primerlint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled: [no-unmerged-classname]
  severity:
    no-system-props: error     # override severity
    new-css-color-vars: off    # disable rule
  rules:
    no-deprecated-colors:
      checkAllStrings: true    # rule-specific option`)

	grouped := groupRules(rules)
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()
		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		var rows [][]string
		for _, r := range grouped[group] {
			fixable := ""
			if r.Fixable {
				fixable = "yes"
			}
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s.md)", InlineCode(r.ID), r.ID),
				InlineCode(r.DefaultSeverity.String()),
				fixable,
				cleanDescription(r.Description),
			})
		}
		w.Table([]string{"Rule", "Severity", "Fixable", "Description"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulePage writes detailed documentation for a single rule.
func generateRulePage(outDir string, rule lint.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter(rule.ID, cleanDescription(rule.Description))
	w.GeneratedMarker()

	w.Header(1, rule.ID)
	w.Line(fmt.Sprintf("**Group:** %s | **Severity:** %s | **Type:** %s",
		rule.Group, InlineCode(rule.DefaultSeverity.String()), rule.Type))
	if rule.Fixable {
		w.Newline()
		w.Line("**Fixable:** yes")
	}
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rule.Rationale != "" {
		w.Header(2, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}
	if rule.BadExample != "" {
		w.Header(2, "Bad")
		w.CodeBlock("tsx", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(2, "Good")
		w.CodeBlock("tsx", rule.GoodExample)
	}

	if len(rule.Options) > 0 {
		w.Header(2, "Options")
		rows := make([]optionRow, 0, len(rule.Options))
		for _, opt := range rule.Options {
			desc := cleanDescription(opt.Description)
			if len(opt.Enum) > 0 {
				desc += " One of: " + strings.Join(opt.Enum, ", ") + "."
			}
			rows = append(rows, optionRow{
				name: InlineCode(opt.Name),
				typ:  string(opt.Type),
				def:  InlineCode(fmt.Sprint(opt.Default)),
				desc: desc,
			})
		}
		writeOptionTable(w, "Option", rows)
	}

	if len(rule.Messages) > 0 {
		w.Header(2, "Messages")
		ids := make([]string, len(rule.Messages))
		for i, id := range rule.Messages {
			ids[i] = InlineCode(id)
		}
		w.BulletList(ids)
	}

	return os.WriteFile(filepath.Join(outDir, rule.ID+".md"), w.Bytes(), 0600)
}

// groupRules organizes rules by group, sorted by ID within each group.
func groupRules(rules []lint.RuleInfo) map[string][]lint.RuleInfo {
	grouped := make(map[string][]lint.RuleInfo)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
