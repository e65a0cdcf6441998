package imports

import (
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
)

func init() {
	lint.Register(NoExperimentalImports)
}

// NoExperimentalImports moves promoted components out of staging
// entrypoints.
var NoExperimentalImports = lint.RuleDef{
	ID:          "no-experimental-imports",
	Group:       "imports",
	Description: "Components promoted to a stable entrypoint must be imported from it.",
	Type:        lint.TypeSuggestion,
	Fixable:     true,
	Severity:    lint.SeverityWarning,
	Messages: map[string]string{
		"promoted": "{{ names }} can be imported from '{{ to }}' instead of '{{ from }}'.",
	},
	Create:      createNoExperimentalImports,
	Rationale:   "Staging entrypoints keep the old implementation around only until consumers move. Stable imports get fixes and follow semver.",
	BadExample:  `import {SelectPanel, Dialog, Stack} from '@primer/react/experimental'`,
	GoodExample: "import {SelectPanel} from '@primer/react/experimental'\nimport {Dialog, Stack} from '@primer/react'",
}

// target collects the specifiers that move to one module.
type target struct {
	module string
	specs  []*jsx.ImportSpecifier
}

func createNoExperimentalImports(ctx *lint.Context) lint.Visitor {
	cat := ctx.Catalog()

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindImportDecl: func(n jsx.Node) {
			d := n.(*jsx.ImportDecl)
			if d.Source == nil || !cat.IsStagingModule(d.Source.Value) {
				return
			}

			var (
				targets []*target
				kept    []*jsx.ImportSpecifier
				names   []string
			)
			for _, sp := range d.Specifiers {
				to, ok := "", false
				if !sp.Default && !sp.Namespace {
					to, ok = cat.Promotion(d.Source.Value, sp.Imported)
				}
				if !ok {
					kept = append(kept, sp)
					continue
				}
				names = append(names, sp.Imported)
				targets = addTarget(targets, to, sp)
			}
			if len(targets) == 0 {
				return
			}

			tos := make([]string, len(targets))
			for i, t := range targets {
				tos[i] = t.module
			}
			ctx.Report(lint.Descriptor{
				Node:      d,
				MessageID: "promoted",
				Data: map[string]string{
					"names": strings.Join(names, ", "),
					"to":    strings.Join(tos, "', '"),
					"from":  d.Source.Value,
				},
				Fix: func() []fix.TextEdit { return moveSpecifiers(ctx, d, kept, targets) },
			})
		},
	}}
}

func addTarget(targets []*target, module string, sp *jsx.ImportSpecifier) []*target {
	for _, t := range targets {
		if t.module == module {
			t.specs = append(t.specs, sp)
			return targets
		}
	}
	return append(targets, &target{module: module, specs: []*jsx.ImportSpecifier{sp}})
}

// moveSpecifiers rewrites d so that only kept stays at the staging module
// and each target's specifiers are imported from the target module, merged
// into an existing import of it when there is one.
func moveSpecifiers(ctx *lint.Context, d *jsx.ImportDecl, kept []*jsx.ImportSpecifier, targets []*target) []fix.TextEdit {
	if len(kept) == 0 && len(targets) == 1 {
		return []fix.TextEdit{fix.Replace(d.Source, fix.QuoteLike(d.Source.Raw, targets[0].module))}
	}

	var keptNamed []string
	for _, sp := range kept {
		if !sp.Default && !sp.Namespace {
			keptNamed = append(keptNamed, ctx.Text(sp))
		}
	}
	if len(keptNamed) == 0 {
		// Only a default or namespace binding would remain.
		return nil
	}

	open, closing := "{", "}"
	if strings.HasPrefix(ctx.TextSpan(d.NamedSpan), "{ ") {
		open, closing = "{ ", " }"
	}
	edits := []fix.TextEdit{fix.ReplaceSpan(d.NamedSpan, open+strings.Join(keptNamed, ", ")+closing)}

	semi := ast.Semicolon(ctx, d)
	for _, t := range targets {
		specs := make([]string, len(t.specs))
		for i, sp := range t.specs {
			specs[i] = ctx.Text(sp)
		}
		list := strings.Join(specs, ", ")

		if existing := findImport(ctx.File(), t.module, d.TypeOnly); existing != nil {
			last := lastNamed(existing)
			edits = append(edits, fix.InsertAfter(last, ", "+list))
			continue
		}

		kw := "import "
		if d.TypeOnly {
			kw = "import type "
		}
		stmt := "\n" + kw + open + list + closing + " from " + fix.QuoteLike(d.Source.Raw, t.module) + semi
		edits = append(edits, fix.InsertAfter(d, stmt))
	}
	return edits
}

// findImport returns a top-level import of module with at least one named
// specifier that new named specifiers can be appended to.
func findImport(file *jsx.File, module string, typeOnly bool) *jsx.ImportDecl {
	for _, n := range file.Body {
		d, ok := n.(*jsx.ImportDecl)
		if !ok || d.Source == nil || d.Source.Value != module || d.TypeOnly != typeOnly {
			continue
		}
		if lastNamed(d) != nil {
			return d
		}
	}
	return nil
}

func lastNamed(d *jsx.ImportDecl) *jsx.ImportSpecifier {
	for i := len(d.Specifiers) - 1; i >= 0; i-- {
		if sp := d.Specifiers[i]; !sp.Default && !sp.Namespace {
			return sp
		}
	}
	return nil
}
