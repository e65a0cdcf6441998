package imports

import (
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/catalog"
	"github.com/leapstack-labs/primerlint/pkg/fix"
	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	"github.com/leapstack-labs/primerlint/pkg/lint/internal/ast"
)

func init() {
	lint.Register(NoWildcardImports)
}

const deepImportPrefix = "@primer/react/lib-esm/"

// NoWildcardImports replaces imports of internal build paths.
var NoWildcardImports = lint.RuleDef{
	ID:          "no-wildcard-imports",
	Group:       "imports",
	Description: "Internal build paths must not be imported; use the public entrypoints.",
	Type:        lint.TypeProblem,
	Fixable:     true,
	Severity:    lint.SeverityError,
	Messages: map[string]string{
		"wildcardImport": "Import from '{{ path }}' is not part of the public API. Use a package entrypoint instead.",
		"unknownImport":  "Import from '{{ path }}' is not part of the public API and has no known replacement.",
	},
	Create:      createNoWildcardImports,
	Rationale:   "Files under lib-esm are build output. They move between releases and are not covered by semver.",
	BadExample:  `import {ActionList} from '@primer/react/lib-esm/ActionList'`,
	GoodExample: `import {ActionList} from '@primer/react'`,
}

// group collects the specifiers rewritten to one module.
type group struct {
	module string
	specs  []string
}

func createNoWildcardImports(ctx *lint.Context) lint.Visitor {
	cat := ctx.Catalog()

	return lint.Visitor{Enter: map[jsx.Kind]func(jsx.Node){
		jsx.KindImportDecl: func(n jsx.Node) {
			d := n.(*jsx.ImportDecl)
			if d.Source == nil || !strings.HasPrefix(d.Source.Value, deepImportPrefix) {
				return
			}
			path := d.Source.Value
			data := map[string]string{"path": path}

			if !cat.IsDeepImportPath(path) {
				ctx.Report(lint.Descriptor{Node: d.Source, MessageID: "unknownImport", Data: data})
				return
			}
			ctx.Report(lint.Descriptor{
				Node:      d.Source,
				MessageID: "wildcardImport",
				Data:      data,
				Fix:       func() []fix.TextEdit { return rewriteDeepImport(ctx, cat, d) },
			})
		},
	}}
}

// rewriteDeepImport replaces d with one import per public module. It
// abstains when a binding has no known replacement or d is a namespace or
// side-effect import.
func rewriteDeepImport(ctx *lint.Context, cat *catalog.Catalog, d *jsx.ImportDecl) []fix.TextEdit {
	if len(d.Specifiers) == 0 {
		return nil
	}

	var groups []*group
	for _, sp := range d.Specifiers {
		if sp.Namespace || sp.Local == nil {
			return nil
		}
		e, ok := cat.DeepImport(d.Source.Value, sp.Imported)
		if !ok {
			return nil
		}

		text := e.ExportedName()
		if sp.Local.Name != text {
			text += " as " + sp.Local.Name
		}
		if !d.TypeOnly && (e.Type || strings.HasPrefix(ctx.Text(sp), "type ")) {
			text = "type " + text
		}
		groups = addGroup(groups, e.From, text)
	}

	kw := "import "
	if d.TypeOnly {
		kw = "import type "
	}
	semi := ast.Semicolon(ctx, d)
	stmts := make([]string, len(groups))
	for i, g := range groups {
		stmts[i] = kw + "{" + strings.Join(g.specs, ", ") + "} from " + fix.QuoteLike(d.Source.Raw, g.module) + semi
	}
	return []fix.TextEdit{fix.Replace(d, strings.Join(stmts, "\n"))}
}

func addGroup(groups []*group, module, spec string) []*group {
	for _, g := range groups {
		if g.module == module {
			g.specs = append(g.specs, spec)
			return groups
		}
	}
	return append(groups, &group{module: module, specs: []string{spec}})
}
