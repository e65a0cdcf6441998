package match

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// ModulePattern decides whether an import source qualifies.
type ModulePattern interface {
	Match(source string) bool
	String() string
}

type exactPattern string

func (p exactPattern) Match(source string) bool { return source == string(p) }
func (p exactPattern) String() string           { return string(p) }

type regexpPattern struct{ re *regexp.Regexp }

func (p regexpPattern) Match(source string) bool { return p.re != nil && p.re.MatchString(source) }
func (p regexpPattern) String() string {
	if p.re == nil {
		return "//"
	}
	return "/" + p.re.String() + "/"
}

// Exact matches one module specifier verbatim.
func Exact(source string) ModulePattern { return exactPattern(source) }

// Regexp matches module specifiers against re.
func Regexp(re *regexp.Regexp) ModulePattern { return regexpPattern{re: re} }

// PrimerReact matches "@primer/react" and any of its entrypoints.
var PrimerReact = Regexp(regexp.MustCompile(`^@primer/react(?:$|/)`))

// Import resolves ident through the scope chain and returns its import
// description, or nil when ident is unresolved or not bound by an import.
// Reassignment after the import is not tracked; only the declaration counts.
func Import(ident *jsx.Ident, scope *jsx.Scope) *jsx.ImportInfo {
	if ident == nil || scope == nil {
		return nil
	}
	b, _ := scope.Lookup(ident.Name)
	if !b.IsImport() {
		return nil
	}
	return b.Import
}

// ResolveImportSource reports whether ident resolves to an import binding
// whose module specifier satisfies pattern.
func ResolveImportSource(ident *jsx.Ident, scope *jsx.Scope, pattern ModulePattern) bool {
	if pattern == nil {
		return false
	}
	imp := Import(ident, scope)
	return imp != nil && pattern.Match(imp.Source)
}

// IsImportedFrom reports whether the root identifier of an element name is
// imported from a module matching pattern.
func IsImportedFrom(name jsx.Node, scope *jsx.Scope, pattern ModulePattern) bool {
	return ResolveImportSource(RootIdent(name), scope, pattern)
}

// IsPrimerComponent reports whether an element name refers to a component
// imported from @primer/react.
func IsPrimerComponent(name jsx.Node, scope *jsx.Scope) bool {
	return IsImportedFrom(name, scope, PrimerReact)
}

// CanonicalName renders an element name using the exported name of its root
// import, so `import {Box as B}` makes <B.Foo> read as "Box.Foo". Names not
// bound by a named import are returned as written.
func CanonicalName(name jsx.Node, scope *jsx.Scope) string {
	written := NameOf(name)
	root := RootIdent(name)
	if written == "" || root == nil {
		return written
	}
	imp := Import(root, scope)
	if imp == nil || imp.Default || imp.Namespace || imp.Imported == root.Name {
		return written
	}
	return imp.Imported + strings.TrimPrefix(written, root.Name)
}
