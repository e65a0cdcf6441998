package jsx

import "sort"

// ScopeKind classifies lexical scopes.
type ScopeKind uint8

// Scope kinds.
const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	default:
		return "unknown"
	}
}

// BindingKind classifies how a name was declared.
type BindingKind uint8

// Binding kinds.
const (
	BindingImport BindingKind = iota
	BindingVariable
	BindingParameter
	BindingFunction
	BindingClass
	BindingCatchParam
)

func (k BindingKind) String() string {
	switch k {
	case BindingImport:
		return "import"
	case BindingVariable:
		return "variable"
	case BindingParameter:
		return "parameter"
	case BindingFunction:
		return "function"
	case BindingClass:
		return "class"
	case BindingCatchParam:
		return "catch-param"
	default:
		return "unknown"
	}
}

// ImportInfo describes the import statement behind an import binding.
type ImportInfo struct {
	Source    string // module specifier, e.g. "@primer/react"
	Imported  string // exported name; "default" or "*" for those forms
	Default   bool
	Namespace bool
}

// Binding associates a name with its declaring construct.
type Binding struct {
	Name   string
	Kind   BindingKind
	Decl   Node        // declaring identifier
	Import *ImportInfo // non-nil iff Kind == BindingImport
	Scope  *Scope
}

// IsImport reports whether the binding comes from an import declaration.
func (b *Binding) IsImport() bool {
	return b != nil && b.Kind == BindingImport && b.Import != nil
}

// Scope is one lexical environment. Scopes form a tree rooted at the module
// scope; children are kept in source order.
type Scope struct {
	Kind     ScopeKind
	Span     Span
	Parent   *Scope
	Children []*Scope
	Bindings map[string]*Binding
	Node     Node // node that introduced the scope; the File for the module scope
}

// NewScope creates a scope nested under parent (nil for the module scope).
func NewScope(kind ScopeKind, span Span, parent *Scope, node Node) *Scope {
	s := &Scope{
		Kind:     kind,
		Span:     span,
		Parent:   parent,
		Bindings: make(map[string]*Binding),
		Node:     node,
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare adds a binding. Redeclaring a name keeps the first binding.
func (s *Scope) Declare(name string, kind BindingKind, decl Node, imp *ImportInfo) *Binding {
	if b, ok := s.Bindings[name]; ok {
		return b
	}
	b := &Binding{Name: name, Kind: kind, Decl: decl, Import: imp, Scope: s}
	s.Bindings[name] = b
	return b
}

// Lookup resolves name by walking outward from s. It returns the binding and
// the scope that holds it, or nil, nil when the name is unresolved.
func (s *Scope) Lookup(name string) (*Binding, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.Bindings[name]; ok {
			return b, cur
		}
	}
	return nil, nil
}

// Innermost returns the deepest scope below s whose span contains offset.
func (s *Scope) Innermost(offset int) *Scope {
	if s == nil {
		return nil
	}
	cur := s
	for {
		kids := cur.Children
		i := sort.Search(len(kids), func(i int) bool { return kids[i].Span.End > offset })
		if i < len(kids) && kids[i].Span.Start <= offset {
			cur = kids[i]
			continue
		}
		return cur
	}
}

// FunctionScope returns the nearest enclosing function (or module) scope.
func (s *Scope) FunctionScope() *Scope {
	cur := s
	for cur != nil && cur.Kind != ScopeFunction && cur.Kind != ScopeModule {
		cur = cur.Parent
	}
	return cur
}

// Depth returns the number of scopes between s and the root.
func (s *Scope) Depth() int {
	d := 0
	for cur := s.Parent; cur != nil; cur = cur.Parent {
		d++
	}
	return d
}

// ScopeAt returns the innermost scope enclosing offset.
func (f *File) ScopeAt(offset int) *Scope {
	if f == nil || f.Scope == nil {
		return nil
	}
	return f.Scope.Innermost(offset)
}

// ScopeOf returns the innermost scope enclosing n. Function names are bound
// outside the function, so a function node resolves to its enclosing scope.
func (f *File) ScopeOf(n Node) *Scope {
	if isNil(n) {
		return nil
	}
	sc := f.ScopeAt(n.Span().Start)
	if sc != nil && sc.Node == n && sc.Parent != nil {
		return sc.Parent
	}
	return sc
}

// Position returns the line/column of offset.
func (f *File) Position(offset int) Position {
	if f == nil {
		return Position{}
	}
	return f.Lines.Position(offset)
}

// Text returns the source text covered by sp. Invalid spans yield "".
func (f *File) Text(sp Span) string {
	if f == nil || !sp.IsValidIn(len(f.Source)) {
		return ""
	}
	return string(f.Source[sp.Start:sp.End])
}
