package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// Scope construction rules:
//
//	import bindings            module scope
//	var                        nearest function scope
//	let / const / class        current block scope
//	function declaration name  scope enclosing the function
//	parameters                 the function's own scope
//	catch parameter            catch scope
//
// A function body block shares the function scope.

func (c *converter) push(kind jsx.ScopeKind, n *sitter.Node, owner jsx.Node) *jsx.Scope {
	c.scope = jsx.NewScope(kind, c.span(n), c.scope, owner)
	return c.scope
}

func (c *converter) pop(outer *jsx.Scope) {
	c.scope = outer
}

func (c *converter) importDecl(n *sitter.Node) *jsx.ImportDecl {
	d := &jsx.ImportDecl{Base: c.base(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch ch.Type() {
		case "type":
			d.TypeOnly = true
		case "import_clause":
			c.importClause(d, ch)
		case "string":
			d.Source = c.stringLit(ch, false)
		}
	}

	source := ""
	if d.Source != nil {
		source = d.Source.Value
	}
	for _, s := range d.Specifiers {
		if s.Local == nil {
			continue
		}
		c.file.Scope.Declare(s.Local.Name, jsx.BindingImport, s.Local, &jsx.ImportInfo{
			Source:    source,
			Imported:  s.Imported,
			Default:   s.Default,
			Namespace: s.Namespace,
		})
	}
	return d
}

func (c *converter) importClause(d *jsx.ImportDecl, n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		switch ch.Type() {
		case "identifier":
			d.Specifiers = append(d.Specifiers, &jsx.ImportSpecifier{
				Base:     c.base(ch),
				Imported: "default",
				Local:    c.ident(ch),
				Default:  true,
			})
		case "namespace_import":
			spec := &jsx.ImportSpecifier{Base: c.base(ch), Imported: "*", Namespace: true}
			if id := firstNamed(ch); id != nil {
				spec.Local = c.ident(id)
			}
			d.Specifiers = append(d.Specifiers, spec)
		case "named_imports":
			d.NamedSpan = c.span(ch)
			for j := 0; j < int(ch.NamedChildCount()); j++ {
				if s := ch.NamedChild(j); s.Type() == "import_specifier" {
					d.Specifiers = append(d.Specifiers, c.importSpecifier(s))
				}
			}
		}
	}
}

func (c *converter) importSpecifier(n *sitter.Node) *jsx.ImportSpecifier {
	name, alias := n.ChildByFieldName("name"), n.ChildByFieldName("alias")
	if name == nil {
		var ids []*sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if ch := n.NamedChild(i); ch.Type() == "identifier" || ch.Type() == "string" {
				ids = append(ids, ch)
			}
		}
		if len(ids) > 0 {
			name = ids[0]
		}
		if len(ids) > 1 {
			alias = ids[1]
		}
	}

	spec := &jsx.ImportSpecifier{Base: c.base(n)}
	if name == nil {
		return spec
	}
	if name.Type() == "string" {
		spec.Imported = unquote(c.text(name))
	} else {
		spec.Imported = c.text(name)
	}
	switch {
	case alias != nil:
		spec.Local = c.ident(alias)
	case name.Type() != "string":
		spec.Local = c.ident(name)
	}
	return spec
}

func (c *converter) varDecl(n *sitter.Node) *jsx.VarDecl {
	d := &jsx.VarDecl{Base: c.base(n)}
	if n.ChildCount() > 0 {
		d.DeclKind = n.Child(0).Type()
	}
	target := c.scope
	if d.DeclKind == "var" {
		target = c.scope.FunctionScope()
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() != "variable_declarator" {
			continue
		}
		name := ch.ChildByFieldName("name")
		vd := &jsx.VarDeclarator{Base: c.base(ch), ID: c.convert(name)}
		c.declarePattern(target, name, jsx.BindingVariable)
		vd.Init = c.convert(ch.ChildByFieldName("value"))
		d.Declarators = append(d.Declarators, vd)
	}
	return d
}

func (c *converter) function(n *sitter.Node, declaration bool) *jsx.Function {
	fn := &jsx.Function{Base: c.base(n), Arrow: n.Type() == "arrow_function"}
	name := n.ChildByFieldName("name")

	if declaration && name != nil {
		fn.Name = c.ident(name)
		c.scope.Declare(fn.Name.Name, jsx.BindingFunction, fn.Name, nil)
	}

	outer := c.scope
	c.push(jsx.ScopeFunction, n, fn)
	defer c.pop(outer)

	if !declaration && name != nil {
		if id, ok := c.convert(name).(*jsx.Ident); ok {
			fn.Name = id
			if n.Type() != "method_definition" {
				// A named function expression sees its own name.
				c.scope.Declare(id.Name, jsx.BindingFunction, id, nil)
			}
		}
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if k := c.convert(p); k != nil {
				fn.Params = append(fn.Params, k)
				c.declarePattern(c.scope, p, jsx.BindingParameter)
			}
		}
	} else if p := n.ChildByFieldName("parameter"); p != nil {
		if k := c.convert(p); k != nil {
			fn.Params = append(fn.Params, k)
			c.declarePattern(c.scope, p, jsx.BindingParameter)
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		if body.Type() == "statement_block" {
			fn.Body = c.block(body, false)
		} else {
			fn.Body = c.convert(body)
		}
	}
	return fn
}

func (c *converter) classDecl(n *sitter.Node) *jsx.Other {
	o := c.other(n)
	if name := n.ChildByFieldName("name"); name != nil {
		if id := c.idents[int(name.StartByte())]; id != nil {
			c.scope.Declare(id.Name, jsx.BindingClass, id, nil)
		}
	}
	return o
}

func (c *converter) block(n *sitter.Node, newScope bool) *jsx.Block {
	b := &jsx.Block{Base: c.base(n)}
	if newScope {
		outer := c.scope
		c.push(jsx.ScopeBlock, n, b)
		defer c.pop(outer)
	}
	b.Body = c.convertNamed(n)
	return b
}

func (c *converter) scoped(n *sitter.Node, kind jsx.ScopeKind) *jsx.Other {
	o := &jsx.Other{Base: c.base(n), Type: n.Type()}
	outer := c.scope
	c.push(kind, n, o)
	defer c.pop(outer)

	// for (let i ...) declarations are converted inside the loop scope.
	o.Kids = c.convertNamed(n)

	// for (const x of xs): the binding is a bare pattern, not a declaration.
	if left := n.ChildByFieldName("left"); left != nil {
		switch {
		case hasChild(n, "let", "const"):
			c.declarePattern(c.scope, left, jsx.BindingVariable)
		case hasChild(n, "var"):
			c.declarePattern(c.scope.FunctionScope(), left, jsx.BindingVariable)
		}
	}
	return o
}

func (c *converter) catchClause(n *sitter.Node) *jsx.Other {
	o := &jsx.Other{Base: c.base(n), Type: n.Type()}
	outer := c.scope
	c.push(jsx.ScopeCatch, n, o)
	defer c.pop(outer)

	o.Kids = c.convertNamed(n)
	if p := n.ChildByFieldName("parameter"); p != nil {
		c.declarePattern(c.scope, p, jsx.BindingCatchParam)
	}
	return o
}

// declarePattern binds every identifier introduced by a binding pattern.
// The pattern must already have been converted.
func (c *converter) declarePattern(target *jsx.Scope, pattern *sitter.Node, kind jsx.BindingKind) {
	for _, n := range bindingIdents(pattern, nil) {
		id := c.idents[int(n.StartByte())]
		if id == nil {
			id = c.ident(n)
		}
		target.Declare(id.Name, kind, id, nil)
	}
}

func bindingIdents(n *sitter.Node, out []*sitter.Node) []*sitter.Node {
	if n == nil {
		return out
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return append(out, n)
	case "object_pattern", "array_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			out = bindingIdents(n.NamedChild(i), out)
		}
	case "pair_pattern":
		return bindingIdents(n.ChildByFieldName("value"), out)
	case "assignment_pattern", "object_assignment_pattern":
		return bindingIdents(n.ChildByFieldName("left"), out)
	case "rest_pattern":
		return bindingIdents(firstNamed(n), out)
	case "required_parameter", "optional_parameter":
		p := n.ChildByFieldName("pattern")
		if p == nil {
			p = firstNamed(n)
		}
		return bindingIdents(p, out)
	}
	return out
}
