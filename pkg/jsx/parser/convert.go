package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// converter builds the jsx tree from a tree-sitter tree. It also maintains
// the current lexical scope while descending, so scopes are created in
// source order.
type converter struct {
	src    []byte
	file   *jsx.File
	scope  *jsx.Scope
	idents map[int]*jsx.Ident // by start offset, for binding lookups
}

// Node types that never contain JSX or value references.
var skipped = map[string]bool{
	"comment":                true,
	"hash_bang_line":         true,
	"type_annotation":        true,
	"type_arguments":         true,
	"type_parameters":        true,
	"interface_declaration":  true,
	"type_alias_declaration": true,
	"ambient_declaration":    true,
}

func (c *converter) base(n *sitter.Node) jsx.Base {
	return jsx.At(int(n.StartByte()), int(n.EndByte()))
}

func (c *converter) span(n *sitter.Node) jsx.Span {
	return jsx.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) convert(n *sitter.Node) jsx.Node {
	if n == nil || skipped[n.Type()] {
		return nil
	}

	switch n.Type() {
	// Statements and scopes
	case "import_statement":
		return c.importDecl(n)
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "function_declaration", "generator_function_declaration":
		return c.function(n, true)
	case "function_expression", "function", "generator_function", "arrow_function", "method_definition":
		return c.function(n, false)
	case "class_declaration", "abstract_class_declaration":
		return c.classDecl(n)
	case "statement_block":
		return c.block(n, true)
	case "for_statement", "for_in_statement":
		return c.scoped(n, jsx.ScopeBlock)
	case "catch_clause":
		return c.catchClause(n)

	// JSX
	case "jsx_element":
		return c.element(n)
	case "jsx_self_closing_element":
		o := c.opening(n, true)
		return &jsx.Element{Base: c.base(n), Opening: o}
	case "jsx_expression":
		return c.exprContainer(n)
	case "jsx_attribute":
		return c.attribute(n)
	case "jsx_namespace_name":
		return c.namespaceName(n)

	// Expressions
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "type_identifier", "private_property_identifier":
		return c.ident(n)
	case "member_expression", "nested_identifier":
		return c.member(n)
	case "subscript_expression":
		return &jsx.MemberExpr{
			Base:     c.base(n),
			Object:   c.convert(n.ChildByFieldName("object")),
			Property: c.convert(n.ChildByFieldName("index")),
			Computed: true,
			Optional: hasChild(n, "optional_chain", "?."),
		}
	case "string":
		return c.stringLit(n, false)
	case "template_string":
		return c.template(n)
	case "number":
		return &jsx.Literal{Base: c.base(n), LitKind: jsx.LiteralNumber, Raw: c.text(n)}
	case "true", "false":
		return &jsx.Literal{Base: c.base(n), LitKind: jsx.LiteralBool, Raw: c.text(n)}
	case "null":
		return &jsx.Literal{Base: c.base(n), LitKind: jsx.LiteralNull, Raw: c.text(n)}
	case "undefined":
		return &jsx.Literal{Base: c.base(n), LitKind: jsx.LiteralUndefined, Raw: c.text(n)}
	case "regex":
		return &jsx.Literal{Base: c.base(n), LitKind: jsx.LiteralRegexp, Raw: c.text(n)}
	case "call_expression":
		return c.call(n)
	case "ternary_expression":
		return &jsx.CondExpr{
			Base:       c.base(n),
			Test:       c.convert(n.ChildByFieldName("condition")),
			Consequent: c.convert(n.ChildByFieldName("consequence")),
			Alternate:  c.convert(n.ChildByFieldName("alternative")),
		}
	case "binary_expression":
		b := &jsx.BinaryExpr{Base: c.base(n)}
		if op := n.ChildByFieldName("operator"); op != nil {
			b.Op = c.text(op)
		}
		b.Left = c.convert(n.ChildByFieldName("left"))
		b.Right = c.convert(n.ChildByFieldName("right"))
		return b
	case "object":
		return c.object(n)
	case "pair":
		return c.pair(n)
	case "array":
		a := &jsx.ArrayExpr{Base: c.base(n)}
		a.Elements = c.convertNamed(n)
		return a
	case "spread_element":
		return &jsx.SpreadElement{Base: c.base(n), Argument: c.convert(firstNamed(n))}
	case "parenthesized_expression":
		if inner := firstNamed(n); inner != nil {
			return c.convert(inner)
		}
	}
	return c.other(n)
}

func (c *converter) other(n *sitter.Node) *jsx.Other {
	return &jsx.Other{Base: c.base(n), Type: n.Type(), Kids: c.convertNamed(n)}
}

// convertNamed converts the named children of n, dropping skipped ones.
func (c *converter) convertNamed(n *sitter.Node) []jsx.Node {
	var out []jsx.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if k := c.convert(n.NamedChild(i)); k != nil {
			out = append(out, k)
		}
	}
	return out
}

func (c *converter) ident(n *sitter.Node) *jsx.Ident {
	id := &jsx.Ident{Base: c.base(n), Name: c.text(n)}
	c.idents[id.Range.Start] = id
	return id
}

func (c *converter) member(n *sitter.Node) *jsx.MemberExpr {
	m := &jsx.MemberExpr{Base: c.base(n), Optional: hasChild(n, "optional_chain", "?.")}
	obj, prop := n.ChildByFieldName("object"), n.ChildByFieldName("property")
	if obj == nil || prop == nil {
		// nested_identifier in older grammars has no fields.
		cnt := int(n.NamedChildCount())
		if cnt >= 2 {
			obj, prop = n.NamedChild(0), n.NamedChild(cnt-1)
		}
	}
	m.Object = c.convert(obj)
	m.Property = c.convert(prop)
	return m
}

func (c *converter) stringLit(n *sitter.Node, jsxAttr bool) *jsx.StringLit {
	raw := c.text(n)
	s := &jsx.StringLit{Base: c.base(n), Raw: raw}
	if jsxAttr {
		// JSX attribute strings have no escape sequences.
		if len(raw) >= 2 {
			s.Value = raw[1 : len(raw)-1]
		}
	} else {
		s.Value = unquote(raw)
	}
	return s
}

// template splits a template literal into static chunks around its
// substitutions.
func (c *converter) template(n *sitter.Node) *jsx.TemplateLit {
	t := &jsx.TemplateLit{Base: c.base(n)}
	start, end := int(n.StartByte())+1, int(n.EndByte())-1
	pos := start
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() != "template_substitution" {
			continue
		}
		t.Quasis = append(t.Quasis, c.quasi(pos, int(ch.StartByte())))
		expr := c.convert(firstNamed(ch))
		if expr == nil {
			expr = c.other(ch)
		}
		t.Exprs = append(t.Exprs, expr)
		pos = int(ch.EndByte())
	}
	if end < pos {
		end = pos
	}
	t.Quasis = append(t.Quasis, c.quasi(pos, end))
	return t
}

func (c *converter) quasi(start, end int) *jsx.TemplateElement {
	return &jsx.TemplateElement{Base: jsx.At(start, end), Raw: string(c.src[start:end])}
}

func (c *converter) call(n *sitter.Node) *jsx.CallExpr {
	call := &jsx.CallExpr{Base: c.base(n), Callee: c.convert(n.ChildByFieldName("function"))}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return call
	}
	if args.Type() == "arguments" {
		call.Args = c.convertNamed(args)
	} else if a := c.convert(args); a != nil {
		// tagged template
		call.Args = []jsx.Node{a}
	}
	return call
}

func (c *converter) object(n *sitter.Node) *jsx.ObjectExpr {
	o := &jsx.ObjectExpr{Base: c.base(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		switch ch.Type() {
		case "shorthand_property_identifier":
			o.Properties = append(o.Properties, &jsx.Property{
				Base:      c.base(ch),
				Key:       c.ident(ch),
				Shorthand: true,
			})
		default:
			if k := c.convert(ch); k != nil {
				o.Properties = append(o.Properties, k)
			}
		}
	}
	return o
}

func (c *converter) pair(n *sitter.Node) *jsx.Property {
	p := &jsx.Property{Base: c.base(n)}
	key := n.ChildByFieldName("key")
	if key != nil && key.Type() == "computed_property_name" {
		p.Computed = true
		p.Key = c.convert(firstNamed(key))
	} else {
		p.Key = c.convert(key)
	}
	p.Value = c.convert(n.ChildByFieldName("value"))
	return p
}

// ---------- JSX ----------

func (c *converter) element(n *sitter.Node) jsx.Node {
	var open, closing *sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		switch ch.Type() {
		case "jsx_opening_element":
			if open == nil {
				open = ch
			}
		case "jsx_closing_element":
			closing = ch
		}
	}
	if open == nil {
		return c.other(n)
	}

	childStart, childEnd := int(open.EndByte()), int(n.EndByte())
	if closing != nil {
		childEnd = int(closing.StartByte())
	}

	if open.ChildByFieldName("name") == nil && firstNamed(open) == nil {
		f := &jsx.Fragment{Base: c.base(n)}
		f.Children = c.jsxChildren(n, childStart, childEnd)
		return f
	}

	e := &jsx.Element{Base: c.base(n), Opening: c.opening(open, false)}
	e.Children = c.jsxChildren(n, childStart, childEnd)
	if closing != nil {
		cl := &jsx.ClosingElement{Base: c.base(closing)}
		name := closing.ChildByFieldName("name")
		if name == nil {
			name = firstNamed(closing)
		}
		cl.Name = c.convert(name)
		e.Closing = cl
	}
	return e
}

// jsxChildren converts the children of a JSX element lying in [start, end).
// Text children are rebuilt from the gaps between the other children.
func (c *converter) jsxChildren(n *sitter.Node, start, end int) []jsx.Node {
	var out []jsx.Node
	pos := start
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		s, e := int(ch.StartByte()), int(ch.EndByte())
		if s < start || e > end {
			continue
		}
		switch ch.Type() {
		case "jsx_text", "html_character_reference", "comment":
			continue
		}
		k := c.convert(ch)
		if k == nil {
			continue
		}
		if s > pos {
			out = append(out, c.jsxText(pos, s))
		}
		out = append(out, k)
		pos = e
	}
	if end > pos {
		out = append(out, c.jsxText(pos, end))
	}
	return out
}

func (c *converter) jsxText(start, end int) *jsx.Text {
	return &jsx.Text{Base: jsx.At(start, end), Value: string(c.src[start:end])}
}

func (c *converter) opening(n *sitter.Node, selfClosing bool) *jsx.OpeningElement {
	o := &jsx.OpeningElement{Base: c.base(n), SelfClosing: selfClosing}
	name := n.ChildByFieldName("name")
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if (name != nil && sameNode(ch, name)) || (name == nil && i == 0 && isElementName(ch.Type())) {
			o.Name = c.convert(ch)
			continue
		}
		switch ch.Type() {
		case "jsx_attribute":
			o.Attributes = append(o.Attributes, c.attribute(ch))
		case "jsx_expression":
			o.Attributes = append(o.Attributes, c.spreadAttribute(ch))
		}
	}
	return o
}

func (c *converter) attribute(n *sitter.Node) *jsx.Attribute {
	a := &jsx.Attribute{Base: c.base(n)}
	var named []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ch := n.NamedChild(i); ch.Type() != "comment" {
			named = append(named, ch)
		}
	}
	if len(named) > 0 {
		a.Name = c.text(named[0])
		a.NameSpan = c.span(named[0])
	}
	if len(named) > 1 {
		v := named[1]
		if v.Type() == "string" {
			a.Value = c.stringLit(v, true)
		} else {
			a.Value = c.convert(v)
		}
	}
	return a
}

func (c *converter) spreadAttribute(n *sitter.Node) jsx.Node {
	inner := firstNamed(n)
	if inner == nil || inner.Type() != "spread_element" {
		return c.other(n)
	}
	return &jsx.SpreadAttribute{Base: c.base(n), Argument: c.convert(firstNamed(inner))}
}

func (c *converter) exprContainer(n *sitter.Node) *jsx.ExprContainer {
	return &jsx.ExprContainer{Base: c.base(n), Expr: c.convert(firstNamed(n))}
}

func (c *converter) namespaceName(n *sitter.Node) *jsx.NamespaceName {
	ns := &jsx.NamespaceName{Base: c.base(n)}
	if n.NamedChildCount() >= 2 {
		ns.Namespace = c.text(n.NamedChild(0))
		ns.Name = c.text(n.NamedChild(1))
	}
	return ns
}

// ---------- helpers ----------

// firstNamed returns the first named child that is not a comment.
func firstNamed(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ch := n.NamedChild(i); ch.Type() != "comment" {
			return ch
		}
	}
	return nil
}

func hasChild(n *sitter.Node, types ...string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		t := n.Child(i).Type()
		for _, want := range types {
			if t == want {
				return true
			}
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func isElementName(t string) bool {
	switch t {
	case "identifier", "member_expression", "nested_identifier", "jsx_namespace_name":
		return true
	}
	return false
}
