package jsx

// Children returns the direct children of n in source order. Nil children
// (absent optional parts) are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *File:
		add(n.Body...)
	case *ImportDecl:
		for _, s := range n.Specifiers {
			add(s)
		}
		add(n.Source)
	case *ImportSpecifier:
		add(n.Local)
	case *VarDecl:
		for _, d := range n.Declarators {
			add(d)
		}
	case *VarDeclarator:
		add(n.ID, n.Init)
	case *Function:
		add(n.Name)
		add(n.Params...)
		add(n.Body)
	case *Block:
		add(n.Body...)
	case *Element:
		add(n.Opening)
		add(n.Children...)
		add(n.Closing)
	case *Fragment:
		add(n.Children...)
	case *OpeningElement:
		add(n.Name)
		add(n.Attributes...)
	case *ClosingElement:
		add(n.Name)
	case *Attribute:
		add(n.Value)
	case *SpreadAttribute:
		add(n.Argument)
	case *ExprContainer:
		add(n.Expr)
	case *MemberExpr:
		add(n.Object, n.Property)
	case *TemplateLit:
		// Quasis and expressions interleave in source order.
		for i, q := range n.Quasis {
			add(q)
			if i < len(n.Exprs) {
				add(n.Exprs[i])
			}
		}
	case *CallExpr:
		add(n.Callee)
		add(n.Args...)
	case *CondExpr:
		add(n.Test, n.Consequent, n.Alternate)
	case *BinaryExpr:
		add(n.Left, n.Right)
	case *ObjectExpr:
		add(n.Properties...)
	case *Property:
		add(n.Key, n.Value)
	case *SpreadElement:
		add(n.Argument)
	case *ArrayExpr:
		add(n.Elements...)
	case *Other:
		add(n.Kids...)
	case *Text, *Ident, *NamespaceName, *StringLit, *TemplateElement, *Literal:
		// leaves
	}
	return out
}

// Traverse walks the tree rooted at root in pre-order. enter is called before
// a node's children; returning false skips them (exit is still called). exit
// may be nil.
func Traverse(root Node, enter func(Node) bool, exit func(Node)) {
	if isNil(root) {
		return
	}
	descend := enter == nil || enter(root)
	if descend {
		for _, c := range Children(root) {
			Traverse(c, enter, exit)
		}
	}
	if exit != nil {
		exit(root)
	}
}

// Inspect calls fn for every node in pre-order until fn returns false for a
// subtree.
func Inspect(root Node, fn func(Node) bool) {
	Traverse(root, fn, nil)
}

// Link sets the parent pointer of every node below root.
func Link(root Node) {
	if isNil(root) {
		return
	}
	for _, c := range Children(root) {
		c.setParent(root)
		Link(c)
	}
}

// Ancestor returns the nearest ancestor of n with the given kind, or nil.
func Ancestor(n Node, kind Kind) Node {
	if isNil(n) {
		return nil
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *File:
		return v == nil
	case *ImportDecl:
		return v == nil
	case *ImportSpecifier:
		return v == nil
	case *VarDecl:
		return v == nil
	case *VarDeclarator:
		return v == nil
	case *Function:
		return v == nil
	case *Block:
		return v == nil
	case *Element:
		return v == nil
	case *Fragment:
		return v == nil
	case *OpeningElement:
		return v == nil
	case *ClosingElement:
		return v == nil
	case *Attribute:
		return v == nil
	case *SpreadAttribute:
		return v == nil
	case *Text:
		return v == nil
	case *ExprContainer:
		return v == nil
	case *NamespaceName:
		return v == nil
	case *Ident:
		return v == nil
	case *MemberExpr:
		return v == nil
	case *StringLit:
		return v == nil
	case *TemplateLit:
		return v == nil
	case *TemplateElement:
		return v == nil
	case *Literal:
		return v == nil
	case *CallExpr:
		return v == nil
	case *CondExpr:
		return v == nil
	case *BinaryExpr:
		return v == nil
	case *ObjectExpr:
		return v == nil
	case *Property:
		return v == nil
	case *SpreadElement:
		return v == nil
	case *ArrayExpr:
		return v == nil
	case *Other:
		return v == nil
	}
	return false
}

// IsNil reports whether n is nil, including typed nil pointers stored in the
// interface.
func IsNil(n Node) bool { return isNil(n) }
