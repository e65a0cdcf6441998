package jsx

// Node is implemented by every syntax tree variant. The set of variants is
// closed; switch over the concrete types (or Kind) to handle them.
type Node interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Span returns the half-open byte range the node covers.
	Span() Span
	// Parent returns the enclosing node, or nil for the File.
	Parent() Node

	setParent(Node)
}

// Base carries the fields shared by every node.
type Base struct {
	Range  Span
	parent Node
}

// At returns a Base covering [start, end).
func At(start, end int) Base {
	return Base{Range: Span{Start: start, End: end}}
}

// Span implements Node.
func (b *Base) Span() Span { return b.Range }

// Parent implements Node.
func (b *Base) Parent() Node { return b.parent }

func (b *Base) setParent(p Node) { b.parent = p }

// ---------- Program structure ----------

// File is the root of a parsed source file.
type File struct {
	Base
	Path   string
	Source []byte
	Body   []Node
	Scope  *Scope // module scope
	Lines  *LineIndex
}

// ImportDecl is `import ... from "source"`.
type ImportDecl struct {
	Base
	Specifiers []*ImportSpecifier
	Source     *StringLit
	// NamedSpan covers the `{ ... }` list when present; zero otherwise.
	NamedSpan Span
	TypeOnly  bool
}

// ImportSpecifier is one imported binding.
type ImportSpecifier struct {
	Base
	Imported  string // exported name in the source module ("default" / "*" for those forms)
	Local     *Ident
	Default   bool
	Namespace bool
}

// VarDecl is a const/let/var declaration.
type VarDecl struct {
	Base
	DeclKind    string
	Declarators []*VarDeclarator
}

// VarDeclarator is one `id = init` pair of a VarDecl.
type VarDeclarator struct {
	Base
	ID   Node
	Init Node
}

// Function covers declarations, expressions, arrows and methods.
type Function struct {
	Base
	Name   *Ident
	Params []Node
	Body   Node
	Arrow  bool
}

// Block is a `{ ... }` statement block.
type Block struct {
	Base
	Body []Node
}

// ---------- JSX ----------

// Element is a JSX element. Closing is nil for self-closing elements.
type Element struct {
	Base
	Opening  *OpeningElement
	Children []Node
	Closing  *ClosingElement
}

// Fragment is `<>...</>`.
type Fragment struct {
	Base
	Children []Node
}

// OpeningElement is `<Name attrs...>` or `<Name attrs... />`.
type OpeningElement struct {
	Base
	Name        Node // *Ident, *MemberExpr or *NamespaceName
	Attributes  []Node
	SelfClosing bool
}

// ClosingElement is `</Name>`.
type ClosingElement struct {
	Base
	Name Node
}

// Attribute is `name`, `name="v"` or `name={expr}`. Value is nil for boolean
// shorthand attributes.
type Attribute struct {
	Base
	Name     string
	NameSpan Span
	Value    Node
}

// SpreadAttribute is `{...expr}` in attribute position.
type SpreadAttribute struct {
	Base
	Argument Node
}

// Text is raw JSX text between elements, whitespace included.
type Text struct {
	Base
	Value string
}

// ExprContainer is `{expr}` inside JSX. Expr is nil for `{}` and comment-only
// containers.
type ExprContainer struct {
	Base
	Expr Node
}

// NamespaceName is `ns:name` in element or attribute position.
type NamespaceName struct {
	Base
	Namespace string
	Name      string
}

// ---------- Expressions ----------

// Ident is an identifier reference or binding.
type Ident struct {
	Base
	Name string
}

// MemberExpr is `obj.prop` or `obj[prop]`. JSX dotted names use it too.
type MemberExpr struct {
	Base
	Object   Node
	Property Node
	Computed bool
	Optional bool
}

// StringLit is a quoted string. Raw includes the quotes.
type StringLit struct {
	Base
	Value string
	Raw   string
}

// Quote returns the quote character used in the source (' or ").
func (s *StringLit) Quote() byte {
	if len(s.Raw) > 0 && (s.Raw[0] == '\'' || s.Raw[0] == '"') {
		return s.Raw[0]
	}
	return '"'
}

// TemplateLit is a backtick string. Quasis has len(Exprs)+1 elements.
type TemplateLit struct {
	Base
	Quasis []*TemplateElement
	Exprs  []Node
}

// TemplateElement is a static chunk of a template literal, without the
// surrounding backtick or `${`/`}` delimiters.
type TemplateElement struct {
	Base
	Raw string
}

// LiteralKind classifies non-string literals.
type LiteralKind uint8

// Literal kinds.
const (
	LiteralNumber LiteralKind = iota
	LiteralBool
	LiteralNull
	LiteralUndefined
	LiteralRegexp
)

// Literal is a number, boolean, null, undefined or regexp literal.
type Literal struct {
	Base
	LitKind LiteralKind
	Raw     string
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Base
	Callee Node
	Args   []Node
}

// CondExpr is `test ? consequent : alternate`.
type CondExpr struct {
	Base
	Test       Node
	Consequent Node
	Alternate  Node
}

// BinaryExpr covers arithmetic, comparison and logical operators.
type BinaryExpr struct {
	Base
	Op    string
	Left  Node
	Right Node
}

// ObjectExpr is `{ ... }` in expression position.
type ObjectExpr struct {
	Base
	Properties []Node // *Property, *SpreadElement or *Function (methods)
}

// Property is `key: value` inside an object. Value is nil for shorthand
// properties, whose Key doubles as the value reference.
type Property struct {
	Base
	Key       Node
	Value     Node
	Computed  bool
	Shorthand bool
}

// KeyName returns the static key of the property, if it has one.
func (p *Property) KeyName() (string, bool) {
	if p.Computed {
		if s, ok := p.Key.(*StringLit); ok {
			return s.Value, true
		}
		return "", false
	}
	switch k := p.Key.(type) {
	case *Ident:
		return k.Name, true
	case *StringLit:
		return k.Value, true
	case *Literal:
		return k.Raw, true
	}
	return "", false
}

// SpreadElement is `...expr` in objects, arrays and call arguments.
type SpreadElement struct {
	Base
	Argument Node
}

// ArrayExpr is `[ ... ]`.
type ArrayExpr struct {
	Base
	Elements []Node
}

// Other is any construct without a dedicated variant. Its children are kept
// so that traversal still reaches nested JSX and identifiers.
type Other struct {
	Base
	Type string
	Kids []Node
}

func (*File) Kind() Kind            { return KindFile }
func (*ImportDecl) Kind() Kind      { return KindImportDecl }
func (*ImportSpecifier) Kind() Kind { return KindImportSpecifier }
func (*VarDecl) Kind() Kind         { return KindVarDecl }
func (*VarDeclarator) Kind() Kind   { return KindVarDeclarator }
func (*Function) Kind() Kind        { return KindFunction }
func (*Block) Kind() Kind           { return KindBlock }
func (*Element) Kind() Kind         { return KindElement }
func (*Fragment) Kind() Kind        { return KindFragment }
func (*OpeningElement) Kind() Kind  { return KindOpeningElement }
func (*ClosingElement) Kind() Kind  { return KindClosingElement }
func (*Attribute) Kind() Kind       { return KindAttribute }
func (*SpreadAttribute) Kind() Kind { return KindSpreadAttribute }
func (*Text) Kind() Kind            { return KindText }
func (*ExprContainer) Kind() Kind   { return KindExprContainer }
func (*NamespaceName) Kind() Kind   { return KindNamespaceName }
func (*Ident) Kind() Kind           { return KindIdent }
func (*MemberExpr) Kind() Kind      { return KindMemberExpr }
func (*StringLit) Kind() Kind       { return KindStringLit }
func (*TemplateLit) Kind() Kind     { return KindTemplateLit }
func (*TemplateElement) Kind() Kind { return KindTemplateElement }
func (*Literal) Kind() Kind         { return KindLiteral }
func (*CallExpr) Kind() Kind        { return KindCallExpr }
func (*CondExpr) Kind() Kind        { return KindCondExpr }
func (*BinaryExpr) Kind() Kind      { return KindBinaryExpr }
func (*ObjectExpr) Kind() Kind      { return KindObjectExpr }
func (*Property) Kind() Kind        { return KindProperty }
func (*SpreadElement) Kind() Kind   { return KindSpreadElement }
func (*ArrayExpr) Kind() Kind       { return KindArrayExpr }
func (*Other) Kind() Kind           { return KindOther }
