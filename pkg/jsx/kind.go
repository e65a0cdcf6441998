package jsx

// Kind discriminates the node variants of the syntax tree.
type Kind uint8

// Node kinds.
const (
	KindInvalid Kind = iota
	KindFile
	KindImportDecl
	KindImportSpecifier
	KindVarDecl
	KindVarDeclarator
	KindFunction
	KindBlock
	KindElement
	KindFragment
	KindOpeningElement
	KindClosingElement
	KindAttribute
	KindSpreadAttribute
	KindText
	KindExprContainer
	KindIdent
	KindNamespaceName
	KindMemberExpr
	KindStringLit
	KindTemplateLit
	KindTemplateElement
	KindLiteral
	KindCallExpr
	KindCondExpr
	KindBinaryExpr
	KindObjectExpr
	KindProperty
	KindSpreadElement
	KindArrayExpr
	KindOther

	kindCount
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindFile:            "File",
	KindImportDecl:      "ImportDecl",
	KindImportSpecifier: "ImportSpecifier",
	KindVarDecl:         "VarDecl",
	KindVarDeclarator:   "VarDeclarator",
	KindFunction:        "Function",
	KindBlock:           "Block",
	KindElement:         "Element",
	KindFragment:        "Fragment",
	KindOpeningElement:  "OpeningElement",
	KindClosingElement:  "ClosingElement",
	KindAttribute:       "Attribute",
	KindSpreadAttribute: "SpreadAttribute",
	KindText:            "Text",
	KindExprContainer:   "ExprContainer",
	KindIdent:           "Ident",
	KindNamespaceName:   "NamespaceName",
	KindMemberExpr:      "MemberExpr",
	KindStringLit:       "StringLit",
	KindTemplateLit:     "TemplateLit",
	KindTemplateElement: "TemplateElement",
	KindLiteral:         "Literal",
	KindCallExpr:        "CallExpr",
	KindCondExpr:        "CondExpr",
	KindBinaryExpr:      "BinaryExpr",
	KindObjectExpr:      "ObjectExpr",
	KindProperty:        "Property",
	KindSpreadElement:   "SpreadElement",
	KindArrayExpr:       "ArrayExpr",
	KindOther:           "Other",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}
