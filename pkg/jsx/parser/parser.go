// Package parser turns JavaScript and TypeScript source (with JSX) into the
// jsx syntax tree and its lexical scope tree.
//
// # Usage
//
//	file, err := parser.Parse(ctx, "Button.tsx", src)
//	if err != nil {
//	    // errors.Is(err, parser.ErrParse) for syntax errors
//	}
//
// Parsing is delegated to tree-sitter. The TSX grammar is used for every
// file except plain .ts/.mts/.cts sources, which use the TypeScript grammar
// so that angle-bracket type assertions parse.
//
// The converter keeps only the node kinds the lint rules inspect; everything
// else becomes jsx.Other with its named children preserved, so traversal
// still reaches JSX nested anywhere in the file. JSX text children are
// synthesized from the source gaps between element children, so whitespace
// runs are always represented.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
)

// Extensions lists the file extensions the parser accepts.
var Extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// Supports reports whether path has a parseable extension.
func Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LanguageFor selects the tree-sitter grammar for path.
func LanguageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return tsx.GetLanguage()
	}
}

// Parse parses src and returns the linked syntax tree with its scopes.
// Syntax errors are reported as *ParseError.
func Parse(ctx context.Context, path string, src []byte) (*jsx.File, error) {
	// tree-sitter parsers are not safe for concurrent use; one per call.
	p := sitter.NewParser()
	p.SetLanguage(LanguageFor(path))

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := &jsx.File{
		Base:   jsx.At(0, len(src)),
		Path:   path,
		Source: src,
		Lines:  jsx.NewLineIndex(src),
	}

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Path: path, Pos: f.Position(0), Message: "empty syntax tree"}
	}
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, &ParseError{
				Path:    path,
				Pos:     f.Position(int(bad.StartByte())),
				Message: describeError(bad, src),
			}
		}
	}

	f.Scope = jsx.NewScope(jsx.ScopeModule, f.Range, nil, f)
	c := &converter{
		src:    src,
		file:   f,
		scope:  f.Scope,
		idents: make(map[int]*jsx.Ident),
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if n := c.convert(root.NamedChild(i)); n != nil {
			f.Body = append(f.Body, n)
		}
	}
	jsx.Link(f)
	return f, nil
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func describeError(n *sitter.Node, src []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf(msgMissing, n.Type())
	}
	text := n.Content(src)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > 20 {
		text = text[:20]
	}
	return fmt.Sprintf(msgUnexpected, text)
}
