package match_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/jsx/parser"
	"github.com/leapstack-labs/primerlint/pkg/match"
)

func openings(t *testing.T, src string) (*jsx.File, []*jsx.OpeningElement) {
	t.Helper()
	f, err := parser.Parse(context.Background(), "test.tsx", []byte(src))
	require.NoError(t, err)
	var out []*jsx.OpeningElement
	jsx.Inspect(f, func(n jsx.Node) bool {
		if o, ok := n.(*jsx.OpeningElement); ok {
			out = append(out, o)
		}
		return true
	})
	return f, out
}

func TestElementName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`<Box />`, "Box"},
		{`<ActionList.Item />`, "ActionList.Item"},
		{`<A.B.C />`, "A.B.C"},
		{`<svg:path />`, "svg:path"},
		{`<div></div>`, "div"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			_, els := openings(t, "const x = "+tt.src)
			require.Len(t, els, 1)
			assert.Equal(t, tt.want, match.ElementName(els[0]))
		})
	}

	assert.Equal(t, "", match.ElementName(nil))
	assert.Equal(t, "", match.NameOf(&jsx.MemberExpr{Object: &jsx.Ident{Name: "a"}, Property: &jsx.Ident{Name: "b"}, Computed: true}))
}

func TestFindAttribute(t *testing.T) {
	_, els := openings(t, `const x = <Link href="a" {...rest} href="b" Href="c" />`)
	require.Len(t, els, 1)
	o := els[0]

	attr := match.FindAttribute(o, "href")
	require.NotNil(t, attr)
	v, ok := match.AttributeStringValue(attr)
	assert.True(t, ok)
	assert.Equal(t, "a", v, "first match wins")

	upper := match.FindAttribute(o, "Href")
	require.NotNil(t, upper)
	v, _ = match.AttributeStringValue(upper)
	assert.Equal(t, "c", v)

	assert.Nil(t, match.FindAttribute(o, "missing"))
	assert.Nil(t, match.FindAttribute(nil, "href"))
	assert.True(t, match.HasSpread(o))
}

func TestAttributeStringValue(t *testing.T) {
	tests := []struct {
		src    string
		want   string
		wantOK bool
	}{
		{`<a x="lit" />`, "lit", true},
		{`<a x={'braced'} />`, "braced", true},
		{"<a x={`tpl`} />", "tpl", true},
		{"<a x={`t${y}`} />", "", false},
		{`<a x={y} />`, "", false},
		{`<a x />`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, els := openings(t, "const e = "+tt.src)
			require.Len(t, els, 1)
			got, ok := match.AttributeStringValue(match.FindAttribute(els[0], "x"))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	_, ok := match.AttributeStringValue(nil)
	assert.False(t, ok)
}

func TestIsHostElement(t *testing.T) {
	_, els := openings(t, `const x = <div><Box /><svg:rect /><ActionList.Item /></div>`)
	require.Len(t, els, 4)
	assert.True(t, match.IsHostElement(els[0]))
	assert.False(t, match.IsHostElement(els[1]))
	assert.True(t, match.IsHostElement(els[2]))
	assert.False(t, match.IsHostElement(els[3]))
	assert.False(t, match.IsHostElement(nil))
}

func TestResolveImportSource(t *testing.T) {
	src := `import {Button} from 'module/path'
import {Box as B} from '@primer/react/deprecated'
const Local = 1
function App() {
  return <>
    <Button />
    <Local />
    <B.Inner />
    <Unknown />
  </>
}
function Shadow() {
  const Button = () => null
  return <Button />
}
`
	f, els := openings(t, src)
	require.Len(t, els, 5)

	byModule := match.Regexp(regexp.MustCompile(`^module`))
	resolve := func(o *jsx.OpeningElement, p match.ModulePattern) bool {
		root := match.RootIdent(o.Name)
		return match.ResolveImportSource(root, f.ScopeOf(o), p)
	}

	assert.True(t, resolve(els[0], byModule), "imported identifier")
	assert.True(t, resolve(els[0], match.Exact("module/path")))
	assert.False(t, resolve(els[0], match.Exact("module")))
	assert.False(t, resolve(els[1], byModule), "local const")
	assert.True(t, resolve(els[2], match.PrimerReact), "aliased member root")
	assert.False(t, resolve(els[3], byModule), "unresolved global")
	assert.False(t, resolve(els[4], byModule), "shadowed by local const")

	assert.True(t, match.IsPrimerComponent(els[2].Name, f.ScopeOf(els[2])))
	assert.False(t, match.IsPrimerComponent(els[0].Name, f.ScopeOf(els[0])))
	assert.Equal(t, "Box.Inner", match.CanonicalName(els[2].Name, f.ScopeOf(els[2])))
	assert.Equal(t, "Local", match.CanonicalName(els[1].Name, f.ScopeOf(els[1])))

	assert.False(t, match.ResolveImportSource(nil, f.Scope, byModule))
	assert.False(t, match.ResolveImportSource(match.RootIdent(els[0].Name), nil, byModule))
	assert.False(t, match.ResolveImportSource(match.RootIdent(els[0].Name), f.Scope, nil))
}

func TestPrimerReactPattern(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"@primer/react", true},
		{"@primer/react/experimental", true},
		{"@primer/react-brand", false},
		{"@primer/reactive", false},
		{"primer/react", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, match.PrimerReact.Match(tt.source), tt.source)
	}
}

func TestModulePattern_String(t *testing.T) {
	assert.Equal(t, "@primer/react", match.Exact("@primer/react").String())
	assert.Equal(t, "/^a/", match.Regexp(regexp.MustCompile(`^a`)).String())

	empty := match.Regexp(nil)
	assert.Equal(t, "//", empty.String())
	assert.False(t, empty.Match("a"))
}

func TestIsWhitespaceText(t *testing.T) {
	assert.True(t, match.IsWhitespaceText(&jsx.Text{Value: " \n\t"}))
	assert.False(t, match.IsWhitespaceText(&jsx.Text{Value: " x "}))
	assert.True(t, match.IsWhitespaceText(&jsx.ExprContainer{Expr: &jsx.StringLit{Value: " "}}))
	assert.False(t, match.IsWhitespaceText(&jsx.ExprContainer{Expr: &jsx.Ident{Name: "x"}}))
	assert.False(t, match.IsWhitespaceText(nil))
}
