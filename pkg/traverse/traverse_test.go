package traverse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/primerlint/pkg/jsx"
	"github.com/leapstack-labs/primerlint/pkg/jsx/parser"
	"github.com/leapstack-labs/primerlint/pkg/match"
	"github.com/leapstack-labs/primerlint/pkg/traverse"
)

func parseExpr(t *testing.T, src string) *jsx.File {
	t.Helper()
	f, err := parser.Parse(context.Background(), "test.jsx", []byte("const x = "+src))
	require.NoError(t, err)
	return f
}

// elementNamed returns the first element with the given name.
func elementNamed(f *jsx.File, name string) *jsx.Element {
	var out *jsx.Element
	jsx.Inspect(f, func(n jsx.Node) bool {
		if out != nil {
			return false
		}
		if e, ok := n.(*jsx.Element); ok && match.ElementName(e.Opening) == name {
			out = e
			return false
		}
		return true
	})
	return out
}

func TestAncestorStack(t *testing.T) {
	var s traverse.AncestorStack
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Top())
	assert.False(t, s.IsDirectChildOf("ActionList"))

	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push("ActionList")
	s.Push("ActionList.Item")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.IsDirectChildOf("ActionList.Item", "ActionList.LinkItem"))
	assert.False(t, s.IsDirectChildOf("ActionList"))
	assert.Equal(t, []string{"ActionList", "ActionList.Item"}, s.Names())

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, "ActionList.Item", top)
	assert.True(t, s.IsDirectChildOf("ActionList"))

	s.Pop()
	assert.Equal(t, 0, s.Len())
}

func TestAncestorStack_BalancedOverTraversal(t *testing.T) {
	f := parseExpr(t, `<A><B><C /></B><D>text</D></A>`)

	var s traverse.AncestorStack
	maxDepth := 0
	jsx.Traverse(f,
		func(n jsx.Node) bool {
			if e, ok := n.(*jsx.Element); ok && !e.Opening.SelfClosing {
				s.Push(match.ElementName(e.Opening))
				if s.Len() > maxDepth {
					maxDepth = s.Len()
				}
			}
			return true
		},
		func(n jsx.Node) {
			if _, ok := n.(*jsx.ClosingElement); ok {
				s.Pop()
			}
		},
	)
	assert.Equal(t, 0, s.Len(), "stack is empty at end of file")
	assert.Equal(t, 2, maxDepth)
}

func TestInTextBlock(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"text before", `<p>Read the <a href="#">docs</a></p>`, true},
		{"text after", `<p><a href="#">docs</a> for details</p>`, true},
		{"trailing period only", `<p><a href="#">docs</a>.</p>`, false},
		{"trailing periods with space", `<p><a href="#">docs</a> ... </p>`, false},
		{"period before counts", `<p>.<a href="#">docs</a></p>`, true},
		{"text before and period after", `<p>See <a href="#">docs</a>.</p>`, true},
		{"alone", `<p><a href="#">docs</a></p>`, false},
		{"whitespace only", "<div>\n  <a href=\"#\">docs</a>\n</div>", false},
		{"space container skipped", `<p>Read{" "}<a href="#">docs</a></p>`, true},
		{"element neighbours", `<p><b>x</b><a href="#">docs</a><i>y</i></p>`, false},
		{"other punctuation after", `<p><a href="#">docs</a>!</p>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseExpr(t, tt.src)
			link := elementNamed(f, "a")
			require.NotNil(t, link)
			assert.Equal(t, tt.want, traverse.InTextBlock(link, traverse.Siblings(link)))
		})
	}

	assert.False(t, traverse.InTextBlock(nil, nil))
	assert.False(t, traverse.InTextBlock(&jsx.Text{}, []jsx.Node{&jsx.Text{Value: "x"}}), "node not among siblings")
}

func TestDescendants(t *testing.T) {
	f := parseExpr(t, `<Tooltip><div><span><button /></span><>{x}<i /></></div></Tooltip>`)
	tip := elementNamed(f, "Tooltip")
	require.NotNil(t, tip)

	var names []string
	for _, d := range traverse.Descendants(tip) {
		names = append(names, match.ElementName(d.Opening))
	}
	assert.Equal(t, []string{"div", "span", "button", "i"}, names)
	assert.Nil(t, traverse.Descendants(nil))

	f = parseExpr(t, `<Tooltip>{open ? <b /> : <i />}{show && <button />}</Tooltip>`)
	tip = elementNamed(f, "Tooltip")
	require.NotNil(t, tip)
	names = nil
	for _, d := range traverse.Descendants(tip) {
		names = append(names, match.ElementName(d.Opening))
	}
	assert.Equal(t, []string{"b", "i", "button"}, names)
}

func TestClassifyTrigger(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want traverse.TriggerVerdict
	}{
		{"span is not interactive", `<Tooltip><span>x</span></Tooltip>`, traverse.TriggerNotInteractive},
		{"button", `<Tooltip><button>x</button></Tooltip>`, traverse.TriggerInteractive},
		{"nested button", `<Tooltip><span><Button>x</Button></span></Tooltip>`, traverse.TriggerInteractive},
		{"icon button component", `<Tooltip><IconButton icon={X} /></Tooltip>`, traverse.TriggerInteractive},
		{"anchor with href", `<Tooltip><a href="/x">x</a></Tooltip>`, traverse.TriggerInteractive},
		{"anchor with dynamic href", `<Tooltip><a href={url}>x</a></Tooltip>`, traverse.TriggerInteractive},
		{"anchor without href", `<Tooltip><a>x</a></Tooltip>`, traverse.TriggerAnchorWithoutHref},
		{"anchor with empty href", `<Tooltip><Link href="">x</Link></Tooltip>`, traverse.TriggerAnchorWithoutHref},
		{"hidden input", `<Tooltip><input type="hidden" /></Tooltip>`, traverse.TriggerHiddenInput},
		{"text input", `<Tooltip><input type="text" /></Tooltip>`, traverse.TriggerInteractive},
		{"specific beats generic", `<Tooltip><span><a>x</a></span></Tooltip>`, traverse.TriggerAnchorWithoutHref},
		{"interactive beats specific", `<Tooltip><span><a>x</a><button /></span></Tooltip>`, traverse.TriggerInteractive},
		{"multiple children", `<Tooltip><button /><button /></Tooltip>`, traverse.TriggerMultipleChildren},
		{"text only", `<Tooltip>just text</Tooltip>`, traverse.TriggerNotInteractive},
		{"conditional button", `<Tooltip>{open && <button>x</button>}</Tooltip>`, traverse.TriggerInteractive},
		{"ternary of interactive branches", `<Tooltip>{icon ? <IconButton icon={X} /> : <a href="/x">x</a>}</Tooltip>`, traverse.TriggerInteractive},
		{"ternary without interactive branch", `<Tooltip>{open ? <span /> : <a>x</a>}</Tooltip>`, traverse.TriggerAnchorWithoutHref},
		{"children passed through", `<Tooltip>{children}</Tooltip>`, traverse.TriggerDynamic},
		{"call result", `<Tooltip>{renderTrigger()}</Tooltip>`, traverse.TriggerDynamic},
		{"literal expression", `<Tooltip>{"label"}</Tooltip>`, traverse.TriggerNotInteractive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseExpr(t, tt.src)
			tip := elementNamed(f, "Tooltip")
			require.NotNil(t, tip)
			got := traverse.ClassifyTrigger(tip)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
	assert.Equal(t, traverse.TriggerNotInteractive, traverse.ClassifyTrigger(nil))
}
