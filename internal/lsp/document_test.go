package lsp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///src/Button.tsx"
	content := "export const x = <Button />"

	store.Open(uri, content, 1)

	doc := store.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///src/Button.tsx"
	store.Open(uri, "a", 1)
	before := store.Get(uri)

	store.Update(uri, "b\nc", 2)

	doc := store.Get(uri)
	assert.Equal(t, "b\nc", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, []int{0, 2}, doc.Lines)
	assert.Equal(t, "a", before.Content, "earlier snapshots are not modified")

	// Unknown documents are not created by updates
	store.Update("file:///other.tsx", "x", 1)
	assert.Nil(t, store.Get("file:///other.tsx"))
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///c.tsx", "", 1)
	store.Open("file:///a.tsx", "", 1)
	store.Open("file:///b.tsx", "", 1)

	assert.Equal(t, []string{"file:///a.tsx", "file:///b.tsx", "file:///c.tsx"}, store.List())
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"a\nb\nc", []int{0, 2, 4}},
		{"\n\n\n", []int{0, 1, 2, 3}},
		{"line1\nline2\nline3", []int{0, 6, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeLineOffsets(tt.content))
		})
	}
}

func TestDocument_Positions(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units
	doc := newDocument("file:///a.tsx", "ab\né😀x\n", 1)

	tests := []struct {
		name   string
		offset int
		pos    Position
	}{
		{name: "start", offset: 0, pos: Position{Line: 0, Character: 0}},
		{name: "end of first line", offset: 2, pos: Position{Line: 0, Character: 2}},
		{name: "second line start", offset: 3, pos: Position{Line: 1, Character: 0}},
		{name: "after two byte rune", offset: 5, pos: Position{Line: 1, Character: 1}},
		{name: "after surrogate pair", offset: 9, pos: Position{Line: 1, Character: 3}},
		{name: "after x", offset: 10, pos: Position{Line: 1, Character: 4}},
		{name: "end of document", offset: 11, pos: Position{Line: 2, Character: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset))
			assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos))
		})
	}
}

func TestDocument_PositionClamping(t *testing.T) {
	doc := newDocument("file:///a.tsx", "ab\ncd", 1)

	assert.Equal(t, 2, doc.PositionToOffset(Position{Line: 0, Character: 10}), "clamps to line end")
	assert.Equal(t, 5, doc.PositionToOffset(Position{Line: 9, Character: 0}), "clamps to document end")
	assert.Equal(t, Position{Line: 0, Character: 0}, doc.OffsetToPosition(-1))
	assert.Equal(t, Position{Line: 1, Character: 2}, doc.OffsetToPosition(100))
}

func TestDocument_GetLine(t *testing.T) {
	doc := newDocument("file:///a.tsx", "first\nsecond\n", 1)

	assert.Equal(t, "first", doc.GetLine(0))
	assert.Equal(t, "second", doc.GetLine(1))
	assert.Equal(t, "", doc.GetLine(2))
	assert.Equal(t, "", doc.GetLine(-1))
	assert.Equal(t, "", doc.GetLine(5))
}

func TestDocument_GetTextInRange(t *testing.T) {
	doc := newDocument("file:///a.tsx", "<Box mr={2} />", 1)

	got := doc.GetTextInRange(Range{
		Start: Position{Line: 0, Character: 5},
		End:   Position{Line: 0, Character: 11},
	})
	assert.Equal(t, "mr={2}", got)
	assert.Equal(t, "", doc.GetTextInRange(Range{Start: Position{Character: 3}, End: Position{Character: 1}}))
}

func TestURIConversion(t *testing.T) {
	path := filepath.Join(string(filepath.Separator)+"tmp", "my app", "Button.tsx")

	uri := PathToURI(path)
	assert.Equal(t, "file:///tmp/my%20app/Button.tsx", uri)
	assert.Equal(t, path, URIToPath(uri))

	assert.Equal(t, uri, PathToURI(uri), "URIs pass through")
	assert.Equal(t, "untitled:Untitled-1", URIToPath("untitled:Untitled-1"))
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Position{Line: 1, Character: 4}, End: Position{Line: 2, Character: 2}}

	assert.True(t, r.Contains(Position{Line: 1, Character: 4}))
	assert.True(t, r.Contains(Position{Line: 1, Character: 80}))
	assert.True(t, r.Contains(Position{Line: 2, Character: 2}))
	assert.False(t, r.Contains(Position{Line: 1, Character: 3}))
	assert.False(t, r.Contains(Position{Line: 2, Character: 3}))
	assert.False(t, r.Contains(Position{Line: 0, Character: 9}))
}

func TestCodeActionKind_Includes(t *testing.T) {
	assert.True(t, CodeActionKindSource.Includes(CodeActionKindFixAllPrimer))
	assert.True(t, CodeActionKindSourceFixAll.Includes(CodeActionKindFixAllPrimer))
	assert.True(t, CodeActionKindQuickFix.Includes(CodeActionKindQuickFix))
	assert.False(t, CodeActionKindQuickFix.Includes(CodeActionKindFixAllPrimer))
	assert.False(t, CodeActionKind("source.fix").Includes(CodeActionKindSourceFixAll))
}
