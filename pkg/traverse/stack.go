// Package traverse implements the context checks that depend on a node's
// position in the tree: direct-parent tracking, text adjacency, and
// interactivity of descendants.
package traverse

// AncestorStack tracks the names of currently open elements. The owner
// pushes on element open and pops on element close; it is not safe for
// concurrent use.
type AncestorStack struct {
	names []string
}

// Push records an opened element.
func (s *AncestorStack) Push(name string) {
	s.names = append(s.names, name)
}

// Pop removes and returns the innermost open element. Popping an empty
// stack returns "" and false.
func (s *AncestorStack) Pop() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	top := s.names[len(s.names)-1]
	s.names = s.names[:len(s.names)-1]
	return top, true
}

// Top returns the innermost open element, or "" when the stack is empty.
func (s *AncestorStack) Top() string {
	if len(s.names) == 0 {
		return ""
	}
	return s.names[len(s.names)-1]
}

// Len returns the number of open elements.
func (s *AncestorStack) Len() int {
	return len(s.names)
}

// IsDirectChildOf reports whether the innermost open element is one of
// parents. It must be called before pushing the child itself.
func (s *AncestorStack) IsDirectChildOf(parents ...string) bool {
	top := s.Top()
	if top == "" {
		return false
	}
	for _, p := range parents {
		if p == top {
			return true
		}
	}
	return false
}

// Names returns a copy of the stack, outermost first.
func (s *AncestorStack) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
