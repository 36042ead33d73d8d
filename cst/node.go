package cst

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Node is a read-only view over a single tree-sitter node together with
// the source buffer it was parsed from.
type Node struct {
	ts  *tree_sitter.Node
	src []byte
}

// IsZero reports whether n holds no underlying tree-sitter node, the
// result of a selector step that found nothing.
func (n Node) IsZero() bool {
	return n.ts == nil
}

// Type returns the grammar node type, e.g. "block_mapping_pair".
func (n Node) Type() string {
	if n.IsZero() {
		return ""
	}

	return n.ts.Kind()
}

// Range returns the half-open byte range [start, end) the node spans in
// the source buffer.
func (n Node) Range() (start, end int) {
	if n.IsZero() {
		return 0, 0
	}

	return int(n.ts.StartByte()), int(n.ts.EndByte())
}

// Text returns the source bytes the node spans.
func (n Node) Text() []byte {
	if n.IsZero() {
		return nil
	}

	start, end := n.Range()

	return n.src[start:end]
}

// StartRow returns the zero-based source line the node begins on.
func (n Node) StartRow() int {
	if n.IsZero() {
		return 0
	}

	return int(n.ts.StartPosition().Row)
}

// EndRow returns the zero-based source line the node ends on.
func (n Node) EndRow() int {
	if n.IsZero() {
		return 0
	}

	return int(n.ts.EndPosition().Row)
}

// StartColumn returns the zero-based column the node begins at.
func (n Node) StartColumn() int {
	if n.IsZero() {
		return 0
	}

	return int(n.ts.StartPosition().Column)
}

// IsError reports whether the node is a parse error or a missing-node
// placeholder tree-sitter inserted to recover from one.
func (n Node) IsError() bool {
	if n.IsZero() {
		return false
	}

	return n.ts.IsError() || n.ts.IsMissing()
}

// Children returns every direct child, named and anonymous alike (so
// punctuation and comment tokens are included).
func (n Node) Children() []Node {
	if n.IsZero() {
		return nil
	}

	count := n.ts.ChildCount()
	out := make([]Node, 0, count)

	for i := range count {
		child := n.ts.Child(i)
		if child == nil {
			continue
		}

		out = append(out, Node{ts: child, src: n.src})
	}

	return out
}

// NamedChildren returns only the grammar's named children, skipping
// anonymous tokens such as ":", "-", and flow punctuation.
func (n Node) NamedChildren() []Node {
	if n.IsZero() {
		return nil
	}

	count := n.ts.NamedChildCount()
	out := make([]Node, 0, count)

	for i := range count {
		child := n.ts.NamedChild(i)
		if child == nil {
			continue
		}

		out = append(out, Node{ts: child, src: n.src})
	}

	return out
}

// Field returns the child (or children, for a repeated field) bound to
// the grammar field name, e.g. "key" or "value" on a block_mapping_pair.
// tree-sitter-yaml's grammar declares these as singular fields, so the
// result holds at most one node, but callers should treat it as the
// zero-or-more sequence the selector layer expects.
func (n Node) Field(name string) []Node {
	if n.IsZero() {
		return nil
	}

	child := n.ts.ChildByFieldName(name)
	if child == nil {
		return nil
	}

	return []Node{{ts: child, src: n.src}}
}

// Parent returns the node's parent, or the zero Node if n is the root.
func (n Node) Parent() (Node, bool) {
	if n.IsZero() {
		return Node{}, false
	}

	parent := n.ts.Parent()
	if parent == nil {
		return Node{}, false
	}

	return Node{ts: parent, src: n.src}, true
}

// PrevSibling returns the sibling immediately before n among its
// parent's direct children, named or anonymous.
func (n Node) PrevSibling() (Node, bool) {
	if n.IsZero() {
		return Node{}, false
	}

	sib := n.ts.PrevSibling()
	if sib == nil {
		return Node{}, false
	}

	return Node{ts: sib, src: n.src}, true
}

// NextSibling returns the sibling immediately after n among its
// parent's direct children, named or anonymous.
func (n Node) NextSibling() (Node, bool) {
	if n.IsZero() {
		return Node{}, false
	}

	sib := n.ts.NextSibling()
	if sib == nil {
		return Node{}, false
	}

	return Node{ts: sib, src: n.src}, true
}

// PrevNamedSibling returns the nearest preceding named sibling, skipping
// anonymous tokens such as ":" and "-".
func (n Node) PrevNamedSibling() (Node, bool) {
	if n.IsZero() {
		return Node{}, false
	}

	sib := n.ts.PrevNamedSibling()
	if sib == nil {
		return Node{}, false
	}

	return Node{ts: sib, src: n.src}, true
}
