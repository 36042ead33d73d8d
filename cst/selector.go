package cst

import (
	"errors"
	"fmt"
)

// Selector maps a single node to zero or more result nodes. It is the
// building block the Patch Compiler composes to describe "the key node
// of this mapping pair" or "the comment attached just before this node"
// without a bespoke recursive walk per grammar shape.
type Selector func(Node) []Node

// Children selects every direct child, named and anonymous.
func Children(n Node) []Node {
	return n.Children()
}

// NamedChildren selects only the grammar's named children.
func NamedChildren(n Node) []Node {
	return n.NamedChildren()
}

// Parent selects the node's parent, or nothing for the root.
func Parent(n Node) []Node {
	if p, ok := n.Parent(); ok {
		return []Node{p}
	}

	return nil
}

// PrevSibling selects the immediately preceding sibling, named or
// anonymous, or nothing if n is its parent's first child.
func PrevSibling(n Node) []Node {
	if p, ok := n.PrevSibling(); ok {
		return []Node{p}
	}

	return nil
}

// PrevSiblingTransitive selects the nearest preceding node in document
// order: n's own previous sibling if it has one, otherwise its parent's
// previous sibling, walking up as many levels as needed. This is what
// lets a leading comment attached above a wrapping block_node still be
// found as "the node before" the mapping pair nested inside it.
func PrevSiblingTransitive(n Node) []Node {
	cur := n

	for {
		if sib, ok := cur.PrevSibling(); ok {
			return []Node{sib}
		}

		parent, ok := cur.Parent()
		if !ok {
			return nil
		}

		cur = parent
	}
}

// Field selects the child bound to the named grammar field, e.g.
// Field("key") on a block_mapping_pair.
func Field(name string) Selector {
	return func(n Node) []Node {
		return n.Field(name)
	}
}

// Type selects n itself if its grammar type is one of types, otherwise
// nothing. Used inside a [Chain] as a type-narrowing predicate, e.g.
// requiring a "value" field to resolve to a "block_mapping" before
// descending into its pairs.
func Type(types ...string) Selector {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}

	return func(n Node) []Node {
		if n.IsZero() {
			return nil
		}

		if _, ok := set[n.Type()]; ok {
			return []Node{n}
		}

		return nil
	}
}

// Filter selects n itself if pred applied to n yields at least one
// result, otherwise nothing. Unlike [Type], pred can be an arbitrary
// selector, so Filter(Field("key")) keeps only nodes that have a key
// field at all.
func Filter(pred Selector) Selector {
	return func(n Node) []Node {
		if len(pred(n)) > 0 {
			return []Node{n}
		}

		return nil
	}
}

// Union selects the concatenation of every selector's results against n,
// in order, with duplicates removed: a node already produced by an
// earlier selector (identified by its byte range) is skipped when a
// later selector produces it again.
func Union(selectors ...Selector) Selector {
	return func(n Node) []Node {
		var out []Node

		seen := make(map[[2]int]struct{})

		for _, s := range selectors {
			for _, node := range s(n) {
				start, end := node.Range()
				key := [2]int{start, end}

				if _, ok := seen[key]; ok {
					continue
				}

				seen[key] = struct{}{}
				out = append(out, node)
			}
		}

		return out
	}
}

// Chain composes selectors left to right: the first selector runs
// against the input node, the second runs against every node the first
// produced, and so on, with results flattened at each step. Chain() with
// no selectors is the identity selector.
func Chain(selectors ...Selector) Selector {
	return func(n Node) []Node {
		cur := []Node{n}

		for _, s := range selectors {
			var next []Node
			for _, c := range cur {
				next = append(next, s(c)...)
			}

			cur = next
		}

		return cur
	}
}

// ErrNotSingle indicates a selector expected to resolve to exactly one
// node did not.
var ErrNotSingle = errors.New("cst: selector did not resolve to a single node")

// Single requires nodes to hold exactly one element and returns it.
func Single(nodes []Node) (Node, error) {
	if len(nodes) != 1 {
		return Node{}, fmt.Errorf("%w: got %d", ErrNotSingle, len(nodes))
	}

	return nodes[0], nil
}
