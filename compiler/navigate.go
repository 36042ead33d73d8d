package compiler

import (
	"fmt"
	"strconv"

	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/value"
)

// converge descends through the grammar's transparent wrapper node types
// -- stream, document, block_node, flow_node, plain_scalar -- to the
// single substantive child beneath them, skipping comment and anchor
// children along the way so a trailing "# comment" or "&anchor" never
// gets mistaken for the node's real content.
func converge(n cst.Node) (cst.Node, error) {
	switch n.Type() {
	case "stream", "document", "block_node", "flow_node", "plain_scalar":
		var substantive []cst.Node

		for _, child := range n.Children() {
			if child.Type() == "comment" || child.Type() == "anchor" {
				continue
			}

			substantive = append(substantive, child)
		}

		child, err := cst.Single(substantive)
		if err != nil {
			return cst.Node{}, fmt.Errorf("compiler: converge %s: %w", n.Type(), err)
		}

		return converge(child)
	default:
		return n, nil
	}
}

// keyFieldMatches reports whether pair's key field, read as a flow-style
// scalar, equals name. Mapping keys in the node types this navigates
// (block_mapping_pair) are always flow_node scalars.
func keyFieldMatches(pair cst.Node, name string) bool {
	keyNodes := cst.Chain(cst.Field("key"), cst.Type("flow_node"), cst.Children)(pair)

	for _, candidate := range keyNodes {
		v, err := ReadValue(candidate)
		if err != nil {
			continue
		}

		if v.Kind == value.String && v.Str == name {
			return true
		}
	}

	return false
}

// getNodeByName resolves a single JSON Pointer segment against node,
// descending through whichever of the grammar's container shapes node
// converges to.
func getNodeByName(node cst.Node, name string) (cst.Node, error) {
	node, err := converge(node)
	if err != nil {
		return cst.Node{}, err
	}

	switch node.Type() {
	case "block_mapping":
		var match cst.Node

		found := false

		for _, pair := range cst.Chain(cst.Children, cst.Type("block_mapping_pair"))(node) {
			if keyFieldMatches(pair, name) {
				match = pair
				found = true

				break
			}
		}

		if !found {
			return cst.Node{}, fmt.Errorf("%w: key %q", ErrPathNotFound, name)
		}

		return match, nil

	case "block_sequence":
		items := cst.Chain(cst.Children, cst.Type("block_sequence_item"))(node)

		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= len(items) {
			return cst.Node{}, fmt.Errorf("%w: index %q", ErrPathNotFound, name)
		}

		return items[idx], nil

	case "flow_mapping":
		for _, pair := range cst.Chain(cst.Children, cst.Type("flow_pair"))(node) {
			keyNode, err := cst.Single(pair.Field("key"))
			if err != nil {
				continue
			}

			v, err := ReadValue(keyNode)
			if err != nil {
				continue
			}

			if v.Kind == value.String && v.Str == name {
				return pair, nil
			}
		}

		return cst.Node{}, fmt.Errorf("%w: key %q", ErrPathNotFound, name)

	case "flow_sequence":
		items := cst.Chain(cst.Children, cst.Type("flow_node"))(node)

		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= len(items) {
			return cst.Node{}, fmt.Errorf("%w: index %q", ErrPathNotFound, name)
		}

		return items[idx], nil

	case "block_mapping_pair", "flow_pair":
		valueNode, err := cst.Single(node.Field("value"))
		if err != nil {
			return cst.Node{}, fmt.Errorf("%w: no value field on %s", ErrPathNotFound, node.Type())
		}

		return getNodeByName(valueNode, name)

	case "block_sequence_item":
		child, err := cst.Single(cst.Union(cst.Type("block_node"), cst.Type("flow_node"))(node))
		if err != nil {
			return cst.Node{}, fmt.Errorf("%w: %s has no value child", ErrPathNotFound, node.Type())
		}

		return getNodeByName(child, name)

	default:
		return cst.Node{}, fmt.Errorf("%w: cannot navigate in %s", ErrUnsupportedNode, node.Type())
	}
}

// getNodeByPath resolves every pointer segment in path, in order,
// against root.
func getNodeByPath(root cst.Node, path []string) (cst.Node, error) {
	node := root
	if node.Type() == "stream" {
		if children := node.NamedChildren(); len(children) > 0 {
			node = children[0]
		}
	}

	for _, segment := range path {
		next, err := getNodeByName(node, segment)
		if err != nil {
			return cst.Node{}, err
		}

		node = next
	}

	return node, nil
}

// getValueByPath indexes into an already-read [value.Value] document the
// same way getNodeByPath indexes into a CST, used by move/copy to read
// the source value before the remove half of the operation runs.
func getValueByPath(root value.Value, path []string) (value.Value, error) {
	cur := root

	for _, segment := range path {
		switch cur.Kind {
		case value.Mapping:
			v, ok := cur.Map.Get(segment)
			if !ok {
				return value.Value{}, fmt.Errorf("%w: key %q", ErrPathNotFound, segment)
			}

			cur = v

		case value.Sequence:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(cur.Seq) {
				return value.Value{}, fmt.Errorf("%w: index %q", ErrPathNotFound, segment)
			}

			cur = cur.Seq[idx]

		default:
			return value.Value{}, fmt.Errorf("%w: cannot index into %s", ErrPathNotFound, cur.Kind)
		}
	}

	return cur, nil
}
