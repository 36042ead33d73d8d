package compiler

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/edit"
	"go.jacobcolvin.com/yamledit/jsonpatch"
	"go.jacobcolvin.com/yamledit/value"
)

// CompilePatch compiles every operation in ops, in order, against root
// into the full set of byte-range edits to apply. Every operation is
// compiled against the same original root: an operation does not see the
// edits produced by earlier operations in the same patch, so paths and
// move/copy/test values resolve against the document as it was before
// the patch. The first operation that fails aborts compilation.
func CompilePatch(root cst.Node, ops []jsonpatch.Operation) ([]edit.Edit, error) {
	var edits []edit.Edit

	for i, op := range ops {
		opEdits, err := CompileOperation(root, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path.String(), err)
		}

		edits = append(edits, opEdits...)
	}

	return edits, nil
}

// CompileOperation compiles a single patch operation into byte-range
// edits against root.
func CompileOperation(root cst.Node, op jsonpatch.Operation) ([]edit.Edit, error) {
	switch op.Op {
	case jsonpatch.OpAdd:
		return CompileAdd(root, op.Path.Segments, op.Value)
	case jsonpatch.OpRemove:
		return CompileRemove(root, op.Path.Segments)
	case jsonpatch.OpReplace:
		return CompileReplace(root, op.Path.Segments, op.Value)
	case jsonpatch.OpMove:
		return CompileMove(root, op.From.Segments, op.Path.Segments)
	case jsonpatch.OpCopy:
		return CompileCopy(root, op.From.Segments, op.Path.Segments)
	case jsonpatch.OpTest:
		return nil, CompileTest(root, op)
	default:
		return nil, fmt.Errorf("%w: op %q", ErrUnsupportedNode, op.Op)
	}
}

// CompileReplace compiles a "replace" operation against the node path
// resolves to.
func CompileReplace(root cst.Node, path []string, v value.Value) ([]edit.Edit, error) {
	node, err := getNodeByPath(root, path)
	if err != nil {
		return nil, err
	}

	switch node.Type() {
	case "block_mapping_pair":
		return replaceBlockMappingPair(node, v)

	case "flow_pair":
		valueNode, err := cst.Single(node.Field("value"))
		if err != nil {
			return nil, fmt.Errorf("compiler: flow_pair missing value: %w", err)
		}

		start, end := valueNode.Range()

		return []edit.Edit{edit.NewReplace(start, end, []byte(StringifyFlow(v)))}, nil

	case "block_sequence_item":
		indentation := blockIndentationOf(node)
		rendered := IndentBlock(StringifyBlockSequenceItem(v), indentation)

		if bytes.HasSuffix(node.Text(), []byte("\n")) {
			rendered += "\n"
		}

		sel := spanOf(node)
		sel = expandSuffixPattern(node, sel, `^[ \t]+`)

		return []edit.Edit{edit.NewReplace(sel.start, sel.end, []byte(rendered))}, nil

	case "document":
		start, end := node.Range()
		rendered := StringifyBlock(v) + "\n"

		return []edit.Edit{edit.NewReplace(start, end, []byte(rendered))}, nil

	default:
		return nil, fmt.Errorf("%w: replace on %s", ErrUnsupportedNode, node.Type())
	}
}

func replaceBlockMappingPair(node cst.Node, v value.Value) ([]edit.Edit, error) {
	start, end := node.Range()

	keyNode, err := cst.Single(node.Field("key"))
	if err != nil {
		return nil, fmt.Errorf("compiler: block_mapping_pair missing key: %w", err)
	}

	key := string(keyNode.Text())

	rendered := IndentBlock(StringifyBlockMappingPair(key, v), blockIndentationOf(node))

	var comment string

	if blockScalar, err := cst.Single(cst.Chain(cst.Children, cst.Type("block_scalar"))(node)); err == nil {
		if c, err := cst.Single(cst.Chain(cst.Children, cst.Type("comment"))(blockScalar)); err == nil {
			comment = string(c.Text())
		}
	}

	if next, ok := node.NextSibling(); ok && next.Type() == "comment" && rowOf(next) == rowOf(node) {
		comment = string(next.Text())
		_, commentEnd := next.Range()
		end = commentEnd
	}

	if comment != "" {
		if loc := regexp.MustCompile(`\n|$`).FindStringIndex(rendered); loc != nil {
			rendered = rendered[:loc[0]] + " " + comment + rendered[loc[0]:]
		}
	}

	if bytes.HasSuffix(node.Text(), []byte("\n")) {
		rendered += "\n"
	}

	return []edit.Edit{edit.NewReplace(start, end, []byte(rendered))}, nil
}

// CompileAdd compiles an "add" operation: path's last segment is the new
// key or index, the rest resolves to the container it is added to.
func CompileAdd(root cst.Node, path []string, v value.Value) ([]edit.Edit, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: add requires a non-root path", ErrPathNotFound)
	}

	parentPath, key := path[:len(path)-1], path[len(path)-1]

	parentNode, err := getNodeByPath(root, parentPath)
	if err != nil {
		return nil, err
	}

	container, err := resolveContainer(parentNode)
	if err != nil {
		return nil, err
	}

	switch container.Type() {
	case "block_mapping":
		fragment := StringifyBlockMappingPair(key, v)
		indentation := blockIndentationOf(container)
		text := Indent(fragment, indentation) + "\n"
		_, end := container.Range()

		return []edit.Edit{edit.NewInsert(end, []byte(text))}, nil

	case "block_sequence":
		items := cst.Chain(cst.Children, cst.Type("block_sequence_item"))(container)

		idx := len(items)

		if key != "-" {
			idx, err = strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid sequence index %q", ErrPathNotFound, key)
			}
		}

		fragment := StringifyBlockSequenceItem(v)

		if idx == len(items) {
			indentation := blockIndentationOf(container)
			text := Indent(fragment, indentation) + "\n"
			_, end := container.Range()

			return []edit.Edit{edit.NewInsert(end, []byte(text))}, nil
		}

		if idx < 0 || idx > len(items) {
			return nil, fmt.Errorf("%w: sequence index %d out of range", ErrPathNotFound, idx)
		}

		sibling := items[idx]
		indentation := indentationOf(sibling)
		text := IndentBlock(fragment, indentation) + "\n" + indentation
		start, _ := sibling.Range()

		return []edit.Edit{edit.NewInsert(start, []byte(text))}, nil

	case "flow_mapping":
		pairs := cst.Chain(cst.Children, cst.Type("flow_pair"))(container)

		fragment := fmt.Sprintf("%s: %s", key, StringifyFlow(v))

		if len(pairs) == 0 {
			start, _ := container.Range()

			return []edit.Edit{edit.NewInsert(start+1, []byte(fragment))}, nil
		}

		_, insertAt := pairs[len(pairs)-1].Range()

		return []edit.Edit{edit.NewInsert(insertAt, []byte(", "+fragment))}, nil

	case "flow_sequence":
		items := cst.Chain(cst.Children, cst.Type("flow_node"))(container)

		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid sequence index %q", ErrPathNotFound, key)
		}

		var insertAt int

		var prefix string

		if idx > 0 && idx-1 < len(items) {
			_, insertAt = items[idx-1].Range()
			prefix = ", "
		} else {
			start, _ := container.Range()
			insertAt = start + 1
		}

		return []edit.Edit{edit.NewInsert(insertAt, []byte(prefix+StringifyFlow(v)))}, nil

	default:
		return nil, fmt.Errorf("%w: add into %s", ErrUnsupportedNode, container.Type())
	}
}

// resolveContainer finds the block_mapping/block_sequence/flow_mapping/
// flow_sequence nested two levels beneath n -- n is the node
// getNodeByPath stopped at (document, block_mapping_pair,
// block_sequence_item, flow_pair...), one of whose direct children is a
// block_node or flow_node wrapper around the actual container.
func resolveContainer(n cst.Node) (cst.Node, error) {
	nodes := cst.Chain(
		cst.Children,
		cst.Union(
			cst.Chain(cst.Type("block_node"), cst.Children, cst.Union(cst.Type("block_sequence"), cst.Type("block_mapping"))),
			cst.Chain(cst.Type("flow_node"), cst.Children, cst.Union(cst.Type("flow_sequence"), cst.Type("flow_mapping"))),
		),
	)(n)

	container, err := cst.Single(nodes)
	if err != nil {
		return cst.Node{}, fmt.Errorf("%w: resolving container under %s", ErrAmbiguousPath, n.Type())
	}

	return container, nil
}

// CompileRemove compiles a "remove" operation against the node path
// resolves to.
func CompileRemove(root cst.Node, path []string) ([]edit.Edit, error) {
	node, err := getNodeByPath(root, path)
	if err != nil {
		return nil, err
	}

	switch node.Type() {
	case "block_mapping_pair":
		return removeBlockMappingPair(node)

	case "block_sequence_item":
		return removeBlockSequenceItem(node)

	case "flow_pair":
		return removeFlowPair(node), nil

	default:
		return nil, fmt.Errorf("%w: remove on %s", ErrUnsupportedNode, node.Type())
	}
}

// removeFlowPair removes a flow_pair and absorbs one neighboring comma so
// {a: 1, b: 2} loses the pair cleanly in either direction, preferring the
// comma that follows the pair and falling back to the one preceding it.
func removeFlowPair(node cst.Node) []edit.Edit {
	sel := spanOf(node)

	if expanded := expandSuffixPattern(node, sel, `^[ \t]*,`); expanded != sel {
		return []edit.Edit{edit.NewRemove(expanded.start, expanded.end)}
	}

	if expanded := expandPrefixPattern(node, sel, `,[ \t]*$`); expanded != sel {
		return []edit.Edit{edit.NewRemove(expanded.start, expanded.end)}
	}

	return []edit.Edit{edit.NewRemove(sel.start, sel.end)}
}

func removeBlockMappingPair(node cst.Node) ([]edit.Edit, error) {
	parent, hasParent := node.Parent()

	isOnly := false

	if hasParent {
		siblings := cst.Chain(cst.Type("block_mapping"), cst.Children, cst.Type("block_mapping_pair"))(parent)
		isOnly = len(siblings) == 1 && spanOf(siblings[0]) == spanOf(node)
	}

	if !isOnly {
		start, end := node.Range()
		return []edit.Edit{edit.NewRemove(start, end)}, nil
	}

	sel := spanOf(parent)
	sel = expandPrefixPattern(node, sel, `[ \t]*\n?[ \t]*$`)
	sel = expandSuffixPattern(node, sel, `^[ \t]+`)

	fragment := "{}"

	if comment, ok := findPrevComment(node); ok {
		text, _ := comment.Range()
		fragment += " " + string(comment.Text())
		sel.start = text
	}

	if isInsideSequenceItemOrPair(parent) {
		fragment = " " + fragment
	}

	if bytes.HasSuffix(parent.Text(), []byte("\n")) {
		fragment += "\n"
	}

	return []edit.Edit{edit.NewReplace(sel.start, sel.end, []byte(fragment))}, nil
}

func removeBlockSequenceItem(node cst.Node) ([]edit.Edit, error) {
	parent, hasParent := node.Parent()

	isOnly := false

	if hasParent {
		siblings := cst.Chain(cst.Type("block_sequence"), cst.Children, cst.Type("block_sequence_item"))(parent)
		isOnly = len(siblings) == 1 && spanOf(siblings[0]) == spanOf(node)
	}

	if !isOnly {
		sel := spanOf(node)
		sel = expandPrefixPattern(node, sel, `[ \t]*\n[ \t]*$`)

		return []edit.Edit{edit.NewRemove(sel.start, sel.end)}, nil
	}

	sel := spanOf(node)
	sel = expandPrefixPattern(node, sel, `[ \t]*\n[ \t]*$`)
	sel = expandSuffixPattern(node, sel, `^[ \t]*`)

	fragment := "[]"

	if comment, ok := findPrevComment(node); ok {
		start, _ := comment.Range()
		fragment += " " + string(comment.Text())
		sel.start = start
	}

	if isInsideSequenceItemOrPair(parent) {
		fragment = " " + fragment
	}

	if bytes.HasSuffix(node.Text(), []byte("\n")) {
		fragment += "\n"
	}

	return []edit.Edit{edit.NewReplace(sel.start, sel.end, []byte(fragment))}, nil
}

// findPrevComment looks for a comment node immediately preceding node in
// document order, so a removed container's own leading comment is
// preserved rather than silently dropped.
func findPrevComment(node cst.Node) (cst.Node, bool) {
	candidates := cst.PrevSiblingTransitive(node)
	for _, c := range candidates {
		if c.Type() == "comment" {
			return c, true
		}
	}

	return cst.Node{}, false
}

// isInsideSequenceItemOrPair reports whether the block container node
// sits directly inside a block_sequence_item or block_mapping_pair's
// value position, where collapsing it to "{}" / "[]" needs a leading
// space to stay separated from the preceding "-" or ":".
func isInsideSequenceItemOrPair(container cst.Node) bool {
	matches := cst.Chain(
		cst.Type("block_mapping"), cst.Parent, cst.Type("block_node"), cst.Parent,
		cst.Union(cst.Type("block_sequence_item"), cst.Type("block_mapping_pair")),
	)(container)

	if len(matches) > 0 {
		return true
	}

	matches = cst.Chain(
		cst.Type("block_sequence"), cst.Parent, cst.Type("block_node"), cst.Parent,
		cst.Union(cst.Type("block_sequence_item"), cst.Type("block_mapping_pair")),
	)(container)

	return len(matches) > 0
}

// CompileMove compiles a "move" operation as a read of the value at
// from, followed by a remove at from and an add at path.
func CompileMove(root cst.Node, from, path []string) ([]edit.Edit, error) {
	rootValue, err := ReadValue(root)
	if err != nil {
		return nil, err
	}

	v, err := getValueByPath(rootValue, from)
	if err != nil {
		return nil, err
	}

	removeEdits, err := CompileRemove(root, from)
	if err != nil {
		return nil, err
	}

	addEdits, err := CompileAdd(root, path, v)
	if err != nil {
		return nil, err
	}

	return append(removeEdits, addEdits...), nil
}

// CompileCopy compiles a "copy" operation as a read of the value at from
// followed by an add at path.
func CompileCopy(root cst.Node, from, path []string) ([]edit.Edit, error) {
	rootValue, err := ReadValue(root)
	if err != nil {
		return nil, err
	}

	v, err := getValueByPath(rootValue, from)
	if err != nil {
		return nil, err
	}

	return CompileAdd(root, path, v)
}

// CompileTest resolves path and compares the node's value against v,
// returning a *TestFailure if they differ or the path does not resolve.
func CompileTest(root cst.Node, op jsonpatch.Operation) error {
	node, err := getNodeByPath(root, op.Path.Segments)
	if err != nil {
		return &TestFailure{Operation: op}
	}

	if node.Type() == "block_mapping_pair" || node.Type() == "flow_pair" {
		valueNode, err := cst.Single(node.Field("value"))
		if err != nil {
			return &TestFailure{Operation: op}
		}

		node = valueNode
	}

	got, err := ReadValue(node)
	if err != nil {
		return &TestFailure{Operation: op}
	}

	if !got.Equal(op.Value) {
		return &TestFailure{Operation: op}
	}

	return nil
}
