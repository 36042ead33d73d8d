// Package yamledit applies RFC 6902 JSON Patch operations to YAML
// documents by editing the parsed concrete syntax tree directly, so
// comments, key order, indentation, and block/flow style survive
// everywhere the patch doesn't touch.
//
// [ApplyPatch] is the package's single entry point: parse the operations
// with [go.jacobcolvin.com/yamledit/jsonpatch.ParsePatch], then apply
// them against a source document's bytes.
//
//  1. tree-sitter-yaml parses source into a CST ([cst.Document]).
//  2. Each operation resolves its path/from pointer against the CST
//     ([compiler] navigation) and compiles to one or more byte-range
//     [edit.Edit]s.
//  3. Once every operation has compiled, [edit.Apply] folds all edits
//     over the original buffer in a single pass.
//
// move/copy/test read the value at "from" (or "path", for test) through
// the Value Reader before any edit is produced, so they see the document
// as it stood when ApplyPatch was called, not a partially-rewritten one.
// The same holds for every operation's pointers: ApplyPatch does not
// re-parse between operations, so an operation does not observe the
// effect of earlier operations in the same patch.
package yamledit

import (
	"fmt"

	"go.jacobcolvin.com/yamledit/compiler"
	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/edit"
	"go.jacobcolvin.com/yamledit/jsonpatch"
)

// ApplyPatch parses source as YAML, applies ops in order, and returns the
// rewritten document bytes. If any "test" operation fails, ApplyPatch
// returns a *[compiler.TestFailure] wrapped with context and no bytes;
// the source is left conceptually unmodified since no output is
// produced.
func ApplyPatch(source []byte, ops []jsonpatch.Operation) ([]byte, error) {
	doc, err := cst.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("yamledit: %w", err)
	}
	defer doc.Close()

	root := doc.Root()

	if errNode, ok := firstError(root); ok {
		start, end := errNode.Range()
		return nil, fmt.Errorf("%w: near byte %d-%d", ErrParseError, start, end)
	}

	edits, err := compiler.CompilePatch(root, ops)
	if err != nil {
		return nil, fmt.Errorf("yamledit: %w", err)
	}

	return edit.Apply(source, edits), nil
}

// firstError reports the first parse-error or missing node found in a
// depth-first walk of n, if any.
func firstError(n cst.Node) (cst.Node, bool) {
	if n.IsError() {
		return n, true
	}

	for _, child := range n.Children() {
		if errNode, ok := firstError(child); ok {
			return errNode, true
		}
	}

	return cst.Node{}, false
}
