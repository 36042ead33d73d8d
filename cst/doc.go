// Package cst implements the CST Adapter: a uniform, read-only view over
// a tree-sitter-yaml parse tree, plus the selector combinator layer used
// to express the Patch Compiler's node-navigation rules without a
// recursive-descent function per node type.
//
// [Node] wraps *tree_sitter.Node together with the source buffer it was
// parsed from, so Text/Range/sibling/field access never needs the buffer
// threaded through separately. [Document] owns the parser and tree for
// the lifetime of a single parse -- callers must [Document.Close] it when
// done, releasing the tree-sitter C resources.
//
// The grammar vocabulary this package assumes -- node types stream,
// document, block_node, flow_node, block_mapping, block_mapping_pair,
// block_sequence, block_sequence_item, block_scalar, flow_mapping,
// flow_pair, flow_sequence, plain_scalar, flow_scalar, null_scalar,
// boolean_scalar, integer_scalar, float_scalar, string_scalar,
// single_quote_scalar, double_quote_scalar, comment, anchor, with key and
// value fields -- is exactly what
// github.com/tree-sitter-grammars/tree-sitter-yaml produces.
package cst
