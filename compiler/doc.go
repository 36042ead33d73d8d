// Package compiler implements the Value Reader and the Patch Compiler:
// the two pieces that turn a parsed CST plus an RFC 6902 operation into
// concrete [edit.Edit] byte-range mutations, and that turn a CST subtree
// back into the ordered [value.Value] model for comparison and
// move/copy/test support.
//
// Navigation (get_node_by_path and friends) resolves a JSON Pointer
// against the CST by walking the grammar's own structure rather than a
// generic tree index: each node type knows which of its children a
// pointer segment can descend into, mirroring the pinned node-type
// vocabulary the CST Adapter exposes.
//
// The serializer (stringify_block and friends) renders a [value.Value]
// fragment as YAML text appropriate to the insertion point: block style
// when splicing into a block_mapping or block_sequence, flow style
// (JSON-compatible, since flow YAML is a superset of JSON syntax) when
// splicing into a flow_mapping or flow_sequence.
package compiler
