package cst

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
)

// Document is a parsed YAML source buffer. It owns the tree-sitter
// parser and tree for as long as the document is alive; Close must be
// called once the CST is no longer needed to free the underlying C
// memory.
type Document struct {
	parser *tree_sitter.Parser
	tree   *tree_sitter.Tree
	src    []byte
}

// Parse runs tree-sitter-yaml over source and returns the resulting
// Document. The returned CST may contain error/missing nodes rather than
// failing outright -- tree-sitter always produces a tree, recovering
// from malformed input with placeholder nodes -- so callers that need to
// reject invalid YAML should walk the tree with [Node.IsError].
func Parse(source []byte) (*Document, error) {
	parser := tree_sitter.NewParser()

	lang := tree_sitter.NewLanguage(tree_sitter_yaml.Language())
	if err := parser.SetLanguage(lang); err != nil {
		parser.Close()
		return nil, fmt.Errorf("cst: set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		parser.Close()
		return nil, fmt.Errorf("cst: parse produced no tree")
	}

	return &Document{parser: parser, tree: tree, src: source}, nil
}

// Root returns the tree's root node, typically a "stream" node.
func (d *Document) Root() Node {
	return Node{ts: d.tree.RootNode(), src: d.src}
}

// Source returns the original buffer the document was parsed from.
func (d *Document) Source() []byte {
	return d.src
}

// Close releases the tree-sitter tree and parser. The Document and any
// Node obtained from it must not be used afterward.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
	}

	if d.parser != nil {
		d.parser.Close()
	}
}
