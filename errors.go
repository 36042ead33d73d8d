package yamledit

import "errors"

// ErrParseError indicates the source text could not be parsed as YAML --
// tree-sitter reported at least one error or missing node in the tree.
var ErrParseError = errors.New("yamledit: invalid yaml")

// ErrReadInput and ErrWriteOutput wrap I/O failures at the CLI boundary,
// kept distinct from the core document errors above so a caller can tell
// "the file system misbehaved" from "the patch or document was bad".
var (
	ErrReadInput   = errors.New("yamledit: failed to read input")
	ErrWriteOutput = errors.New("yamledit: failed to write output")
)
