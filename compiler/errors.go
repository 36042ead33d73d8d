package compiler

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/jsonpatch"
)

// ErrPathNotFound indicates a JSON Pointer does not resolve to any node
// or value in the document.
var ErrPathNotFound = errors.New("compiler: path not found")

// ErrAmbiguousPath indicates a navigation step that should resolve to a
// single child found more than one candidate, signaling a grammar or
// document anomaly rather than an ordinary missing-path condition. It
// wraps [cst.ErrNotSingle], the selector layer's lower-level version of
// the same failure.
var ErrAmbiguousPath = fmt.Errorf("compiler: ambiguous path: %w", cst.ErrNotSingle)

// ErrUnsupportedNode indicates navigation or reading reached a grammar
// node type this compiler has no rule for.
var ErrUnsupportedNode = errors.New("compiler: unsupported node type")

// ErrInvalidValue indicates a scalar node's text could not be read as
// the value its node type implies, e.g. an integer_scalar whose text
// isn't a valid integer lexeme.
var ErrInvalidValue = errors.New("compiler: invalid scalar value")

// ErrTestFailure is the sentinel a [*TestFailure] unwraps to, so callers
// can check the failure class with errors.Is without a type assertion.
var ErrTestFailure = errors.New("compiler: test failed")

// TestFailure is returned by [CompileTest] when a "test" operation's
// expected value does not match the document, or its path does not
// resolve at all.
type TestFailure struct {
	Operation jsonpatch.Operation
}

func (e *TestFailure) Error() string {
	return fmt.Sprintf("%s: %q", ErrTestFailure, e.Operation.Path.String())
}

func (e *TestFailure) Unwrap() error {
	return ErrTestFailure
}
