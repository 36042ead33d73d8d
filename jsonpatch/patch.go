package jsonpatch

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.jacobcolvin.com/yamledit/value"
)

// ErrMalformedPatch indicates a patch operation object is missing a
// required member or carries an unknown "op".
var ErrMalformedPatch = errors.New("malformed json patch")

// Op names one of the six RFC 6902 patch verbs.
type Op string

// The six patch verbs.
const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
	OpMove    Op = "move"
	OpCopy    Op = "copy"
	OpTest    Op = "test"
)

// Operation is a single RFC 6902 patch operation. Which of Path/From/Value
// are meaningful depends on Op:
//
//   - add, replace, test: Path and Value.
//   - remove: Path only.
//   - move, copy: From and Path.
type Operation struct {
	Op    Op
	Path  Pointer
	From  Pointer
	Value value.Value
}

// rawOperation mirrors the wire shape of a single patch object. Value is
// kept as a json.RawMessage so it can be decoded through [value.Decode],
// which -- unlike encoding/json's generic map[string]any target --
// preserves object key order and the int/float distinction.
type rawOperation struct {
	Op    string          `json:"op"`
	Path  *string         `json:"path"`
	From  *string         `json:"from"`
	Value json.RawMessage `json:"value"`
}

// ParsePatch decodes a JSON array of patch operation objects, in the
// order they appear, into an ordered []Operation.
func ParsePatch(data []byte) ([]Operation, error) {
	var raws []rawOperation

	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPatch, err)
	}

	ops := make([]Operation, 0, len(raws))

	for i, raw := range raws {
		op, err := parseOperation(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: operation %d: %w", ErrMalformedPatch, i, err)
		}

		ops = append(ops, op)
	}

	return ops, nil
}

func parseOperation(raw rawOperation) (Operation, error) {
	switch Op(raw.Op) {
	case OpAdd, OpReplace, OpTest:
		if raw.Path == nil {
			return Operation{}, fmt.Errorf("%w: %q requires path", ErrMalformedPatch, raw.Op)
		}

		if len(raw.Value) == 0 {
			return Operation{}, fmt.Errorf("%w: %q requires value", ErrMalformedPatch, raw.Op)
		}

		path, err := ParsePointer(*raw.Path)
		if err != nil {
			return Operation{}, err
		}

		val, err := value.Decode(raw.Value)
		if err != nil {
			return Operation{}, err
		}

		return Operation{Op: Op(raw.Op), Path: path, Value: val}, nil

	case OpRemove:
		if raw.Path == nil {
			return Operation{}, fmt.Errorf("%w: %q requires path", ErrMalformedPatch, raw.Op)
		}

		path, err := ParsePointer(*raw.Path)
		if err != nil {
			return Operation{}, err
		}

		return Operation{Op: OpRemove, Path: path}, nil

	case OpMove, OpCopy:
		if raw.From == nil {
			return Operation{}, fmt.Errorf("%w: %q requires from", ErrMalformedPatch, raw.Op)
		}

		if raw.Path == nil {
			return Operation{}, fmt.Errorf("%w: %q requires path", ErrMalformedPatch, raw.Op)
		}

		from, err := ParsePointer(*raw.From)
		if err != nil {
			return Operation{}, err
		}

		path, err := ParsePointer(*raw.Path)
		if err != nil {
			return Operation{}, err
		}

		return Operation{Op: Op(raw.Op), From: from, Path: path}, nil

	case "":
		return Operation{}, fmt.Errorf("%w: missing op", ErrMalformedPatch)

	default:
		return Operation{}, fmt.Errorf("%w: unknown op %q", ErrMalformedPatch, raw.Op)
	}
}
