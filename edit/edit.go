package edit

import (
	"slices"
)

// Kind discriminates the variant held by an [Edit].
type Kind int

// The variants of [Edit].
const (
	Replace Kind = iota
	Insert
	Remove
)

// Edit is a byte-range mutation against the original parse-time buffer.
// Start and End are always expressed in the coordinates of that original
// buffer, never of a partially-rewritten one.
//
//   - Replace{Start, End, Bytes}: substitute [Start, End) with Bytes.
//   - Insert{At, Bytes}: splice Bytes in before offset At.
//   - Remove{Start, End}: delete [Start, End).
type Edit struct {
	Kind  Kind
	Start int
	End   int
	Bytes []byte
}

// NewReplace builds a Replace edit.
func NewReplace(start, end int, bytes []byte) Edit {
	return Edit{Kind: Replace, Start: start, End: end, Bytes: bytes}
}

// NewInsert builds an Insert edit anchored at at.
func NewInsert(at int, bytes []byte) Edit {
	return Edit{Kind: Insert, Start: at, End: at, Bytes: bytes}
}

// NewRemove builds a Remove edit over [start, end).
func NewRemove(start, end int) Edit {
	return Edit{Kind: Remove, Start: start, End: end}
}

// anchor returns the offset edits are sorted by: the sole coordinate for
// Insert/Remove, the start offset for Replace.
func (e Edit) anchor() int {
	return e.Start
}

// Apply sorts edits by descending start offset and folds them over
// source, producing the rewritten document. Because edits are applied
// from the highest offset down, a lower-offset edit's anchor is never
// shifted by one applied after it.
//
// Apply does not validate that edits are non-overlapping (spec.md's
// Edit non-overlap invariant is the Patch Compiler's responsibility to
// uphold per operation); overlapping edits from independent operations
// in the same patch will produce whatever a reverse-offset splice implies
// for the given ranges.
func Apply(source []byte, edits []Edit) []byte {
	ordered := slices.Clone(edits)
	slices.SortStableFunc(ordered, func(a, b Edit) int {
		return b.anchor() - a.anchor()
	})

	result := slices.Clone(source)

	for _, e := range ordered {
		switch e.Kind {
		case Replace:
			result = spliceReplace(result, e.Start, e.End, e.Bytes)
		case Insert:
			result = spliceReplace(result, e.Start, e.Start, e.Bytes)
		case Remove:
			result = spliceReplace(result, e.Start, e.End, nil)
		}
	}

	return result
}

func spliceReplace(buf []byte, start, end int, content []byte) []byte {
	out := make([]byte, 0, len(buf)-(end-start)+len(content))
	out = append(out, buf[:start]...)
	out = append(out, content...)
	out = append(out, buf[end:]...)

	return out
}
