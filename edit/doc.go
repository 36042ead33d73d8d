// Package edit implements the byte-range [Edit] type and the Edit
// Applicator: given the original source buffer and a set of edits whose
// ranges refer to it, it produces the rewritten document.
//
// Edits are applied from highest offset to lowest so that earlier
// (lower-offset) edits' anchors remain valid -- the parse tree is never
// re-indexed, it is simply discarded once the new bytes exist.
package edit
