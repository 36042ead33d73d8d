// Package jsonpatch implements the RFC 6901 JSON Pointer and RFC 6902 JSON
// Patch wire formats used to describe edits against a logical JSON data
// model.
//
// [Pointer] parses and renders pointer text. [Operation] is a tagged union
// over the six patch verbs ("add", "remove", "replace", "move", "copy",
// "test"); [ParsePatch] decodes a JSON array of patch documents into an
// ordered []Operation, failing with [ErrMalformedPatch] on an operation
// missing a required member or carrying an unknown op.
package jsonpatch
