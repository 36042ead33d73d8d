// Package value implements the logical JSON data model shared by the YAML
// CST reader and the JSON Patch operations applied against it: a
// recursive sum of scalar (null, bool, integer, float, string), ordered
// sequence, and ordered mapping.
//
// [Map] preserves insertion order with a map plus an explicit key
// order slice, rather than a hash map that forgets how it was built --
// insertion order is significant for serialization but not for equality.
package value
