package compiler

import (
	"strings"

	"go.jacobcolvin.com/yamledit/value"
)

// StringifyFlow renders v as a single flow-style (JSON-compatible)
// fragment, suitable for splicing into a flow_mapping or flow_sequence.
func StringifyFlow(v value.Value) string {
	return value.Encode(v)
}

// StringifyBlock renders v as block-style YAML text with no leading
// indentation of its own: a sequence becomes one "- item" line per
// element, a mapping becomes one "key: value" line per entry, and
// anything else falls back to its flow rendering.
func StringifyBlock(v value.Value) string {
	switch v.Kind {
	case value.Sequence:
		lines := make([]string, len(v.Seq))
		for i, item := range v.Seq {
			lines[i] = StringifyBlockSequenceItem(item)
		}

		return strings.Join(lines, "\n")

	case value.Mapping:
		keys := v.Map.Keys()
		lines := make([]string, len(keys))

		for i, k := range keys {
			item, _ := v.Map.Get(k)
			lines[i] = StringifyBlockMappingPair(k, item)
		}

		return strings.Join(lines, "\n")

	default:
		return StringifyFlow(v)
	}
}

// splitLines splits text on "\n" the way Python's str.splitlines() does
// for this package's rendering purposes: unlike strings.Split, a trailing
// "\n" does not produce a spurious trailing empty element, so indenting a
// string that keeps its own trailing newline doesn't tack on an extra
// blank, whitespace-only line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")

	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Indent prefixes every line of text with indentation.
func Indent(text, indentation string) string {
	lines := splitLines(text)
	for i, line := range lines {
		lines[i] = indentation + line
	}

	return strings.Join(lines, "\n")
}

// IndentBlock joins text's lines with a newline-plus-indentation
// separator, leaving the first line unindented -- used when text is
// spliced directly after a "- " or "key: " prefix already on its line.
func IndentBlock(text, indentation string) string {
	return strings.Join(splitLines(text), "\n"+indentation)
}

// StringifyBlockSequenceItem renders v as a block_sequence_item, "- "
// marker included.
func StringifyBlockSequenceItem(v value.Value) string {
	switch v.Kind {
	case value.Sequence, value.Mapping:
		return "- " + IndentBlock(StringifyBlock(v), defaultIndentation)

	case value.String:
		return "- " + stringifyBlockScalarValue(v.Str)

	case value.Null:
		return "- "

	default:
		return "- " + StringifyBlock(v)
	}
}

// StringifyBlockMappingPair renders key and v as a block_mapping_pair,
// "key:" marker included.
func StringifyBlockMappingPair(key string, v value.Value) string {
	switch v.Kind {
	case value.Sequence:
		return key + ":\n" + StringifyBlock(v)

	case value.Mapping:
		return key + ":\n" + Indent(StringifyBlock(v), defaultIndentation)

	case value.String:
		return key + ": " + stringifyBlockScalarValue(v.Str)

	case value.Null:
		return key + ":"

	default:
		return key + ": " + StringifyBlock(v)
	}
}

// stringifyBlockScalarValue renders a string scalar the way the Python
// original does: a trailing newline becomes a literal block scalar (|),
// an embedded newline without one becomes a stripping literal block
// scalar (|-), a value containing a double quote falls back to its flow
// (quoted) form to avoid ambiguity with plain scalar syntax, and
// anything else is written as a bare plain scalar.
func stringifyBlockScalarValue(s string) string {
	switch {
	case strings.HasSuffix(s, "\n"):
		return "|\n" + Indent(s, defaultIndentation)
	case strings.Contains(s, "\n"):
		return "|-\n" + Indent(s, defaultIndentation)
	case strings.Contains(s, `"`):
		return StringifyFlow(value.NewString(s))
	default:
		return s
	}
}
