package compiler

import (
	"bytes"
	"regexp"

	"go.jacobcolvin.com/yamledit/cst"
)

// defaultIndentation is the width used whenever new block content is
// introduced at a nesting level the source doesn't already establish.
const defaultIndentation = "  "

// span is a half-open byte range into the original source buffer.
type span struct {
	start, end int
}

func spanOf(n cst.Node) span {
	start, end := n.Range()
	return span{start: start, end: end}
}

// textBefore returns the bytes immediately preceding child within its
// nearest ancestor that starts earlier than child -- i.e. the source
// text from that ancestor's start up to child, which includes any
// earlier siblings inside that ancestor.
func textBefore(child cst.Node) []byte {
	childStart, _ := child.Range()

	node := child
	for {
		parent, ok := node.Parent()
		if !ok {
			break
		}

		nodeStart, _ := node.Range()
		if nodeStart != childStart {
			break
		}

		node = parent
	}

	nodeStart, _ := node.Range()

	return node.Text()[:childStart-nodeStart]
}

// textAfter is textBefore's mirror image: the source bytes between the
// end of child and whatever follows it in its ancestry.
func textAfter(child cst.Node) []byte {
	_, childEnd := child.Range()

	node := child
	for {
		parent, ok := node.Parent()
		if !ok {
			break
		}

		_, nodeEnd := node.Range()
		if nodeEnd != childEnd {
			break
		}

		node = parent
	}

	nodeStart, _ := node.Range()

	return node.Text()[childEnd-nodeStart:]
}

var indentationPattern = regexp.MustCompile(`(?:^|\n)([ \t]*)([^ \t\n\r][^\n]*)?$`)

// indentationOf returns the run of spaces/tabs at the start of the line
// node begins on.
func indentationOf(node cst.Node) string {
	prefix := accumulatedLinePrefix(node)

	m := indentationPattern.FindStringSubmatch(prefix)
	if m == nil {
		return ""
	}

	return m[1]
}

// blockIndentationOf returns the indentation new block children nested
// under node should use: node's own line indentation, plus one extra
// level if node's line starts with a block-sequence dash, since the
// dash itself is not part of the indentation tree-sitter reports.
func blockIndentationOf(node cst.Node) string {
	prefix := accumulatedLinePrefix(node)

	m := indentationPattern.FindStringSubmatch(prefix)
	if m == nil {
		return ""
	}

	indentation, rest := m[1], m[2]

	if rest == "" {
		return indentation
	}

	if rest[0] == '-' {
		return indentation + defaultIndentation
	}

	return indentation
}

// accumulatedLinePrefix mirrors Python dadit's get_indentation: it climbs
// from node to its ancestors, accumulating the text preceding node's
// start byte, until that accumulated prefix contains a newline (so the
// regex below sees the whole of node's own line, not just node's
// immediate parent's share of it).
func accumulatedLinePrefix(node cst.Node) string {
	start, _ := node.Range()

	cur := node
	for {
		curStart, _ := cur.Range()
		prefix := cur.Text()[:start-curStart]

		if bytes.Contains(prefix, []byte("\n")) {
			return string(prefix)
		}

		parent, ok := cur.Parent()
		if !ok {
			return string(prefix)
		}

		cur = parent
	}
}

// expandPrefixPattern extends sel backward if the text immediately
// before node matches pattern anchored at its end.
func expandPrefixPattern(node cst.Node, sel span, pattern string) span {
	prefix := string(textBefore(node))

	re := regexp.MustCompile(pattern)

	loc := re.FindStringIndex(prefix)
	if loc == nil {
		return sel
	}

	matched := prefix[loc[0]:loc[1]]

	return span{start: sel.start - len(matched), end: sel.end}
}

// expandSuffixPattern extends sel forward if the text immediately after
// node matches pattern anchored at its start.
func expandSuffixPattern(node cst.Node, sel span, pattern string) span {
	suffix := string(textAfter(node))

	re := regexp.MustCompile(pattern)

	loc := re.FindStringIndex(suffix)
	if loc == nil || loc[0] != 0 {
		return sel
	}

	matched := suffix[loc[0]:loc[1]]

	return span{start: sel.start, end: sel.end + len(matched)}
}

func rowOf(n cst.Node) int {
	return n.StartRow()
}
