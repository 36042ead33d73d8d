package jsonpatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPointerSyntax indicates pointer text that does not begin with "/"
// (for non-empty pointers) or that could not be decoded.
var ErrPointerSyntax = errors.New("invalid json pointer")

// From RFC 6901 section 4: evaluation of each reference token begins by
// decoding any escaped character sequence, transforming "~1" to "/" and
// then "~0" to "~".
var (
	rfc6901Decoder = strings.NewReplacer("~1", "/", "~0", "~")
	rfc6901Encoder = strings.NewReplacer("~", "~0", "/", "~1")
)

// Pointer is an RFC 6901 JSON Pointer: an ordered sequence of unescaped
// segments. The empty Pointer addresses the document root.
type Pointer struct {
	Segments []string
}

// Root is the JSON Pointer addressing the document root.
var Root = Pointer{}

// ParsePointer parses the slash-delimited textual form of a JSON Pointer.
// The empty string addresses the document root; every other valid pointer
// must begin with "/".
func ParsePointer(text string) (Pointer, error) {
	if text == "" {
		return Root, nil
	}

	if !strings.HasPrefix(text, "/") {
		return Pointer{}, fmt.Errorf("%w: %q must start with \"/\"", ErrPointerSyntax, text)
	}

	parts := strings.Split(text, "/")[1:]
	segments := make([]string, len(parts))

	for i, part := range parts {
		if strings.Contains(strings.NewReplacer("~0", "", "~1", "").Replace(part), "~") {
			return Pointer{}, fmt.Errorf("%w: %q contains an invalid ~ escape", ErrPointerSyntax, text)
		}

		segments[i] = rfc6901Decoder.Replace(part)
	}

	return Pointer{Segments: segments}, nil
}

// String renders the pointer back to its textual form.
func (p Pointer) String() string {
	if len(p.Segments) == 0 {
		return ""
	}

	var sb strings.Builder

	for _, seg := range p.Segments {
		sb.WriteByte('/')
		sb.WriteString(rfc6901Encoder.Replace(seg))
	}

	return sb.String()
}

// Parent returns the pointer to the parent container and the final
// segment (the key or index within it). Calling Parent on the root
// pointer returns the root and an empty string.
func (p Pointer) Parent() (Pointer, string) {
	if len(p.Segments) == 0 {
		return p, ""
	}

	last := p.Segments[len(p.Segments)-1]

	return Pointer{Segments: p.Segments[:len(p.Segments)-1]}, last
}
