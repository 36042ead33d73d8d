package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/value"
)

// ReadValue reads the logical value a CST node represents, recursing
// into mappings and sequences. It is the inverse of the serializer:
// together they let move/copy/test compare and relocate values without
// ever leaving the [value.Value] model.
func ReadValue(n cst.Node) (value.Value, error) {
	switch n.Type() {
	case "stream", "document", "block_node", "flow_node", "plain_scalar", "flow_scalar":
		child, err := converge(n)
		if err != nil {
			return value.Value{}, err
		}

		if child.Type() == n.Type() {
			return value.Value{}, fmt.Errorf("%w: %s did not converge", ErrUnsupportedNode, n.Type())
		}

		return ReadValue(child)

	case "block_mapping":
		m := value.NewMap()

		for _, pair := range cst.Chain(cst.Children, cst.Type("block_mapping_pair"))(n) {
			keyNode, err := cst.Single(pair.Field("key"))
			if err != nil {
				return value.Value{}, fmt.Errorf("compiler: block_mapping_pair missing key: %w", err)
			}

			valNode, err := cst.Single(pair.Field("value"))
			if err != nil {
				return value.Value{}, fmt.Errorf("compiler: block_mapping_pair missing value: %w", err)
			}

			keyVal, err := ReadValue(keyNode)
			if err != nil {
				return value.Value{}, err
			}

			val, err := ReadValue(valNode)
			if err != nil {
				return value.Value{}, err
			}

			m.Set(mapKeyString(keyVal), val)
		}

		return value.NewMapping(m), nil

	case "block_sequence":
		var items []value.Value

		for _, item := range cst.Chain(cst.Children, cst.Type("block_sequence_item"))(n) {
			v, err := ReadValue(item)
			if err != nil {
				return value.Value{}, err
			}

			items = append(items, v)
		}

		return value.NewSequence(items), nil

	case "block_sequence_item":
		child, err := cst.Single(cst.Union(cst.Type("block_node"), cst.Type("flow_node"))(n))
		if err != nil {
			return value.Value{}, fmt.Errorf("compiler: block_sequence_item has no value child: %w", err)
		}

		return ReadValue(child)

	case "flow_mapping":
		m := value.NewMap()

		for _, pair := range cst.Chain(cst.Children, cst.Type("flow_pair"))(n) {
			keyNode, err := cst.Single(pair.Field("key"))
			if err != nil {
				return value.Value{}, fmt.Errorf("compiler: flow_pair missing key: %w", err)
			}

			valNode, err := cst.Single(pair.Field("value"))
			if err != nil {
				return value.Value{}, fmt.Errorf("compiler: flow_pair missing value: %w", err)
			}

			keyVal, err := ReadValue(keyNode)
			if err != nil {
				return value.Value{}, err
			}

			val, err := ReadValue(valNode)
			if err != nil {
				return value.Value{}, err
			}

			m.Set(mapKeyString(keyVal), val)
		}

		return value.NewMapping(m), nil

	case "flow_sequence":
		var items []value.Value

		for _, item := range cst.Chain(cst.Children, cst.Type("flow_node"))(n) {
			v, err := ReadValue(item)
			if err != nil {
				return value.Value{}, err
			}

			items = append(items, v)
		}

		return value.NewSequence(items), nil

	case "null_scalar":
		return value.NewNull(), nil

	case "boolean_scalar":
		return value.NewBool(isTrueLexeme(string(n.Text()))), nil

	case "integer_scalar":
		i, err := parseYAMLInt(string(n.Text()))
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %q: %w", ErrInvalidValue, n.Text(), err)
		}

		return value.NewInt(i), nil

	case "float_scalar":
		f, err := parseYAMLFloat(string(n.Text()))
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %q: %w", ErrInvalidValue, n.Text(), err)
		}

		return value.NewFloat(f), nil

	case "string_scalar":
		return value.NewString(string(n.Text())), nil

	case "double_quote_scalar":
		text := string(n.Text())
		inner := text[1 : len(text)-1]

		return value.NewString(unescapeDoubleQuoted(inner)), nil

	case "single_quote_scalar":
		text := string(n.Text())
		inner := text[1 : len(text)-1]

		return value.NewString(unescapeSingleQuoted(inner)), nil

	case "block_scalar":
		s, err := decodeBlockScalar(string(n.Text()))
		if err != nil {
			return value.Value{}, err
		}

		return value.NewString(s), nil

	default:
		return value.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Type())
	}
}

// mapKeyString renders a read key value as the string key a [value.Map]
// indexes by. Mapping keys are overwhelmingly plain scalars already
// string-valued; anything else falls back to its compact JSON rendering
// so it still round-trips as a distinct key.
func mapKeyString(v value.Value) string {
	if v.Kind == value.String {
		return v.Str
	}

	return value.Encode(v)
}

func isTrueLexeme(text string) bool {
	switch text {
	case "true", "True", "TRUE", "yes", "Yes", "YES", "on", "On", "ON":
		return true
	default:
		return false
	}
}

func parseYAMLInt(text string) (int64, error) {
	cleaned := strings.ReplaceAll(text, "_", "")
	return strconv.ParseInt(cleaned, 0, 64)
}

func parseYAMLFloat(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, "_", "")

	switch cleaned {
	case ".inf", "+.inf", ".Inf", ".INF":
		return strconv.ParseFloat("+Inf", 64)
	case "-.inf", "-.Inf", "-.INF":
		return strconv.ParseFloat("-Inf", 64)
	case ".nan", ".NaN", ".NAN":
		return strconv.ParseFloat("NaN", 64)
	default:
		return strconv.ParseFloat(cleaned, 64)
	}
}

var doubleQuoteEscape = regexp.MustCompile(`\\(x[0-9a-fA-F]{2}|u[0-9a-fA-F]{4}|U[0-9a-fA-F]{4}|.)`)

func unescapeDoubleQuoted(text string) string {
	return doubleQuoteEscape.ReplaceAllStringFunc(text, func(m string) string {
		body := m[1:]

		switch body[0] {
		case 'n':
			return "\n"
		case 'r':
			return "\r"
		case 't':
			return "\t"
		case 'b':
			return "\b"
		case 'f':
			return "\f"
		case 'v':
			return "\v"
		case '0':
			return "\x00"
		case 'x', 'u', 'U':
			code, err := strconv.ParseInt(body[1:], 16, 32)
			if err != nil {
				return body
			}

			return string(rune(code))
		default:
			return body
		}
	})
}

func unescapeSingleQuoted(text string) string {
	return strings.ReplaceAll(text, "''", "'")
}

var blockScalarHeader = regexp.MustCompile(`^([|>]-?)[^\n]*\n`)

// decodeBlockScalar parses a literal (|, |-) or folded (>, >-) block
// scalar's raw source text, including its header line, into its final
// string value.
func decodeBlockScalar(text string) (string, error) {
	header := blockScalarHeader.FindStringSubmatch(text)
	if header == nil {
		return "", fmt.Errorf("%w: invalid block scalar header in %q", ErrInvalidValue, text)
	}

	style := header[1]
	body := text[len(header[0]):]

	indent := ""
	if m := regexp.MustCompile(`^[ \t]*`).FindString(body); m != "" {
		indent = m
	}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	switch style {
	case "|":
		return strings.Join(lines, "\n") + "\n", nil
	case ">":
		return strings.Join(lines, " ") + "\n", nil
	case "|-":
		return strings.Join(lines, "\n"), nil
	case ">-":
		return strings.Join(lines, " "), nil
	default:
		return "", fmt.Errorf("%w: invalid block scalar style %q", ErrInvalidValue, style)
	}
}
