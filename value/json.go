package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrDecode indicates malformed JSON input to [Decode].
var ErrDecode = errors.New("invalid json value")

// Decode parses a JSON value, preserving object key order in a [Map] and
// distinguishing integer from floating-point numbers the way spec.md's
// data model requires (YAML round-tripping needs to know whether to
// serialize 3 or 3.0). encoding/json's generic map[string]any target
// loses key order and collapses all numbers to float64, so Decode walks
// tokens directly instead.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: trailing data after value", ErrDecode)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return decodeNumber(t)
	case string:
		return NewString(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return NewInt(i), nil
	}

	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", n.String(), err)
	}

	return NewFloat(f), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var items []Value

	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		items = append(items, item)
	}

	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}

	return NewSequence(items), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	m := NewMap()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		m.Set(key, val)
	}

	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}

	return NewMapping(m), nil
}

// Encode renders v as compact JSON text: numbers, booleans, and null as
// their JSON lexemes, strings double-quoted with JSON escaping, used
// anywhere a value must be serialized inline (flow style).
func Encode(v Value) string {
	var sb strings.Builder

	encodeValue(&sb, v)

	return sb.String()
}

func encodeValue(sb *strings.Builder, v Value) {
	switch v.Kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Int:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case Float:
		sb.WriteString(strconv.FormatFloat(v.Float64, 'g', -1, 64))
	case String:
		encodeString(sb, v.Str)
	case Sequence:
		sb.WriteByte('[')

		for i, item := range v.Seq {
			if i > 0 {
				sb.WriteString(", ")
			}

			encodeValue(sb, item)
		}

		sb.WriteByte(']')
	case Mapping:
		sb.WriteByte('{')

		for i, k := range v.Map.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}

			encodeString(sb, k)
			sb.WriteString(": ")

			val, _ := v.Map.Get(k)
			encodeValue(sb, val)
		}

		sb.WriteByte('}')
	}
}

func encodeString(sb *strings.Builder, s string) {
	encoded, err := json.Marshal(s)
	if err != nil {
		// json.Marshal on a string only fails for invalid UTF-8, which
		// cannot occur for text already read from a parsed document.
		panic(err)
	}

	sb.Write(encoded)
}
