package value

import "fmt"

// Kind discriminates the variant held by a [Value].
type Kind int

// The variants of [Value].
const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Sequence
	Mapping
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged union over the logical JSON data model: null, bool,
// integer, float, string, an ordered sequence of values, or an [*Map]
// from string keys to values. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Bool bool
	Int  int64
	// Float64 holds the IEEE-754 value for Kind == Float.
	Float64 float64
	Str     string
	Seq     []Value
	Map     *Map
}

// NewNull returns the null value.
func NewNull() Value { return Value{Kind: Null} }

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NewInt wraps an int64.
func NewInt(i int64) Value { return Value{Kind: Int, Int: i} }

// NewFloat wraps a float64.
func NewFloat(f float64) Value { return Value{Kind: Float, Float64: f} }

// NewString wraps a string.
func NewString(s string) Value { return Value{Kind: String, Str: s} }

// NewSequence wraps an ordered list of values.
func NewSequence(items []Value) Value { return Value{Kind: Sequence, Seq: items} }

// NewMapping wraps an ordered mapping.
func NewMapping(m *Map) Value { return Value{Kind: Mapping, Map: m} }

// Equal reports whether v and other represent the same logical JSON
// value. Mapping comparison ignores key order, matching spec.md's data
// model note that insertion order is significant for serialization but
// not for equality. Int and Float compare across kinds when numerically
// equal, since JSON itself has a single number type.
func (v Value) Equal(other Value) bool {
	if (v.Kind == Int || v.Kind == Float) && (other.Kind == Int || other.Kind == Float) {
		return v.asFloat() == other.asFloat()
	}

	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == other.Bool
	case Int:
		return v.Int == other.Int
	case Float:
		return v.Float64 == other.Float64
	case String:
		return v.Str == other.Str
	case Sequence:
		return equalSequence(v.Seq, other.Seq)
	case Mapping:
		return v.Map.equal(other.Map)
	default:
		return false
	}
}

func (v Value) asFloat() float64 {
	if v.Kind == Int {
		return float64(v.Int)
	}

	return v.Float64
}

func equalSequence(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}
