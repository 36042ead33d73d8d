package value

// Map is an ordered associative container from string keys to [Value]s.
// Iteration and serialization follow insertion order; equality of
// mappings (via [Value.Equal]) does not.
//
// The zero value is an empty, usable Map.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty, ready-to-use [Map].
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set inserts or updates the value for key, appending key to the order if
// it is new.
func (m *Map) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Keys returns the keys in insertion order. The returned slice must not
// be mutated by the caller.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return m.keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

func (m *Map) equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}

	for _, k := range m.Keys() {
		v, _ := m.Get(k)

		ov, ok := other.Get(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}

	return true
}
