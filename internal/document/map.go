package document

import "sort"

// Map is an insertion-ordered mapping with string keys.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty mapping.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Clone returns a deep copy of the mapping.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]any, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = Clone(v)
	}
	return out
}

// FromPlain builds a Map from a Go map, recursively. Keys of every mapping
// are sorted, since Go maps carry no order.
func FromPlain(plain map[string]any) *Map {
	return fromPlain(plain).(*Map)
}

// ToPlain converts the mapping back into nested map[string]any / []any.
func (m *Map) ToPlain() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = toPlain(m.values[k])
	}
	return out
}

func toPlain(v any) any {
	switch v := v.(type) {
	case *Map:
		return v.ToPlain()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}

func fromPlain(v any) any {
	switch v := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, fromPlain(v[k]))
		}
		return m
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = fromPlain(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = fromPlain(item)
		}
		return out
	default:
		return v
	}
}
