// Package ordered provides an insertion-ordered map.
package ordered

// Map keeps keys in first-insertion order. Overwriting a key keeps its slot.
// Map is not safe for concurrent use; callers guard it.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set stores v under k. A new key is appended; an existing key keeps its position.
func (m *Map[K, V]) Set(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.values[k]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// First returns the value of the oldest key.
func (m *Map[K, V]) First() (V, bool) {
	var zero V
	if len(m.keys) == 0 {
		return zero, false
	}
	return m.values[m.keys[0]], true
}

// Last returns the value of the newest key.
func (m *Map[K, V]) Last() (V, bool) {
	var zero V
	if len(m.keys) == 0 {
		return zero, false
	}
	return m.values[m.keys[len(m.keys)-1]], true
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	m.keys = nil
	m.values = make(map[K]V)
}
