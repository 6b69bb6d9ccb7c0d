// Package identity keeps at most one live instance per primary key.
//
// A Map is plain mutable state: it is not safe for concurrent use and never
// evicts on its own. Entries leave only through Delete or Clear.
package identity

type Map[V any] struct {
	items map[int64]V
}

func New[V any]() *Map[V] {
	return &Map[V]{items: make(map[int64]V)}
}

func (m *Map[V]) Get(id int64) (V, bool) {
	v, ok := m.items[id]
	return v, ok
}

func (m *Map[V]) Put(id int64, v V) { m.items[id] = v }

func (m *Map[V]) Delete(id int64) { delete(m.items, id) }

func (m *Map[V]) Len() int { return len(m.items) }

// Clear drops every entry; tests call it on teardown.
func (m *Map[V]) Clear() { clear(m.items) }
