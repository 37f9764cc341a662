// Package syncmap adapts the standard library's sync.Map to the
// hashmap.Map interface. It is unbounded and safe for arbitrary concurrent
// use; the size is tracked in a separate atomic counter and is eventually
// consistent under races.
package syncmap

import (
	"iter"
	"sync"
	"sync/atomic"
)

// Map wraps a sync.Map with typed accessors.
type Map[K comparable, V any] struct {
	m    sync.Map
	size atomic.Int64
}

// New creates an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

func (m *Map[K, V]) Size() int {
	return int(m.size.Load())
}

func (m *Map[K, V]) IsEmpty() bool {
	return m.Size() == 0
}

func (m *Map[K, V]) ContainsKey(key K) bool {
	_, loaded := m.m.Load(key)
	return loaded
}

func (m *Map[K, V]) ContainsValue(value V) bool {
	found := false
	m.m.Range(func(_, v any) bool {
		if v == any(value) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, loaded := m.m.Load(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	prior, loaded := m.m.Swap(key, value)
	if !loaded {
		m.size.Add(1)
		var zero V
		return zero, false, nil
	}
	return prior.(V), true, nil
}

func (m *Map[K, V]) PutAll(entries map[K]V) error {
	for k, v := range entries {
		if _, _, err := m.Put(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map[K, V]) Delete(key K) (V, bool) {
	prior, loaded := m.m.LoadAndDelete(key)
	if !loaded {
		var zero V
		return zero, false
	}
	m.size.Add(-1)
	return prior.(V), true
}

func (m *Map[K, V]) Clear() {
	m.m.Clear()
	m.size.Store(0)
}

func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.m.Range(func(k, v any) bool {
			return yield(k.(K), v.(V))
		})
	}
}

func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.m.Range(func(k, _ any) bool {
			return yield(k.(K))
		})
	}
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.m.Range(func(_, v any) bool {
			return yield(v.(V))
		})
	}
}
