// Package xsyncmap adapts xsync.MapOf, a general-purpose concurrent map,
// to the hashmap.Map interface. It is unbounded, safe for any number of
// concurrent writers and readers, and serves as the multi-writer baseline
// the single-writer engine is compared against.
package xsyncmap

import (
	"iter"

	"github.com/puzpuzpuz/xsync/v3"
)

// Map wraps an xsync.MapOf.
type Map[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

// New creates an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: xsync.NewMapOf[K, V]()}
}

func (m *Map[K, V]) Size() int {
	return m.m.Size()
}

func (m *Map[K, V]) IsEmpty() bool {
	return m.m.Size() == 0
}

func (m *Map[K, V]) ContainsKey(key K) bool {
	_, loaded := m.m.Load(key)
	return loaded
}

func (m *Map[K, V]) ContainsValue(value V) bool {
	found := false
	m.m.Range(func(_ K, v V) bool {
		if any(v) == any(value) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.m.Load(key)
}

func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	prior, loaded := m.m.LoadAndStore(key, value)
	if !loaded {
		var zero V
		return zero, false, nil
	}
	return prior, true, nil
}

func (m *Map[K, V]) PutAll(entries map[K]V) error {
	for k, v := range entries {
		m.m.Store(k, v)
	}
	return nil
}

func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.m.LoadAndDelete(key)
}

func (m *Map[K, V]) Clear() {
	m.m.Clear()
}

func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.m.Range(func(k K, v V) bool {
			return yield(k, v)
		})
	}
}

func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.m.Range(func(k K, _ V) bool {
			return yield(k)
		})
	}
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.m.Range(func(_ K, v V) bool {
			return yield(v)
		})
	}
}
