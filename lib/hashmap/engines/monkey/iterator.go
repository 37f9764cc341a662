package monkey

import "iter"

// The iteration views scan the slot array forward, deciding liveness afresh
// at every step: a slot that was live when the scan reached it may have been
// cleared or recycled by the time it is read, so each candidate is re-checked
// (and its value validated) immediately before being yielded. Concurrent
// writes during iteration may or may not be reflected; a key that stays
// resident for the whole scan is yielded exactly once.

// All returns a lazy, single-pass sequence over the live entries.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.slots {
			s := m.slots[i].Load()
			if s == nil {
				continue
			}
			k := s.Key.Load()
			if k == nil {
				continue
			}
			v := s.Value.Load()
			if v == nil {
				continue
			}
			if m.valueToKey != nil && m.valueToKey(*v) != *k {
				continue
			}
			if !yield(*k, *v) {
				return
			}
		}
	}
}

// Keys returns a lazy, single-pass sequence over the live keys.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range m.slots {
			s := m.slots[i].Load()
			if s == nil {
				continue
			}
			k := s.Key.Load()
			if k == nil {
				continue
			}
			if !yield(*k) {
				return
			}
		}
	}
}

// Values returns a lazy, single-pass sequence over the live values, each
// subject to the same validation as Get.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}
