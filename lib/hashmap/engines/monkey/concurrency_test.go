package monkey

import (
	"sync"
	"sync/atomic"
	"testing"
)

// The tests in this file exercise the single-writer/multi-reader contract:
// one goroutine mutates, several goroutines read through the lock-free
// path. They are most valuable under the race detector.

const keyGap = 583_475_513

func TestConcurrentPublication(t *testing.T) {
	// One writer inserts widely spread keys while readers poll them. Every
	// key must be retrievable by every reader once the writer is done, and
	// a key observed once must never disappear again.
	const numEntries = 50_000
	const numReaders = 4

	m := New[int64, int64](numEntries, WithValueToKey[int64, int64](identity))

	var writerDone atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int64(0); i < numEntries; i++ {
			if _, _, err := m.Put(i*keyGap, i*keyGap); err != nil {
				t.Errorf("Put failed: %v", err)
				break
			}
		}
		writerDone.Store(true)
	}()

	var regressions atomic.Int64
	for r := 0; r < numReaders; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			observed := make(map[int64]bool, numEntries)
			for !writerDone.Load() {
				for i := int64(0); i < numEntries; i += 97 {
					key := i * keyGap
					_, ok := m.Get(key)
					if ok {
						observed[key] = true
					} else if observed[key] {
						regressions.Add(1)
					}
				}
			}
			// Final pass: everything must be visible now.
			for i := int64(0); i < numEntries; i++ {
				key := i * keyGap
				if v, ok := m.Get(key); !ok || v != key {
					t.Errorf("key %d not retrievable after writer completion", key)
					return
				}
			}
		}()
	}

	wg.Wait()
	if n := regressions.Load(); n != 0 {
		t.Errorf("%d reads regressed from present to absent", n)
	}
}

func TestConcurrentOverwrite(t *testing.T) {
	// The writer flips one key between two values; readers must only ever
	// observe one of them (or, before first publication, absence).
	const key = int64(keyGap)
	const flips = 200_000
	const numReaders = 4

	m := New[int64, int64](16)

	var writerDone atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < flips; i++ {
			value := key
			if i%2 == 1 {
				value = 2 * key
			}
			if _, _, err := m.Put(key, value); err != nil {
				t.Errorf("Put failed: %v", err)
				break
			}
		}
		writerDone.Store(true)
	}()

	for r := 0; r < numReaders; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !writerDone.Load() {
				if v, ok := m.Get(key); ok && v != key && v != 2*key {
					t.Errorf("observed foreign value %d for key %d", v, key)
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestConcurrentRecycling(t *testing.T) {
	// Two first-hash-colliding keys share one recycled slot while the
	// writer churns them. A reader of either key must never see the other
	// key's value: the validated read rejects the recycled occupant.
	const cycles = 100_000
	const numReaders = 4

	m := New[int64, int64](16, WithValueToKey[int64, int64](identity))
	k1 := int64(1)
	k2 := collidingKey(m, k1)

	var writerDone atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < cycles; i++ {
			if _, _, err := m.Put(k1, k1); err != nil {
				t.Errorf("Put(k1) failed: %v", err)
				break
			}
			m.Delete(k1)
			if _, _, err := m.Put(k2, k2); err != nil {
				t.Errorf("Put(k2) failed: %v", err)
				break
			}
			m.Delete(k2)
		}
		writerDone.Store(true)
	}()

	for r := 0; r < numReaders; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !writerDone.Load() {
				if v, ok := m.Get(k1); ok && v != k1 {
					t.Errorf("Get(%d) returned anomalous value %d", k1, v)
					return
				}
				if v, ok := m.Get(k2); ok && v != k2 {
					t.Errorf("Get(%d) returned anomalous value %d", k2, v)
					return
				}
			}
		}()
	}

	wg.Wait()
}

func TestConcurrentIteration(t *testing.T) {
	// Readers iterate while the writer churns a volatile half of the key
	// space. Every yielded pair must be self-consistent, and the stable
	// half must be yielded exactly once per pass.
	const stable = 500
	const volatile = 500
	const numReaders = 4

	m := New[int64, int64](stable+volatile, WithValueToKey[int64, int64](identity))

	for i := int64(0); i < stable; i++ {
		if _, _, err := m.Put(i, i); err != nil {
			t.Fatalf("stable fill failed: %v", err)
		}
	}

	var writerDone atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for round := 0; round < 200; round++ {
			for i := int64(0); i < volatile; i++ {
				key := stable + i
				if _, _, err := m.Put(key, key); err != nil {
					t.Errorf("volatile Put failed: %v", err)
					return
				}
			}
			for i := int64(0); i < volatile; i++ {
				m.Delete(stable + i)
			}
		}
		writerDone.Store(true)
	}()

	for r := 0; r < numReaders; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen := make(map[int64]bool, stable)
			for !writerDone.Load() {
				clear(seen)
				for k, v := range m.All() {
					if v != k {
						t.Errorf("iteration yielded inconsistent pair (%d, %d)", k, v)
						return
					}
					if k < stable {
						if seen[k] {
							t.Errorf("stable key %d yielded twice in one pass", k)
							return
						}
						seen[k] = true
					}
				}
				for i := int64(0); i < stable; i++ {
					if !seen[i] {
						t.Errorf("stable key %d missing from iteration pass", i)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
