package testing

import (
	"errors"
	"testing"

	"github.com/judismar/monkeymap/lib/hashmap"
)

// MapFactory creates a fresh map instance able to hold at least
// SuiteCapacity entries.
type MapFactory func() hashmap.Map[int64, int64]

// SuiteCapacity is the minimum capacity the factory must provide; the suite
// never inserts more live entries than this.
const SuiteCapacity = 1024

// RunMapTests runs the shared contract tests for a Map implementation.
func RunMapTests(t *testing.T, name string, factory MapFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("PutGet", func(t *testing.T) {
			testPutGet(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Contains", func(t *testing.T) {
			testContains(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})

		t.Run("Iteration", func(t *testing.T) {
			testIteration(t, factory())
		})

		t.Run("PutAll", func(t *testing.T) {
			testPutAll(t, factory())
		})

		t.Run("SizeIsEmpty", func(t *testing.T) {
			testSizeIsEmpty(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// mustPut fails the test on any Put error.
func mustPut(t *testing.T, m hashmap.Map[int64, int64], key, value int64) {
	t.Helper()
	if _, _, err := m.Put(key, value); err != nil {
		t.Fatalf("Put(%d, %d) failed: %v", key, value, err)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, m hashmap.Map[int64, int64]) {
	mustPut(t, m, 1, 100)
	mustPut(t, m, 2, 200)

	if v, ok := m.Get(1); !ok || v != 100 {
		t.Errorf("Get(1) = (%d, %t), want (100, true)", v, ok)
	}
	if v, ok := m.Get(2); !ok || v != 200 {
		t.Errorf("Get(2) = (%d, %t), want (200, true)", v, ok)
	}
	if _, ok := m.Get(3); ok {
		t.Errorf("Get(3) found a value for a key that was never inserted")
	}
}

func testOverwrite(t *testing.T, m hashmap.Map[int64, int64]) {
	prior, loaded, err := m.Put(7, 70)
	if err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if loaded {
		t.Errorf("first Put reported a prior value %d", prior)
	}

	sizeAfterInsert := m.Size()

	prior, loaded, err = m.Put(7, 71)
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if !loaded || prior != 70 {
		t.Errorf("overwrite returned (%d, %t), want (70, true)", prior, loaded)
	}
	if m.Size() != sizeAfterInsert {
		t.Errorf("overwrite changed size from %d to %d", sizeAfterInsert, m.Size())
	}

	// Same value again: still an update, size unchanged.
	prior, loaded, err = m.Put(7, 71)
	if err != nil {
		t.Fatalf("idempotent overwrite failed: %v", err)
	}
	if !loaded || prior != 71 {
		t.Errorf("idempotent overwrite returned (%d, %t), want (71, true)", prior, loaded)
	}
	if m.Size() != sizeAfterInsert {
		t.Errorf("idempotent overwrite changed size from %d to %d", sizeAfterInsert, m.Size())
	}
}

func testDelete(t *testing.T, m hashmap.Map[int64, int64]) {
	mustPut(t, m, 42, 4200)
	sizeBefore := m.Size()

	prior, loaded := m.Delete(42)
	if !loaded || prior != 4200 {
		t.Errorf("Delete(42) = (%d, %t), want (4200, true)", prior, loaded)
	}
	if m.Size() != sizeBefore-1 {
		t.Errorf("Delete did not decrement size: got %d, want %d", m.Size(), sizeBefore-1)
	}

	// Deleting again is a no-op.
	if _, loaded := m.Delete(42); loaded {
		t.Errorf("second Delete(42) still found a value")
	}
	if m.Size() != sizeBefore-1 {
		t.Errorf("second Delete changed size: got %d, want %d", m.Size(), sizeBefore-1)
	}

	if _, ok := m.Get(42); ok {
		t.Errorf("Get(42) found a value after Delete")
	}
}

func testContains(t *testing.T, m hashmap.Map[int64, int64]) {
	mustPut(t, m, 5, 500)

	if !m.ContainsKey(5) {
		t.Errorf("ContainsKey(5) = false after Put")
	}
	if m.ContainsKey(6) {
		t.Errorf("ContainsKey(6) = true for a key that was never inserted")
	}
	if !m.ContainsValue(500) {
		t.Errorf("ContainsValue(500) = false after Put")
	}
	if m.ContainsValue(501) {
		t.Errorf("ContainsValue(501) = true for a value that was never inserted")
	}

	m.Delete(5)
	if m.ContainsKey(5) {
		t.Errorf("ContainsKey(5) = true after Delete")
	}
	if m.ContainsValue(500) {
		t.Errorf("ContainsValue(500) = true after Delete")
	}
}

func testClear(t *testing.T, m hashmap.Map[int64, int64]) {
	for i := int64(0); i < 100; i++ {
		mustPut(t, m, i, i)
	}

	m.Clear()

	if m.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", m.Size())
	}
	if !m.IsEmpty() {
		t.Errorf("IsEmpty() = false after Clear")
	}
	for i := int64(0); i < 100; i++ {
		if _, ok := m.Get(i); ok {
			t.Errorf("Get(%d) found a value after Clear", i)
		}
	}

	// The map must be usable again after Clear.
	mustPut(t, m, 1, 10)
	if v, ok := m.Get(1); !ok || v != 10 {
		t.Errorf("Get(1) = (%d, %t) after Clear+Put, want (10, true)", v, ok)
	}
}

func testIteration(t *testing.T, m hashmap.Map[int64, int64]) {
	const n = int64(256)
	for i := int64(0); i < n; i++ {
		mustPut(t, m, i, i*10)
	}

	seen := make(map[int64]int64)
	for k, v := range m.All() {
		if _, dup := seen[k]; dup {
			t.Errorf("All() yielded key %d twice", k)
		}
		seen[k] = v
	}
	if int64(len(seen)) != n {
		t.Errorf("All() yielded %d entries, want %d", len(seen), n)
	}
	for k, v := range seen {
		if v != k*10 {
			t.Errorf("All() yielded (%d, %d), want (%d, %d)", k, v, k, k*10)
		}
	}

	keyCount := 0
	for k := range m.Keys() {
		if _, ok := seen[k]; !ok {
			t.Errorf("Keys() yielded unknown key %d", k)
		}
		keyCount++
	}
	if int64(keyCount) != n {
		t.Errorf("Keys() yielded %d keys, want %d", keyCount, n)
	}

	valueCount := 0
	for v := range m.Values() {
		if v%10 != 0 || v < 0 || v >= n*10 {
			t.Errorf("Values() yielded unexpected value %d", v)
		}
		valueCount++
	}
	if int64(valueCount) != n {
		t.Errorf("Values() yielded %d values, want %d", valueCount, n)
	}

	// Early termination must not panic or overrun.
	yielded := 0
	for range m.Keys() {
		yielded++
		if yielded == 3 {
			break
		}
	}
	if yielded != 3 {
		t.Errorf("early-terminated iteration yielded %d keys, want 3", yielded)
	}
}

func testPutAll(t *testing.T, m hashmap.Map[int64, int64]) {
	entries := map[int64]int64{1: 10, 2: 20, 3: 30}

	err := m.PutAll(entries)
	if errors.Is(err, errors.ErrUnsupported) {
		t.Skip("engine does not support bulk insertion")
	}
	if err != nil {
		t.Fatalf("PutAll failed: %v", err)
	}

	for k, want := range entries {
		if v, ok := m.Get(k); !ok || v != want {
			t.Errorf("Get(%d) = (%d, %t) after PutAll, want (%d, true)", k, v, ok, want)
		}
	}
}

func testSizeIsEmpty(t *testing.T, m hashmap.Map[int64, int64]) {
	if !m.IsEmpty() || m.Size() != 0 {
		t.Errorf("new map: IsEmpty() = %t, Size() = %d, want true, 0", m.IsEmpty(), m.Size())
	}

	for i := int64(0); i < 10; i++ {
		mustPut(t, m, i, i)
		if m.Size() != int(i)+1 {
			t.Errorf("Size() = %d after %d inserts", m.Size(), i+1)
		}
	}
	if m.IsEmpty() {
		t.Errorf("IsEmpty() = true with 10 entries")
	}

	for i := int64(0); i < 10; i++ {
		m.Delete(i)
	}
	if !m.IsEmpty() {
		t.Errorf("IsEmpty() = false after deleting every entry")
	}
}
