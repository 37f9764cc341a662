package testing

import (
	"testing"

	"github.com/judismar/monkeymap/lib/hashmap"
)

// RunMapBenchmarks runs the shared benchmarks for a Map implementation.
// All mutation happens on the benchmark goroutine (single-writer safe);
// only the read benchmarks fan out.
func RunMapBenchmarks(b *testing.B, name string, factory MapFactory) {
	b.Run(name+"/Put", func(b *testing.B) {
		benchmarkPut(b, factory())
	})

	b.Run(name+"/PutExisting", func(b *testing.B) {
		benchmarkPutExisting(b, factory())
	})

	b.Run(name+"/Get", func(b *testing.B) {
		benchmarkGet(b, factory())
	})

	b.Run(name+"/GetParallel", func(b *testing.B) {
		benchmarkGetParallel(b, factory())
	})

	b.Run(name+"/GetMissing", func(b *testing.B) {
		benchmarkGetMissing(b, factory())
	})

	b.Run(name+"/Delete", func(b *testing.B) {
		benchmarkDelete(b, factory())
	})

	b.Run(name+"/Mixed", func(b *testing.B) {
		benchmarkMixed(b, factory())
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// The write benchmarks cycle through a bounded key space so capacity-bounded
// engines never overflow.

func benchmarkPut(b *testing.B, m hashmap.Map[int64, int64]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := int64(i % SuiteCapacity)
		if _, _, err := m.Put(key, key); err != nil {
			b.Fatalf("Put failed: %v", err)
		}
	}
}

func benchmarkPutExisting(b *testing.B, m hashmap.Map[int64, int64]) {
	for i := int64(0); i < SuiteCapacity; i++ {
		if _, _, err := m.Put(i, i); err != nil {
			b.Fatalf("prefill failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := int64(i % SuiteCapacity)
		if _, _, err := m.Put(key, int64(i)); err != nil {
			b.Fatalf("Put failed: %v", err)
		}
	}
}

func benchmarkGet(b *testing.B, m hashmap.Map[int64, int64]) {
	for i := int64(0); i < SuiteCapacity; i++ {
		if _, _, err := m.Put(i, i); err != nil {
			b.Fatalf("prefill failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(int64(i % SuiteCapacity))
	}
}

func benchmarkGetParallel(b *testing.B, m hashmap.Map[int64, int64]) {
	for i := int64(0); i < SuiteCapacity; i++ {
		if _, _, err := m.Put(i, i); err != nil {
			b.Fatalf("prefill failed: %v", err)
		}
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			m.Get(int64(counter % SuiteCapacity))
			counter++
		}
	})
}

func benchmarkGetMissing(b *testing.B, m hashmap.Map[int64, int64]) {
	for i := int64(0); i < SuiteCapacity; i++ {
		if _, _, err := m.Put(i, i); err != nil {
			b.Fatalf("prefill failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(int64(SuiteCapacity + i))
	}
}

func benchmarkDelete(b *testing.B, m hashmap.Map[int64, int64]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := int64(i % SuiteCapacity)
		// Re-insert so half the operations hit a live key.
		if i%2 == 0 {
			if _, _, err := m.Put(key, key); err != nil {
				b.Fatalf("Put failed: %v", err)
			}
		} else {
			m.Delete(key)
		}
	}
}

func benchmarkMixed(b *testing.B, m hashmap.Map[int64, int64]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := int64(i % SuiteCapacity)
		switch i % 4 {
		case 0, 1:
			m.Get(key)
		case 2:
			if _, _, err := m.Put(key, key); err != nil {
				b.Fatalf("Put failed: %v", err)
			}
		case 3:
			m.Delete(key)
		}
	}
}
