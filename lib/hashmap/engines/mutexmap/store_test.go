package mutexmap_test

import (
	"testing"

	"github.com/judismar/monkeymap/lib/hashmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/mutexmap"
	maptesting "github.com/judismar/monkeymap/lib/hashmap/testing"
)

func TestMapContract(t *testing.T) {
	maptesting.RunMapTests(t, "MutexMap", func() hashmap.Map[int64, int64] {
		return mutexmap.New[int64, int64](maptesting.SuiteCapacity)
	})
}

func BenchmarkMap(b *testing.B) {
	maptesting.RunMapBenchmarks(b, "MutexMap", func() hashmap.Map[int64, int64] {
		return mutexmap.New[int64, int64](maptesting.SuiteCapacity)
	})
}
