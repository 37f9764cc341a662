package syncmap_test

import (
	"testing"

	"github.com/judismar/monkeymap/lib/hashmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/syncmap"
	maptesting "github.com/judismar/monkeymap/lib/hashmap/testing"
)

func TestMapContract(t *testing.T) {
	maptesting.RunMapTests(t, "SyncMap", func() hashmap.Map[int64, int64] {
		return syncmap.New[int64, int64]()
	})
}

func BenchmarkMap(b *testing.B) {
	maptesting.RunMapBenchmarks(b, "SyncMap", func() hashmap.Map[int64, int64] {
		return syncmap.New[int64, int64]()
	})
}
