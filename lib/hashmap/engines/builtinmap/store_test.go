package builtinmap_test

import (
	"testing"

	"github.com/judismar/monkeymap/lib/hashmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/builtinmap"
	maptesting "github.com/judismar/monkeymap/lib/hashmap/testing"
)

func TestMapContract(t *testing.T) {
	maptesting.RunMapTests(t, "Builtin", func() hashmap.Map[int64, int64] {
		return builtinmap.New[int64, int64](maptesting.SuiteCapacity)
	})
}

func BenchmarkMap(b *testing.B) {
	maptesting.RunMapBenchmarks(b, "Builtin", func() hashmap.Map[int64, int64] {
		return builtinmap.New[int64, int64](maptesting.SuiteCapacity)
	})
}
