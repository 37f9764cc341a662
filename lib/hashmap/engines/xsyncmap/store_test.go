package xsyncmap_test

import (
	"testing"

	"github.com/judismar/monkeymap/lib/hashmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/xsyncmap"
	maptesting "github.com/judismar/monkeymap/lib/hashmap/testing"
)

func TestMapContract(t *testing.T) {
	maptesting.RunMapTests(t, "XSync", func() hashmap.Map[int64, int64] {
		return xsyncmap.New[int64, int64]()
	})
}

func BenchmarkMap(b *testing.B) {
	maptesting.RunMapBenchmarks(b, "XSync", func() hashmap.Map[int64, int64] {
		return xsyncmap.New[int64, int64]()
	})
}
