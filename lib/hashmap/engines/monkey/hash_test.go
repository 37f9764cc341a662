package monkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		-3: 1,
		0:  1,
		1:  1,
		2:  2,
		3:  4,
		4:  4,
		5:  8,
		63: 64,
		64: 64,
		65: 128,

		200_001: 262_144,
	}
	for value, want := range cases {
		require.Equal(t, want, nextPowerOfTwo(value), "nextPowerOfTwo(%d)", value)
	}
}

func TestProbeIndexBounds(t *testing.T) {
	m := New[int64, int64](1000)
	for key := int64(0); key < 100; key++ {
		base := m.hasher.Hash(key)
		for d := 1; d <= m.maxHashes; d++ {
			index := m.probeIndex(base, d)
			require.GreaterOrEqual(t, index, 0)
			require.Less(t, index, len(m.slots))
		}
	}
}

func TestHashFamilyProducesDistinctIndexes(t *testing.T) {
	// With 262_144 slots the 50 family members of a key should land on
	// (almost) 50 distinct indexes; heavy overlap would mean the ordinal
	// is not mixed in properly.
	m := New[int64, int64](100_000)
	for key := int64(0); key < 200; key++ {
		base := m.hasher.Hash(key)
		distinct := make(map[int]bool, m.maxHashes)
		for d := 1; d <= m.maxHashes; d++ {
			distinct[m.probeIndex(base, d)] = true
		}
		require.GreaterOrEqual(t, len(distinct), 45, "key %d probe sequence collapsed", key)
	}
}

func TestHashFamilyDiffersAcrossKeys(t *testing.T) {
	// Sanity-check that two distinct keys do not share a probe sequence.
	m := New[int64, int64](100_000)
	a := m.hasher.Hash(1)
	b := m.hasher.Hash(2)
	same := 0
	for d := 1; d <= m.maxHashes; d++ {
		if m.probeIndex(a, d) == m.probeIndex(b, d) {
			same++
		}
	}
	require.Less(t, same, 5)
}
