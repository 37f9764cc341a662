package internal

import (
	"sync/atomic"
)

// --------------------------------------------------------------------------
// Slot Type (one position of the slot array)
// --------------------------------------------------------------------------

// Slot is one position of the slot array. A slot is lazily created by the
// writer on first use of its index and, when entry recycling is enabled,
// survives for the lifetime of the map.
//
// The key pointer is the publication gate between the writer and readers:
// a slot is live exactly when Key holds a non-nil pointer. On install the
// writer stores Depth, Home and Value before publishing Key; on an in-place
// removal it clears Value and Depth before clearing Key. Readers therefore
// load Key first and only then the rest.
//
// Thread-safety: Key and Value may be loaded from any goroutine. Depth is
// written and read by the writer only. Home is fixed at creation.
type Slot[K comparable, V any] struct {
	Key   atomic.Pointer[K]
	Value atomic.Pointer[V]
	Depth int // ordinal of the hash that placed the resident key, 0 if vacant
	Home  int // index of this slot in the slot array
}

// Live reports whether the slot currently holds a published entry.
func (s *Slot[K, V]) Live() bool {
	return s.Key.Load() != nil
}

// --------------------------------------------------------------------------
// Probe Histogram
// --------------------------------------------------------------------------

// ProbeHistogram tracks, per probe depth d, how many live entries were
// placed by the d-th hash of the family, and maintains the maximum depth
// currently in use. Lookups read the maximum once at the start and never
// probe beyond it.
//
// Thread-safety: Add, Remove and Reset are writer-only. MaxDepthInUse may
// be called from any goroutine; a reader observing a stale (smaller) value
// can at worst miss a very recently inserted key.
type ProbeHistogram struct {
	counts   []int // counts[d] = live entries with probe depth exactly d
	maxInUse atomic.Int32
}

// NewProbeHistogram creates a histogram covering depths 1..maxDepth.
func NewProbeHistogram(maxDepth int) *ProbeHistogram {
	return &ProbeHistogram{counts: make([]int, maxDepth+1)}
}

// Add records a new live entry placed at the given depth, raising the
// maximum in use if needed.
func (h *ProbeHistogram) Add(depth int) {
	h.counts[depth]++
	if int32(depth) > h.maxInUse.Load() {
		h.maxInUse.Store(int32(depth))
	}
}

// Remove drops the entry count at the given depth. When the top bucket
// empties the maximum is recomputed by scanning downward; the scan is
// O(maxDepth), which is a small constant.
func (h *ProbeHistogram) Remove(depth int) {
	h.counts[depth]--
	if h.counts[depth] != 0 || h.maxInUse.Load() != int32(depth) {
		return
	}
	for d := depth - 1; d >= 1; d-- {
		if h.counts[d] > 0 {
			h.maxInUse.Store(int32(d))
			return
		}
	}
	h.maxInUse.Store(0)
}

// MaxDepthInUse returns the largest depth with at least one live entry,
// or 0 if the map is empty.
func (h *ProbeHistogram) MaxDepthInUse() int {
	return int(h.maxInUse.Load())
}

// Count returns the number of live entries with probe depth exactly d.
func (h *ProbeHistogram) Count(depth int) int {
	return h.counts[depth]
}

// Total returns the sum of all per-depth counts.
func (h *ProbeHistogram) Total() int {
	total := 0
	for d := 1; d < len(h.counts); d++ {
		total += h.counts[d]
	}
	return total
}

// Reset zeroes every bucket and the maximum in use.
func (h *ProbeHistogram) Reset() {
	for d := range h.counts {
		h.counts[d] = 0
	}
	h.maxInUse.Store(0)
}
