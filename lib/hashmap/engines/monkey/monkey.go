package monkey

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/rand"
	"sync/atomic"

	"github.com/dolthub/maphash"
	"github.com/judismar/monkeymap/lib/hashmap/engines/monkey/internal"
	"github.com/judismar/monkeymap/lib/hashmap/util"
)

// --------------------------------------------------------------------------
// Constants and Errors
// --------------------------------------------------------------------------

const (
	defaultLoadFactor = 0.5
	defaultMaxHashes  = 50

	// hashGamma spreads the hash ordinal before mixing, so the family
	// produces distinct index sequences for a given key (2^64 / phi).
	hashGamma = 0x9E3779B97F4A7C15
)

var (
	// ErrProbeLimitExceeded reports that an insert exhausted the hash family
	// without finding a free slot. At load factor 0.5 with a family of 50
	// the probability of this is negligible; it is still surfaced so the
	// caller decides what to do.
	ErrProbeLimitExceeded = errors.New("monkey: exhausted hash family without finding a free slot")

	// ErrCapacityReached reports that an insert of a new key would exceed
	// the maximum capacity fixed at construction.
	ErrCapacityReached = errors.New("monkey: maximum capacity reached")
)

// --------------------------------------------------------------------------
// Core Map Structure
// --------------------------------------------------------------------------

// Map is a fixed-capacity, single-writer/multi-reader hash map built on
// multi-choice open addressing. See the package documentation for the
// algorithm and the concurrency contract.
type Map[K comparable, V any] struct {
	slots []atomic.Pointer[internal.Slot[K, V]]
	mask  uint64

	hasher     maphash.Hasher[K]
	maxHashes  int
	hist       *internal.ProbeHistogram
	valueToKey func(V) K

	maxCapacity int
	size        atomic.Int64

	rng *rand.Rand // eviction sampling, writer-owned
}

// New creates a map that can hold up to maxCapacity entries. The slot array
// is pre-allocated so the configured load factor (default 0.5) is respected
// without ever rehashing; its length is the smallest power of two that fits
// (maxCapacity + 1) / loadFactor entries.
//
// maxCapacity must be positive, the load factor must lie in (0, 1] and the
// hash family must have at least one member; violations are programmer
// errors and panic.
func New[K comparable, V any](maxCapacity int, opts ...Option[K, V]) *Map[K, V] {
	if maxCapacity <= 0 {
		panic(fmt.Sprintf("monkey: maxCapacity must be positive, got %d", maxCapacity))
	}
	cfg := config[K, V]{
		loadFactor: defaultLoadFactor,
		maxHashes:  defaultMaxHashes,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.loadFactor <= 0 || cfg.loadFactor > 1 {
		panic(fmt.Sprintf("monkey: load factor must be in (0, 1], got %v", cfg.loadFactor))
	}
	if cfg.maxHashes < 1 {
		panic(fmt.Sprintf("monkey: hash family must have at least one member, got %d", cfg.maxHashes))
	}

	arrayLen := nextPowerOfTwo(int(math.Ceil(float64(maxCapacity+1) / cfg.loadFactor)))

	return &Map[K, V]{
		slots:       make([]atomic.Pointer[internal.Slot[K, V]], arrayLen),
		mask:        uint64(arrayLen - 1),
		hasher:      maphash.NewHasher[K](),
		maxHashes:   cfg.maxHashes,
		hist:        internal.NewProbeHistogram(cfg.maxHashes),
		valueToKey:  cfg.valueToKey,
		maxCapacity: maxCapacity,
		rng:         rand.New(rand.NewSource(int64(util.GenerateSeed()))),
	}
}

// --------------------------------------------------------------------------
// Hash Family
// --------------------------------------------------------------------------

// probeIndex folds the n-th hash of a key into the slot-array index space.
// The first member of the family is the seeded hash of the key alone; every
// further member mixes the ordinal in through an avalanche finalizer so the
// resulting index sequences are distinct across ordinals with high
// probability.
func (m *Map[K, V]) probeIndex(base uint64, ordinal int) int {
	h := base
	if ordinal > 1 {
		h = mix64(h ^ uint64(ordinal)*hashGamma)
	}
	return int(h & m.mask)
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}

// nextPowerOfTwo returns the smallest power of two >= value. The power-of-two
// array length is what makes the & (len-1) modulus valid.
func nextPowerOfTwo(value int) int {
	if value <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(value-1))
}

// --------------------------------------------------------------------------
// Read Operations
// --------------------------------------------------------------------------

// Get retrieves the value mapped to key.
//
// It probes at most MaxProbeDepthInUse slots (read once at the start; a
// stale read can at worst miss a very recently inserted key). When a
// value-to-key derivation is configured the retrieved value is validated
// against the queried key, so a slot recycled by a racing delete+insert is
// reported absent rather than returning the new occupant's value.
//
// Thread-safety: may be called from any goroutine, never mutates.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	base := m.hasher.Hash(key)
	depth := m.hist.MaxDepthInUse()
	for d := 1; d <= depth; d++ {
		s := m.slots[m.probeIndex(base, d)].Load()
		if s == nil {
			continue
		}
		k := s.Key.Load()
		if k == nil || *k != key {
			continue
		}
		v := s.Value.Load()
		if v == nil {
			// The slot is mid-recycle; the key may still live deeper.
			continue
		}
		if m.valueToKey != nil && m.valueToKey(*v) != key {
			return zero, false
		}
		return *v, true
	}
	return zero, false
}

// ContainsKey reports whether a value is mapped to the given key.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) ContainsKey(key K) bool {
	_, loaded := m.Get(key)
	return loaded
}

// ContainsValue reports whether at least one live entry holds the given
// value. It scans the whole slot array; the timing is non-deterministic
// under concurrent mutation. The dynamic type of V must be comparable.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) ContainsValue(value V) bool {
	for i := range m.slots {
		s := m.slots[i].Load()
		if s == nil {
			continue
		}
		v := s.Value.Load()
		if v == nil {
			continue
		}
		if any(*v) == any(value) {
			return true
		}
	}
	return false
}

// Size returns the number of live entries. Readers racing with the writer
// see an eventually consistent count.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) Size() int {
	return int(m.size.Load())
}

// IsEmpty reports whether the map holds no live entries.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Size() == 0
}

// MaxProbeDepthInUse returns the largest hash ordinal any live entry was
// placed with, or 0 if the map is empty. Diagnostic: it bounds the probe
// count of every lookup.
//
// Thread-safety: may be called from any goroutine.
func (m *Map[K, V]) MaxProbeDepthInUse() int {
	return m.hist.MaxDepthInUse()
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

// Put inserts or updates the mapping for key and returns the prior value,
// if any.
//
// The probe scan keeps two pieces of state: whether the key was found, and
// the first vacant slot seen together with the ordinal it was seen at. An
// existing key is overwritten in place with a single release store of the
// value; its probe depth never changes. A new entry is installed in the
// first vacant slot: depth, home and value are written first and the key is
// published last, so a reader never observes a live slot with missing
// fields. The scan stops early once a vacant slot is at hand and the
// ordinal has passed the maximum depth in use, since no existing key can be
// found beyond that point.
//
// Inserting may fail with ErrCapacityReached when the map is full, or with
// ErrProbeLimitExceeded when the whole hash family was tried without
// finding a free slot; the map is unchanged in both cases.
//
// Thread-safety: writer only.
func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	var zero V
	base := m.hasher.Hash(key)
	depthInUse := m.hist.MaxDepthInUse()

	var vacant *internal.Slot[K, V]
	vacantIndex := -1
	vacantDepth := 0

	for d := 1; d <= m.maxHashes; d++ {
		index := m.probeIndex(base, d)
		s := m.slots[index].Load()
		if s != nil {
			if k := s.Key.Load(); k != nil && *k == key {
				prior := *s.Value.Load()
				v := value
				s.Value.Store(&v)
				return prior, true, nil
			}
		}
		if vacantIndex < 0 && (s == nil || !s.Live()) {
			vacant, vacantIndex, vacantDepth = s, index, d
		}
		if vacantIndex >= 0 && d > depthInUse {
			// No hope of finding the key anymore, and we have a spot.
			break
		}
	}

	if vacantIndex < 0 {
		return zero, false, fmt.Errorf("%w (key %v)", ErrProbeLimitExceeded, key)
	}
	if int(m.size.Load()) == m.maxCapacity {
		return zero, false, fmt.Errorf("%w (key %v)", ErrCapacityReached, key)
	}

	k, v := key, value
	if vacant == nil {
		// Lazy instantiation; the home index is fixed for the slot's
		// lifetime. Publishing the slot pointer makes the entry visible.
		s := &internal.Slot[K, V]{Depth: vacantDepth, Home: vacantIndex}
		s.Value.Store(&v)
		s.Key.Store(&k)
		m.slots[vacantIndex].Store(s)
	} else {
		// Recycled slot: value before key, the key store publishes.
		vacant.Depth = vacantDepth
		vacant.Value.Store(&v)
		vacant.Key.Store(&k)
	}
	m.hist.Add(vacantDepth)
	m.size.Add(1)
	return zero, false, nil
}

// PutAll is not supported: bulk insertion cannot report per-key capacity
// failures through this interface.
func (m *Map[K, V]) PutAll(entries map[K]V) error {
	return fmt.Errorf("monkey: bulk insertion: %w", errors.ErrUnsupported)
}

// Delete removes the mapping for key and returns the removed value, if any.
//
// With a value-to-key derivation configured the slot is cleared in place
// and kept for reuse: the value and depth are cleared first and the key
// last, so readers holding the old key pointer fail validation instead of
// observing a half-cleared entry. Without the derivation the slot record is
// detached from the array entirely.
//
// Thread-safety: writer only.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	var zero V
	s := m.findLive(key)
	if s == nil {
		return zero, false
	}
	value := *s.Value.Load()
	m.removeSlot(s)
	return value, true
}

// Clear detaches every slot and resets the histogram and size. Concurrent
// readers may observe the transition partially.
//
// Thread-safety: writer only.
func (m *Map[K, V]) Clear() {
	for i := range m.slots {
		m.slots[i].Store(nil)
	}
	m.hist.Reset()
	m.size.Store(0)
}

// PopRandomValue removes an arbitrary live entry and returns its value. It
// draws uniform slot indexes until one holds a live entry, so each attempt
// is wait-free but the call does not terminate on an empty map: the caller
// must check IsEmpty first.
//
// Thread-safety: writer only.
func (m *Map[K, V]) PopRandomValue() V {
	for {
		s := m.slots[m.rng.Intn(len(m.slots))].Load()
		if s == nil || !s.Live() {
			continue
		}
		value := *s.Value.Load()
		m.removeSlot(s)
		return value
	}
}

// --------------------------------------------------------------------------
// Internal Helpers
// --------------------------------------------------------------------------

// findLive locates the slot currently holding key, probing up to the
// maximum depth in use. Writer-side helper: no value validation.
func (m *Map[K, V]) findLive(key K) *internal.Slot[K, V] {
	base := m.hasher.Hash(key)
	depth := m.hist.MaxDepthInUse()
	for d := 1; d <= depth; d++ {
		s := m.slots[m.probeIndex(base, d)].Load()
		if s == nil {
			continue
		}
		if k := s.Key.Load(); k != nil && *k == key {
			return s
		}
	}
	return nil
}

// removeSlot removes a live entry, recycling the slot in place when the
// value-to-key derivation is configured and detaching it otherwise.
func (m *Map[K, V]) removeSlot(s *internal.Slot[K, V]) {
	m.hist.Remove(s.Depth)
	if m.valueToKey != nil {
		s.Value.Store(nil)
		s.Depth = 0
		s.Key.Store(nil)
	} else {
		m.slots[s.Home].Store(nil)
	}
	m.size.Add(-1)
}
