// Package monkey implements a fixed-capacity hash map that supports one
// writer goroutine and any number of concurrent reader goroutines without
// locks, atomically retried CAS loops, or rehashing.
//
// The package focuses on:
//   - Worst-case O(1) bounded-probe time for lookups, insertions and
//     deletions via a family of independent hash functions
//   - Pre-allocation: the slot array is sized at construction so the
//     intended load factor holds without ever growing; a failed insert is
//     reported to the caller instead of resolved by rehashing
//   - Memory-safe reads concurrent with mutation, coordinated only through
//     release/acquire ordering on the slot fields
//   - Optional entry recycling that reuses deleted slots in place when the
//     caller can derive the key from the value
//
// How it works. The map owns a power-of-two sized array of slots and a hash
// family h_1, ..., h_maxHashes. An insertion of key x probes
// h_1(x), h_2(x), ... until it finds the key (update) or installs the entry
// in the first vacant slot seen; if the family is exhausted without finding
// a free slot the insert fails with ErrProbeLimitExceeded. With the default
// load factor of 0.5 and the default family size of 50 the probability of
// that failure at one-below-maximum capacity is smaller than 2^-50. The
// ordinal of the hash that placed each entry is recorded in a per-depth
// histogram; lookups read the largest depth currently in use once at the
// start and never probe beyond it.
//
// Concurrency. Exactly one goroutine at a time may call Put, PutAll, Delete,
// Clear or PopRandomValue. Any number of goroutines may concurrently call
// Get, ContainsKey, ContainsValue, Size, IsEmpty, MaxProbeDepthInUse and
// the iteration views. Violating the single-writer rule voids all
// guarantees. The map is eventually consistent: a newly inserted entry may
// be missed by a reader for a short lag, but once a reader has observed it,
// it never fails to observe it again until the writer deletes it; an
// overwritten value may be observed stale for a bounded window.
//
// Entry recycling. When the WithValueToKey option supplies a function that
// derives the key from the value, deleted slots are cleared in place and
// reused by later insertions, avoiding allocation churn when the same keys
// come and go. The derivation doubles as a validation on every read: a
// reader that races with the writer recycling a slot recomputes the key
// from the value it read and reports the entry absent on a mismatch, so a
// recycled slot's new value is never returned for the old key. Without the
// derivation, recycling is disabled, deletes detach the slot record, and
// reads need no post-check.
package monkey
