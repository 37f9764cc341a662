package hashmap

import (
	"iter"
	"strings"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// Implementation identifies a map engine by short name.
type Implementation string

const (
	ImplMonkey   Implementation = "monkey"
	ImplXSync    Implementation = "xsync"
	ImplSyncMap  Implementation = "syncmap"
	ImplMutexMap Implementation = "mutexmap"
	ImplBuiltin  Implementation = "builtin"
)

// Implementations returns all known engines in a stable order.
func Implementations() []Implementation {
	return []Implementation{ImplMonkey, ImplXSync, ImplSyncMap, ImplMutexMap, ImplBuiltin}
}

// ThreadSafe reports whether the engine may be accessed from multiple
// goroutines. Note that for ImplMonkey this means single-writer/multi-reader
// safety, not arbitrary concurrent mutation.
func (i Implementation) ThreadSafe() bool {
	return i != ImplBuiltin
}

func (i Implementation) String() string {
	return string(i)
}

// ImplementationByShortName resolves a (case-insensitive) short name to an
// Implementation. Unknown or empty names fall back to the builtin map.
func ImplementationByShortName(name string) Implementation {
	switch Implementation(strings.ToLower(strings.TrimSpace(name))) {
	case ImplMonkey:
		return ImplMonkey
	case ImplXSync:
		return ImplXSync
	case ImplSyncMap:
		return ImplSyncMap
	case ImplMutexMap:
		return ImplMutexMap
	default:
		return ImplBuiltin
	}
}

// --------------------------------------------------------------------------
// Map Interface
// --------------------------------------------------------------------------

// Map defines the operations shared by all engine implementations.
//
// The concurrency contract depends on the engine: see the package docs of
// each engine. Size may be eventually consistent when read concurrently
// with mutations.
type Map[K comparable, V any] interface {

	// Size returns the current number of live entries.
	Size() int

	// IsEmpty reports whether the map holds no live entries.
	IsEmpty() bool

	// ContainsKey reports whether a value is mapped to the given key.
	ContainsKey(key K) bool

	// ContainsValue reports whether at least one live entry holds the given
	// value. It is a linear scan. The dynamic type of V must be comparable,
	// otherwise the comparison panics (interface equality semantics).
	ContainsValue(value V) bool

	// Get retrieves the value mapped to key. The boolean reports whether a
	// mapping was found.
	Get(key K) (value V, loaded bool)

	// Put inserts or updates the mapping for key and returns the prior
	// value, if any. Engines with bounded capacity report a failed insert
	// through a non-nil error; in that case the map is unchanged.
	Put(key K, value V) (prior V, loaded bool, err error)

	// PutAll inserts every mapping of entries. Engines that do not support
	// bulk insertion return an error wrapping errors.ErrUnsupported.
	PutAll(entries map[K]V) error

	// Delete removes the mapping for key and returns the removed value, if
	// any. Deleting a missing key is not an error.
	Delete(key K) (prior V, loaded bool)

	// Clear removes all entries.
	Clear()

	// All returns a lazy, single-pass sequence over the live entries.
	All() iter.Seq2[K, V]

	// Keys returns a lazy, single-pass sequence over the live keys.
	Keys() iter.Seq[K]

	// Values returns a lazy, single-pass sequence over the live values.
	Values() iter.Seq[V]
}
