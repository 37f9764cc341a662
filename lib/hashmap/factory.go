package hashmap

import (
	"github.com/judismar/monkeymap/lib/hashmap/engines/builtinmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/monkey"
	"github.com/judismar/monkeymap/lib/hashmap/engines/mutexmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/syncmap"
	"github.com/judismar/monkeymap/lib/hashmap/engines/xsyncmap"
)

// Config carries the construction parameters of the factory. Engines ignore
// the fields that do not apply to them.
type Config[K comparable, V any] struct {
	// Capacity is the maximum number of live entries for the monkey engine
	// (a hard ceiling) and a pre-sizing hint for the builtin-map engines.
	Capacity int

	// LoadFactor governs the monkey engine's slot-array sizing. Zero means
	// the engine default (0.5).
	LoadFactor float64

	// MaxHashes bounds the monkey engine's hash family. Zero means the
	// engine default (50).
	MaxHashes int

	// ValueToKey, if set, enables the monkey engine's slot recycling and
	// validated reads.
	ValueToKey func(V) K
}

// New constructs the requested engine behind the Map interface.
func New[K comparable, V any](impl Implementation, cfg Config[K, V]) Map[K, V] {
	switch impl {
	case ImplMonkey:
		opts := make([]monkey.Option[K, V], 0, 3)
		if cfg.LoadFactor != 0 {
			opts = append(opts, monkey.WithLoadFactor[K, V](cfg.LoadFactor))
		}
		if cfg.MaxHashes != 0 {
			opts = append(opts, monkey.WithMaxHashes[K, V](cfg.MaxHashes))
		}
		if cfg.ValueToKey != nil {
			opts = append(opts, monkey.WithValueToKey[K, V](cfg.ValueToKey))
		}
		return monkey.New[K, V](cfg.Capacity, opts...)
	case ImplXSync:
		return xsyncmap.New[K, V]()
	case ImplSyncMap:
		return syncmap.New[K, V]()
	case ImplMutexMap:
		return mutexmap.New[K, V](cfg.Capacity)
	default:
		return builtinmap.New[K, V](cfg.Capacity)
	}
}
