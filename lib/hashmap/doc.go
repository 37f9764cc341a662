// Package hashmap defines the generic map abstraction shared by all engine
// implementations in this repository, together with the implementation enum
// and the factory that constructs an engine by name.
//
// The package focuses on:
//   - A single Map[K, V] interface that every engine satisfies, so that the
//     test suite, the stress harness and the benchmark harness can exercise
//     any implementation interchangeably
//   - An Implementation enum with short names and a thread-safety flag,
//     so that CLI tools can select (or loop through) engines by name
//   - A factory (New) that builds the requested engine from a single Config
//
// Engines:
//
//   - monkey: the centerpiece of the repository. A fixed-capacity map using
//     multi-choice open addressing that supports one writer and any number
//     of concurrent readers without locks. See lib/hashmap/engines/monkey.
//
//   - xsync: an adapter over xsync.MapOf, a general-purpose concurrent map.
//     Serves as the high-quality multi-writer baseline.
//
//   - syncmap: a typed adapter over the standard library's sync.Map.
//
//   - mutexmap: a builtin map guarded by a sync.RWMutex, the simplest
//     correct concurrent implementation.
//
//   - builtin: a plain builtin map with no synchronization at all. Not
//     thread-safe; it exists as the single-threaded benchmark baseline.
//
// The Map interface deliberately mirrors a classic associative container:
// Put returns the prior value, Delete returns the removed value, and the
// iteration views are lazy single-pass sequences (iter.Seq). Engines that
// cannot support an operation report it through errors.ErrUnsupported.
package hashmap
