package monkey

// Option configures a Map while it is being created.
type Option[K comparable, V any] interface {
	apply(c *config[K, V])
}

type config[K comparable, V any] struct {
	loadFactor float64
	maxHashes  int
	valueToKey func(V) K
}

type loadFactorOption[K comparable, V any] struct {
	loadFactor float64
}

func (op loadFactorOption[K, V]) apply(c *config[K, V]) {
	c.loadFactor = op.loadFactor
}

// WithLoadFactor sets the intended load factor in (0, 1]. It governs the
// slot-array size only: a smaller factor means a larger array and a lower
// collision probability. The default is 0.5.
func WithLoadFactor[K comparable, V any](loadFactor float64) Option[K, V] {
	return loadFactorOption[K, V]{loadFactor}
}

type maxHashesOption[K comparable, V any] struct {
	maxHashes int
}

func (op maxHashesOption[K, V]) apply(c *config[K, V]) {
	c.maxHashes = op.maxHashes
}

// WithMaxHashes sets the size of the hash family, bounding the probe length
// of every operation. The default is 50.
func WithMaxHashes[K comparable, V any](maxHashes int) Option[K, V] {
	return maxHashesOption[K, V]{maxHashes}
}

type valueToKeyOption[K comparable, V any] struct {
	valueToKey func(V) K
}

func (op valueToKeyOption[K, V]) apply(c *config[K, V]) {
	c.valueToKey = op.valueToKey
}

// WithValueToKey supplies a function that recomputes the key from a stored
// value. Its presence enables two coupled behaviors that cannot be toggled
// independently: deleted slots are recycled in place, and every read
// validates the retrieved value against the queried key. For a map of users
// keyed by id this is typically something like (*User).ID.
func WithValueToKey[K comparable, V any](valueToKey func(V) K) Option[K, V] {
	return valueToKeyOption[K, V]{valueToKey}
}
