package lazysorted

// config accumulates the settings a list is built with. It is never
// exposed directly; Option mutates it.
type config[T any] struct {
	less    func(a, b T) (bool, error)
	key     func(T) (T, error)
	reverse bool
	seed    *int64
}

// Option configures a List at construction time.
type Option[T any] func(*config[T])

// WithLess supplies the less-than relation a list sorts by. Required by
// New; NewOrdered supplies one automatically from cmp.Ordered unless this
// option overrides it.
func WithLess[T any](less func(a, b T) bool) Option[T] {
	return func(c *config[T]) {
		c.less = func(a, b T) (bool, error) { return less(a, b), nil }
	}
}

// WithLessErr is WithLess for a less-than relation that can itself fail,
// e.g. one backed by a fallible type assertion or external lookup.
func WithLessErr[T any](less func(a, b T) (bool, error)) Option[T] {
	return func(c *config[T]) { c.less = less }
}

// WithKey sorts by key(v) instead of v directly, without changing the
// elements returned by Get/Slice/Between/Iterator.
func WithKey[T any](key func(T) T) Option[T] {
	return func(c *config[T]) {
		c.key = func(v T) (T, error) { return key(v), nil }
	}
}

// WithKeyErr is WithKey for a key projection that can itself fail.
func WithKeyErr[T any](key func(T) (T, error)) Option[T] {
	return func(c *config[T]) { c.key = key }
}

// WithReverse sorts in descending order when reverse is true.
func WithReverse[T any](reverse bool) Option[T] {
	return func(c *config[T]) { c.reverse = reverse }
}

// WithSeed fixes the random source driving pivot selection, for
// reproducible runs (tests, benchmarks). Without it the list seeds itself
// from crypto/rand.
func WithSeed[T any](seed int64) Option[T] {
	return func(c *config[T]) { c.seed = &seed }
}
