package repository

// Option applies a configuration option to a Store.
type Option func(*storeConfig)

type storeConfig struct {
	maxSize int
	onEvict func(id string)
}

// WithMaxSize bounds the number of entries. If maxSize <= 0 the store is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(c *storeConfig) {
		c.maxSize = maxSize
	}
}

// WithEvictHook is called, with the store lock held, for every evicted id.
func WithEvictHook(fn func(id string)) Option {
	return func(c *storeConfig) {
		c.onEvict = fn
	}
}
