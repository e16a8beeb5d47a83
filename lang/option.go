package lang

import "github.com/ardnew/miniml/log"

// DefaultMaxDepth is the default limit on nested function applications.
// Users may modify this before evaluating to change the default.
var DefaultMaxDepth = 100000

// config holds options shared by parsing, evaluation, and sessions.
type config struct {
	logger   log.Logger
	maxDepth int
	cache    bool
}

// Option configures parsing, evaluation, or session behavior.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxDepth limits nested function applications. Exceeding the limit
// fails with [ErrMaxDepthExceeded]. A depth of 0 disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithCache enables or disables the shared parse cache used by [Session].
func WithCache(enabled bool) Option {
	return func(c *config) {
		c.cache = enabled
	}
}

// makeConfig applies options over the defaults.
func makeConfig(opts ...Option) config {
	c := config{
		maxDepth: DefaultMaxDepth,
		cache:    true,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
