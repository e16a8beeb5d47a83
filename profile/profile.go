package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Config holds the profiler settings.
type Config struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option applies a configuration option to a Config.
type Option func(Config) Config

// Make returns a Config with opts applied in order.
func Make(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.Mode = mode

		return c
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) Option {
	return func(c Config) Config {
		c.Path = path

		return c
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.Quiet = quiet

		return c
	}
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start starts the profiler described by c.
//
// If the binary was built without the pprof tag, or c.Mode is empty or not
// one of [Modes], Start returns a no-op. Both Start and Stop are always safely
// callable.
func (c Config) Start() Stopper {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c.Mode, c.Path, c.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
