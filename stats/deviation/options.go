package deviation

import "runtime"

// DefaultParallelThreshold is the minimum number of matrix elements before
// channels are spread across workers.
const DefaultParallelThreshold = 1 << 15

// Option configures a computation.
type Option func(*config)

type config struct {
	workers           int
	parallelThreshold int
}

func defaultConfig() config {
	return config{
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: DefaultParallelThreshold,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithWorkers sets the number of goroutines channels are spread across.
// n <= 0 selects GOMAXPROCS; 1 computes everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}

// WithParallelThreshold sets the minimum rows*cols for which the work is
// partitioned. Smaller inputs run on the calling goroutine.
func WithParallelThreshold(elements int) Option {
	return func(c *config) {
		if elements >= 0 {
			c.parallelThreshold = elements
		}
	}
}
