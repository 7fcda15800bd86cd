package ilp

import "github.com/go-logr/logr"

const (
	// DefaultMaxIterations bounds the pivots of a single simplex solve.
	DefaultMaxIterations = 10000

	// DefaultMaxCuts bounds the number of fractional cuts appended by SolveGomory.
	DefaultMaxCuts = 64

	// DefaultMaxDepth bounds the branch-and-bound recursion.
	DefaultMaxDepth = 64
)

type config struct {
	maxIterations int
	maxCuts       int
	maxDepth      int
	heuristic     BranchHeuristic
	logger        logr.Logger
	middleware    Middleware
}

func defaultConfig() config {
	return config{
		maxIterations: DefaultMaxIterations,
		maxCuts:       DefaultMaxCuts,
		maxDepth:      DefaultMaxDepth,
		heuristic:     BranchLargestFraction,
		logger:        logr.Discard(),
		middleware:    dummyMiddleware{},
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option tunes a solver.
type Option func(*config)

// WithMaxIterations caps the pivots of one simplex solve. Non-positive values
// keep the default.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithMaxCuts caps the cuts appended by SolveGomory. Non-positive values keep
// the default.
func WithMaxCuts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxCuts = n
		}
	}
}

// WithMaxDepth caps the branch-and-bound recursion depth. Non-positive values
// keep the default.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithBranchHeuristic selects the fractional variable rule used by both
// integer drivers.
func WithBranchHeuristic(h BranchHeuristic) Option {
	return func(c *config) {
		c.heuristic = h
	}
}

// WithLogger sets the logger used for debug traces at V(1).
func WithLogger(l logr.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMiddleware registers a receiver for every search decision.
func WithMiddleware(m Middleware) Option {
	return func(c *config) {
		if m != nil {
			c.middleware = m
		}
	}
}
