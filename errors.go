package ilp

import "github.com/pkg/errors"

// Sentinel errors. Solvers wrap them with context, so match with errors.Is.
var (
	// ErrMalformedProblem is returned when the constraint matrix, bounds and
	// objective disagree in size.
	ErrMalformedProblem = errors.New("ilp: malformed problem")

	// ErrInfeasible is returned when no assignment satisfies the constraints.
	ErrInfeasible = errors.New("ilp: problem is infeasible")

	// ErrUnbounded is returned when the entering column has no limiting row.
	ErrUnbounded = errors.New("ilp: problem is unbounded")

	// ErrIterationLimit is returned when a single simplex solve exceeds the
	// configured number of pivots.
	ErrIterationLimit = errors.New("ilp: simplex iteration limit exceeded")

	// ErrCutLimitExceeded is returned when the cutting-plane method appends
	// more cuts than allowed without reaching an integral solution.
	ErrCutLimitExceeded = errors.New("ilp: cutting plane limit exceeded")

	// ErrDepthLimitExceeded is returned when branch-and-bound recursion goes
	// deeper than allowed.
	ErrDepthLimitExceeded = errors.New("ilp: branch-and-bound depth limit exceeded")
)
