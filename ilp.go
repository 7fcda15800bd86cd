package ilp

import (
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/pkg/errors"
)

// SolveRelaxation solves p without integrality requirements and returns the
// optimal basic solution.
func SolveRelaxation(p Problem, opts ...Option) (Solution, error) {
	t, err := NewTableau(p, opts...)
	if err != nil {
		return Solution{}, err
	}
	if err := t.Solve(); err != nil {
		return Solution{}, err
	}
	return t.Solution(), nil
}

// FloatRelaxation solves the continuous relaxation of p in floating point
// with gonum's simplex implementation. It returns the objective value in the
// direction of p.Mode and the decision variables only. The exact solvers
// never use it; it exists to cross-check them.
func FloatRelaxation(p Problem) (z float64, x []float64, err error) {
	if err := p.Validate(); err != nil {
		return 0, nil, err
	}

	c, A, b := convertToEqualities(p)
	z, x, err = lp.Simplex(c, A, b, 0, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return 0, nil, errors.Wrap(ErrInfeasible, "float relaxation")
	case errors.Is(err, lp.ErrUnbounded):
		return 0, nil, errors.Wrap(ErrUnbounded, "float relaxation")
	case err != nil:
		return 0, nil, errors.Wrap(err, "float relaxation")
	}

	if p.Mode == Maximize {
		z = -z
	}

	// take only the non-slack variables from the result
	return z, x[:p.Vars()], nil
}
