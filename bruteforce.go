package ilp

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// SolveBruteForce checks every integer point of the box [0, nmax]^n against
// the constraints of p and returns each feasible point with its objective
// value, in lexicographic order. It does not use the simplex method at all
// and serves as an independent oracle for the other solvers.
//
// Unlike tableau solutions, X holds only the n decision variables and no
// slack entries.
func SolveBruteForce(p Problem, nmax int) ([]Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if nmax < 0 {
		return nil, errors.Wrapf(ErrMalformedProblem, "negative grid bound %d", nmax)
	}

	n := p.Vars()
	lens := make([]int, n)
	for i := range lens {
		lens[i] = nmax + 1
	}

	var solutions []Solution
	point := make([]int, n)
	gen := combin.NewCartesianGenerator(lens)
	for gen.Next() {
		point = gen.Product(point)

		x := make([]Rat, n)
		for i, v := range point {
			x[i] = Int(int64(v))
		}
		if !p.CheckSolve(x) {
			continue
		}

		solutions = append(solutions, Solution{X: x, F: p.Evaluate(x)})
	}

	return solutions, nil
}
