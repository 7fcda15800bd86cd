package ilp

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// convertToEqualities converts p to the standard form used by gonum's lp
// package,
//
//	minimize c^T x  s.t.  A x = b, x >= 0,
//
// by adding one slack column per inequality. A maximization objective is
// negated. The result is floating point and only serves as a cross-check.
func convertToEqualities(p Problem) (cNew []float64, aNew *mat.Dense, bNew []float64) {

	// number of original variables
	nVar := p.Vars()

	// number of inequalities, one slack each
	nIneq := p.Rows()

	// new number of total variables
	nNewVar := nVar + nIneq

	// construct new c, with zeroes for the slack variables
	cNew = make([]float64, nNewVar)
	for j, v := range p.Objective {
		cNew[j] = v.Float64()
	}
	if p.Mode == Maximize {
		floats.Scale(-1, cNew[:nVar])
	}

	bNew = make([]float64, nIneq)
	for i, v := range p.Bounds {
		bNew[i] = v.Float64()
	}

	// the original rows on the left, an identity block of slack indicators on the right
	aNew = mat.NewDense(nIneq, nNewVar, nil)
	for i, row := range p.Constraints {
		for j, v := range row {
			aNew.Set(i, j, v.Float64())
		}
		aNew.Set(i, nVar+i, 1)
	}

	return
}
