package ilp

import (
	"fmt"

	"github.com/pkg/errors"
)

// SolveGomory solves p with fractional (Gomory) cutting planes. While the
// relaxation optimum is fractional, a cut derived from the row of the chosen
// fractional variable is appended as a new row and column, and the enlarged
// tableau is solved again.
//
// Rows of p are first scaled to whole coefficients (see Problem.Integral):
// a fractional cut is only valid when every slack is integer at integer
// points. On success the single integral solution is returned. Its slack
// entries for the rows of p are scaled back, so they measure the rows of p;
// the entries past them belong to the cuts. An
// infeasible relaxation yields an empty result and no error.
// ErrCutLimitExceeded is returned once more than WithMaxCuts cuts would be
// needed.
func SolveGomory(p Problem, opts ...Option) ([]Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	t, err := newTableau(p.Integral(), cfg)
	if err != nil {
		return nil, err
	}

	for cuts := 0; ; cuts++ {
		node := newNode(int64(cuts), int64(max(cuts-1, 0)), cuts)

		next, soln, err := gomoryStep(t, cuts < cfg.maxCuts)
		switch {
		case errors.Is(err, ErrInfeasible):
			cfg.middleware.ProcessDecision(node, CutNotFeasible)
			return nil, nil
		case err != nil:
			return nil, errors.Wrapf(err, "after %d cuts", cuts)
		case next == nil:
			cfg.middleware.ProcessDecision(node.withSolution(soln), CutIntegral)
			return []Solution{unscaleSlacks(p, soln)}, nil
		}

		cfg.middleware.ProcessDecision(node.withSolution(soln), CutAdded)
		cfg.logger.V(1).Info("added cut", "cuts", cuts+1, "objective", soln.F, "rows", next.Rows())
		t = next
	}
}

// gomoryStep solves t, which it owns, and either finishes (next is nil and
// soln is integral) or returns a new tableau carrying one more cut. When
// allowCut is false a fractional optimum ends in ErrCutLimitExceeded.
func gomoryStep(t *Tableau, allowCut bool) (next *Tableau, soln Solution, err error) {
	if err := t.Solve(); err != nil {
		return nil, Solution{}, err
	}

	soln = t.Solution()
	variable := t.FindFractionalVariable(soln)
	if variable == -1 {
		return nil, soln, nil
	}
	if !allowCut {
		return nil, soln, errors.Wrapf(ErrCutLimitExceeded, "x%d = %s is still fractional", variable+1, soln.X[variable])
	}

	return t.withCut(variable), soln, nil
}

// withCut returns a copy of t extended by the fractional cut of the row in
// which variable is basic:
//
//	-sum frac(a_j) x_j + s = -frac(b)   over the non-basic columns j
//
// The new slack s is basic in the new row. The rhs of the new row is
// negative, so the next Solve starts with a feasibility repair.
func (t *Tableau) withCut(variable int) *Tableau {
	source := -1
	for i, b := range t.basis {
		if b == variable {
			source = i
			break
		}
	}
	if source == -1 {
		panic(fmt.Sprintf("x%d is not basic", variable+1))
	}

	width := t.n + t.m
	c := t.Clone()

	// open a zero column in front of the rhs of every existing row
	for i, row := range c.rows {
		extended := make([]Rat, width+2)
		copy(extended, row[:width])
		extended[width+1] = row[width]
		c.rows[i] = extended
	}

	cut := make([]Rat, width+2)
	for j := 0; j < width; j++ {
		if !t.IsBasis(j) {
			cut[j] = t.rows[source][j].FractionalPart().Neg()
		}
	}
	cut[width] = One
	cut[width+1] = t.rhs(source).FractionalPart().Neg()
	c.rows = append(c.rows, cut)

	objective := make([]Rat, width+2)
	copy(objective, t.objective[:width])
	c.objective = objective
	c.deltas = make([]Rat, width+2)
	c.basis = append(c.basis, width)
	c.m++

	return c
}

// unscaleSlacks divides the slack of every original row by the factor
// Integral multiplied that row with.
func unscaleSlacks(p Problem, s Solution) Solution {
	x := append([]Rat(nil), s.X...)
	n := p.Vars()
	for i := 0; i < p.Rows(); i++ {
		x[n+i].QuoAssign(p.rowScale(i))
	}
	return Solution{X: x, F: s.F}
}
