package ilp

import (
	"github.com/pkg/errors"
)

// Decision describes what a solver did at one node of its search.
type Decision string

const (
	SubproblemNotFeasible Decision = "subproblem has no feasible solution"
	SubproblemIntegral    Decision = "subproblem solution is integral"
	SubproblemBranching   Decision = "subproblem solution is fractional, so branching"
	CutAdded              Decision = "relaxation is fractional, so adding a cut"
	CutIntegral           Decision = "relaxation with cuts is integral"
	CutNotFeasible        Decision = "relaxation with cuts has no feasible solution"
)

// Node summarizes one solved subproblem. It holds copies of the solution
// values only, never the tableau.
type Node struct {
	ID     int64
	Parent int64
	Depth  int

	// whether the relaxation had an optimal solution; X and F are only set
	// when it did
	Feasible bool
	X        []Rat
	F        Rat

	// filled in by TreeLogger
	Decision Decision
}

func newNode(id, parent int64, depth int) Node {
	return Node{ID: id, Parent: parent, Depth: depth}
}

func (n Node) withSolution(s Solution) Node {
	n.Feasible = true
	n.X = s.X
	n.F = s.F
	return n
}

// SolveBranchAndBound returns every integral solution found by recursively
// splitting p on fractional variables. Each split adds x_i <= b to one child
// and -x_i <= -(b+1) to the other, where b is the integer part of x_i, and
// both children are rebuilt from the original constraints.
//
// The whole tree is explored, lower child first: no subtree is skipped
// because of a better incumbent, so the result lists every integral leaf.
// At every split the solutions of the upper child precede those of the
// lower child, which decides the winner of a tie in Best.
// An infeasible subproblem contributes nothing; an infeasible root yields an
// empty result and no error.
func SolveBranchAndBound(p Problem, opts ...Option) ([]Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tree := &enumerationTree{cfg: newConfig(opts)}
	return tree.explore(rootSubProblem(p))
}

type enumerationTree struct {
	cfg    config
	lastID int64
}

func (e *enumerationTree) newID() int64 {
	e.lastID++
	return e.lastID
}

func (e *enumerationTree) explore(sp subProblem) ([]Solution, error) {
	if sp.depth > e.cfg.maxDepth {
		return nil, errors.Wrapf(ErrDepthLimitExceeded, "subproblem %d at depth %d", sp.id, sp.depth)
	}

	t, err := newTableau(sp.problem(), e.cfg)
	if err != nil {
		return nil, err
	}

	node := newNode(sp.id, sp.parent, sp.depth)
	if err := t.Solve(); err != nil {
		if errors.Is(err, ErrInfeasible) {
			e.cfg.middleware.ProcessDecision(node, SubproblemNotFeasible)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "subproblem %d", sp.id)
	}

	soln := t.Solution()
	node = node.withSolution(soln)

	branchOn := t.FindFractionalVariable(soln)
	if branchOn == -1 {
		e.cfg.middleware.ProcessDecision(node, SubproblemIntegral)
		return []Solution{soln}, nil
	}
	e.cfg.middleware.ProcessDecision(node, SubproblemBranching)

	lower, upper := sp.branch(e.newID(), e.newID(), branchOn, soln.X[branchOn])
	e.cfg.logger.V(1).Info("branching",
		"subproblem", sp.id,
		"variable", branchOn+1,
		"value", soln.X[branchOn],
		"lower", lower.id,
		"upper", upper.id)

	lowerSolutions, err := e.explore(lower)
	if err != nil {
		return nil, err
	}
	upperSolutions, err := e.explore(upper)
	if err != nil {
		return nil, err
	}

	// the upper child's solutions come first
	return append(upperSolutions, lowerSolutions...), nil
}
