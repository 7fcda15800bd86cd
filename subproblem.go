package ilp

// subProblem is one node of the branch-and-bound tree: the root problem,
// unmodified, plus the constraints added on the way down.
type subProblem struct {

	// unique identifier for the subproblem
	id int64

	// id of the parent problem
	parent int64

	depth int

	// the original problem. Shared between all subproblems and never modified.
	root Problem

	// additional inequality constraints for branch-and-bound.
	// Each step down in the search procedure adds a constraint.
	bnbConstraints []bnbConstraint
}

type bnbConstraint struct {
	// the index of the variable that we branched on
	branchedVariable int

	// the row to append before solving: gsharp * x <= hsharp
	hsharp Rat
	gsharp []Rat
}

func rootSubProblem(p Problem) subProblem {
	return subProblem{
		root: p,
	}
}

// problem returns the root problem with all branching rows appended, as a
// fresh copy.
func (p subProblem) problem() Problem {
	out := p.root.copy()
	for _, constr := range p.bnbConstraints {
		out = out.withRow(constr.gsharp, constr.hsharp)
	}
	return out
}

// Inherit everything from the parent problem, but append a new bnb constraint
// factor * x[branchOn] <= smallerOrEqualThan. A factor of -1 turns the row
// into a lower bound.
func (p subProblem) child(id int64, branchOn int, factor Rat, smallerOrEqualThan Rat) subProblem {
	newConstraint := bnbConstraint{
		branchedVariable: branchOn,
		hsharp:           smallerOrEqualThan,
		gsharp:           make([]Rat, p.root.Vars()),
	}
	newConstraint.gsharp[branchOn] = factor

	child := subProblem{
		id:     id,
		parent: p.id,
		depth:  p.depth + 1,
		root:   p.root,

		// copied so that siblings never share a backing array
		bnbConstraints: make([]bnbConstraint, len(p.bnbConstraints), len(p.bnbConstraints)+1),
	}
	copy(child.bnbConstraints, p.bnbConstraints)
	child.bnbConstraints = append(child.bnbConstraints, newConstraint)

	return child
}

// branch splits p on variable branchOn with current value v into
// x <= trunc(v) and x >= trunc(v)+1.
func (p subProblem) branch(lowerID, upperID int64, branchOn int, v Rat) (lower, upper subProblem) {
	b := v.IntegerPart()
	lower = p.child(lowerID, branchOn, One, b)
	upper = p.child(upperID, branchOn, One.Neg(), b.Add(One).Neg())
	return
}
