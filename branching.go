package ilp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// BranchHeuristic selects which fractional decision variable to branch or
// cut on.
type BranchHeuristic int

const (
	// BranchLargestFraction picks the variable with the largest fractional part.
	BranchLargestFraction BranchHeuristic = iota

	// BranchMostInfeasible picks the variable whose fractional part is closest to 1/2.
	BranchMostInfeasible

	// BranchFirst picks the lowest-indexed fractional variable.
	BranchFirst
)

func (h BranchHeuristic) String() string {
	switch h {
	case BranchLargestFraction:
		return "largest-fraction"
	case BranchMostInfeasible:
		return "most-infeasible"
	case BranchFirst:
		return "first"
	}
	return fmt.Sprintf("BranchHeuristic(%d)", int(h))
}

// ParseBranchHeuristic accepts the names returned by BranchHeuristic.String.
func ParseBranchHeuristic(s string) (BranchHeuristic, error) {
	for _, h := range []BranchHeuristic{BranchLargestFraction, BranchMostInfeasible, BranchFirst} {
		if strings.EqualFold(strings.TrimSpace(s), h.String()) {
			return h, nil
		}
	}
	return BranchLargestFraction, errors.Errorf("unknown branching heuristic %q", s)
}

// FindFractionalVariable returns the index of the decision variable to
// branch on, or -1 when the first Vars() entries of s are all integral.
// Ties go to the lowest index.
func (t *Tableau) FindFractionalVariable(s Solution) int {
	return fractionalVariable(s.X[:t.n], t.cfg.heuristic)
}

var half = NewRat(1, 2)

func fractionalVariable(x []Rat, h BranchHeuristic) int {
	index := -1
	for i, v := range x {
		if v.IsInteger() {
			continue
		}
		if index == -1 {
			index = i
			continue
		}

		switch h {
		case BranchLargestFraction:
			if x[index].FractionalPart().Less(v.FractionalPart()) {
				index = i
			}
		case BranchMostInfeasible:
			if distanceToHalf(v).Less(distanceToHalf(x[index])) {
				index = i
			}
		case BranchFirst:
			return index
		default:
			panic("provided branching heuristic config variable unknown")
		}
	}
	return index
}

func distanceToHalf(v Rat) Rat {
	return v.FractionalPart().Sub(half).Abs()
}
