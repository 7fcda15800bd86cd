package ilp

import (
	"fmt"
	"strings"
)

// Solution is a terminal result: the values of every tableau column and the
// objective value. Solutions are never modified after creation.
type Solution struct {
	X []Rat `yaml:"x"`
	F Rat   `yaml:"f"`
}

// Decision returns the first n entries of X, the original decision
// variables.
func (s Solution) Decision(n int) []Rat {
	return append([]Rat(nil), s.X[:n]...)
}

// IsIntegral reports whether the first n entries of X are whole numbers.
func (s Solution) IsIntegral(n int) bool {
	for _, v := range s.X[:n] {
		if !v.IsInteger() {
			return false
		}
	}
	return true
}

func (s Solution) String() string {
	parts := make([]string, len(s.X))
	for i, v := range s.X {
		parts[i] = fmt.Sprintf("x%d = %s", i+1, v)
	}
	return fmt.Sprintf("[%s] F = %s", strings.Join(parts, ", "), s.F)
}

// Best returns the solution with the largest objective value in Maximize
// mode or the smallest in Minimize mode, the first one on ties. Passing an
// empty slice is a programming error and panics.
func Best(solutions []Solution, mode Mode) Solution {
	if len(solutions) == 0 {
		panic("ilp: Best called without solutions")
	}

	best := 0
	for i := range solutions {
		if mode.better(solutions[i].F, solutions[best].F) {
			best = i
		}
	}
	return solutions[best]
}
