// Package ilp solves small integer linear programs with exact rational
// arithmetic.
//
// A Problem is a set of "<=" constraints over non-negative variables. Three
// strategies produce integral solutions:
//
//   - SolveBranchAndBound splits the relaxation on fractional variables and
//     explores the full tree.
//   - SolveGomory appends fractional cutting planes to a single tableau.
//   - SolveBruteForce enumerates a bounded integer grid.
//
// Best reduces a list of solutions to the optimal one. All numbers are Rat
// values, so feasibility and optimality decisions are never subject to
// rounding. FloatRelaxation solves the continuous relaxation with gonum for
// comparison only.
package ilp
