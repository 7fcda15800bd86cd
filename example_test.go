package ilp_test

import (
	"fmt"

	ilp "github.com/jjhbw/exactilp"
)

func ExampleSolveBranchAndBound() {
	p := ilp.ExampleProblem()

	solutions, err := ilp.SolveBranchAndBound(p)
	if err != nil {
		panic(err)
	}

	best := ilp.Best(solutions, p.Mode)
	fmt.Println(len(solutions), best.F, best.Decision(p.Vars()))
	// Output: 3 8 [0 1 1]
}

func ExampleSolveGomory() {
	p := ilp.ExampleProblem()

	solutions, err := ilp.SolveGomory(p)
	if err != nil {
		panic(err)
	}

	fmt.Println(solutions[0].F, solutions[0].Decision(p.Vars()))
	// Output: 8 [0 1 1]
}

func ExampleBuilder() {
	b := ilp.NewBuilder(ilp.Minimize)
	x := b.AddVariable(ilp.Int(1))
	y := b.AddVariable(ilp.Int(2))

	// x + y >= 2
	b.AddInequality([]ilp.Expression{ilp.Term(ilp.Int(-1), x), ilp.Term(ilp.Int(-1), y)}, ilp.Int(-2))
	// x <= 3/2
	b.AddInequality([]ilp.Expression{ilp.Term(ilp.One, x)}, ilp.NewRat(3, 2))

	p, err := b.Problem()
	if err != nil {
		panic(err)
	}

	relaxed, _ := ilp.SolveRelaxation(p)
	solutions, _ := ilp.SolveBranchAndBound(p)
	fmt.Println(relaxed.F, ilp.Best(solutions, p.Mode).F)
	// Output: 5/2 3
}

func ExampleRat() {
	r := ilp.NewRat(6, -4)
	fmt.Println(r, r.IntegerPart(), r.Floor(), r.FractionalPart())
	// Output: -3/2 -1 -2 1/2
}
