package ilp

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects the direction of optimization.
type Mode int

const (
	Maximize Mode = iota
	Minimize
)

func (m Mode) String() string {
	switch m {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	}
	return "unknown"
}

// ParseMode accepts "max", "maximize", "min" and "minimize".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return Maximize, errors.Errorf("unknown optimization mode %q", s)
}

// flip returns the opposite direction.
func (m Mode) flip() Mode {
	if m == Maximize {
		return Minimize
	}
	return Maximize
}

// better reports whether a is strictly better than b in this mode.
func (m Mode) better(a, b Rat) bool {
	if m == Maximize {
		return a.Greater(b)
	}
	return a.Less(b)
}

// Problem is an integer program in inequality form:
//
//	optimize   Objective^T x
//	subject to Constraints * x <= Bounds
//	           x >= 0, x integer
//
// Problems are treated as immutable; solvers copy what they extend.
type Problem struct {
	Constraints [][]Rat
	Bounds      []Rat
	Objective   []Rat
	Mode        Mode
}

// NewProblem assembles and validates a problem.
func NewProblem(a [][]Rat, b []Rat, c []Rat, mode Mode) (Problem, error) {
	p := Problem{
		Constraints: a,
		Bounds:      b,
		Objective:   c,
		Mode:        mode,
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// ExampleProblem returns the reference problem used throughout the tests and
// the demo binary:
//
//	maximize 7x1 + 5x2 + 3x3
//	4x1 +    x2 + x3 <= 4
//	 x1 +   2x2      <= 3
//	     1/2x2  + x3 <= 2
func ExampleProblem() Problem {
	return Problem{
		Constraints: [][]Rat{
			rats(4, 1, 1),
			rats(1, 2, 0),
			{Zero, NewRat(1, 2), One},
		},
		Bounds:    rats(4, 3, 2),
		Objective: rats(7, 5, 3),
		Mode:      Maximize,
	}
}

// Vars returns the number of decision variables.
func (p Problem) Vars() int { return len(p.Objective) }

// Rows returns the number of constraints.
func (p Problem) Rows() int { return len(p.Constraints) }

// Validate checks that all dimensions agree.
func (p Problem) Validate() error {
	n := len(p.Objective)
	if n == 0 {
		return errors.Wrap(ErrMalformedProblem, "objective has no coefficients")
	}
	if len(p.Constraints) == 0 {
		return errors.Wrap(ErrMalformedProblem, "no constraints")
	}
	if len(p.Constraints) != len(p.Bounds) {
		return errors.Wrapf(ErrMalformedProblem, "%d constraint rows but %d bounds", len(p.Constraints), len(p.Bounds))
	}
	for i, row := range p.Constraints {
		if len(row) != n {
			return errors.Wrapf(ErrMalformedProblem, "constraint row %d has %d coefficients, objective has %d", i, len(row), n)
		}
	}
	if p.Mode != Maximize && p.Mode != Minimize {
		return errors.Wrapf(ErrMalformedProblem, "unknown mode %d", int(p.Mode))
	}
	return nil
}

// CheckSolve reports whether x satisfies every constraint row. Only the first
// Vars() entries of x are read, so a full tableau solution can be passed in.
func (p Problem) CheckSolve(x []Rat) bool {
	if len(x) < p.Vars() {
		panic("solution vector is shorter than the number of variables")
	}
	for i, row := range p.Constraints {
		var sum Rat
		for j, a := range row {
			sum.AddAssign(a.Mul(x[j]))
		}
		if sum.Greater(p.Bounds[i]) {
			return false
		}
	}
	return true
}

// Evaluate returns the objective value of x.
func (p Problem) Evaluate(x []Rat) Rat {
	var f Rat
	for j, c := range p.Objective {
		f.AddAssign(c.Mul(x[j]))
	}
	return f
}

// withRow returns a deep copy of p with one more constraint appended.
// The receiver is never modified, so siblings never share rows.
func (p Problem) withRow(coefs []Rat, bound Rat) Problem {
	child := p.copy()
	child.Constraints = append(child.Constraints, append([]Rat(nil), coefs...))
	child.Bounds = append(child.Bounds, bound)
	return child
}

func (p Problem) copy() Problem {
	out := Problem{
		Constraints: make([][]Rat, len(p.Constraints), len(p.Constraints)+1),
		Bounds:      make([]Rat, len(p.Bounds), len(p.Bounds)+1),
		Objective:   append([]Rat(nil), p.Objective...),
		Mode:        p.Mode,
	}
	for i, row := range p.Constraints {
		out.Constraints[i] = append([]Rat(nil), row...)
	}
	copy(out.Bounds, p.Bounds)
	return out
}

// Integral returns an equivalent problem where every row, bound included,
// has been multiplied by the least common multiple of its denominators.
// The slack of an integral row takes whole values at every integer point,
// which the fractional cuts rely on.
func (p Problem) Integral() Problem {
	out := p.copy()
	for i, row := range out.Constraints {
		scale := p.rowScale(i)
		if scale.Equal(One) {
			continue
		}
		for j := range row {
			row[j].MulAssign(scale)
		}
		out.Bounds[i].MulAssign(scale)
	}
	return out
}

// rowScale is the factor Integral applies to row i.
func (p Problem) rowScale(i int) Rat {
	return Int(commonDenominator(append(append([]Rat(nil), p.Constraints[i]...), p.Bounds[i])))
}

// Variable is a decision variable declared through a Builder.
type Variable struct {
	// coefficient of the variable in the objective function
	Coefficient Rat

	index int
}

// Expression is a coefficient applied to a variable, e.g. "-1 * x1".
type Expression struct {
	coef     Rat
	variable *Variable
}

// Term builds an Expression.
func Term(coef Rat, v *Variable) Expression {
	return Expression{coef: coef, variable: v}
}

type inequality struct {
	// expressions will be summed together to form the LHS of ...
	expressions []Expression

	// ... a constraint with a certain RHS
	smallerThan Rat
}

// Builder assembles a Problem one variable and one inequality at a time.
type Builder struct {
	mode         Mode
	variables    []*Variable
	inequalities []inequality
}

func NewBuilder(mode Mode) *Builder {
	return &Builder{mode: mode}
}

// AddVariable adds a variable and returns a reference to it.
func (b *Builder) AddVariable(coef Rat) *Variable {
	v := &Variable{
		Coefficient: coef,
		index:       len(b.variables),
	}
	b.variables = append(b.variables, v)
	return v
}

// AddInequality adds sum(expr) <= smallerThan.
func (b *Builder) AddInequality(expr []Expression, smallerThan Rat) {
	if len(expr) == 0 {
		panic("must add expressions")
	}

	for _, e := range expr {
		if !b.checkExpression(e) {
			panic("provided expression contains a variable that has not been declared to this problem yet")
		}
	}

	b.inequalities = append(b.inequalities, inequality{
		expressions: expr,
		smallerThan: smallerThan,
	})
}

// Check whether the pointer to the variable is currently included in the problem.
func (b *Builder) checkExpression(e Expression) bool {
	for _, v := range b.variables {
		if v == e.variable {
			return true
		}
	}
	return false
}

// Problem converts the declarations to matrix form. Repeated terms on the
// same variable are summed.
func (b *Builder) Problem() (Problem, error) {
	n := len(b.variables)
	c := make([]Rat, n)
	for i, v := range b.variables {
		c[i] = v.Coefficient
	}

	a := make([][]Rat, len(b.inequalities))
	h := make([]Rat, len(b.inequalities))
	for i, ineq := range b.inequalities {
		a[i] = make([]Rat, n)
		for _, e := range ineq.expressions {
			a[i][e.variable.index].AddAssign(e.coef)
		}
		h[i] = ineq.smallerThan
	}

	return NewProblem(a, h, c, b.mode)
}
