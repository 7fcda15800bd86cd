package ilp

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
)

// Tableau is one linear program in simplex form. Columns are laid out as
//
//	[ x_1 .. x_n | s_1 .. s_m | rhs ]
//
// where the slack block starts out as the identity. All arithmetic is exact.
type Tableau struct {
	// number of decision variables and constraint rows
	n int
	m int

	mode Mode

	// objective coefficients, zero for slack columns and the rhs slot
	objective []Rat

	// basis[i] is the column currently basic in row i
	basis []int

	// reduced costs, recomputed on every iteration. The rhs slot holds the
	// current objective value.
	deltas []Rat

	rows [][]Rat

	// the problem this tableau was built from. Never modified.
	initial Problem

	cfg    config
	pivots int
}

// NewTableau builds the initial tableau of p with an identity slack block.
func NewTableau(p Problem, opts ...Option) (*Tableau, error) {
	return newTableau(p, newConfig(opts))
}

func newTableau(p Problem, cfg config) (*Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n, m := p.Vars(), p.Rows()
	t := &Tableau{
		n:         n,
		m:         m,
		mode:      p.Mode,
		objective: make([]Rat, n+m+1),
		basis:     make([]int, m),
		deltas:    make([]Rat, n+m+1),
		rows:      make([][]Rat, m),
		initial:   p.copy(),
		cfg:       cfg,
	}
	copy(t.objective, p.Objective)

	for i := 0; i < m; i++ {
		t.basis[i] = n + i

		row := make([]Rat, n+m+1)
		copy(row, p.Constraints[i])
		row[n+i] = One
		row[n+m] = p.Bounds[i]
		t.rows[i] = row
	}

	return t, nil
}

// Vars returns the number of decision variables.
func (t *Tableau) Vars() int { return t.n }

// Rows returns the number of constraint rows, cuts included.
func (t *Tableau) Rows() int { return t.m }

// Cols returns the number of variable columns, excluding the rhs.
func (t *Tableau) Cols() int { return t.n + t.m }

func (t *Tableau) Mode() Mode { return t.mode }

// Problem returns the problem the tableau was built from.
func (t *Tableau) Problem() Problem { return t.initial.copy() }

// Pivots returns the number of pivots performed so far.
func (t *Tableau) Pivots() int { return t.pivots }

// Basis returns a copy of the basic column of every row.
func (t *Tableau) Basis() []int { return append([]int(nil), t.basis...) }

// Row returns a copy of row i, rhs last.
func (t *Tableau) Row(i int) []Rat { return append([]Rat(nil), t.rows[i]...) }

// Deltas returns a copy of the reduced costs, objective value last.
func (t *Tableau) Deltas() []Rat { return append([]Rat(nil), t.deltas...) }

// Objective returns a copy of the objective row, rhs slot last.
func (t *Tableau) Objective() []Rat { return append([]Rat(nil), t.objective...) }

func (t *Tableau) rhs(row int) Rat { return t.rows[row][t.n+t.m] }

// Clone returns a deep copy sharing no mutable state with t.
func (t *Tableau) Clone() *Tableau {
	c := *t
	c.objective = append([]Rat(nil), t.objective...)
	c.basis = append([]int(nil), t.basis...)
	c.deltas = append([]Rat(nil), t.deltas...)
	c.rows = make([][]Rat, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = append([]Rat(nil), r...)
	}
	c.initial = t.initial.copy()
	return &c
}

// Solve runs feasibility repair followed by the primal simplex loop. It
// returns nil when the tableau holds an optimal basis, or ErrInfeasible,
// ErrUnbounded or ErrIterationLimit.
func (t *Tableau) Solve() error {
	start := t.pivots
	if err := t.removeNegativeBounds(start); err != nil {
		return err
	}

	for {
		t.calculateDeltas()

		if t.isOptimal() {
			t.cfg.logger.V(1).Info("optimal plan found", "objective", t.deltas[t.n+t.m], "pivots", t.pivots)
			return nil
		}

		column := t.enteringColumn()
		row := t.leavingRow(t.ratios(column))
		if row == -1 {
			return errors.Wrapf(ErrUnbounded, "column %d has no limiting row", column)
		}

		if err := t.checkIterations(start); err != nil {
			return err
		}
		t.Pivot(row, column)
	}
}

func (t *Tableau) checkIterations(start int) error {
	if t.pivots-start >= t.cfg.maxIterations {
		return errors.Wrapf(ErrIterationLimit, "%d pivots", t.pivots-start)
	}
	return nil
}

// removeNegativeBounds pivots until every rhs is non-negative.
func (t *Tableau) removeNegativeBounds(start int) error {
	for row := t.negativeBoundRow(); row != -1; row = t.negativeBoundRow() {
		column := t.negativeColumn(row)
		if column == -1 {
			return errors.Wrapf(ErrInfeasible, "row %d has a negative bound and no negative coefficient", row)
		}

		if err := t.checkIterations(start); err != nil {
			return err
		}
		t.cfg.logger.V(1).Info("repairing negative bound", "row", row, "column", column, "bound", t.rhs(row))
		t.Pivot(row, column)
	}
	return nil
}

// the row with the most negative rhs, -1 if there is none
func (t *Tableau) negativeBoundRow() int {
	index := -1
	for i := 0; i < t.m; i++ {
		b := t.rhs(i)
		if b.IsNeg() && (index == -1 || b.Less(t.rhs(index))) {
			index = i
		}
	}
	return index
}

// the column holding the negative coefficient of largest magnitude in row
func (t *Tableau) negativeColumn(row int) int {
	index := -1
	for j := 0; j < t.n+t.m; j++ {
		v := t.rows[row][j]
		if !v.IsNeg() {
			continue
		}
		if index == -1 || v.Abs().Greater(t.rows[row][index].Abs()) {
			index = j
		}
	}
	return index
}

// Pivot makes column a unit vector with its 1 in row, and records column as
// basic in that row.
func (t *Tableau) Pivot(row, column int) {
	if row < 0 || row >= t.m || column < 0 || column >= t.n+t.m {
		panic(fmt.Sprintf("pivot (%d, %d) outside of %dx%d tableau", row, column, t.m, t.n+t.m))
	}

	pivotRow := t.rows[row]
	p := pivotRow[column]
	if p.IsZero() {
		panic(fmt.Sprintf("pivot (%d, %d) is zero", row, column))
	}

	for j := range pivotRow {
		pivotRow[j].QuoAssign(p)
	}

	for i := 0; i < t.m; i++ {
		if i == row {
			continue
		}
		f := t.rows[i][column]
		if f.IsZero() {
			continue
		}
		for j := range t.rows[i] {
			t.rows[i][j].SubAssign(pivotRow[j].Mul(f))
		}
	}

	t.basis[row] = column
	t.pivots++
}

func (t *Tableau) calculateDeltas() {
	for j := range t.deltas {
		d := t.objective[j].Neg()
		for i := 0; i < t.m; i++ {
			d.AddAssign(t.objective[t.basis[i]].Mul(t.rows[i][j]))
		}
		t.deltas[j] = d
	}
}

// IsOptimal reports whether no reduced cost points in an improving
// direction.
func (t *Tableau) IsOptimal() bool {
	t.calculateDeltas()
	return t.isOptimal()
}

func (t *Tableau) isOptimal() bool {
	for j := 0; j < t.n+t.m; j++ {
		if t.mode == Maximize && t.deltas[j].IsNeg() {
			return false
		}
		if t.mode == Minimize && t.deltas[j].Sign() > 0 {
			return false
		}
	}
	return true
}

// IsBasis reports whether column is basic in some row.
func (t *Tableau) IsBasis(column int) bool {
	for _, b := range t.basis {
		if b == column {
			return true
		}
	}
	return false
}

// the column with the most extreme reduced cost, first one on ties
func (t *Tableau) enteringColumn() int {
	column := 0
	for j := 0; j < t.n+t.m; j++ {
		if t.mode == Maximize && t.deltas[j].Less(t.deltas[column]) {
			column = j
		} else if t.mode == Minimize && t.deltas[j].Greater(t.deltas[column]) {
			column = j
		}
	}
	return column
}

// ratio is the outcome of the ratio test for one row: either a finite value
// or unbounded, which orders after every finite value.
type ratio struct {
	value     Rat
	unbounded bool
}

func finite(v Rat) ratio { return ratio{value: v} }

var unboundedRatio = ratio{unbounded: true}

func (q ratio) less(o ratio) bool {
	switch {
	case q.unbounded:
		return false
	case o.unbounded:
		return true
	}
	return q.value.Less(o.value)
}

func (q ratio) String() string {
	if q.unbounded {
		return "inf"
	}
	return q.value.String()
}

func (t *Tableau) ratios(column int) []ratio {
	q := make([]ratio, t.m)
	for i := 0; i < t.m; i++ {
		a := t.rows[i][column]
		b := t.rhs(i)
		if a.IsZero() || (!b.IsNeg() && a.IsNeg()) {
			q[i] = unboundedRatio
			continue
		}
		q[i] = finite(b.Quo(a))
	}
	return q
}

// the row with the smallest finite ratio, -1 if all are unbounded
func (t *Tableau) leavingRow(q []ratio) int {
	row := -1
	for i := range q {
		if q[i].unbounded {
			continue
		}
		if row == -1 || q[i].less(q[row]) {
			row = i
		}
	}
	return row
}

// Solution reads the current basic solution. Non-basic variables are zero.
func (t *Tableau) Solution() Solution {
	t.calculateDeltas()

	x := make([]Rat, t.n+t.m)
	for i, b := range t.basis {
		x[b] = t.rhs(i)
	}
	return Solution{X: x, F: t.deltas[t.n+t.m]}
}

// ConvertToDual rewrites the tableau in place into the dual of the original
// program: the mode flips, the first n objective coefficients trade places
// with the first n bounds, and the leading n x n block is transposed and
// negated together with the rest of those rows. It needs at least as many
// rows as decision variables.
func (t *Tableau) ConvertToDual() error {
	if t.m < t.n {
		return errors.Wrapf(ErrMalformedProblem, "dual needs at least %d rows, tableau has %d", t.n, t.m)
	}

	t.mode = t.mode.flip()
	rhs := t.n + t.m
	for i := 0; i < t.n; i++ {
		ci := t.objective[i]
		t.objective[i] = t.rows[i][rhs]
		t.rows[i][rhs] = ci.Neg()

		for j := i + 1; j < t.n; j++ {
			t.rows[i][j], t.rows[j][i] = t.rows[j][i], t.rows[i][j]
		}

		for j := 0; j < t.n+t.m; j++ {
			t.rows[i][j] = t.rows[i][j].Neg()
		}
	}
	return nil
}

// String renders the tableau as a table: the objective row, one row per
// constraint labelled by its basic variable, and the reduced costs.
func (t *Tableau) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 1, ' ', tabwriter.AlignRight|tabwriter.Debug)

	writeRow := func(label string, values []Rat) {
		fmt.Fprintf(w, "%s\t", label)
		for _, v := range values {
			fmt.Fprintf(w, " %s\t", v)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "basis\t")
	for j := 0; j < t.n+t.m; j++ {
		fmt.Fprintf(w, " x%d\t", j+1)
	}
	fmt.Fprintln(w, " b\t")

	writeRow("C", t.objective)
	for i, row := range t.rows {
		writeRow(fmt.Sprintf("x%d", t.basis[i]+1), row)
	}
	writeRow("F", t.deltas)

	w.Flush()
	return sb.String()
}
