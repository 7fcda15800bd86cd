package ilp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse a list of "n" / "n/d" literals
func mustRats(values ...string) []Rat {
	out := make([]Rat, len(values))
	for i, v := range values {
		out[i] = MustParseRat(v)
	}
	return out
}

func newTestTableau(t *testing.T, p Problem, opts ...Option) *Tableau {
	t.Helper()
	tab, err := NewTableau(p, opts...)
	require.NoError(t, err)
	return tab
}

func TestNewTableau_Layout(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem())

	assert.Equal(t, 3, tab.Vars())
	assert.Equal(t, 3, tab.Rows())
	assert.Equal(t, 6, tab.Cols())
	assert.Equal(t, Maximize, tab.Mode())
	assert.Equal(t, []int{3, 4, 5}, tab.Basis())
	assert.Equal(t, mustRats("7", "5", "3", "0", "0", "0", "0"), tab.Objective())

	want := [][]Rat{
		mustRats("4", "1", "1", "1", "0", "0", "4"),
		mustRats("1", "2", "0", "0", "1", "0", "3"),
		mustRats("0", "1/2", "1", "0", "0", "1", "2"),
	}
	for i := range want {
		if diff := cmp.Diff(want[i], tab.Row(i)); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestNewTableau_Malformed(t *testing.T) {
	tests := []struct {
		name string
		p    Problem
	}{
		{
			name: "bounds shorter than rows",
			p: Problem{
				Constraints: [][]Rat{rats(1, 2), rats(3, 4)},
				Bounds:      rats(1),
				Objective:   rats(1, 1),
			},
		},
		{
			name: "ragged row",
			p: Problem{
				Constraints: [][]Rat{rats(1, 2), rats(3)},
				Bounds:      rats(1, 2),
				Objective:   rats(1, 1),
			},
		},
		{
			name: "no objective",
			p: Problem{
				Constraints: [][]Rat{rats(1)},
				Bounds:      rats(1),
			},
		},
		{
			name: "no constraints",
			p: Problem{
				Objective: rats(1),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableau(tt.p)
			assert.True(t, errors.Is(err, ErrMalformedProblem), "got %v", err)
		})
	}
}

func TestTableau_Pivot(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem())
	tab.Pivot(0, 0)

	assert.Equal(t, 0, tab.Basis()[0])
	assert.Equal(t, One, tab.Row(0)[0])
	for i := 1; i < tab.Rows(); i++ {
		assert.Equal(t, Zero, tab.Row(i)[0], "row %d", i)
	}

	want := [][]Rat{
		mustRats("1", "1/4", "1/4", "1/4", "0", "0", "1"),
		mustRats("0", "7/4", "-1/4", "-1/4", "1", "0", "2"),
		mustRats("0", "1/2", "1", "0", "0", "1", "2"),
	}
	for i := range want {
		assert.Equal(t, want[i], tab.Row(i), "row %d", i)
	}
	assert.Equal(t, 1, tab.Pivots())
}

func TestTableau_PivotInvalid(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem())
	assert.Panics(t, func() { tab.Pivot(3, 0) })
	assert.Panics(t, func() { tab.Pivot(0, 6) })

	// x1 has a zero coefficient in the third row
	assert.Panics(t, func() { tab.Pivot(2, 0) })
}

func TestTableau_PivotCorrectnessEverywhere(t *testing.T) {
	base := newTestTableau(t, ExampleProblem())
	for row := 0; row < base.Rows(); row++ {
		for col := 0; col < base.Cols(); col++ {
			if base.Row(row)[col].IsZero() {
				continue
			}
			tab := base.Clone()
			tab.Pivot(row, col)

			require.Equal(t, One, tab.Row(row)[col], "pivot (%d, %d)", row, col)
			for i := 0; i < tab.Rows(); i++ {
				if i != row {
					require.Equal(t, Zero, tab.Row(i)[col], "pivot (%d, %d) row %d", row, col, i)
				}
			}
		}
	}

	// the clones never touched the original
	assert.Equal(t, []int{3, 4, 5}, base.Basis())
	assert.Equal(t, 0, base.Pivots())
}

func TestTableau_Solve(t *testing.T) {
	tests := []struct {
		name   string
		p      Problem
		x      []Rat
		f      Rat
		pivots int
	}{
		{
			name:   "example relaxation",
			p:      ExampleProblem(),
			x:      mustRats("1/3", "4/3", "4/3", "0", "0", "0"),
			f:      Int(13),
			pivots: 3,
		},
		{
			name: "example minimized stays at the origin",
			p: func() Problem {
				p := ExampleProblem()
				p.Mode = Minimize
				return p
			}(),
			x:      mustRats("0", "0", "0", "4", "3", "2"),
			f:      Zero,
			pivots: 0,
		},
		{
			name: "negative bound needs repair",
			p: Problem{
				Constraints: [][]Rat{rats(1, 1), rats(-1, 0)},
				Bounds:      rats(4, -1),
				Objective:   rats(1, 1),
				Mode:        Maximize,
			},
			x:      mustRats("1", "3", "0", "0"),
			f:      Int(4),
			pivots: 2,
		},
		{
			name: "minimize with repair",
			p: Problem{
				Constraints: [][]Rat{rats(-1, -1), rats(1, 0)},
				Bounds:      []Rat{Int(-2), NewRat(3, 2)},
				Objective:   rats(1, 2),
				Mode:        Minimize,
			},
			x: mustRats("3/2", "1/2", "0", "0"),
			f: NewRat(5, 2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := newTestTableau(t, tt.p)
			require.NoError(t, tab.Solve())
			assert.True(t, tab.IsOptimal())

			soln := tab.Solution()
			if diff := cmp.Diff(tt.x, soln.X); diff != "" {
				t.Errorf("solution mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.f, soln.F)
			assert.True(t, tt.p.CheckSolve(soln.X))
			assert.Equal(t, tt.p.Evaluate(soln.X), soln.F)
			if tt.pivots > 0 {
				assert.Equal(t, tt.pivots, tab.Pivots())
			}
		})
	}
}

func TestTableau_SolveFailures(t *testing.T) {
	tests := []struct {
		name string
		p    Problem
		want error
	}{
		{
			name: "infeasible",
			p: Problem{
				// x1 <= 0 and x1 >= 1
				Constraints: [][]Rat{rats(1), rats(-1)},
				Bounds:      rats(0, -1),
				Objective:   rats(1),
			},
			want: ErrInfeasible,
		},
		{
			name: "unbounded",
			p: Problem{
				// -x1 <= 1 places no upper limit on x1
				Constraints: [][]Rat{rats(-1)},
				Bounds:      rats(1),
				Objective:   rats(1),
			},
			want: ErrUnbounded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := newTestTableau(t, tt.p)
			err := tab.Solve()
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestTableau_IterationLimit(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem(), WithMaxIterations(2))
	err := tab.Solve()
	assert.True(t, errors.Is(err, ErrIterationLimit), "got %v", err)

	tab = newTestTableau(t, ExampleProblem(), WithMaxIterations(3))
	assert.NoError(t, tab.Solve())
}

func TestTableau_SolveIsIdempotent(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem())
	require.NoError(t, tab.Solve())
	first := tab.Solution()

	require.NoError(t, tab.Solve())
	assert.Equal(t, first, tab.Solution())
	assert.Equal(t, 3, tab.Pivots())
}

func TestTableau_ConvertToDual(t *testing.T) {
	p := Problem{
		Constraints: [][]Rat{rats(1, 2), rats(3, 4)},
		Bounds:      rats(5, 6),
		Objective:   rats(7, 8),
		Mode:        Maximize,
	}
	tab := newTestTableau(t, p)
	require.NoError(t, tab.ConvertToDual())

	assert.Equal(t, Minimize, tab.Mode())
	assert.Equal(t, rats(5, 6, 0, 0, 0), tab.Objective())
	assert.Equal(t, rats(-1, -3, -1, 0, -7), tab.Row(0))
	assert.Equal(t, rats(-2, -4, 0, -1, -8), tab.Row(1))

	// the problem the tableau came from is untouched
	assert.Equal(t, p, tab.Problem())
}

func TestTableau_ConvertToDualNeedsRows(t *testing.T) {
	p := Problem{
		Constraints: [][]Rat{rats(1, 1)},
		Bounds:      rats(1),
		Objective:   rats(1, 1),
	}
	tab := newTestTableau(t, p)
	err := tab.ConvertToDual()
	assert.True(t, errors.Is(err, ErrMalformedProblem), "got %v", err)
	assert.Equal(t, Maximize, tab.Mode())
}

func TestRatio_Ordering(t *testing.T) {
	assert.True(t, finite(Int(1)).less(finite(Int(2))))
	assert.False(t, finite(Int(2)).less(finite(Int(2))))
	assert.True(t, finite(Int(1000)).less(unboundedRatio))
	assert.False(t, unboundedRatio.less(finite(Int(-1000))))
	assert.False(t, unboundedRatio.less(unboundedRatio))
	assert.Equal(t, "inf", unboundedRatio.String())
}

func TestTableau_Ratios(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem())

	// column x2: 4/1, 3/2 and 2/(1/2)
	q := tab.ratios(1)
	assert.Equal(t, []ratio{finite(Int(4)), finite(NewRat(3, 2)), finite(Int(4))}, q)
	assert.Equal(t, 1, tab.leavingRow(q))

	// column x1 has a zero in the last row
	q = tab.ratios(0)
	assert.True(t, q[2].unbounded)
	assert.Equal(t, 0, tab.leavingRow(q))

	assert.Equal(t, -1, tab.leavingRow([]ratio{unboundedRatio, unboundedRatio}))
}

func TestTableau_String(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem())
	require.NoError(t, tab.Solve())

	out := tab.String()
	assert.True(t, strings.Contains(out, "basis"))
	assert.True(t, strings.Contains(out, "1/3"))
	assert.Equal(t, tab.Rows()+3, strings.Count(out, "\n"))
}
