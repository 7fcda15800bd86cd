package ilp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractionalVariable(t *testing.T) {
	tests := []struct {
		name      string
		x         []Rat
		heuristic BranchHeuristic
		want      int
	}{
		{
			name:      "all integral",
			x:         rats(1, 0, 3),
			heuristic: BranchLargestFraction,
			want:      -1,
		},
		{
			name:      "largest fraction",
			x:         mustRats("1/4", "2", "5/3"),
			heuristic: BranchLargestFraction,
			want:      2,
		},
		{
			name:      "largest fraction of a negative value",
			x:         mustRats("1/2", "-1/4"),
			heuristic: BranchLargestFraction,
			want:      1,
		},
		{
			name:      "largest fraction tie keeps the first",
			x:         mustRats("1/3", "4/3", "4/3"),
			heuristic: BranchLargestFraction,
			want:      0,
		},
		{
			name:      "most infeasible",
			x:         mustRats("9/10", "2/5", "1/4"),
			heuristic: BranchMostInfeasible,
			want:      1,
		},
		{
			name:      "most infeasible tie keeps the first",
			x:         mustRats("1/4", "7/4"),
			heuristic: BranchMostInfeasible,
			want:      0,
		},
		{
			name:      "first",
			x:         mustRats("0", "1/10", "1/2"),
			heuristic: BranchFirst,
			want:      1,
		},
		{
			name:      "first with a single fractional value",
			x:         mustRats("2", "2", "1/2"),
			heuristic: BranchFirst,
			want:      2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fractionalVariable(tt.x, tt.heuristic))
		})
	}
}

func TestFractionalVariable_UnknownHeuristic(t *testing.T) {
	assert.Panics(t, func() { fractionalVariable(mustRats("1/2", "1/3"), BranchHeuristic(42)) })

	// a single candidate never consults the heuristic
	assert.Equal(t, 0, fractionalVariable(mustRats("1/2"), BranchHeuristic(42)))
}

func TestTableau_FindFractionalVariable(t *testing.T) {
	tab := newTestTableau(t, ExampleProblem(), WithBranchHeuristic(BranchFirst))

	// slack columns past Vars() are never candidates
	s := Solution{X: mustRats("1", "2", "3", "1/2", "1/2", "1/2")}
	assert.Equal(t, -1, tab.FindFractionalVariable(s))

	s.X[1] = NewRat(5, 2)
	assert.Equal(t, 1, tab.FindFractionalVariable(s))
}

func TestBranchHeuristic_String(t *testing.T) {
	assert.Equal(t, "largest-fraction", BranchLargestFraction.String())
	assert.Equal(t, "most-infeasible", BranchMostInfeasible.String())
	assert.Equal(t, "first", BranchFirst.String())
	assert.Equal(t, "BranchHeuristic(7)", BranchHeuristic(7).String())
}

func TestParseBranchHeuristic(t *testing.T) {
	for _, h := range []BranchHeuristic{BranchLargestFraction, BranchMostInfeasible, BranchFirst} {
		got, err := ParseBranchHeuristic(h.String())
		assert.NoError(t, err)
		assert.Equal(t, h, got)
	}

	got, err := ParseBranchHeuristic(" First ")
	assert.NoError(t, err)
	assert.Equal(t, BranchFirst, got)

	_, err = ParseBranchHeuristic("random")
	assert.Error(t, err)
}

func TestSolveBranchAndBound_Heuristics(t *testing.T) {
	for _, h := range []BranchHeuristic{BranchLargestFraction, BranchMostInfeasible, BranchFirst} {
		t.Run(h.String(), func(t *testing.T) {
			got, err := SolveBranchAndBound(ExampleProblem(), WithBranchHeuristic(h))
			if !assert.NoError(t, err) {
				return
			}
			best := Best(got, Maximize)
			assert.Equal(t, Int(8), best.F)
			assert.Equal(t, rats(0, 1, 1), best.Decision(3))
		})
	}
}
