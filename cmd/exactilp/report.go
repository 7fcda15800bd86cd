package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ilp "github.com/jjhbw/exactilp"
)

type strategyReport struct {
	Strategy  string        `yaml:"strategy"`
	Solutions int           `yaml:"solutions"`
	Best      *ilp.Solution `yaml:"best,omitempty"`
	Decision  []ilp.Rat     `yaml:"decision,omitempty"`
	Error     string        `yaml:"error,omitempty"`
}

type report struct {
	Mode           string           `yaml:"mode"`
	Relaxation     *ilp.Solution    `yaml:"relaxation,omitempty"`
	FloatObjective float64          `yaml:"float_objective"`
	Strategies     []strategyReport `yaml:"strategies"`
}

// solve runs the configured strategies on p. Solver failures end up in the
// report instead of aborting the run. The returned tree holds the
// branch-and-bound search, if it ran.
func solve(cfg cliConfig, p ilp.Problem, logger logr.Logger) (report, *ilp.TreeLogger) {
	opts := append(cfg.options(), ilp.WithLogger(logger), ilp.WithMiddleware(ilp.LogMiddleware{Logger: logger}))
	r := report{Mode: p.Mode.String()}

	if relaxed, err := ilp.SolveRelaxation(p, opts...); err == nil {
		r.Relaxation = &relaxed
	} else {
		logger.Info("relaxation has no optimum", "reason", err.Error())
	}
	if z, _, err := ilp.FloatRelaxation(p); err == nil {
		r.FloatObjective = z
	}

	tree := &ilp.TreeLogger{}
	if cfg.runs("bruteforce") {
		solutions, err := ilp.SolveBruteForce(p, cfg.BruteMax)
		r.Strategies = append(r.Strategies, summarize("bruteforce", p, solutions, err))
	}
	if cfg.runs("branch") {
		branchOpts := append(cfg.options(), ilp.WithLogger(logger), ilp.WithMiddleware(tree))
		solutions, err := ilp.SolveBranchAndBound(p, branchOpts...)
		r.Strategies = append(r.Strategies, summarize("branch", p, solutions, err))
	}
	if cfg.runs("gomory") {
		solutions, err := ilp.SolveGomory(p, opts...)
		r.Strategies = append(r.Strategies, summarize("gomory", p, solutions, err))
	}
	return r, tree
}

func summarize(name string, p ilp.Problem, solutions []ilp.Solution, err error) strategyReport {
	sr := strategyReport{Strategy: name, Solutions: len(solutions)}
	if err != nil {
		sr.Error = err.Error()
		return sr
	}
	if len(solutions) > 0 {
		best := ilp.Best(solutions, p.Mode)
		sr.Best = &best
		sr.Decision = best.Decision(p.Vars())
	}
	return sr
}

func (r report) writeText(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("mode: %s\n", r.Mode)
	if r.Relaxation != nil {
		ew.printf("relaxation: %s\n", r.Relaxation)
	}
	ew.printf("float relaxation: F = %.6g\n", r.FloatObjective)
	for _, s := range r.Strategies {
		switch {
		case s.Error != "":
			ew.printf("%s: error: %s\n", s.Strategy, s.Error)
		case s.Best == nil:
			ew.printf("%s: no integral solution\n", s.Strategy)
		default:
			ew.printf("%s: %d solutions, best F = %s at %v\n", s.Strategy, s.Solutions, s.Best.F, s.Decision)
		}
	}
	return ew.err
}

func (r report) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode report")
	}
	return enc.Close()
}

// writeDual prints the initial tableau of p and its dual form.
func writeDual(w io.Writer, p ilp.Problem) error {
	t, err := ilp.NewTableau(p)
	if err != nil {
		return err
	}
	ew := &errWriter{w: w}
	ew.printf("primal tableau:\n%s\n", t)
	if err := t.ConvertToDual(); err != nil {
		return err
	}
	ew.printf("dual tableau (%s):\n%s", t.Mode(), t)
	return ew.err
}

func writeDOTFile(path string, tree *ilp.TreeLogger) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create dot file")
	}
	if err := tree.WriteDOT(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close dot file")
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
