package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ilp "github.com/jjhbw/exactilp"
)

const envPrefix = "EXACTILP"

var strategies = []string{"all", "bruteforce", "branch", "gomory"}

// cliConfig holds the settings of one run. Every flag can also be set
// through an EXACTILP_ environment variable, e.g. EXACTILP_MAX_CUTS=10.
type cliConfig struct {
	Strategy  string
	BruteMax  int
	MaxCuts   int
	MaxDepth  int
	Heuristic ilp.BranchHeuristic
	Format    string
	Verbose   bool
	Dual      bool
	DOT       string
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("exactilp", pflag.ContinueOnError)
	fs.String("strategy", "all", "solver to run: "+strings.Join(strategies, "|"))
	fs.Int("brute-max", 25, "upper bound of every variable in the brute force grid")
	fs.Int("max-cuts", ilp.DefaultMaxCuts, "maximum number of cutting planes")
	fs.Int("max-depth", ilp.DefaultMaxDepth, "maximum branch-and-bound depth")
	fs.String("heuristic", ilp.BranchLargestFraction.String(), "fractional variable selection rule")
	fs.String("format", "text", "output format: text|yaml")
	fs.BoolP("verbose", "v", false, "log every pivot, cut and branching decision")
	fs.Bool("dual", false, "print the tableau of the dual program")
	fs.String("dot", "", "write the branch-and-bound tree in DOT format to this file")
	return fs
}

func loadConfig(args []string) (cliConfig, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return cliConfig{}, errors.Wrap(err, "bind flags")
	}

	heuristic, err := ilp.ParseBranchHeuristic(v.GetString("heuristic"))
	if err != nil {
		return cliConfig{}, err
	}

	cfg := cliConfig{
		Strategy:  strings.ToLower(v.GetString("strategy")),
		BruteMax:  v.GetInt("brute-max"),
		MaxCuts:   v.GetInt("max-cuts"),
		MaxDepth:  v.GetInt("max-depth"),
		Heuristic: heuristic,
		Format:    strings.ToLower(v.GetString("format")),
		Verbose:   v.GetBool("verbose"),
		Dual:      v.GetBool("dual"),
		DOT:       v.GetString("dot"),
	}
	return cfg, cfg.validate()
}

func (c cliConfig) validate() error {
	known := false
	for _, s := range strategies {
		if c.Strategy == s {
			known = true
		}
	}
	if !known {
		return errors.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.Format != "text" && c.Format != "yaml" {
		return errors.Errorf("unknown format %q", c.Format)
	}
	if c.BruteMax < 0 {
		return errors.Errorf("brute-max must not be negative, got %d", c.BruteMax)
	}
	return nil
}

func (c cliConfig) runs(strategy string) bool {
	return c.Strategy == "all" || c.Strategy == strategy
}

func (c cliConfig) options() []ilp.Option {
	return []ilp.Option{
		ilp.WithMaxCuts(c.MaxCuts),
		ilp.WithMaxDepth(c.MaxDepth),
		ilp.WithBranchHeuristic(c.Heuristic),
	}
}
