// Command exactilp solves the bundled example integer program with every
// exact strategy and reports the results.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ilp "github.com/jjhbw/exactilp"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zl, err := newZapLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zl.Sync() //nolint:errcheck

	logger := zapr.NewLogger(zl)
	if err := run(cfg, ilp.ExampleProblem(), os.Stdout, logger); err != nil {
		logger.Error(err, "run failed")
		zl.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

// zapr maps logr V(1) to zap level -1, below Debug.
func newZapLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-1))
	}
	return zc.Build()
}

func run(cfg cliConfig, p ilp.Problem, w io.Writer, logger logr.Logger) error {
	if cfg.Dual {
		return writeDual(w, p)
	}

	r, tree := solve(cfg, p, logger)
	if cfg.DOT != "" && cfg.runs("branch") {
		if err := writeDOTFile(cfg.DOT, tree); err != nil {
			return err
		}
		logger.Info("wrote search tree", "path", cfg.DOT, "nodes", len(tree.Nodes()))
	}

	if cfg.Format == "yaml" {
		return r.writeYAML(w)
	}
	return r.writeText(w)
}
