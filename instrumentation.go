package ilp

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// Middleware receives every node of the search together with the decision
// taken there. Implementations must not modify the node's slices.
type Middleware interface {
	ProcessDecision(Node, Decision)
}

type dummyMiddleware struct{}

func (d dummyMiddleware) ProcessDecision(Node, Decision) {}

// LogMiddleware writes each decision to a logr.Logger at V(1).
type LogMiddleware struct {
	Logger logr.Logger
}

func (l LogMiddleware) ProcessDecision(n Node, d Decision) {
	kv := []interface{}{"node", n.ID, "parent", n.Parent, "depth", n.Depth}
	if n.Feasible {
		kv = append(kv, "objective", n.F.String(), "x", formatRats(n.X))
	}
	l.Logger.V(1).Info(string(d), kv...)
}

// TreeLogger records the search tree so it can be inspected or rendered.
type TreeLogger struct {
	nodes []Node
}

func (tl *TreeLogger) ProcessDecision(n Node, d Decision) {
	n.Decision = d
	tl.nodes = append(tl.nodes, n)
}

// Nodes returns the recorded nodes in the order they were decided on.
func (tl *TreeLogger) Nodes() []Node {
	return append([]Node(nil), tl.nodes...)
}

// Count returns how many recorded nodes carry decision d.
func (tl *TreeLogger) Count(d Decision) int {
	count := 0
	for _, n := range tl.nodes {
		if n.Decision == d {
			count++
		}
	}
	return count
}

// WriteDOT renders the recorded tree in Graphviz DOT format.
func (tl *TreeLogger) WriteDOT(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("digraph enumtree {\n")
	for _, n := range tl.nodes {
		label := string(n.Decision)
		if n.Feasible {
			label = fmt.Sprintf("F = %s\\n%s\\n%s", n.F, formatRats(n.X), n.Decision)
		}
		fmt.Fprintf(&sb, "\tn%d [label=%q];\n", n.ID, label)
	}
	for _, n := range tl.nodes {
		if n.ID != n.Parent {
			fmt.Fprintf(&sb, "\tn%d -> n%d;\n", n.Parent, n.ID)
		}
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write dot")
}

func formatRats(values []Rat) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
