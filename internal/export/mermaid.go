package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
)

// maxLabel bounds node labels so large literals stay readable.
const maxLabel = 40

// GenerateMermaid produces a Mermaid graph TD diagram of a walked graph.
// Each node is labelled with its tokens; structural edges are solid arrows
// and data-flow edges are dotted arrows from read to write.
func GenerateMermaid(w *astgraph.Walker) (string, error) {
	records, err := w.Walk()
	if err != nil {
		return "", err
	}
	flows, err := w.Flows()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, rec := range records {
		n := rec.Current
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", nodeID(n), label(n)))
	}
	for _, rec := range records {
		for _, c := range rec.Children {
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", nodeID(rec.Current), nodeID(c)))
		}
	}
	for _, f := range flows {
		sb.WriteString(fmt.Sprintf("  %s -.-> %s\n", nodeID(f.Read), nodeID(f.Write)))
	}
	return sb.String(), nil
}

// nodeID names a graph node by its first position.
func nodeID(n *astgraph.GraphNode) string {
	return fmt.Sprintf("N%d", n.First())
}

// label joins the node tokens, escaped for a quoted Mermaid label.
func label(n *astgraph.GraphNode) string {
	s := strings.Join(n.Tokens, " ")
	if len(s) > maxLabel {
		s = s[:maxLabel-3] + "..."
	}
	return strings.NewReplacer(`"`, "#quot;", "\n", " ").Replace(s)
}
