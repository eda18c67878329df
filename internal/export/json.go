package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
)

// GraphExport is the top-level JSON export structure. Tokens is indexed by
// position, matching the positions in Tree and Flows.
type GraphExport struct {
	Name       string               `json:"name,omitempty"`
	ExportedAt string               `json:"exportedAt"`
	Tokens     []string             `json:"tokens"`
	Tree       []astgraph.TreeEntry `json:"tree"`
	Flows      []FlowExport         `json:"flows"`
	Stats      StatsExport          `json:"stats"`
}

// FlowExport links the positions of a read to those of a write.
type FlowExport struct {
	Name  string `json:"name"`
	Read  []int  `json:"read"`
	Write []int  `json:"write"`
}

// StatsExport summarizes the exported graph.
type StatsExport struct {
	Tokens  int `json:"tokens"`
	Records int `json:"records"`
	Flows   int `json:"flows"`
	Edges   int `json:"edges"`
}

// ExportGraph builds a GraphExport from a walker, walking it if needed.
func ExportGraph(w *astgraph.Walker, name string) (*GraphExport, error) {
	tree, err := w.Tree()
	if err != nil {
		return nil, err
	}
	tokens, err := w.TokensByPosition()
	if err != nil {
		return nil, err
	}
	flows, err := w.Flows()
	if err != nil {
		return nil, err
	}
	edges, err := w.Edges()
	if err != nil {
		return nil, err
	}

	export := &GraphExport{
		Name:       name,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tokens:     tokens,
		Tree:       tree,
		Flows:      make([]FlowExport, 0, len(flows)),
		Stats: StatsExport{
			Tokens:  len(tokens),
			Records: len(tree),
			Flows:   len(flows),
			Edges:   len(edges),
		},
	}
	for _, f := range flows {
		export.Flows = append(export.Flows, FlowExport{
			Name:  f.Read.Syntax.Text,
			Read:  f.Read.Positions,
			Write: f.Write.Positions,
		})
	}
	return export, nil
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
