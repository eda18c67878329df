package graph

import (
	"context"
	"fmt"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/google/uuid"
)

// Save walks w (if not already walked) and writes the resulting graph to
// store under a fresh ID. Only CHILD and FLOWS_TO edges are written; self
// loops and child-to-parent edges are implied by them.
func Save(ctx context.Context, store Store, w *astgraph.Walker, language string) (*GraphMeta, error) {
	records, err := w.Walk()
	if err != nil {
		return nil, err
	}
	total, err := w.TokenCount()
	if err != nil {
		return nil, err
	}
	flows, err := w.Flows()
	if err != nil {
		return nil, err
	}

	meta := GraphMeta{
		ID:          uuid.NewString(),
		Language:    language,
		TokenCount:  total,
		RecordCount: len(records),
	}
	if err := store.AddGraph(ctx, meta); err != nil {
		return nil, fmt.Errorf("add graph: %w", err)
	}

	for _, rec := range records {
		n := rec.Current
		for i, p := range n.Positions {
			tok := TokenNode{
				GraphID:  meta.ID,
				Position: p,
				Text:     n.Tokens[i],
				Category: n.Syntax.Category,
				Role:     n.Role.String(),
				Owner:    n.First(),
			}
			if err := store.AddToken(ctx, tok); err != nil {
				return nil, fmt.Errorf("add token %d: %w", p, err)
			}
		}
	}

	for _, rec := range records {
		for _, c := range rec.Children {
			if err := addPairs(ctx, store, meta.ID, rec.Current, c, EdgeKindChild); err != nil {
				return nil, err
			}
		}
	}
	for _, f := range flows {
		if err := addPairs(ctx, store, meta.ID, f.Read, f.Write, EdgeKindFlow); err != nil {
			return nil, err
		}
	}
	return &meta, nil
}

// addPairs stores an edge from every position of from to every position of to.
func addPairs(ctx context.Context, store Store, graphID string, from, to *astgraph.GraphNode, kind EdgeKind) error {
	for _, p := range from.Positions {
		for _, q := range to.Positions {
			edge := Edge{GraphID: graphID, From: p, To: q, Kind: kind}
			if err := store.AddEdge(ctx, edge); err != nil {
				return fmt.Errorf("add %s edge %d->%d: %w", kind, p, q, err)
			}
		}
	}
	return nil
}
