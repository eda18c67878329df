package astgraph

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned by Matrix when the graph has more tokens
// than the configured ceiling. Use Edges for such graphs.
var ErrCapacityExceeded = errors.New("adjacency matrix capacity exceeded")

// EdgeKind classifies a directed edge between two token positions.
type EdgeKind string

const (
	EdgeKindSelf   EdgeKind = "self"   // every position to itself
	EdgeKindChild  EdgeKind = "child"  // parent token to child token
	EdgeKindParent EdgeKind = "parent" // child token back to parent token
	EdgeKindFlow   EdgeKind = "flow"   // read token to write token
)

// Edge is one directed edge between token positions.
type Edge struct {
	From int      `json:"from"`
	To   int      `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Edges lists every edge of the graph: a self loop per position, child and
// parent edges for every structural pair of positions, and a flow edge from
// each read position to each linked write position. The set of (From, To)
// pairs is exactly the set of true cells in Matrix.
func (w *Walker) Edges() ([]Edge, error) {
	records, err := w.Walk()
	if err != nil {
		return nil, err
	}

	var edges []Edge
	for _, rec := range records {
		for _, p := range rec.Current.Positions {
			edges = append(edges, Edge{From: p, To: p, Kind: EdgeKindSelf})
		}
		for _, c := range rec.Children {
			for _, p := range rec.Current.Positions {
				for _, q := range c.Positions {
					edges = append(edges,
						Edge{From: p, To: q, Kind: EdgeKindChild},
						Edge{From: q, To: p, Kind: EdgeKindParent},
					)
				}
			}
		}
	}
	for _, f := range w.flows {
		for _, p := range f.Read.Positions {
			for _, q := range f.Write.Positions {
				edges = append(edges, Edge{From: p, To: q, Kind: EdgeKindFlow})
			}
		}
	}
	return edges, nil
}

// Matrix is a square boolean adjacency matrix indexed by token position.
// m[i][j] reports an edge from position i to position j.
type Matrix [][]bool

// Size returns the side of the matrix.
func (m Matrix) Size() int {
	return len(m)
}

// newMatrix allocates an n×n matrix backed by a single slice.
func newMatrix(n int) Matrix {
	cells := make([]bool, n*n)
	m := make(Matrix, n)
	for i := range m {
		m[i] = cells[i*n : (i+1)*n : (i+1)*n]
	}
	return m
}

// Matrix materializes the graph as an adjacency matrix of side
// max(floor, token count). Structural edges are symmetric; data-flow edges
// point from read to write only. A graph larger than the ceiling fails with
// ErrCapacityExceeded.
func (w *Walker) Matrix() (Matrix, error) {
	total, err := w.TokenCount()
	if err != nil {
		return nil, err
	}
	if w.opts.ceiling > 0 && total > w.opts.ceiling {
		return nil, fmt.Errorf("%w: %d tokens, ceiling %d", ErrCapacityExceeded, total, w.opts.ceiling)
	}
	edges, err := w.Edges()
	if err != nil {
		return nil, err
	}

	m := newMatrix(max(w.opts.floor, total))
	for _, e := range edges {
		m[e.From][e.To] = true
	}
	return m, nil
}
