package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu     sync.RWMutex
	graphs map[string]GraphMeta
	tokens map[string][]TokenNode // key: graph ID
	edges  map[string][]Edge      // key: graph ID
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		graphs: make(map[string]GraphMeta),
		tokens: make(map[string][]TokenNode),
		edges:  make(map[string][]Edge),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddGraph stores graph metadata keyed by ID.
func (m *MemStore) AddGraph(_ context.Context, meta GraphMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.graphs[meta.ID]; ok {
		return fmt.Errorf("memstore: graph %s already exists", meta.ID)
	}
	m.graphs[meta.ID] = meta
	return nil
}

// AddToken appends a token to its graph.
func (m *MemStore) AddToken(_ context.Context, token TokenNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.graphs[token.GraphID]; !ok {
		return fmt.Errorf("memstore: unknown graph %s", token.GraphID)
	}
	m.tokens[token.GraphID] = append(m.tokens[token.GraphID], token)
	return nil
}

// AddEdge appends an edge to its graph.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.graphs[edge.GraphID]; !ok {
		return fmt.Errorf("memstore: unknown graph %s", edge.GraphID)
	}
	m.edges[edge.GraphID] = append(m.edges[edge.GraphID], edge)
	return nil
}

// GetGraph returns the metadata for id, or nil if not found.
func (m *MemStore) GetGraph(_ context.Context, id string) (*GraphMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.graphs[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

// GetTokens returns the tokens of a graph ordered by position.
func (m *MemStore) GetTokens(_ context.Context, graphID string) ([]TokenNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TokenNode, len(m.tokens[graphID]))
	copy(out, m.tokens[graphID])
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// GetEdges returns the edges of a graph matching kind, ordered by
// (From, To). An empty kind matches every edge.
func (m *MemStore) GetEdges(_ context.Context, graphID string, kind EdgeKind) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Edge
	for _, e := range m.edges[graphID] {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	sortEdges(out)
	return out, nil
}

// DataFlowSources follows FLOWS_TO edges out of position.
func (m *MemStore) DataFlowSources(_ context.Context, graphID string, position int) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []int
	for _, e := range m.edges[graphID] {
		if e.Kind == EdgeKindFlow && e.From == position {
			out = append(out, e.To)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Stats returns counts of graphs, tokens and stored edges.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &GraphStats{GraphCount: len(m.graphs)}
	for _, toks := range m.tokens {
		stats.TokenCount += len(toks)
	}
	for _, edges := range m.edges {
		stats.EdgeCount += len(edges)
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// sortEdges orders edges by kind, then From, then To.
func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})
}
