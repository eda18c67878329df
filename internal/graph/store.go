package graph

import (
	"context"
	"io"
)

// Store persists walked token graphs.
// Implementations: KuzuStore (production), MemStore (testing and the MCP
// server default).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations. Tokens and edges reference a graph added first.
	AddGraph(ctx context.Context, meta GraphMeta) error
	AddToken(ctx context.Context, token TokenNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations. GetGraph returns nil, nil for an unknown ID.
	GetGraph(ctx context.Context, id string) (*GraphMeta, error)
	GetTokens(ctx context.Context, graphID string) ([]TokenNode, error)
	// GetEdges returns the edges of one graph; an empty kind matches all.
	GetEdges(ctx context.Context, graphID string, kind EdgeKind) ([]Edge, error)

	// DataFlowSources returns the write positions a read position flows to,
	// in ascending order.
	DataFlowSources(ctx context.Context, graphID string, position int) ([]int, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}
