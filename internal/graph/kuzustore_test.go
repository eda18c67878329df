//go:build cgo

package graph

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a fresh in-memory KuzuStore with an initialized schema.
// It registers a cleanup function to close the store when the test finishes.
func newTestStore(t *testing.T) *KuzuStore {
	t.Helper()
	s, err := NewKuzuStore()
	require.NoError(t, err, "NewKuzuStore should not fail")
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx), "InitSchema should not fail")
	return s
}

func TestKuzuStore_InitSchema(t *testing.T) {
	s, err := NewKuzuStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()

	// First call creates the tables.
	require.NoError(t, s.InitSchema(ctx))

	// Second call should be idempotent (IF NOT EXISTS).
	require.NoError(t, s.InitSchema(ctx))
}

func TestKuzuStore_GraphRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedGraph(t, s, "g1")

	meta, err := s.GetGraph(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, GraphMeta{ID: "g1", Language: "python", TokenCount: 3, RecordCount: 3}, *meta)

	missing, err := s.GetGraph(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	tokens, err := s.GetTokens(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenNode{GraphID: "g1", Position: 1, Text: "x", Category: "identifier", Role: "write", Owner: 1}, tokens[1])
}

func TestKuzuStore_Edges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedGraph(t, s, "g1")
	seedGraph(t, s, "g2")

	all, err := s.GetEdges(ctx, "g1", "")
	require.NoError(t, err)
	assert.Equal(t, []Edge{
		{GraphID: "g1", From: 0, To: 1, Kind: EdgeKindChild},
		{GraphID: "g1", From: 0, To: 2, Kind: EdgeKindChild},
		{GraphID: "g1", From: 2, To: 1, Kind: EdgeKindFlow},
	}, all)

	_, err = s.GetEdges(ctx, "g1", EdgeKind("BOGUS"))
	assert.Error(t, err)

	sources, err := s.DataFlowSources(ctx, "g1", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sources)
}

func TestKuzuStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedGraph(t, s, "g1")

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &GraphStats{GraphCount: 1, TokenCount: 3, EdgeCount: 3}, stats)
}

func TestKuzuStore_Save(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meta, err := Save(ctx, s, astgraph.FromTree(xThenY()), "python")
	require.NoError(t, err)

	sources, err := s.DataFlowSources(ctx, meta.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, sources)
}

func TestKuzuStore_FileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "tokengraph.kuzu")
	s, err := NewKuzuFileStore(path)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.InitSchema(ctx))
	seedGraph(t, s, "g1")
	require.NoError(t, s.Close())

	reopened, err := NewKuzuFileStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	meta, err := reopened.GetGraph(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, 3, meta.TokenCount)
}
