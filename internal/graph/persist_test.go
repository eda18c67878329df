package graph

import (
	"context"
	"testing"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/dusk-indust/tokengraph/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(text string, marker syntax.Kind) *syntax.Node {
	return &syntax.Node{
		Kind:     syntax.KindIdentifier,
		Category: "identifier",
		Text:     text,
		HasText:  true,
		Children: []*syntax.Node{syntax.NewMarker(marker)},
	}
}

// xThenY is the tree of "x = 1\ny = x\n".
func xThenY() *syntax.Node {
	one := &syntax.Node{Category: "integer", Text: "1", HasText: true}
	return &syntax.Node{
		Kind:     syntax.KindModule,
		Category: "module",
		Children: []*syntax.Node{
			{Category: "assignment", Children: []*syntax.Node{ident("x", syntax.KindStore), one}},
			{Category: "assignment", Children: []*syntax.Node{ident("y", syntax.KindStore), ident("x", syntax.KindLoad)}},
		},
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	w := astgraph.FromTree(xThenY())

	meta, err := Save(ctx, s, w, "python")
	require.NoError(t, err)
	assert.NotEmpty(t, meta.ID)
	assert.Equal(t, 7, meta.TokenCount)
	assert.Equal(t, 7, meta.RecordCount)

	tokens, err := s.GetTokens(ctx, meta.ID)
	require.NoError(t, err)
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"module", "assignment", "assignment", "x", "1", "y", "x"}, texts)
	assert.Equal(t, "write", tokens[3].Role)
	assert.Equal(t, "read", tokens[6].Role)

	child, err := s.GetEdges(ctx, meta.ID, EdgeKindChild)
	require.NoError(t, err)
	var pairs [][2]int
	for _, e := range child {
		pairs = append(pairs, [2]int{e.From, e.To})
	}
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 3}, {1, 4}, {2, 5}, {2, 6}}, pairs)

	sources, err := s.DataFlowSources(ctx, meta.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, sources)
}

func TestSave_EachCallGetsFreshID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	a, err := Save(ctx, s, astgraph.FromTree(xThenY()), "python")
	require.NoError(t, err)
	b, err := Save(ctx, s, astgraph.FromTree(xThenY()), "python")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GraphCount)
	assert.Equal(t, 14, stats.TokenCount)
}

func TestSave_WalkError(t *testing.T) {
	s := NewMemStore()
	_, err := Save(context.Background(), s, astgraph.FromTree(nil), "python")
	assert.Error(t, err)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.GraphCount)
}
