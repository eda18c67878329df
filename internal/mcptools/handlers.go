package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/dusk-indust/tokengraph/internal/export"
	"github.com/dusk-indust/tokengraph/internal/graph"
	"github.com/dusk-indust/tokengraph/internal/syntax"
	"github.com/dusk-indust/tokengraph/internal/tokenize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// walkerCacheSize bounds the number of walked snippets kept in memory.
const walkerCacheSize = 256

// walkKey identifies a walk by its input and per-call overrides.
type walkKey struct {
	source    string
	tokenizer string
	nearest   bool
}

// TokenGraphService holds the graph store and walker options used by MCP
// tool handlers.
type TokenGraphService struct {
	store  graph.Store
	opts   []astgraph.Option
	logger *slog.Logger

	// Walkers are cached only after Walk succeeds; from then on they are
	// read-only and safe to share between handlers.
	walkers *lru.Cache[walkKey, *astgraph.Walker]
}

// NewTokenGraphService creates a TokenGraphService. opts apply to every
// walker the service builds; per-call tool arguments override them.
func NewTokenGraphService(store graph.Store, logger *slog.Logger, opts ...astgraph.Option) *TokenGraphService {
	if logger == nil {
		logger = slog.Default()
	}
	walkers, _ := lru.New[walkKey, *astgraph.Walker](walkerCacheSize)
	return &TokenGraphService{store: store, opts: opts, logger: logger, walkers: walkers}
}

// walker returns the walked graph of source with the service options plus
// per-call overrides, reusing a cached walk when one exists.
func (s *TokenGraphService) walker(ctx context.Context, source, tokenizer string, nearest bool) (*astgraph.Walker, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("source is required")
	}
	key := walkKey{source: source, tokenizer: tokenizer, nearest: nearest}
	if w, ok := s.walkers.Get(key); ok {
		s.logger.Debug("walker cache hit", "bytes", len(source))
		return w, nil
	}

	opts := append([]astgraph.Option{astgraph.WithLogger(s.logger)}, s.opts...)
	if tokenizer != "" {
		tok, err := tokenize.ByName(tokenizer)
		if err != nil {
			return nil, err
		}
		// "none" resets a server-wide tokenizer.
		opts = append(opts, astgraph.WithTokenizer(tok))
	}
	if nearest {
		opts = append(opts, astgraph.WithNearestWrite())
	}

	w, err := astgraph.New(ctx, []byte(source), opts...)
	if err != nil {
		return nil, err
	}
	if _, err := w.Walk(); err != nil {
		return nil, err
	}
	s.walkers.Add(key, w)
	return w, nil
}

// BuildTokenGraph walks a snippet and returns its tokens, tree and data-flow
// links, optionally persisting the graph to the store.
func (s *TokenGraphService) BuildTokenGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildTokenGraphInput,
) (*mcp.CallToolResult, BuildTokenGraphOutput, error) {
	w, err := s.walker(ctx, input.Source, input.Tokenizer, input.NearestWrite)
	if err != nil {
		return nil, BuildTokenGraphOutput{}, err
	}

	exp, err := export.ExportGraph(w, "")
	if err != nil {
		return nil, BuildTokenGraphOutput{}, err
	}
	out := BuildTokenGraphOutput{
		TokenCount: exp.Stats.Tokens,
		Tokens:     exp.Tokens,
		Tree:       exp.Tree,
		Flows:      exp.Flows,
	}

	if input.Persist {
		if err := s.store.InitSchema(ctx); err != nil {
			return nil, BuildTokenGraphOutput{}, fmt.Errorf("init schema: %w", err)
		}
		meta, err := graph.Save(ctx, s.store, w, syntax.LangPython)
		if err != nil {
			return nil, BuildTokenGraphOutput{}, fmt.Errorf("save graph: %w", err)
		}
		out.GraphID = meta.ID
		s.logger.Info("graph stored", "graph", meta.ID, "tokens", meta.TokenCount)
	}
	return nil, out, nil
}

// GetTokenEdges returns the sparse edge list of a snippet's graph.
func (s *TokenGraphService) GetTokenEdges(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetTokenEdgesInput,
) (*mcp.CallToolResult, GetTokenEdgesOutput, error) {
	kind := astgraph.EdgeKind(strings.ToLower(input.Kind))
	switch kind {
	case "", astgraph.EdgeKindSelf, astgraph.EdgeKindChild, astgraph.EdgeKindParent, astgraph.EdgeKindFlow:
	default:
		return nil, GetTokenEdgesOutput{}, fmt.Errorf("unknown edge kind: %q", input.Kind)
	}

	w, err := s.walker(ctx, input.Source, input.Tokenizer, false)
	if err != nil {
		return nil, GetTokenEdgesOutput{}, err
	}
	edges, err := w.Edges()
	if err != nil {
		return nil, GetTokenEdgesOutput{}, err
	}
	total, err := w.TokenCount()
	if err != nil {
		return nil, GetTokenEdgesOutput{}, err
	}

	out := GetTokenEdgesOutput{TokenCount: total, Edges: make([]astgraph.Edge, 0, len(edges))}
	for _, e := range edges {
		if kind == "" || e.Kind == kind {
			out.Edges = append(out.Edges, e)
		}
	}
	out.Total = len(out.Edges)
	return nil, out, nil
}

// GetFlowSources returns the stored write tokens a read position flows to.
func (s *TokenGraphService) GetFlowSources(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetFlowSourcesInput,
) (*mcp.CallToolResult, GetFlowSourcesOutput, error) {
	if input.GraphID == "" {
		return nil, GetFlowSourcesOutput{}, fmt.Errorf("graphId is required")
	}
	meta, err := s.store.GetGraph(ctx, input.GraphID)
	if err != nil {
		return nil, GetFlowSourcesOutput{}, fmt.Errorf("get graph: %w", err)
	}
	if meta == nil {
		return nil, GetFlowSourcesOutput{}, fmt.Errorf("graph not found: %s", input.GraphID)
	}
	if input.Position < 0 || input.Position >= meta.TokenCount {
		return nil, GetFlowSourcesOutput{}, fmt.Errorf("position %d out of range [0, %d)", input.Position, meta.TokenCount)
	}

	positions, err := s.store.DataFlowSources(ctx, input.GraphID, input.Position)
	if err != nil {
		return nil, GetFlowSourcesOutput{}, fmt.Errorf("flow sources: %w", err)
	}
	tokens, err := s.store.GetTokens(ctx, input.GraphID)
	if err != nil {
		return nil, GetFlowSourcesOutput{}, fmt.Errorf("get tokens: %w", err)
	}

	byPos := make(map[int]graph.TokenNode, len(tokens))
	for _, t := range tokens {
		byPos[t.Position] = t
	}
	out := GetFlowSourcesOutput{Sources: make([]graph.TokenNode, 0, len(positions))}
	for _, p := range positions {
		out.Sources = append(out.Sources, byPos[p])
	}
	return nil, out, nil
}
