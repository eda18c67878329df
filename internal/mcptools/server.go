package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewTokenGraphMCPServer creates an MCP server with the token graph tools registered.
func NewTokenGraphMCPServer(svc *TokenGraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tokengraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_token_graph",
		Description: "Parse a Python snippet and build its token-level graph. Returns the tokens, the per-node tree of positions and the data-flow links from reads to earlier writes. Set persist to store the graph for get_flow_sources.",
	}, svc.BuildTokenGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_token_edges",
		Description: "Return the sparse directed edge list of a snippet's token graph: self loops, child and parent structural edges, and read-to-write data-flow edges. Optionally filter by edge kind.",
	}, svc.GetTokenEdges)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_flow_sources",
		Description: "For a stored graph, return the write tokens that a read token at the given position flows from.",
	}, svc.GetFlowSources)

	return server
}

// RunMCPServer starts an HTTP server exposing the token graph MCP tools.
func RunMCPServer(ctx context.Context, svc *TokenGraphService, addr string) error {
	server := NewTokenGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking
// until stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *TokenGraphService) error {
	return NewTokenGraphMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
