package mcptools

import (
	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/dusk-indust/tokengraph/internal/export"
	"github.com/dusk-indust/tokengraph/internal/graph"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// BuildTokenGraphInput is the input for the build_token_graph MCP tool.
type BuildTokenGraphInput struct {
	Source       string `json:"source" jsonschema:"the Python source snippet to analyze"`
	Tokenizer    string `json:"tokenizer,omitempty" jsonschema:"token splitter: none, whole, subword or subword-lower (default: server setting)"`
	NearestWrite bool   `json:"nearestWrite,omitempty" jsonschema:"link each read only to its most recent matching write"`
	Persist      bool   `json:"persist,omitempty" jsonschema:"store the graph and return its ID for get_flow_sources"`
}

// BuildTokenGraphOutput is the result of the build_token_graph MCP tool.
type BuildTokenGraphOutput struct {
	GraphID    string               `json:"graphId,omitempty"`
	TokenCount int                  `json:"tokenCount"`
	Tokens     []string             `json:"tokens"`
	Tree       []astgraph.TreeEntry `json:"tree"`
	Flows      []export.FlowExport  `json:"flows"`
}

// GetTokenEdgesInput is the input for the get_token_edges MCP tool.
type GetTokenEdgesInput struct {
	Source    string `json:"source" jsonschema:"the Python source snippet to analyze"`
	Tokenizer string `json:"tokenizer,omitempty" jsonschema:"token splitter: none, whole, subword or subword-lower (default: server setting)"`
	Kind      string `json:"kind,omitempty" jsonschema:"filter by edge kind: self, child, parent or flow"`
}

// GetTokenEdgesOutput is the result of the get_token_edges MCP tool.
type GetTokenEdgesOutput struct {
	TokenCount int             `json:"tokenCount"`
	Edges      []astgraph.Edge `json:"edges"`
	Total      int             `json:"total"`
}

// GetFlowSourcesInput is the input for the get_flow_sources MCP tool.
type GetFlowSourcesInput struct {
	GraphID  string `json:"graphId" jsonschema:"ID returned by build_token_graph with persist set"`
	Position int    `json:"position" jsonschema:"token position of the read"`
}

// GetFlowSourcesOutput is the result of the get_flow_sources MCP tool.
type GetFlowSourcesOutput struct {
	Sources []graph.TokenNode `json:"sources"`
}
