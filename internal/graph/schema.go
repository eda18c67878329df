package graph

// --- Enums ---

// EdgeKind classifies persisted relationships between tokens. Self loops and
// the reverse of CHILD edges are implied and never stored.
type EdgeKind string

const (
	EdgeKindChild EdgeKind = "CHILD"    // parent token -> child token
	EdgeKindFlow  EdgeKind = "FLOWS_TO" // read token -> write token
)

// EdgeKinds lists every persisted edge kind.
var EdgeKinds = []EdgeKind{EdgeKindChild, EdgeKindFlow}

// --- Models ---

// GraphMeta describes one stored snippet graph.
type GraphMeta struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	TokenCount  int    `json:"tokenCount"`
	RecordCount int    `json:"recordCount"`
}

// TokenNode is one position of a stored graph.
type TokenNode struct {
	GraphID  string `json:"graphId"`
	Position int    `json:"position"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Role     string `json:"role"`
	// Owner is the first position of the graph node the token belongs to.
	Owner int `json:"owner"`
}

// Edge is a directed relationship between two positions of one graph.
type Edge struct {
	GraphID string   `json:"graphId"`
	From    int      `json:"from"`
	To      int      `json:"to"`
	Kind    EdgeKind `json:"kind"`
}

// GraphStats summarizes the contents of a store.
type GraphStats struct {
	GraphCount int `json:"graphCount"`
	TokenCount int `json:"tokenCount"`
	EdgeCount  int `json:"edgeCount"`
}
