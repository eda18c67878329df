package astgraph

import "github.com/dusk-indust/tokengraph/internal/syntax"

// Role records whether a node binds a name, uses one, or neither.
type Role uint8

const (
	RoleNone Role = iota
	RoleWrite
	RoleRead
)

func (r Role) String() string {
	switch r {
	case RoleWrite:
		return "write"
	case RoleRead:
		return "read"
	default:
		return "none"
	}
}

// roleFor maps a binding-context marker to the role it confers.
func roleFor(marker syntax.Kind) Role {
	if marker == syntax.KindStore {
		return RoleWrite
	}
	return RoleRead
}

// GraphNode wraps one syntax node with its tokens and their positions.
// Positions are contiguous, ascending and unique across the whole graph;
// len(Positions) == len(Tokens) >= 1.
type GraphNode struct {
	Syntax    *syntax.Node
	Tokens    []string
	Positions []int
	Role      Role
}

// First returns the node's first position.
func (n *GraphNode) First() int {
	return n.Positions[0]
}

// sameTokens reports whether a and b carry identical token sequences.
func sameTokens(a, b *GraphNode) bool {
	if len(a.Tokens) != len(b.Tokens) {
		return false
	}
	for i := range a.Tokens {
		if a.Tokens[i] != b.Tokens[i] {
			return false
		}
	}
	return true
}

// Record pairs a node with its materialized children. Binding-context
// markers never appear in Children; they set Current.Role instead.
type Record struct {
	Current  *GraphNode
	Children []*GraphNode
}

// allocator hands out positions for one traversal.
type allocator struct {
	next int
}

// take reserves n consecutive positions.
func (a *allocator) take(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = a.next + i
	}
	a.next += n
	return out
}
