package syntax

// Kind classifies syntax nodes. The set is closed: every grammar node the
// Python adapter produces maps to exactly one Kind, with KindOther covering
// the structural categories that need no special handling.
type Kind uint8

const (
	KindOther Kind = iota
	KindModule
	KindFunctionDef
	KindDictionary
	KindPair
	KindDictionarySplat
	KindInterpolatedString
	KindIdentifier
	KindOperator
	KindStore
	KindLoad
)

var kindNames = [...]string{
	KindOther:              "other",
	KindModule:             "module",
	KindFunctionDef:        "function_def",
	KindDictionary:         "dictionary",
	KindPair:               "pair",
	KindDictionarySplat:    "dictionary_splat",
	KindInterpolatedString: "interpolated_string",
	KindIdentifier:         "identifier",
	KindOperator:           "operator",
	KindStore:              "store",
	KindLoad:               "load",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsMarker reports whether k is a binding-context marker (Store or Load).
func (k Kind) IsMarker() bool {
	return k == KindStore || k == KindLoad
}

// Span locates a node in the source. Rows and columns are 0-indexed.
type Span struct {
	StartByte int `json:"startByte"`
	EndByte   int `json:"endByte"`
	StartRow  int `json:"startRow"`
	StartCol  int `json:"startCol"`
	EndRow    int `json:"endRow"`
	EndCol    int `json:"endCol"`
}

// Node is one element of a parsed snippet. Nodes are built once by a Parser
// and never mutated afterwards.
type Node struct {
	Kind Kind
	// Category is the grammar type name ("binary_operator", "if_statement").
	// It labels nodes that have no single meaningful literal.
	Category string
	// Text is the literal source text covered by the node. HasText is false
	// for synthesized nodes such as Store and Load markers.
	Text    string
	HasText bool
	// Name is the declared name of a function definition.
	Name string
	// Field is the grammar field the node occupies in its parent, if any.
	Field    string
	Span     Span
	Children []*Node
}

// NewMarker returns a synthesized binding-context marker of the given kind.
func NewMarker(kind Kind) *Node {
	category := "Load"
	if kind == KindStore {
		category = "Store"
	}
	return &Node{Kind: kind, Category: category}
}

// Child returns the first child occupying field, or nil.
func (n *Node) Child(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// Marker returns the node's binding-context marker child, or nil.
func (n *Node) Marker() *Node {
	for _, c := range n.Children {
		if c.Kind.IsMarker() {
			return c
		}
	}
	return nil
}
