package astgraph

// TokenSpan is the (tokens, positions) projection of one node.
type TokenSpan struct {
	Tokens    []string `json:"tokens"`
	Positions []int    `json:"positions"`
}

// TreeEntry projects one record: the current node and its children.
type TreeEntry struct {
	Current  TokenSpan   `json:"current"`
	Children []TokenSpan `json:"children"`
}

func spanOf(n *GraphNode) TokenSpan {
	return TokenSpan{Tokens: n.Tokens, Positions: n.Positions}
}

// Tree returns a human-readable view of the records in the same order as
// Walk. Children's positions are exactly the positions joined to the current
// node by structural edges.
func (w *Walker) Tree() ([]TreeEntry, error) {
	records, err := w.Walk()
	if err != nil {
		return nil, err
	}

	tree := make([]TreeEntry, 0, len(records))
	for _, rec := range records {
		entry := TreeEntry{
			Current:  spanOf(rec.Current),
			Children: make([]TokenSpan, 0, len(rec.Children)),
		}
		for _, c := range rec.Children {
			entry.Children = append(entry.Children, spanOf(c))
		}
		tree = append(tree, entry)
	}
	return tree, nil
}
