// Package astgraph flattens a syntax tree into a token-level graph: every
// node becomes one or more position-indexed tokens, linked to its children
// by structural edges and, for name reads, to earlier writes of the same
// name by data-flow edges.
package astgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/dusk-indust/tokengraph/internal/syntax"
)

// Walker builds the graph of one snippet. The graph is computed on the first
// call to Walk and cached; Matrix, Edges, Tree and Flows all share it.
// A Walker is not safe for concurrent use.
type Walker struct {
	root *syntax.Node
	opts options

	walked  bool
	err     error
	records []Record
	tokens  []string
	byPos   []string
	total   int
	flows   []Flow
}

// New parses source and returns a Walker over the resulting tree. Parse
// errors are returned unchanged.
func New(ctx context.Context, source []byte, opts ...Option) (*Walker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	parser := o.parser
	if parser == nil {
		ts := syntax.NewTreeSitterParser()
		defer ts.Close()
		parser = ts
	}

	root, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return &Walker{root: root, opts: o}, nil
}

// FromTree returns a Walker over an already parsed tree.
func FromTree(root *syntax.Node, opts ...Option) *Walker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Walker{root: root, opts: o}
}

// Walk returns the graph records ordered by first token position. The
// result is memoized: later calls return the same slice without touching
// the position counter.
func (w *Walker) Walk() ([]Record, error) {
	if w.walked {
		return w.records, w.err
	}
	w.walked = true
	w.records, w.err = w.walk()
	if w.err != nil {
		w.records = nil
		return nil, w.err
	}

	w.tokens = make([]string, 0, w.total)
	for _, rec := range w.records {
		w.tokens = append(w.tokens, rec.Current.Tokens...)
	}
	sort.SliceStable(w.records, func(i, j int) bool {
		return w.records[i].Current.First() < w.records[j].Current.First()
	})
	w.byPos = make([]string, w.total)
	for _, rec := range w.records {
		for i, p := range rec.Current.Positions {
			w.byPos[p] = rec.Current.Tokens[i]
		}
	}
	w.flows = resolveFlows(w.records, w.opts.nearestWrite)

	w.opts.logger.Debug("astgraph: walk complete",
		"records", len(w.records),
		"tokens", w.total,
		"flows", len(w.flows),
	)
	return w.records, nil
}

// walk runs the traversal.
//
// Ordering contract: a node's children receive their positions together,
// left to right, when the node is expanded; expansion itself proceeds in
// pre-order with siblings left to right. Records are emitted in expansion
// order and sorted by first position afterwards.
func (w *Walker) walk() ([]Record, error) {
	if w.root == nil {
		return nil, fmt.Errorf("astgraph: nil syntax tree")
	}
	alloc := &allocator{}

	first, err := w.newNode(unwrap(w.root), alloc)
	if err != nil {
		return nil, err
	}

	var records []Record
	stack := []*GraphNode{first}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if m := current.Syntax.Marker(); m != nil {
			current.Role = roleFor(m.Kind)
		}
		var children []*GraphNode
		for _, c := range iterChildren(current.Syntax) {
			if c.Kind.IsMarker() {
				break
			}
			child, err := w.newNode(c, alloc)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
		records = append(records, Record{Current: current, Children: children})
	}

	w.total = alloc.next
	return records, nil
}

// unwrap skips a module that only wraps a single statement.
func unwrap(root *syntax.Node) *syntax.Node {
	if root.Kind == syntax.KindModule && len(root.Children) == 1 {
		return root.Children[0]
	}
	return root
}

// newNode derives the tokens of n and reserves one position per token.
func (w *Walker) newNode(n *syntax.Node, alloc *allocator) (*GraphNode, error) {
	text := textOf(n)

	tokens := []string{text}
	if w.opts.tokenizer != nil {
		var err error
		tokens, err = w.opts.tokenizer.Tokenize(text)
		if err != nil {
			return nil, fmt.Errorf("tokenize %s: %w", n.Category, err)
		}
		if len(tokens) == 0 {
			tokens = []string{w.opts.placeholder}
		}
	}

	return &GraphNode{
		Syntax:    n,
		Tokens:    tokens,
		Positions: alloc.take(len(tokens)),
	}, nil
}

// Tokens returns every token in emission order. It walks the tree if needed.
func (w *Walker) Tokens() ([]string, error) {
	if _, err := w.Walk(); err != nil {
		return nil, err
	}
	return w.tokens, nil
}

// TokensByPosition returns the tokens indexed by position: element p is the
// token at position p.
func (w *Walker) TokensByPosition() ([]string, error) {
	if _, err := w.Walk(); err != nil {
		return nil, err
	}
	return w.byPos, nil
}

// TokenCount returns the number of positions assigned by the walk.
func (w *Walker) TokenCount() (int, error) {
	if _, err := w.Walk(); err != nil {
		return 0, err
	}
	return w.total, nil
}

// Flows returns the data-flow links, read node first.
func (w *Walker) Flows() ([]Flow, error) {
	if _, err := w.Walk(); err != nil {
		return nil, err
	}
	return w.flows, nil
}
