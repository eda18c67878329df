package syntax

import (
	"context"
	"fmt"
	"time"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// LangPython is the only language the adapter understands.
const LangPython = "python"

// Compile-time check that TreeSitterParser satisfies Parser.
var _ Parser = (*TreeSitterParser)(nil)

// TreeSitterParser implements Parser with the tree-sitter Python grammar.
// A new tree-sitter parser is created per Parse call, so a single
// TreeSitterParser may be shared by sequential callers.
type TreeSitterParser struct {
	language *tree_sitter.Language
}

// NewTreeSitterParser returns a parser with the Python grammar loaded.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{
		language: tree_sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

// Language returns "python".
func (p *TreeSitterParser) Language() string {
	return LangPython
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// Parse builds the syntax tree for source. Any ERROR or MISSING node in the
// concrete tree rejects the whole snippet with a *ParseError.
func (p *TreeSitterParser) Parse(ctx context.Context, source []byte) (*Node, error) {
	ctx, span := startParseSpan(ctx, LangPython, len(source))
	defer span.End()
	start := time.Now()

	root, err := p.parse(source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordParseMetrics(ctx, LangPython, time.Since(start), 0, false)
		return nil, err
	}

	count := countNodes(root)
	span.SetAttributes(attribute.Int("syntax.node_count", count))
	recordParseMetrics(ctx, LangPython, time.Since(start), count, true)
	return root, nil
}

func (p *TreeSitterParser) parse(source []byte) (*Node, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("set language %s: %w", LangPython, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Message: "tree-sitter returned nil tree", Cause: ErrParseFailed}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root)
	}

	b := &pyBuilder{source: source}
	return b.build(root), nil
}

// firstError locates the leftmost ERROR or MISSING node below n.
func firstError(n *tree_sitter.Node) *ParseError {
	if n.IsError() || n.IsMissing() {
		pos := n.StartPosition()
		msg := "syntax error"
		if n.IsMissing() {
			msg = fmt.Sprintf("missing %s", n.Kind())
		}
		return newParseError(int(pos.Row)+1, int(pos.Column), msg)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		return firstError(child)
	}
	pos := n.StartPosition()
	return newParseError(int(pos.Row)+1, int(pos.Column), "syntax error")
}

// countNodes returns the size of the subtree rooted at n, markers included.
func countNodes(n *Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
