package astgraph

import (
	"sort"
	"strings"
	"testing"

	"github.com/dusk-indust/tokengraph/internal/syntax"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Hand-built syntax trees
// ---------------------------------------------------------------------------

// name builds an identifier, optionally followed by a binding marker.
func name(text string, marker syntax.Kind) *syntax.Node {
	n := &syntax.Node{Kind: syntax.KindIdentifier, Category: "identifier", Text: text, HasText: true}
	if marker.IsMarker() {
		n.Children = append(n.Children, syntax.NewMarker(marker))
	}
	return n
}

// lit builds a literal leaf.
func lit(text string) *syntax.Node {
	return &syntax.Node{Category: "integer", Text: text, HasText: true}
}

// group builds a structural node whose text is the concatenation of its
// children's text.
func group(category string, children ...*syntax.Node) *syntax.Node {
	var parts []string
	for _, c := range children {
		if c.HasText {
			parts = append(parts, c.Text)
		}
	}
	text := strings.Join(parts, " ")
	return &syntax.Node{Category: category, Text: text, HasText: text != "", Children: children}
}

func field(f string, n *syntax.Node) *syntax.Node {
	n.Field = f
	return n
}

func module(children ...*syntax.Node) *syntax.Node {
	n := group("module", children...)
	n.Kind = syntax.KindModule
	return n
}

func assign(target string, value *syntax.Node) *syntax.Node {
	return group("assignment", field("left", name(target, syntax.KindStore)), field("right", value))
}

// xThenY is the tree of "x = 1\ny = x\n".
func xThenY() *syntax.Node {
	return module(
		assign("x", lit("1")),
		assign("y", name("x", syntax.KindLoad)),
	)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mustWalk walks w and fails the test on error.
func mustWalk(t *testing.T, w *Walker) []Record {
	t.Helper()
	records, err := w.Walk()
	require.NoError(t, err)
	return records
}

// recordTokens flattens the current-node tokens of records in order.
func recordTokens(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Current.Tokens...)
	}
	return out
}

// allPositions collects every position of every current node, sorted.
func allPositions(records []Record) []int {
	var out []int
	for _, r := range records {
		out = append(out, r.Current.Positions...)
	}
	sort.Ints(out)
	return out
}

// findRecord returns the first record whose current node starts at pos.
func findRecord(t *testing.T, records []Record, pos int) Record {
	t.Helper()
	for _, r := range records {
		if r.Current.First() == pos {
			return r
		}
	}
	t.Fatalf("no record at position %d", pos)
	return Record{}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
