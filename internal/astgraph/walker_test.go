package astgraph

import (
	"errors"
	"testing"

	"github.com/dusk-indust/tokengraph/internal/syntax"
	"github.com/dusk-indust/tokengraph/internal/tokenize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_GenerationOrder(t *testing.T) {
	records := mustWalk(t, FromTree(xThenY()))

	assert.Equal(t,
		[]string{"module", "assignment", "assignment", "x", "1", "y", "x"},
		recordTokens(records),
	)
	for i, r := range records {
		assert.Equal(t, []int{i}, r.Current.Positions, "record %d", i)
	}

	root := records[0]
	require.Len(t, root.Children, 2)
	assert.Equal(t, []int{1}, root.Children[0].Positions)
	assert.Equal(t, []int{2}, root.Children[1].Positions)

	first := findRecord(t, records, 1)
	require.Len(t, first.Children, 2)
	assert.Equal(t, []string{"x"}, first.Children[0].Tokens)
	assert.Equal(t, []string{"1"}, first.Children[1].Tokens)
}

func TestWalk_PositionsAreDense(t *testing.T) {
	w := FromTree(xThenY(), WithTokenizer(tokenize.SubWord{}))
	records := mustWalk(t, w)

	total, err := w.TokenCount()
	require.NoError(t, err)
	assert.Equal(t, seq(total), allPositions(records))

	tokens, err := w.Tokens()
	require.NoError(t, err)
	assert.Len(t, tokens, total)
}

func TestWalk_TokenOrders(t *testing.T) {
	w := FromTree(xThenY())

	emitted, err := w.Tokens()
	require.NoError(t, err)
	assert.Equal(t, []string{"module", "assignment", "x", "1", "assignment", "y", "x"}, emitted)

	byPos, err := w.TokensByPosition()
	require.NoError(t, err)
	assert.Equal(t, []string{"module", "assignment", "assignment", "x", "1", "y", "x"}, byPos)

	records := mustWalk(t, w)
	for _, r := range records {
		for i, p := range r.Current.Positions {
			assert.Equal(t, r.Current.Tokens[i], byPos[p], "position %d", p)
		}
	}
}

func TestWalk_Idempotent(t *testing.T) {
	w := FromTree(xThenY())
	first := mustWalk(t, w)
	total, err := w.TokenCount()
	require.NoError(t, err)

	second := mustWalk(t, w)
	again, err := w.TokenCount()
	require.NoError(t, err)

	assert.Equal(t, total, again)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i].Current, second[i].Current)
	}
}

func TestWalk_Roles(t *testing.T) {
	records := mustWalk(t, FromTree(xThenY()))

	assert.Equal(t, RoleNone, findRecord(t, records, 0).Current.Role)
	assert.Equal(t, RoleWrite, findRecord(t, records, 3).Current.Role)
	assert.Equal(t, RoleNone, findRecord(t, records, 4).Current.Role)
	assert.Equal(t, RoleWrite, findRecord(t, records, 5).Current.Role)
	assert.Equal(t, RoleRead, findRecord(t, records, 6).Current.Role)

	// Markers never become graph nodes.
	for _, r := range records {
		assert.NotContains(t, r.Current.Tokens, "Store")
		assert.NotContains(t, r.Current.Tokens, "Load")
	}
	assert.Empty(t, findRecord(t, records, 6).Children)
}

func TestWalk_RoleOfNodeWithChildren(t *testing.T) {
	attr := &syntax.Node{
		Category: "attribute", Text: "o.m", HasText: true,
		Children: []*syntax.Node{name("o", syntax.KindLoad), name("m", 0), syntax.NewMarker(syntax.KindStore)},
	}
	records := mustWalk(t, FromTree(module(group("assignment", field("left", attr), field("right", lit("1"))))))

	rec := findRecord(t, records, 1)
	assert.Equal(t, []string{"attribute"}, rec.Current.Tokens)
	assert.Equal(t, RoleWrite, rec.Current.Role)
	require.Len(t, rec.Children, 2)
	assert.Equal(t, RoleRead, findRecord(t, records, rec.Children[0].First()).Current.Role)
	assert.Equal(t, RoleNone, findRecord(t, records, rec.Children[1].First()).Current.Role)
}

func TestWalk_UnwrapsSingleStatementModule(t *testing.T) {
	records := mustWalk(t, FromTree(module(assign("x", lit("1")))))
	assert.Equal(t, []string{"assignment", "x", "1"}, recordTokens(records))
}

func TestWalk_KeepsEmptyModule(t *testing.T) {
	w := FromTree(module())
	records := mustWalk(t, w)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"module"}, records[0].Current.Tokens)
}

func TestWalk_NilTree(t *testing.T) {
	_, err := FromTree(nil).Walk()
	assert.Error(t, err)
}

func TestText_FunctionDefinitionUsesName(t *testing.T) {
	fn := &syntax.Node{
		Kind:     syntax.KindFunctionDef,
		Category: "function_definition",
		Name:     "foo",
		Text:     "def foo(): pass",
		HasText:  true,
		Children: []*syntax.Node{
			{Category: "parameters", Text: "()", HasText: true},
			group("block", &syntax.Node{Category: "pass_statement", Text: "pass", HasText: true}),
		},
	}
	records := mustWalk(t, FromTree(module(fn)))
	assert.Equal(t, []string{"foo"}, records[0].Current.Tokens)
	assert.Equal(t, []string{"foo", "()", "block", "pass"}, recordTokens(records))
}

func TestText_LiteralOrCategory(t *testing.T) {
	tests := []struct {
		name string
		node *syntax.Node
		want string
	}{
		{name: "leaf literal", node: lit("42"), want: "42"},
		{name: "identifier with marker", node: name("x", syntax.KindLoad), want: "x"},
		{name: "structural node", node: group("binary_operator", lit("1"), lit("2")), want: "binary_operator"},
		{name: "synthesized node", node: &syntax.Node{Category: "Load"}, want: "Load"},
		{
			name: "attribute with marker",
			node: &syntax.Node{
				Category: "attribute", Text: "a.b", HasText: true,
				Children: []*syntax.Node{name("a", syntax.KindLoad), name("b", 0), syntax.NewMarker(syntax.KindLoad)},
			},
			want: "attribute",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textOf(tt.node))
		})
	}
}

func TestIterChildren_Dictionary(t *testing.T) {
	a := name("a", syntax.KindLoad)
	one := lit("1")
	b := name("b", syntax.KindLoad)
	dict := &syntax.Node{
		Kind: syntax.KindDictionary, Category: "dictionary", Text: "{a: 1, **b}", HasText: true,
		Children: []*syntax.Node{
			{Kind: syntax.KindPair, Category: "pair", Children: []*syntax.Node{field("key", a), field("value", one)}},
			{Kind: syntax.KindDictionarySplat, Category: "dictionary_splat", Children: []*syntax.Node{b}},
		},
	}

	assert.Equal(t, []*syntax.Node{a, one, b}, iterChildren(dict))

	records := mustWalk(t, FromTree(dict))
	assert.Equal(t, []string{"dictionary", "a", "1", "b"}, recordTokens(records))
}

func TestIterChildren_InterpolatedStringIsOpaque(t *testing.T) {
	fstr := &syntax.Node{
		Kind: syntax.KindInterpolatedString, Category: "string", Text: `f"{x}"`, HasText: true,
		Children: []*syntax.Node{name("x", syntax.KindLoad)},
	}
	records := mustWalk(t, FromTree(fstr))
	require.Len(t, records, 1)
	assert.Equal(t, []string{`f"{x}"`}, records[0].Current.Tokens)
	assert.Empty(t, records[0].Children)
}

func TestWalk_Tokenizer(t *testing.T) {
	tree := module(assign("max_len", lit("10")))
	w := FromTree(tree, WithTokenizer(tokenize.SubWord{}))
	records := mustWalk(t, w)

	target := records[1].Current
	assert.Equal(t, []string{"max", "len"}, target.Tokens)
	assert.Equal(t, []int{1, 2}, target.Positions)
	assert.Equal(t, []int{3}, records[2].Current.Positions)
}

func TestWalk_EmptyTokenizerOutputUsesPlaceholder(t *testing.T) {
	empty := tokenize.Func(func(string) ([]string, error) { return nil, nil })

	records := mustWalk(t, FromTree(xThenY(), WithTokenizer(empty)))
	for _, r := range records {
		assert.Equal(t, []string{DefaultPlaceholder}, r.Current.Tokens)
		assert.Len(t, r.Current.Positions, 1)
	}

	records = mustWalk(t, FromTree(xThenY(), WithTokenizer(empty), WithPlaceholder("<unk>")))
	assert.Equal(t, []string{"<unk>"}, records[0].Current.Tokens)
}

func TestWalk_TokenizerErrorPropagates(t *testing.T) {
	boom := errors.New("tokenizer down")
	w := FromTree(xThenY(), WithTokenizer(tokenize.Func(func(string) ([]string, error) {
		return nil, boom
	})))

	_, err := w.Walk()
	require.ErrorIs(t, err, boom)

	// The failure is memoized like a success.
	_, err = w.Walk()
	assert.ErrorIs(t, err, boom)
	_, err = w.Matrix()
	assert.ErrorIs(t, err, boom)
}
