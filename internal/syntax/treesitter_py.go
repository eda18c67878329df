package syntax

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// bindCtx is the binding context an expression is evaluated in.
type bindCtx uint8

const (
	// ctxNone marks declaration positions: the name is not an expression
	// (parameter names, keyword argument names, imports).
	ctxNone bindCtx = iota
	ctxLoad
	ctxStore

	// skipChild drops a child from the converted tree entirely.
	skipChild bindCtx = 255
)

// bindable lists the grammar types that carry a Store or Load marker.
var bindable = map[string]bool{
	"identifier":         true,
	"attribute":          true,
	"subscript":          true,
	"list":               true,
	"tuple":              true,
	"expression_list":    true,
	"pattern_list":       true,
	"tuple_pattern":      true,
	"list_pattern":       true,
	"list_splat":         true,
	"list_splat_pattern": true,
}

// sequences propagate their own binding context to their elements.
var sequences = map[string]bool{
	"list":               true,
	"tuple":              true,
	"expression_list":    true,
	"pattern_list":       true,
	"tuple_pattern":      true,
	"list_pattern":       true,
	"list_splat":         true,
	"list_splat_pattern": true,
}

// matchPatterns propagate their binding context like sequences. Inside a
// case_pattern that context is ctxNone.
var matchPatterns = map[string]bool{
	"class_pattern":   true,
	"splat_pattern":   true,
	"union_pattern":   true,
	"dict_pattern":    true,
	"keyword_pattern": true,
	"complex_pattern": true,
}

// declarations hold only names, never expressions.
var declarations = map[string]bool{
	"import_statement":        true,
	"import_from_statement":   true,
	"future_import_statement": true,
	"aliased_import":          true,
	"dotted_name":             true,
	"relative_import":         true,
	"global_statement":        true,
	"nonlocal_statement":      true,
}

// pyBuilder converts a tree-sitter Python tree into Nodes shaped like the
// Python abstract syntax tree: punctuation dropped, parentheses transparent,
// binding contexts made explicit with trailing Store/Load marker children.
type pyBuilder struct {
	source []byte
}

// fieldChild pairs a tree-sitter child with the grammar field it occupies.
type fieldChild struct {
	node  *tree_sitter.Node
	field string
}

func (b *pyBuilder) build(root *tree_sitter.Node) *Node {
	return b.convert(root, "", ctxLoad)
}

// convert builds the Node for n evaluated in context ctx. It returns nil for
// nodes that have no place in the tree (comments, anonymous tokens).
func (b *pyBuilder) convert(n *tree_sitter.Node, field string, ctx bindCtx) *Node {
	kind := n.Kind()

	if kind == "comment" || kind == "line_continuation" {
		return nil
	}

	if !n.IsNamed() {
		if field == "operator" || field == "operators" {
			return b.leaf(n, KindOperator, field)
		}
		return nil
	}

	switch kind {
	case "parenthesized_expression":
		if inner := b.soleNamed(n); inner != nil {
			return b.convert(inner, field, ctx)
		}
	case "expression_statement":
		if inner := b.soleNamed(n); inner != nil {
			return b.convert(inner, field, ctx)
		}
	case "string":
		return b.str(n, field)
	case "concatenated_string":
		return b.composite(n, field, KindInterpolatedString)
	}

	out := b.node(n, field)

	switch kind {
	case "module":
		out.Kind = KindModule
		b.appendChildren(out, n, loadAll)

	case "identifier":
		out.Kind = KindIdentifier

	case "function_definition":
		out.Kind = KindFunctionDef
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = name.Utf8Text(b.source)
		}
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "name" {
				return skipChild
			}
			if c.field == "parameters" {
				return ctxNone
			}
			return ctxLoad
		})

	case "class_definition":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "name" {
				return ctxNone
			}
			return ctxLoad
		})

	case "dictionary":
		out.Kind = KindDictionary
		b.appendChildren(out, n, loadAll)

	case "pair":
		out.Kind = KindPair
		b.appendChildren(out, n, loadAll)

	case "dictionary_splat":
		out.Kind = KindDictionarySplat
		b.appendChildren(out, n, loadAll)

	case "assignment", "augmented_assignment", "for_statement", "for_in_clause":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "left" {
				return ctxStore
			}
			return ctxLoad
		})

	case "named_expression":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "name" {
				return ctxStore
			}
			return ctxLoad
		})

	case "as_pattern":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if ctx == ctxNone {
				return ctxNone
			}
			if c.field == "alias" {
				return ctxStore
			}
			return ctxLoad
		})

	case "as_pattern_target":
		// The grammar aliases the target expression; a bare name arrives as
		// a childless as_pattern_target and is treated as an identifier.
		if b.soleNamed(n) == nil {
			out.Kind = KindIdentifier
			if ctx != ctxNone {
				out.Children = append(out.Children, NewMarker(markerFor(ctx)))
			}
			return out
		}
		b.appendChildren(out, n, func(fieldChild) bindCtx { return ctx })

	case "attribute":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "attribute" {
				return ctxNone
			}
			return ctxLoad
		})

	case "subscript":
		b.appendChildren(out, n, loadAll)

	case "keyword_argument":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "name" {
				return ctxNone
			}
			return ctxLoad
		})

	case "parameters", "lambda_parameters":
		b.appendChildren(out, n, func(fieldChild) bindCtx { return ctxNone })

	case "default_parameter", "typed_parameter", "typed_default_parameter":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "type" || c.field == "value" {
				return ctxLoad
			}
			return ctxNone
		})

	case "lambda":
		b.appendChildren(out, n, func(c fieldChild) bindCtx {
			if c.field == "parameters" {
				return ctxNone
			}
			return ctxLoad
		})

	case "not_operator":
		// The keyword carries no field, unlike the other unary operators.
		for _, c := range b.children(n) {
			if !c.node.IsNamed() && c.node.Kind() == "not" {
				out.Children = append(out.Children, b.leaf(c.node, KindOperator, "operator"))
				continue
			}
			if child := b.convert(c.node, c.field, ctxLoad); child != nil {
				out.Children = append(out.Children, child)
			}
		}

	case "case_pattern":
		// Match patterns capture names without evaluating expressions.
		b.appendChildren(out, n, func(fieldChild) bindCtx { return ctxNone })

	case "delete_statement":
		b.appendChildren(out, n, func(fieldChild) bindCtx { return ctxNone })

	default:
		switch {
		case declarations[kind]:
			b.appendChildren(out, n, func(fieldChild) bindCtx { return ctxNone })
		case sequences[kind], matchPatterns[kind]:
			b.appendChildren(out, n, func(fieldChild) bindCtx { return ctx })
		default:
			b.appendChildren(out, n, loadAll)
		}
	}

	if bindable[kind] && ctx != ctxNone {
		out.Children = append(out.Children, NewMarker(markerFor(ctx)))
	}
	return out
}

func markerFor(ctx bindCtx) Kind {
	if ctx == ctxStore {
		return KindStore
	}
	return KindLoad
}

func loadAll(fieldChild) bindCtx { return ctxLoad }

// appendChildren converts every child of n, choosing each child's binding
// context with ctxFor.
func (b *pyBuilder) appendChildren(out *Node, n *tree_sitter.Node, ctxFor func(fieldChild) bindCtx) {
	for _, c := range b.children(n) {
		ctx := ctxFor(c)
		if ctx == skipChild {
			continue
		}
		if child := b.convert(c.node, c.field, ctx); child != nil {
			out.Children = append(out.Children, child)
		}
	}
}

// children lists the direct children of n together with their field names.
func (b *pyBuilder) children(n *tree_sitter.Node) []fieldChild {
	cursor := n.Walk()
	defer cursor.Close()

	if !cursor.GotoFirstChild() {
		return nil
	}
	var out []fieldChild
	for {
		out = append(out, fieldChild{node: cursor.Node(), field: cursor.FieldName()})
		if !cursor.GotoNextSibling() {
			break
		}
	}
	return out
}

// soleNamed returns the only named, non-comment child of n, or nil when n
// has zero or several.
func (b *pyBuilder) soleNamed(n *tree_sitter.Node) *tree_sitter.Node {
	var found *tree_sitter.Node
	for _, c := range b.children(n) {
		if !c.node.IsNamed() || c.node.Kind() == "comment" {
			continue
		}
		if found != nil {
			return nil
		}
		found = c.node
	}
	return found
}

// str converts a string literal. Plain strings are leaves; f-strings keep
// their interpolations as children under KindInterpolatedString.
func (b *pyBuilder) str(n *tree_sitter.Node, field string) *Node {
	for _, c := range b.children(n) {
		if c.node.Kind() == "interpolation" {
			return b.composite(n, field, KindInterpolatedString)
		}
	}
	return b.leaf(n, KindOther, field)
}

// composite converts a string node whose parts are kept as children.
func (b *pyBuilder) composite(n *tree_sitter.Node, field string, kind Kind) *Node {
	out := b.node(n, field)
	out.Kind = kind
	for _, c := range b.children(n) {
		switch c.node.Kind() {
		case "interpolation":
			for _, e := range b.children(c.node) {
				if child := b.convert(e.node, e.field, ctxLoad); child != nil {
					out.Children = append(out.Children, child)
				}
			}
		case "string":
			out.Children = append(out.Children, b.str(c.node, c.field))
		}
	}
	return out
}

func (b *pyBuilder) leaf(n *tree_sitter.Node, kind Kind, field string) *Node {
	out := b.node(n, field)
	out.Kind = kind
	return out
}

// node copies the common attributes of n; Kind defaults to KindOther.
func (b *pyBuilder) node(n *tree_sitter.Node, field string) *Node {
	text := n.Utf8Text(b.source)
	start, end := n.StartPosition(), n.EndPosition()
	return &Node{
		Kind:     KindOther,
		Category: n.Kind(),
		Text:     text,
		HasText:  text != "",
		Field:    field,
		Span: Span{
			StartByte: int(n.StartByte()),
			EndByte:   int(n.EndByte()),
			StartRow:  int(start.Row),
			StartCol:  int(start.Column),
			EndRow:    int(end.Row),
			EndCol:    int(end.Column),
		},
	}
}
