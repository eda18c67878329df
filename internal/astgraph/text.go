package astgraph

import "github.com/dusk-indust/tokengraph/internal/syntax"

// textOf picks the text that represents n in the graph:
//   - a function definition is represented by its declared name;
//   - a node whose children are all binding markers (or that has none) by
//     its literal source text;
//   - anything else by its grammar category.
func textOf(n *syntax.Node) string {
	if n.Kind == syntax.KindFunctionDef {
		return n.Name
	}
	if n.HasText {
		onlyMarkers := true
		for _, c := range iterChildren(n) {
			if !c.Kind.IsMarker() {
				onlyMarkers = false
				break
			}
		}
		if onlyMarkers {
			return n.Text
		}
	}
	return n.Category
}

// iterChildren lists the children the walk descends into, in order.
// Interpolated strings are opaque. Dictionaries yield each key followed by
// its value; splat entries contribute only their value.
func iterChildren(n *syntax.Node) []*syntax.Node {
	switch n.Kind {
	case syntax.KindInterpolatedString:
		return nil

	case syntax.KindDictionary:
		var out []*syntax.Node
		for _, entry := range n.Children {
			switch entry.Kind {
			case syntax.KindPair:
				if key := entry.Child("key"); key != nil {
					out = append(out, key)
				}
				if value := entry.Child("value"); value != nil {
					out = append(out, value)
				}
			case syntax.KindDictionarySplat:
				out = append(out, entry.Children...)
			default:
				out = append(out, entry)
			}
		}
		return out

	default:
		return n.Children
	}
}
