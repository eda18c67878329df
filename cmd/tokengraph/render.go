package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/dusk-indust/tokengraph/internal/export"
)

// render writes the walked graph in the requested format.
func render(out io.Writer, w *astgraph.Walker, format, name string) error {
	switch format {
	case "tree":
		return renderTree(out, w)
	case "json":
		doc, err := export.ExportGraph(w, name)
		if err != nil {
			return err
		}
		return export.WriteJSON(out, doc)
	case "edges":
		return renderEdges(out, w)
	case "matrix":
		return renderMatrix(out, w)
	case "mermaid":
		diagram, err := export.GenerateMermaid(w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, diagram)
		return err
	default:
		return fmt.Errorf("unknown format %q (want tree, json, edges, matrix or mermaid)", format)
	}
}

// renderTree prints one line per record: the current span, then its children.
func renderTree(out io.Writer, w *astgraph.Walker) error {
	tree, err := w.Tree()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	for _, entry := range tree {
		children := make([]string, 0, len(entry.Children))
		for _, c := range entry.Children {
			children = append(children, spanString(c))
		}
		fmt.Fprintf(bw, "%s -> [%s]\n", spanString(entry.Current), strings.Join(children, ", "))
	}
	return bw.Flush()
}

func spanString(s astgraph.TokenSpan) string {
	return fmt.Sprintf("%s@%v", strings.Join(s.Tokens, " "), s.Positions)
}

// renderEdges prints "from\tto\tkind" per edge.
func renderEdges(out io.Writer, w *astgraph.Walker) error {
	edges, err := w.Edges()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	for _, e := range edges {
		fmt.Fprintf(bw, "%d\t%d\t%s\n", e.From, e.To, e.Kind)
	}
	return bw.Flush()
}

// renderMatrix prints the occupied corner of the matrix as rows of 0/1.
// Rows and columns past the token count are always empty.
func renderMatrix(out io.Writer, w *astgraph.Walker) error {
	m, err := w.Matrix()
	if err != nil {
		return err
	}
	total, err := w.TokenCount()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "# size %d, tokens %d\n", m.Size(), total)
	row := make([]byte, total)
	for i := 0; i < total; i++ {
		for j := 0; j < total; j++ {
			row[j] = '0'
			if m[i][j] {
				row[j] = '1'
			}
		}
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
