//go:build cgo

package main

import "github.com/dusk-indust/tokengraph/internal/graph"

// openStore opens a file-backed KuzuDB store at path, or a MemStore when
// path is empty.
func openStore(path string) (graph.Store, error) {
	if path == "" {
		return graph.NewMemStore(), nil
	}
	return graph.NewKuzuFileStore(path)
}
