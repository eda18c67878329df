//go:build !cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/tokengraph/internal/graph"
)

// openStore returns a MemStore. A storePath needs KuzuDB, which is only
// available in cgo builds.
func openStore(path string) (graph.Store, error) {
	if path != "" {
		return nil, fmt.Errorf("storePath %q requires a cgo build", path)
	}
	return graph.NewMemStore(), nil
}
