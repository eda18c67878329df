//go:build cgo

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dusk-indust/tokengraph/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	store, err := openStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	assert.IsType(t, &graph.MemStore{}, store)
}

func TestOpenStore_Kuzu(t *testing.T) {
	store, err := openStore(filepath.Join(t.TempDir(), "graph.kuzu"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	assert.IsType(t, &graph.KuzuStore{}, store)
	assert.NoError(t, store.InitSchema(context.Background()))
}
