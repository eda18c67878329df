package syntax

import "context"

// Parser turns raw source text into a syntax tree.
// Implementations: TreeSitterParser (production).
type Parser interface {
	// Parse returns the root of the tree. Malformed source yields an error
	// and no tree; there is no partial result.
	Parse(ctx context.Context, source []byte) (*Node, error)

	// Language returns the canonical name of the parsed language.
	Language() string

	// Close releases parser resources.
	Close() error
}
