package astgraph

import (
	"log/slog"

	"github.com/dusk-indust/tokengraph/internal/syntax"
	"github.com/dusk-indust/tokengraph/internal/tokenize"
)

const (
	// DefaultMatrixFloor is the minimum side of the adjacency matrix.
	DefaultMatrixFloor = 512
	// DefaultMatrixCeiling leaves the matrix unbounded; WithMatrixCeiling
	// opts into ErrCapacityExceeded for larger graphs.
	DefaultMatrixCeiling = 0
	// DefaultPlaceholder replaces empty tokenizer output.
	DefaultPlaceholder = "_"
)

type options struct {
	parser       syntax.Parser
	tokenizer    tokenize.Tokenizer
	placeholder  string
	floor        int
	ceiling      int
	nearestWrite bool
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		placeholder: DefaultPlaceholder,
		floor:       DefaultMatrixFloor,
		ceiling:     DefaultMatrixCeiling,
		logger:      slog.Default(),
	}
}

// Option configures a Walker.
type Option func(*options)

// WithParser replaces the default tree-sitter Python parser used by New.
func WithParser(p syntax.Parser) Option {
	return func(o *options) { o.parser = p }
}

// WithTokenizer splits every node's text into sub-word tokens. Without a
// tokenizer each node carries exactly one token.
func WithTokenizer(t tokenize.Tokenizer) Option {
	return func(o *options) { o.tokenizer = t }
}

// WithPlaceholder sets the token used when the tokenizer returns nothing.
func WithPlaceholder(p string) Option {
	return func(o *options) {
		if p != "" {
			o.placeholder = p
		}
	}
}

// WithMatrixFloor sets the minimum matrix side. Values <= 0 disable the floor.
func WithMatrixFloor(n int) Option {
	return func(o *options) { o.floor = max(n, 0) }
}

// WithMatrixCeiling sets the largest token count Matrix accepts.
// 0 removes the bound.
func WithMatrixCeiling(n int) Option {
	return func(o *options) { o.ceiling = max(n, 0) }
}

// WithNearestWrite links each read only to the most recent matching write
// instead of every earlier one.
func WithNearestWrite() Option {
	return func(o *options) { o.nearestWrite = true }
}

// WithLogger sets the logger for walk diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
