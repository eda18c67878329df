package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/tokengraph/internal/astgraph"
	"github.com/dusk-indust/tokengraph/internal/tokenize"
)

// ProjectConfig holds settings loaded from tokengraph.yml.
type ProjectConfig struct {
	Tokenizer   string `yaml:"tokenizer,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	// Nil leaves the walker default; a zero ceiling removes the bound.
	MatrixFloor   *int `yaml:"matrixFloor,omitempty"`
	MatrixCeiling *int `yaml:"matrixCeiling,omitempty"`
	NearestWrite  bool `yaml:"nearestWrite,omitempty"`
	// StorePath selects a file-backed graph store for the MCP server.
	StorePath string `yaml:"storePath,omitempty"`
	Verbose   bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read tokengraph.yml or tokengraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"tokengraph.yml", "tokengraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Options converts the config into walker options. An unknown tokenizer
// name is an error.
func (c *ProjectConfig) Options() ([]astgraph.Option, error) {
	var opts []astgraph.Option

	tok, err := tokenize.ByName(c.Tokenizer)
	if err != nil {
		return nil, err
	}
	if tok != nil {
		opts = append(opts, astgraph.WithTokenizer(tok))
	}
	if c.Placeholder != "" {
		opts = append(opts, astgraph.WithPlaceholder(c.Placeholder))
	}
	if c.MatrixFloor != nil {
		opts = append(opts, astgraph.WithMatrixFloor(*c.MatrixFloor))
	}
	if c.MatrixCeiling != nil {
		opts = append(opts, astgraph.WithMatrixCeiling(*c.MatrixCeiling))
	}
	if c.NearestWrite {
		opts = append(opts, astgraph.WithNearestWrite())
	}
	return opts, nil
}
