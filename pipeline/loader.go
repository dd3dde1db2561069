package pipeline

import (
	"github.com/kbukum/automl/config"
	"github.com/kbukum/automl/graph"
)

// Load resolves a definition by name through the given loader and builds a
// pipeline from it.
func Load(loader graph.DefinitionLoader, name string, opts ...Option) (*Pipeline, error) {
	def, err := loader.Load(name)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// LoadFromConfig builds a pipeline from a YAML definition found in the
// configured definition directories.
func LoadFromConfig(cfg *config.Config, name string, opts ...Option) (*Pipeline, error) {
	loader := graph.NewFileDefinitionLoader(cfg.Definitions.Dirs...)
	return Load(loader, name, opts...)
}
