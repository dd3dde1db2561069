package graph

import (
	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/errors"
	"github.com/kbukum/automl/logger"
)

// Parameters maps node names to the parameter overrides used when that
// node's component is instantiated. Nodes absent from the map use the
// component's registered defaults.
type Parameters map[string]component.Parameters

// InstantiateOption adjusts how components are constructed.
type InstantiateOption func(*instantiateOptions)

type instantiateOptions struct {
	wrappers []Wrapper
}

// WithWrappers applies the given wrappers, in order, to every component
// built during instantiation.
func WithWrappers(ws ...Wrapper) InstantiateOption {
	return func(o *instantiateOptions) {
		o.wrappers = append(o.wrappers, ws...)
	}
}

// Instantiate constructs every node's component from the registry, merging
// the node's parameter overrides over the component defaults. Parameter keys
// that name no node in the graph are rejected before any component is built.
// Re-instantiating resets all learned state.
func (g *Graph) Instantiate(params Parameters, opts ...InstantiateOption) error {
	var o instantiateOptions
	for _, opt := range opts {
		opt(&o)
	}

	for name := range params {
		if _, ok := g.index[name]; !ok {
			return errors.UnknownNodeParams(name)
		}
	}

	built := make([]component.Component, len(g.nodes))
	for i, n := range g.nodes {
		comp, err := g.registry.Build(n.desc.Name, params[n.name])
		if err != nil {
			return err
		}
		for _, w := range o.wrappers {
			comp = w(comp)
		}
		built[i] = comp
	}

	for i, n := range g.nodes {
		n.comp = built[i]
	}
	g.instantiated = true
	g.fitted = false

	g.log.Debug("graph instantiated", logger.Fields(
		logger.FieldGraph, g.name,
		"nodes", len(g.nodes),
		"overridden", len(params),
	))
	return nil
}
