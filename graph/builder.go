package graph

import (
	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/errors"
	"github.com/kbukum/automl/logger"
	"github.com/kbukum/automl/validation"
)

// Build validates a definition against the registry and returns an
// executable graph. Validation is all-or-nothing: any structural error
// rejects the whole definition and no partial graph is produced.
//
// Rules enforced here:
//   - node names are valid identifiers distinct from the root references "X"
//     and "y", unique, and every component name resolves in the registry
//   - every edge parses and every node reference names a declared node
//   - ".y" references require a target-producing component
//   - ".x" references require a transformer, so estimators are always terminal
//   - each node declares at most one target input
//   - the graph is acyclic and has exactly one terminus
func Build(def Definition, registry *component.Registry) (*Graph, error) {
	if registry == nil {
		registry = component.DefaultRegistry()
	}
	g := &Graph{
		name:     def.Name,
		registry: registry,
		index:    make(map[string]int, len(def.Nodes)),
		log:      logger.Get("graph"),
	}

	for _, nd := range def.Nodes {
		if nd.Name == "X" || nd.Name == "y" {
			return nil, errors.InvalidNodeName(nd.Name, "reserved for root inputs")
		}
		if !validation.IsIdentifier(nd.Name) {
			return nil, errors.InvalidNodeName(nd.Name,
				"must contain only letters, digits and underscores and not start with a digit")
		}
		if _, ok := g.index[nd.Name]; ok {
			return nil, errors.DuplicateNode(nd.Name)
		}
		desc, ok := registry.Get(nd.Component)
		if !ok {
			return nil, errors.ComponentUnknown(nd.Component)
		}
		n := &node{
			name:        nd.Name,
			desc:        desc,
			targetInput: EdgeRef{Kind: RefRootY},
		}
		var targetRefs []string
		for _, in := range nd.Inputs {
			ref, err := ParseEdgeRef(nd.Name, in)
			if err != nil {
				return nil, err
			}
			n.inputs = append(n.inputs, ref)
			if ref.IsTarget() {
				targetRefs = append(targetRefs, ref.String())
				n.targetInput = ref
			} else {
				n.featureInputs = append(n.featureInputs, ref)
			}
		}
		if len(targetRefs) > 1 {
			return nil, errors.DuplicateTargetInput(nd.Name, targetRefs)
		}
		g.index[nd.Name] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	// Node references may point forward, so resolve them only after every
	// node is declared.
	for _, n := range g.nodes {
		for _, ref := range n.inputs {
			if ref.Kind != RefNodeX && ref.Kind != RefNodeY {
				continue
			}
			src, ok := g.index[ref.Node]
			if !ok {
				return nil, errors.UnknownNode(n.name, ref.String())
			}
			producer := g.nodes[src]
			if ref.Kind == RefNodeY && !producer.desc.ProducesTarget {
				return nil, errors.InvalidTargetRef(n.name, ref.Node)
			}
			if ref.Kind == RefNodeX && producer.desc.Kind != component.KindTransformer {
				return nil, errors.NonTerminalEstimator(n.name, ref.Node)
			}
		}
	}

	order, err := computeOrder(g.nodes, g.index)
	if err != nil {
		return nil, err
	}
	g.order = order

	terminus, err := findTerminus(g.nodes, g.index)
	if err != nil {
		return nil, err
	}
	g.terminus = terminus
	g.targetSource = resolveTargetSources(g.nodes, g.index, g.order)

	g.log.Debug("graph built", logger.Fields(
		logger.FieldGraph, g.name,
		"nodes", len(g.nodes),
		"terminus", g.nodes[terminus].name,
	))
	return g, nil
}
