package graph

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/errors"
	"github.com/kbukum/automl/logger"
	"github.com/kbukum/automl/observability"
)

// node is one vertex of a built graph. The component instance is nil until
// Instantiate runs.
type node struct {
	name          string
	desc          component.Descriptor
	comp          component.Component
	inputs        []EdgeRef // declaration order, feature and target mixed
	featureInputs []EdgeRef
	targetInput   EdgeRef
}

// Graph is a validated component graph. It is built once from a Definition,
// instantiated with per-node parameters, and then fitted and evaluated. A
// Graph is not safe for concurrent use; build independent graphs for
// parallel evaluation.
type Graph struct {
	name     string
	registry *component.Registry
	nodes    []*node
	index    map[string]int
	order    []int
	terminus int

	// targetSource[i] is the node index whose emitted target feeds node i,
	// or -1 for the root target. Resolved once at build time.
	targetSource []int

	instantiated bool
	fitted       bool

	log     *logger.Logger
	metrics *observability.Metrics

	mu sync.Mutex
}

// Name returns the definition name, which may be empty.
func (g *Graph) Name() string { return g.name }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Terminus returns the name of the unique sink node.
func (g *Graph) Terminus() string { return g.nodes[g.terminus].name }

// ComputeOrder returns node names in the order the engine evaluates them.
// The order is fixed at build time.
func (g *Graph) ComputeOrder() []string {
	names := make([]string, len(g.order))
	for i, idx := range g.order {
		names[i] = g.nodes[idx].name
	}
	return names
}

// Inputs returns the declared input edges of the named node, in declaration
// order and definition syntax.
func (g *Graph) Inputs(name string) ([]string, error) {
	idx, ok := g.index[name]
	if !ok {
		return nil, errors.UnknownNode(name, name)
	}
	refs := make([]string, len(g.nodes[idx].inputs))
	for i, r := range g.nodes[idx].inputs {
		refs[i] = r.String()
	}
	return refs, nil
}

// Definition reconstructs the declarative form of the graph, with nodes in
// declaration order and edges in definition syntax. Instantiation parameters
// are not part of the structure and are not included.
func (g *Graph) Definition() Definition {
	nodes := make(NodeList, len(g.nodes))
	for i, n := range g.nodes {
		refs := make([]string, len(n.inputs))
		for j, r := range n.inputs {
			refs[j] = r.String()
		}
		nodes[i] = NodeDef{Name: n.name, Component: n.desc.Name, Inputs: refs}
	}
	return Definition{Name: g.name, Nodes: nodes}
}

// GetComponent returns the instantiated component of the named node.
func (g *Graph) GetComponent(name string) (component.Component, error) {
	idx, ok := g.index[name]
	if !ok {
		return nil, errors.UnknownNode(name, name)
	}
	if !g.instantiated {
		return nil, errors.NotInstantiated("get_component")
	}
	return g.nodes[idx].comp, nil
}

// Instantiated reports whether Instantiate has run.
func (g *Graph) Instantiated() bool { return g.instantiated }

// Fitted reports whether Fit has completed successfully.
func (g *Graph) Fitted() bool { return g.fitted }

// WithMetrics attaches a metrics recorder to the engine. Passing nil
// disables recording.
func (g *Graph) WithMetrics(m *observability.Metrics) *Graph {
	g.metrics = m
	return g
}

// Describe renders a human-readable summary of the graph in compute order,
// one node per line with its component and inputs.
func (g *Graph) Describe() string {
	var b strings.Builder
	if g.name != "" {
		fmt.Fprintf(&b, "graph %s\n", g.name)
	}
	for i, idx := range g.order {
		n := g.nodes[idx]
		refs := make([]string, len(n.inputs))
		for j, r := range n.inputs {
			refs[j] = r.String()
		}
		marker := ""
		if idx == g.terminus {
			marker = " (terminus)"
		}
		fmt.Fprintf(&b, "%d. %s [%s]%s <- %s\n", i+1, n.name, n.desc.Name, marker, strings.Join(refs, ", "))
	}
	return b.String()
}
