package graph

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/automl/component"
)

// NodeDef declares one node of a component graph: its unique name, the
// registered component it runs, and its input edges in declaration order.
type NodeDef struct {
	Name      string   `yaml:"name" validate:"required,identifier"`
	Component string   `yaml:"component" validate:"required,identifier"`
	Inputs    []string `yaml:"inputs"`
}

// Definition is the declarative form of a component graph. Node order is
// significant: the scheduler breaks ready-set ties by declaration order, and
// feature inputs concatenate in the order they are listed.
type Definition struct {
	Name       string                          `yaml:"name"`
	Nodes      NodeList                        `yaml:"nodes" validate:"required,min=1,dive"`
	Parameters map[string]component.Parameters `yaml:"parameters,omitempty"`
}

// NodeList decodes from either YAML form of a graph body: an explicit list
// of node objects, or a compact mapping of node name to [component, edges...]
// whose key order is preserved.
type NodeList []NodeDef

// UnmarshalYAML implements yaml.Unmarshaler.
func (nl *NodeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var defs []NodeDef
		if err := value.Decode(&defs); err != nil {
			return err
		}
		*nl = defs
		return nil
	case yaml.MappingNode:
		defs := make([]NodeDef, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			var name string
			if err := value.Content[i].Decode(&name); err != nil {
				return err
			}
			var entry []string
			if err := value.Content[i+1].Decode(&entry); err != nil {
				return fmt.Errorf("node %q: %w", name, err)
			}
			if len(entry) == 0 {
				return fmt.Errorf("node %q: entry must start with a component name", name)
			}
			defs = append(defs, NodeDef{Name: name, Component: entry[0], Inputs: entry[1:]})
		}
		*nl = defs
		return nil
	default:
		return fmt.Errorf("nodes must be a sequence or mapping, got %v", value.Kind)
	}
}

// Linear builds a straight-chain definition from an ordered list of component
// names: the first node reads the root inputs and each later node reads the
// previous node's feature output plus the root target. Node names default to
// the component name, with an integer suffix appended on repeats.
func Linear(components ...string) Definition {
	seen := make(map[string]int, len(components))
	nodes := make(NodeList, 0, len(components))
	prev := ""
	for _, c := range components {
		name := c
		if n, ok := seen[c]; ok {
			name = fmt.Sprintf("%s_%d", c, n+1)
		}
		seen[c]++
		featureIn := "X"
		if prev != "" {
			featureIn = prev + ".x"
		}
		nodes = append(nodes, NodeDef{
			Name:      name,
			Component: c,
			Inputs:    []string{featureIn, "y"},
		})
		prev = name
	}
	return Definition{Nodes: nodes}
}
