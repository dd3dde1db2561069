package graph

import (
	"strings"

	"github.com/kbukum/automl/errors"
)

// RefKind classifies the source of an edge reference.
type RefKind int

const (
	// RefRootX is the pipeline-level feature input "X".
	RefRootX RefKind = iota
	// RefRootY is the pipeline-level target input "y".
	RefRootY
	// RefNodeX is the feature output of a named upstream node.
	RefNodeX
	// RefNodeY is the target output of a named upstream node.
	RefNodeY
)

// EdgeRef is a parsed input edge of a node. Node is empty for root refs.
type EdgeRef struct {
	Kind RefKind
	Node string
}

// IsTarget reports whether the reference carries a target stream.
func (r EdgeRef) IsTarget() bool {
	return r.Kind == RefRootY || r.Kind == RefNodeY
}

// String renders the reference back in definition syntax.
func (r EdgeRef) String() string {
	switch r.Kind {
	case RefRootX:
		return "X"
	case RefRootY:
		return "y"
	case RefNodeX:
		return r.Node + ".x"
	default:
		return r.Node + ".y"
	}
}

// ParseEdgeRef parses a single input edge string for the named node.
// Accepted forms are "X", "y", "<node>.x" and "<node>.y".
func ParseEdgeRef(node, ref string) (EdgeRef, error) {
	switch ref {
	case "X":
		return EdgeRef{Kind: RefRootX}, nil
	case "y":
		return EdgeRef{Kind: RefRootY}, nil
	}
	dot := strings.LastIndex(ref, ".")
	if dot <= 0 || dot == len(ref)-1 {
		return EdgeRef{}, errors.InvalidEdge(node, ref)
	}
	name, suffix := ref[:dot], ref[dot+1:]
	switch suffix {
	case "x":
		return EdgeRef{Kind: RefNodeX, Node: name}, nil
	case "y":
		return EdgeRef{Kind: RefNodeY, Node: name}, nil
	default:
		return EdgeRef{}, errors.InvalidEdge(node, ref)
	}
}
