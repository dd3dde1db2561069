package graph

import "github.com/kbukum/automl/errors"

// dependencies returns the indices of nodes the given node reads from,
// deduplicated, in first-reference order.
func dependencies(n *node, index map[string]int) []int {
	var deps []int
	seen := make(map[int]bool)
	for _, ref := range n.inputs {
		if ref.Kind != RefNodeX && ref.Kind != RefNodeY {
			continue
		}
		idx := index[ref.Node]
		if !seen[idx] {
			seen[idx] = true
			deps = append(deps, idx)
		}
	}
	return deps
}

// computeOrder runs a stable Kahn topological sort over the nodes. Ties in
// the ready set resolve by declaration order, so the schedule is a pure
// function of the definition. A cycle leaves nodes unscheduled and fails
// with a cycle error naming them.
func computeOrder(nodes []*node, index map[string]int) ([]int, error) {
	indegree := make([]int, len(nodes))
	dependents := make([][]int, len(nodes))
	for i, n := range nodes {
		for _, dep := range dependencies(n, index) {
			indegree[i]++
			dependents[dep] = append(dependents[dep], i)
		}
	}

	order := make([]int, 0, len(nodes))
	scheduled := make([]bool, len(nodes))
	for len(order) < len(nodes) {
		next := -1
		for i := range nodes {
			if !scheduled[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			break
		}
		scheduled[next] = true
		order = append(order, next)
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}

	if len(order) < len(nodes) {
		var stuck []string
		for i, n := range nodes {
			if !scheduled[i] {
				stuck = append(stuck, n.name)
			}
		}
		return nil, errors.Cycle(stuck)
	}
	return order, nil
}

// resolveTargetSources decides, per node, where its target stream comes
// from. An explicit "<node>.y" reference pins the source. Otherwise the
// target follows the dependency chain: when a node's transitive ancestors
// include target producers, it sees the latest-scheduled one, so a
// resampling step keeps features and target row-aligned for everything
// downstream of it. Nodes with no producing ancestor read the root target.
func resolveTargetSources(nodes []*node, index map[string]int, order []int) []int {
	pos := make([]int, len(nodes))
	for p, idx := range order {
		pos[idx] = p
	}

	ancestors := make([]map[int]bool, len(nodes))
	for _, idx := range order {
		set := make(map[int]bool)
		for _, dep := range dependencies(nodes[idx], index) {
			set[dep] = true
			for a := range ancestors[dep] {
				set[a] = true
			}
		}
		ancestors[idx] = set
	}

	sources := make([]int, len(nodes))
	for i, n := range nodes {
		if n.targetInput.Kind == RefNodeY {
			sources[i] = index[n.targetInput.Node]
			continue
		}
		sources[i] = -1
		for a := range ancestors[i] {
			if !nodes[a].desc.ProducesTarget {
				continue
			}
			if sources[i] == -1 || pos[a] > pos[sources[i]] {
				sources[i] = a
			}
		}
	}
	return sources
}

// findTerminus locates the unique sink node. A node is a sink when no other
// node reads either of its outputs.
func findTerminus(nodes []*node, index map[string]int) (int, error) {
	consumed := make([]bool, len(nodes))
	for _, n := range nodes {
		for _, dep := range dependencies(n, index) {
			consumed[dep] = true
		}
	}
	var sinks []int
	for i := range nodes {
		if !consumed[i] {
			sinks = append(sinks, i)
		}
	}
	switch len(sinks) {
	case 1:
		return sinks[0], nil
	case 0:
		return -1, errors.NoTerminus()
	default:
		names := make([]string, len(sinks))
		for i, idx := range sinks {
			names[i] = nodes[idx].name
		}
		return -1, errors.MultipleTerminus(names)
	}
}
