// Package graph implements the dependency-graph algorithms used by the
// template editor and the apply engine: cycle detection, transitive impact
// analysis, and topological ordering. All functions treat the edge list as
// an immutable snapshot; no state is kept between calls.
package graph

import "sort"

// Edge is a directed precedence edge from predecessor to successor.
// Dependency type and lag are irrelevant to reachability, so edges carry
// only the two endpoints here.
type Edge struct {
	Predecessor string
	Successor   string
}

// adjacency builds a predecessor -> successors map over the edge snapshot.
// Self-loops are kept; the cycle detector treats them as cycles.
func adjacency(edges []Edge) map[string][]string {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		if e.Predecessor == "" || e.Successor == "" {
			continue
		}
		adj[e.Predecessor] = append(adj[e.Predecessor], e.Successor)
	}
	return adj
}

// reverse builds a successor -> predecessors map over the edge snapshot.
func reverse(edges []Edge) map[string][]string {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		if e.Predecessor == "" || e.Successor == "" {
			continue
		}
		adj[e.Successor] = append(adj[e.Successor], e.Predecessor)
	}
	return adj
}

// nodeSet collects every task id that appears on either side of an edge.
func nodeSet(edges []Edge) map[string]bool {
	nodes := make(map[string]bool, len(edges)*2)
	for _, e := range edges {
		if e.Predecessor != "" {
			nodes[e.Predecessor] = true
		}
		if e.Successor != "" {
			nodes[e.Successor] = true
		}
	}
	return nodes
}

// sortedKeys returns map keys in lexical order for deterministic traversal.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
