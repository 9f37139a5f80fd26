package graph

import "errors"

var (
	// ErrSelfReference marks an edge whose predecessor equals its successor.
	ErrSelfReference = errors.New("dependency references itself")
	// ErrCycle marks an edge set (or a proposed edge) that closes a cycle.
	ErrCycle = errors.New("circular dependency")
)

// HasCycle reports whether the edge snapshot contains a cycle. It runs a
// depth-first traversal from every node using tricolor marking: a back-edge
// into a node on the current stack (gray) signals a cycle.
func HasCycle(edges []Edge) bool {
	adj := adjacency(edges)

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int, len(adj))

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range adj[node] {
			if next == node {
				return true
			}
			switch color[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range nodeSet(edges) {
		if color[node] == white {
			if visit(node) {
				return true
			}
		}
	}
	return false
}

// ValidateNewEdge checks whether adding proposed to the existing snapshot
// would keep the graph acyclic. Self-loops are rejected up front as a cheap
// fast path; otherwise the detector runs on existing + proposed. The stored
// edge set is never touched: callers reject the edge on error.
func ValidateNewEdge(existing []Edge, proposed Edge) error {
	if proposed.Predecessor == proposed.Successor {
		return ErrSelfReference
	}
	candidate := make([]Edge, 0, len(existing)+1)
	candidate = append(candidate, existing...)
	candidate = append(candidate, proposed)
	if HasCycle(candidate) {
		return ErrCycle
	}
	return nil
}
