package graph

import "sort"

// TopoSort orders nodes so that every predecessor appears before its
// successors (Kahn's algorithm). Nodes not mentioned by any edge keep their
// place via the zero in-degree pool. Ties are broken lexically so the order
// is deterministic for a given input. Returns ErrCycle when the edge set is
// not acyclic over the given nodes.
func TopoSort(nodes []string, edges []Edge) ([]string, error) {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n] = true
	}

	inDegree := make(map[string]int, len(nodes))
	adj := make(map[string][]string, len(nodes))
	for _, e := range edges {
		// Edges touching nodes outside the set are ignored; the caller
		// prunes the effective edge set before ordering.
		if !present[e.Predecessor] || !present[e.Successor] {
			continue
		}
		adj[e.Predecessor] = append(adj[e.Predecessor], e.Successor)
		inDegree[e.Successor]++
	}

	ready := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		released := make([]string, 0, len(adj[node]))
		for _, next := range adj[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				released = append(released, next)
			}
		}
		sort.Strings(released)
		ready = append(ready, released...)
	}

	if len(order) != len(present) {
		return nil, ErrCycle
	}
	return order, nil
}
