package graph

import "sort"

// Impact holds the two transitive closures around a task: everything that
// is scheduled after it and everything that must happen before it.
type Impact struct {
	Dependents    []string
	Prerequisites []string
}

// DependentTasks returns every task transitively reachable by following
// edges forward from taskID. The result is deduplicated, sorted, and never
// contains taskID itself.
func DependentTasks(edges []Edge, taskID string) []string {
	return reachable(adjacency(edges), taskID)
}

// PrerequisiteTasks returns every task transitively reachable by following
// edges backward from taskID, with the same result guarantees as
// DependentTasks.
func PrerequisiteTasks(edges []Edge, taskID string) []string {
	return reachable(reverse(edges), taskID)
}

// AffectedTasks combines both closures for editor highlighting.
func AffectedTasks(edges []Edge, taskID string) Impact {
	return Impact{
		Dependents:    DependentTasks(edges, taskID),
		Prerequisites: PrerequisiteTasks(edges, taskID),
	}
}

// reachable is a breadth-first traversal over the given adjacency map.
func reachable(adj map[string][]string, start string) []string {
	seen := make(map[string]bool)
	queue := append([]string(nil), adj[start]...)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node == start || seen[node] {
			continue
		}
		seen[node] = true
		queue = append(queue, adj[node]...)
	}

	out := make([]string, 0, len(seen))
	for node := range seen {
		out = append(out, node)
	}
	sort.Strings(out)
	return out
}
