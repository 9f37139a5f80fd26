// Package template implements the pure core of the apply engine: exclusion
// validation, metrics rollups over the pruned tree, and instantiation of a
// template into a full set of project plan records.
package template

import (
	"fmt"
	"sort"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/graph"
	"github.com/renoplan/renoplan/internal/scheduler"
)

// Metrics is the preview rollup for a template under an exclusion set.
// Phase and package counts are always the unexcluded totals: exclusion
// removes tasks, never whole phases or packages. TotalDays is the longest
// path through the pruned dependency graph, not a sum of durations.
type Metrics struct {
	TaskCount    int
	PhaseCount   int
	PackageCount int
	TotalDays    int
	TotalCost    int64 // cents
}

// ValidateExclusions checks that every excluded id names an existing,
// optional task. Exclusion sets are caller-owned and transient; nothing on
// the template records them.
func ValidateExclusions(tree *domain.TemplateTree, excluded map[string]bool) error {
	for _, id := range sortedIDs(excluded) {
		task := tree.TaskByID(id)
		if task == nil {
			return fmt.Errorf("excluding task %s: %w", id, ErrUnknownTask)
		}
		if !task.Optional {
			return fmt.Errorf("excluding task %q (%s): %w", task.Name, id, ErrTaskNotOptional)
		}
	}
	return nil
}

// ComputeMetrics walks the tree skipping excluded tasks. Nil estimated
// costs count as zero.
func ComputeMetrics(tree *domain.TemplateTree, excluded map[string]bool) (Metrics, error) {
	if err := ValidateExclusions(tree, excluded); err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		PhaseCount:   len(tree.Phases),
		PackageCount: len(tree.Packages),
	}

	tasks := EffectiveTasks(tree, excluded)
	for _, t := range tasks {
		m.TaskCount++
		m.TotalCost += t.CostOrZero()
	}

	days, err := scheduler.TotalDays(tasks, EffectiveDependencies(tree, excluded))
	if err != nil {
		return Metrics{}, err
	}
	m.TotalDays = days
	return m, nil
}

// EffectiveTasks is the template's task list minus the exclusion set, in
// tree order.
func EffectiveTasks(tree *domain.TemplateTree, excluded map[string]bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(tree.Tasks))
	for _, t := range tree.Tasks {
		if !excluded[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// EffectiveDependencies keeps only edges whose endpoints both survive the
// exclusion. Edges touching an excluded task are dropped silently; the graph
// is pruned, never rewired around the gap.
func EffectiveDependencies(tree *domain.TemplateTree, excluded map[string]bool) []domain.Dependency {
	out := make([]domain.Dependency, 0, len(tree.Dependencies))
	for _, d := range tree.Dependencies {
		if excluded[d.PredecessorTaskID] || excluded[d.SuccessorTaskID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ExclusionWarnings lists tasks whose precedence condition may no longer be
// satisfiable: the transitive dependents of each excluded task over the
// unfiltered edge set, minus the exclusion set itself. Advisory only; the
// apply may proceed.
func ExclusionWarnings(tree *domain.TemplateTree, excluded map[string]bool) []string {
	edges := make([]graph.Edge, 0, len(tree.Dependencies))
	for _, d := range tree.Dependencies {
		edges = append(edges, graph.Edge{Predecessor: d.PredecessorTaskID, Successor: d.SuccessorTaskID})
	}

	affected := make(map[string]bool)
	for id := range excluded {
		for _, dep := range graph.DependentTasks(edges, id) {
			if !excluded[dep] {
				affected[dep] = true
			}
		}
	}
	return sortedIDs(affected)
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
