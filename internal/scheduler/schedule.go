// Package scheduler derives concrete task schedule windows from a dependency
// graph by forward date propagation in topological order.
package scheduler

import (
	"fmt"
	"time"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/graph"
)

// Window is a task's derived schedule: Start is the first working day,
// End is Start plus the task duration in days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Schedule computes a window for every task by propagating dates forward
// through the effective dependency set. Each edge contributes an
// earliest-start constraint on its successor:
//
//	FS: predecessor end + lag
//	SS: predecessor start + lag
//	FF: predecessor end + lag - successor duration
//	SF: predecessor start + lag - successor duration
//
// A task takes the latest of all its constraints; a task with none (or whose
// constraints fall before the project start, e.g. via negative lag) starts
// at startDate. Returns graph.ErrCycle when the edge set is not acyclic.
func Schedule(tasks []*domain.Task, deps []domain.Dependency, startDate time.Time) (map[string]Window, error) {
	byID := make(map[string]*domain.Task, len(tasks))
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	edges := make([]graph.Edge, 0, len(deps))
	incoming := make(map[string][]domain.Dependency, len(deps))
	for _, d := range deps {
		edges = append(edges, graph.Edge{Predecessor: d.PredecessorTaskID, Successor: d.SuccessorTaskID})
		incoming[d.SuccessorTaskID] = append(incoming[d.SuccessorTaskID], d)
	}

	order, err := graph.TopoSort(ids, edges)
	if err != nil {
		return nil, err
	}

	windows := make(map[string]Window, len(tasks))
	for _, id := range order {
		task := byID[id]
		start := startDate
		for _, dep := range incoming[id] {
			pred, ok := windows[dep.PredecessorTaskID]
			if !ok {
				// Predecessor outside the effective set; the caller prunes
				// such edges before scheduling.
				continue
			}
			constraint, err := earliestStart(dep, pred, task.DurationDays)
			if err != nil {
				return nil, err
			}
			if constraint.After(start) {
				start = constraint
			}
		}
		windows[id] = Window{Start: start, End: start.AddDate(0, 0, task.DurationDays)}
	}
	return windows, nil
}

// earliestStart converts one dependency into a successor start constraint.
// The switch is exhaustive over the closed set of dependency types.
func earliestStart(dep domain.Dependency, pred Window, successorDuration int) (time.Time, error) {
	switch dep.Type {
	case domain.FinishToStart:
		return pred.End.AddDate(0, 0, dep.LagDays), nil
	case domain.StartToStart:
		return pred.Start.AddDate(0, 0, dep.LagDays), nil
	case domain.FinishToFinish:
		return pred.End.AddDate(0, 0, dep.LagDays-successorDuration), nil
	case domain.StartToFinish:
		return pred.Start.AddDate(0, 0, dep.LagDays-successorDuration), nil
	default:
		return time.Time{}, fmt.Errorf("unknown dependency type %q", dep.Type)
	}
}
