package template

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/graph"
	"github.com/renoplan/renoplan/internal/scheduler"
)

// GeneratedPlan is the full record set one apply operation commits. The
// records reference each other through their fresh project-scoped ids; the
// template's own records are never mutated.
type GeneratedPlan struct {
	Phases       []*domain.ProjectPhase
	Packages     []*domain.ProjectWorkPackage
	Tasks        []*domain.ProjectTask
	Dependencies []domain.ProjectDependency
	Gates        []*domain.ProjectGate
}

// Instantiate expands a template tree into project plan records:
// validates the exclusion set, prunes the task and dependency sets,
// re-checks acyclicity as a final integrity guard, derives per-task schedule
// windows from startDate, and allocates fresh ids while preserving WBS
// codes, names, and ownership shape. A template left with zero tasks after
// exclusion is legal; startDate is taken as-is, past dates included.
func Instantiate(tree *domain.TemplateTree, projectID string, startDate time.Time, excluded map[string]bool) (*GeneratedPlan, error) {
	if err := ValidateExclusions(tree, excluded); err != nil {
		return nil, err
	}

	tasks := EffectiveTasks(tree, excluded)
	deps := EffectiveDependencies(tree, excluded)

	// Should be unreachable for an acyclic template, but guards the plan
	// against cross-template edge bugs before anything is staged.
	edges := make([]graph.Edge, 0, len(deps))
	for _, d := range deps {
		edges = append(edges, graph.Edge{Predecessor: d.PredecessorTaskID, Successor: d.SuccessorTaskID})
	}
	if graph.HasCycle(edges) {
		return nil, fmt.Errorf("template %s effective dependency set: %w", tree.Template.ID, graph.ErrCycle)
	}

	windows, err := scheduler.Schedule(tasks, deps, startDate)
	if err != nil {
		return nil, fmt.Errorf("scheduling template %s: %w", tree.Template.ID, err)
	}

	// Template id -> fresh project-scoped id.
	idMap := make(map[string]string, len(tree.Phases)+len(tree.Packages)+len(tasks))

	plan := &GeneratedPlan{}

	for _, ph := range tree.Phases {
		newID := uuid.New().String()
		idMap[ph.ID] = newID
		plan.Phases = append(plan.Phases, &domain.ProjectPhase{
			ID:               newID,
			ProjectID:        projectID,
			WBSCode:          ph.WBSCode,
			Name:             ph.Name,
			OrderIndex:       ph.OrderIndex,
			SourceTemplateID: tree.Template.ID,
			SourcePhaseID:    ph.ID,
		})
	}

	for _, pkg := range tree.Packages {
		newID := uuid.New().String()
		idMap[pkg.ID] = newID
		plan.Packages = append(plan.Packages, &domain.ProjectWorkPackage{
			ID:              newID,
			PhaseID:         idMap[pkg.PhaseID],
			WBSCode:         pkg.WBSCode,
			Name:            pkg.Name,
			OrderIndex:      pkg.OrderIndex,
			SourcePackageID: pkg.ID,
		})
	}

	for _, t := range tasks {
		newID := uuid.New().String()
		idMap[t.ID] = newID
		w := windows[t.ID]
		plan.Tasks = append(plan.Tasks, &domain.ProjectTask{
			ID:             newID,
			PackageID:      idMap[t.PackageID],
			WBSCode:        t.WBSCode,
			Name:           t.Name,
			Description:    t.Description,
			DurationDays:   t.DurationDays,
			EstimatedCost:  copyInt64(t.EstimatedCost),
			TradeCategory:  copyStr(t.TradeCategory),
			Status:         domain.TaskPending,
			ScheduledStart: w.Start,
			ScheduledEnd:   w.End,
			SourceTaskID:   t.ID,
		})
	}

	for _, d := range deps {
		plan.Dependencies = append(plan.Dependencies, domain.ProjectDependency{
			ID:                uuid.New().String(),
			ProjectID:         projectID,
			PredecessorTaskID: idMap[d.PredecessorTaskID],
			SuccessorTaskID:   idMap[d.SuccessorTaskID],
			Type:              d.Type,
			LagDays:           d.LagDays,
		})
	}

	for _, g := range tree.Gates {
		gate := &domain.ProjectGate{
			ID:                uuid.New().String(),
			Level:             g.Level,
			Name:              g.Name,
			Description:       g.Description,
			Checklist:         append([]domain.ChecklistItem(nil), g.Checklist...),
			MinPhotosRequired: g.MinPhotosRequired,
			Blocking:          g.Blocking,
			AutoApprove:       g.AutoApprove,
			SourceGateID:      g.ID,
		}
		if g.PhaseID != nil {
			mapped := idMap[*g.PhaseID]
			gate.PhaseID = &mapped
		}
		if g.PackageID != nil {
			mapped := idMap[*g.PackageID]
			gate.PackageID = &mapped
		}
		plan.Gates = append(plan.Gates, gate)
	}

	return plan, nil
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyStr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
