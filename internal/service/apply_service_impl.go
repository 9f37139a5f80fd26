package service

import (
	"context"
	"fmt"
	"time"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/repository"
	tmpl "github.com/renoplan/renoplan/internal/template"
)

type applyService struct {
	templates TemplateService
	projects  repository.ProjectRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewApplyService(
	templates TemplateService,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ApplyService {
	return &applyService{
		templates: templates,
		projects:  projects,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Preview computes what an apply would produce. It never writes; a valid
// exclusion set always yields a result, warnings included.
func (s *applyService) Preview(ctx context.Context, templateID string, excluded []string) (*PreviewResult, error) {
	tree, err := s.templates.GetTree(ctx, templateID)
	if err != nil {
		return nil, err
	}
	exclSet := exclusionSet(excluded)

	metrics, err := tmpl.ComputeMetrics(tree, exclSet)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		Metrics:  metrics,
		Warnings: tmpl.ExclusionWarnings(tree, exclSet),
	}, nil
}

// Apply instantiates the template into the project inside one transaction.
// A mid-write failure rolls back every staged record.
func (s *applyService) Apply(ctx context.Context, templateID, projectID string, startDate time.Time, excluded []string) (result *ApplyResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"template": templateID,
		"project":  projectID,
		"start":    startDate.Format("2006-01-02"),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "apply-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	tree, err := s.templates.GetTree(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("loading project %s: %w", projectID, err)
	}

	plan, err := tmpl.Instantiate(tree, projectID, startDate, exclusionSet(excluded))
	if err != nil {
		return nil, err
	}
	fields["task_count"] = len(plan.Tasks)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlan := repository.NewSQLiteProjectPlanRepo(tx)

		for _, p := range plan.Phases {
			if err := txPlan.CreatePhase(ctx, p); err != nil {
				return fmt.Errorf("creating phase %q: %w", p.Name, err)
			}
		}
		for _, p := range plan.Packages {
			if err := txPlan.CreatePackage(ctx, p); err != nil {
				return fmt.Errorf("creating package %q: %w", p.Name, err)
			}
		}
		for _, t := range plan.Tasks {
			if err := txPlan.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Name, err)
			}
		}
		for _, d := range plan.Dependencies {
			dep := d
			if err := txPlan.CreateDependency(ctx, &dep); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		for _, g := range plan.Gates {
			if err := txPlan.CreateGate(ctx, g); err != nil {
				return fmt.Errorf("creating gate %q: %w", g.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	end := startDate
	for _, t := range plan.Tasks {
		if t.ScheduledEnd.After(end) {
			end = t.ScheduledEnd
		}
	}

	result = &ApplyResult{
		ProjectID:       projectID,
		PhaseCount:      len(plan.Phases),
		PackageCount:    len(plan.Packages),
		TaskCount:       len(plan.Tasks),
		DependencyCount: len(plan.Dependencies),
		GateCount:       len(plan.Gates),
		StartDate:       startDate,
		EndDate:         end,
	}
	return result, nil
}

func exclusionSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
