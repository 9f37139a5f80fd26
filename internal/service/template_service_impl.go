package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/graph"
	"github.com/renoplan/renoplan/internal/importer"
	"github.com/renoplan/renoplan/internal/repository"
	tmpl "github.com/renoplan/renoplan/internal/template"
)

type templateService struct {
	templates repository.TemplateRepo
	phases    repository.PhaseRepo
	packages  repository.PackageRepo
	tasks     repository.TaskRepo
	deps      repository.DependencyRepo
	gates     repository.GateRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	phases repository.PhaseRepo,
	packages repository.PackageRepo,
	tasks repository.TaskRepo,
	deps repository.DependencyRepo,
	gates repository.GateRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates: templates,
		phases:    phases,
		packages:  packages,
		tasks:     tasks,
		deps:      deps,
		gates:     gates,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) List(ctx context.Context, activeOnly bool) ([]*domain.Template, error) {
	return s.templates.List(ctx, activeOnly)
}

func (s *templateService) GetTree(ctx context.Context, id string) (*domain.TemplateTree, error) {
	return s.loadTree(ctx, id)
}

func (s *templateService) loadTree(ctx context.Context, id string) (*domain.TemplateTree, error) {
	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	phases, err := s.phases.ListByTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}
	packages, err := s.packages.ListByTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	tasks, err := s.tasks.ListByTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	deps, err := s.deps.ListByTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	gates, err := s.gates.ListByTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading gates: %w", err)
	}
	return &domain.TemplateTree{
		Template:     template,
		Phases:       phases,
		Packages:     packages,
		Tasks:        tasks,
		Dependencies: deps,
		Gates:        gates,
	}, nil
}

func (s *templateService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadTemplateImport(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading template definition: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

func (s *templateService) ImportFromSchema(ctx context.Context, schema *importer.TemplateImport) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template": schema.Template.Name}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateTemplateImport(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	tree, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting template definition: %w", err)
	}

	metrics, err := tmpl.ComputeMetrics(tree, nil)
	if err != nil {
		return nil, fmt.Errorf("computing rollups: %w", err)
	}
	tree.Template.TotalDurationDays = metrics.TotalDays
	tree.Template.TotalEstimatedCost = metrics.TotalCost

	fields["phase_count"] = len(tree.Phases)
	fields["task_count"] = len(tree.Tasks)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txPackages := repository.NewSQLitePackageRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		txGates := repository.NewSQLiteGateRepo(tx)

		if err := txTemplates.Create(ctx, tree.Template); err != nil {
			return fmt.Errorf("creating template: %w", err)
		}
		for _, p := range tree.Phases {
			if err := txPhases.Create(ctx, p); err != nil {
				return fmt.Errorf("creating phase %q: %w", p.Name, err)
			}
		}
		for _, p := range tree.Packages {
			if err := txPackages.Create(ctx, p); err != nil {
				return fmt.Errorf("creating package %q: %w", p.Name, err)
			}
		}
		for _, t := range tree.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Name, err)
			}
		}
		for _, d := range tree.Dependencies {
			dep := d
			if err := txDeps.Create(ctx, &dep); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		for _, g := range tree.Gates {
			if err := txGates.Create(ctx, g); err != nil {
				return fmt.Errorf("creating gate %q: %w", g.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		Template:        tree.Template,
		PhaseCount:      len(tree.Phases),
		PackageCount:    len(tree.Packages),
		TaskCount:       len(tree.Tasks),
		DependencyCount: len(tree.Dependencies),
		GateCount:       len(tree.Gates),
	}
	return result, nil
}

func (s *templateService) AddDependency(ctx context.Context, templateID, predecessorID, successorID string, depType domain.DependencyType, lagDays int) (*domain.Dependency, error) {
	tree, err := s.loadTree(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tree.TaskByID(predecessorID) == nil {
		return nil, fmt.Errorf("predecessor task %s: %w", predecessorID, repository.ErrNotFound)
	}
	if tree.TaskByID(successorID) == nil {
		return nil, fmt.Errorf("successor task %s: %w", successorID, repository.ErrNotFound)
	}

	dep := domain.Dependency{
		ID:                uuid.New().String(),
		TemplateID:        templateID,
		PredecessorTaskID: predecessorID,
		SuccessorTaskID:   successorID,
		Type:              depType,
		LagDays:           lagDays,
	}
	if err := dep.Validate(); err != nil {
		return nil, err
	}

	existing := dependencyEdges(tree.Dependencies)
	if err := graph.ValidateNewEdge(existing, graph.Edge{Predecessor: predecessorID, Successor: successorID}); err != nil {
		return nil, err
	}

	if err := s.deps.Create(ctx, &dep); err != nil {
		return nil, fmt.Errorf("creating dependency: %w", err)
	}

	tree.Dependencies = append(tree.Dependencies, dep)
	if err := s.updateRollups(ctx, tree); err != nil {
		return nil, err
	}
	return &dep, nil
}

func (s *templateService) RemoveDependency(ctx context.Context, templateID, predecessorID, successorID string) error {
	if err := s.deps.Delete(ctx, predecessorID, successorID); err != nil {
		return err
	}
	tree, err := s.loadTree(ctx, templateID)
	if err != nil {
		return err
	}
	return s.updateRollups(ctx, tree)
}

func (s *templateService) AffectedTasks(ctx context.Context, templateID, taskID string) (graph.Impact, error) {
	tree, err := s.loadTree(ctx, templateID)
	if err != nil {
		return graph.Impact{}, err
	}
	if tree.TaskByID(taskID) == nil {
		return graph.Impact{}, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
	}
	return graph.AffectedTasks(dependencyEdges(tree.Dependencies), taskID), nil
}

func (s *templateService) RecalculateRollups(ctx context.Context, templateID string) (*domain.Template, error) {
	tree, err := s.loadTree(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := s.updateRollups(ctx, tree); err != nil {
		return nil, err
	}
	return tree.Template, nil
}

func (s *templateService) SetActive(ctx context.Context, templateID string, active bool) error {
	return s.templates.SetActive(ctx, templateID, active)
}

// updateRollups recomputes the stored duration and cost totals from the full
// tree with no exclusions and mutates tree.Template in place.
func (s *templateService) updateRollups(ctx context.Context, tree *domain.TemplateTree) error {
	metrics, err := tmpl.ComputeMetrics(tree, nil)
	if err != nil {
		return fmt.Errorf("computing rollups: %w", err)
	}
	if err := s.templates.UpdateRollups(ctx, tree.Template.ID, metrics.TotalDays, metrics.TotalCost); err != nil {
		return fmt.Errorf("storing rollups: %w", err)
	}
	tree.Template.TotalDurationDays = metrics.TotalDays
	tree.Template.TotalEstimatedCost = metrics.TotalCost
	return nil
}

func dependencyEdges(deps []domain.Dependency) []graph.Edge {
	edges := make([]graph.Edge, 0, len(deps))
	for _, d := range deps {
		edges = append(edges, graph.Edge{Predecessor: d.PredecessorTaskID, Successor: d.SuccessorTaskID})
	}
	return edges
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("template validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
