package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	plans    repository.ProjectPlanRepo
}

func NewProjectService(projects repository.ProjectRepo, plans repository.ProjectPlanRepo) ProjectService {
	return &projectService{projects: projects, plans: plans}
}

func (s *projectService) Create(ctx context.Context, name, unitLabel string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		UnitLabel: unitLabel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) GetPlan(ctx context.Context, id string) (*ProjectPlan, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	phases, err := s.plans.ListPhases(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan phases: %w", err)
	}
	packages, err := s.plans.ListPackages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan packages: %w", err)
	}
	tasks, err := s.plans.ListTasks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan tasks: %w", err)
	}
	deps, err := s.plans.ListDependencies(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan dependencies: %w", err)
	}
	gates, err := s.plans.ListGates(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan gates: %w", err)
	}
	return &ProjectPlan{
		Project:      project,
		Phases:       phases,
		Packages:     packages,
		Tasks:        tasks,
		Dependencies: deps,
		Gates:        gates,
	}, nil
}
