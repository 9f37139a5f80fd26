package repository

import (
	"context"

	"github.com/renoplan/renoplan/internal/domain"
)

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Template, error)
	Update(ctx context.Context, t *domain.Template) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdateRollups(ctx context.Context, id string, totalDays int, totalCost int64) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.Phase, error)
	Delete(ctx context.Context, id string) error
}

type PackageRepo interface {
	Create(ctx context.Context, p *domain.WorkPackage) error
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.WorkPackage, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.WorkPackage, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByPackage(ctx context.Context, packageID string) ([]*domain.Task, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	Delete(ctx context.Context, predecessorID, successorID string) error
	ListByTemplate(ctx context.Context, templateID string) ([]domain.Dependency, error)
}

type GateRepo interface {
	Create(ctx context.Context, g *domain.QualityGate) error
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.QualityGate, error)
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

// ProjectPlanRepo writes and reads the instantiated plan records. All
// Create methods are exercised inside one unit-of-work transaction by the
// apply service.
type ProjectPlanRepo interface {
	CreatePhase(ctx context.Context, p *domain.ProjectPhase) error
	CreatePackage(ctx context.Context, p *domain.ProjectWorkPackage) error
	CreateTask(ctx context.Context, t *domain.ProjectTask) error
	CreateDependency(ctx context.Context, d *domain.ProjectDependency) error
	CreateGate(ctx context.Context, g *domain.ProjectGate) error

	ListPhases(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error)
	ListPackages(ctx context.Context, projectID string) ([]*domain.ProjectWorkPackage, error)
	ListTasks(ctx context.Context, projectID string) ([]*domain.ProjectTask, error)
	ListDependencies(ctx context.Context, projectID string) ([]domain.ProjectDependency, error)
	ListGates(ctx context.Context, projectID string) ([]*domain.ProjectGate, error)
}
