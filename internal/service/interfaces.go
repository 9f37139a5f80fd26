package service

import (
	"context"
	"time"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/graph"
	"github.com/renoplan/renoplan/internal/importer"
	tmpl "github.com/renoplan/renoplan/internal/template"
)

// ImportResult holds the outcome of a template import.
type ImportResult struct {
	Template        *domain.Template
	PhaseCount      int
	PackageCount    int
	TaskCount       int
	DependencyCount int
	GateCount       int
}

type TemplateService interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Template, error)
	GetTree(ctx context.Context, id string) (*domain.TemplateTree, error)
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.TemplateImport) (*ImportResult, error)
	AddDependency(ctx context.Context, templateID, predecessorID, successorID string, depType domain.DependencyType, lagDays int) (*domain.Dependency, error)
	RemoveDependency(ctx context.Context, templateID, predecessorID, successorID string) error
	AffectedTasks(ctx context.Context, templateID, taskID string) (graph.Impact, error)
	RecalculateRollups(ctx context.Context, templateID string) (*domain.Template, error)
	SetActive(ctx context.Context, templateID string, active bool) error
}

// PreviewResult describes what applying a template would produce, without
// writing anything.
type PreviewResult struct {
	Metrics  tmpl.Metrics
	Warnings []string
}

// ApplyResult summarizes the records created by applying a template.
type ApplyResult struct {
	ProjectID       string
	PhaseCount      int
	PackageCount    int
	TaskCount       int
	DependencyCount int
	GateCount       int
	StartDate       time.Time
	EndDate         time.Time
}

type ApplyService interface {
	Preview(ctx context.Context, templateID string, excluded []string) (*PreviewResult, error)
	Apply(ctx context.Context, templateID, projectID string, startDate time.Time, excluded []string) (*ApplyResult, error)
}

// ProjectPlan aggregates the full instantiated plan of one project.
type ProjectPlan struct {
	Project      *domain.Project
	Phases       []*domain.ProjectPhase
	Packages     []*domain.ProjectWorkPackage
	Tasks        []*domain.ProjectTask
	Dependencies []domain.ProjectDependency
	Gates        []*domain.ProjectGate
}

type ProjectService interface {
	Create(ctx context.Context, name, unitLabel string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	GetPlan(ctx context.Context, id string) (*ProjectPlan, error)
}
