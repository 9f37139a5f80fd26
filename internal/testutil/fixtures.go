package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/renoplan/renoplan/internal/domain"
)

var fixtureCounter atomic.Int64

func nextN() int64 {
	return fixtureCounter.Add(1)
}

// Template options

type TemplateOption func(*domain.Template)

func WithCategory(c domain.TemplateCategory) TemplateOption {
	return func(t *domain.Template) {
		t.Category = c
	}
}

func WithScope(s domain.TemplateScope) TemplateOption {
	return func(t *domain.Template) {
		t.Scope = s
	}
}

func WithRoomType(rt string) TemplateOption {
	return func(t *domain.Template) {
		t.RoomType = &rt
	}
}

func WithInactive() TemplateOption {
	return func(t *domain.Template) {
		t.Active = false
	}
}

// NewTemplate builds a valid template with sensible defaults.
func NewTemplate(opts ...TemplateOption) *domain.Template {
	now := time.Now().UTC()
	t := &domain.Template{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("Template %d", nextN()),
		Category:  domain.CategoryKitchen,
		Scope:     domain.ScopeRoom,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewPhase builds a phase attached to the given template.
func NewPhase(templateID, wbs, name string, order int) *domain.Phase {
	return &domain.Phase{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		WBSCode:    wbs,
		Name:       name,
		OrderIndex: order,
	}
}

// NewPackage builds a work package attached to the given phase.
func NewPackage(phaseID, wbs, name string, order int) *domain.WorkPackage {
	return &domain.WorkPackage{
		ID:         uuid.New().String(),
		PhaseID:    phaseID,
		WBSCode:    wbs,
		Name:       name,
		OrderIndex: order,
	}
}

// Task options

type TaskOption func(*domain.Task)

func WithDuration(days int) TaskOption {
	return func(t *domain.Task) {
		t.DurationDays = days
	}
}

func WithCost(cents int64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedCost = &cents
	}
}

func WithTrade(trade string) TaskOption {
	return func(t *domain.Task) {
		t.TradeCategory = &trade
	}
}

func WithOptional() TaskOption {
	return func(t *domain.Task) {
		t.Optional = true
	}
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

// NewTask builds a valid task in the given package.
func NewTask(packageID, wbs string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:           uuid.New().String(),
		PackageID:    packageID,
		WBSCode:      wbs,
		Name:         fmt.Sprintf("Task %d", nextN()),
		DurationDays: 1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewDependency builds an edge between two tasks.
func NewDependency(templateID, pred, succ string, depType domain.DependencyType, lag int) domain.Dependency {
	return domain.Dependency{
		ID:                uuid.New().String(),
		TemplateID:        templateID,
		PredecessorTaskID: pred,
		SuccessorTaskID:   succ,
		Type:              depType,
		LagDays:           lag,
	}
}

// NewPhaseGate builds a blocking phase-level gate with one required item.
func NewPhaseGate(phaseID, name string) *domain.QualityGate {
	return &domain.QualityGate{
		ID:      uuid.New().String(),
		Level:   domain.GatePhase,
		PhaseID: &phaseID,
		Name:    name,
		Checklist: []domain.ChecklistItem{
			{ID: uuid.New().String(), Text: "Inspection passed", Required: true},
		},
		MinPhotosRequired: 1,
		Blocking:          true,
	}
}

// TreeSpec describes a fixture tree to build: one phase, one package, and
// tasks keyed by short names. Dependencies reference those short names.
type TreeSpec struct {
	Tasks map[string]TaskSpec
	Deps  []DepSpec
}

type TaskSpec struct {
	Duration int
	Cost     int64 // cents; 0 means unpriced
	Optional bool
}

type DepSpec struct {
	Pred string
	Succ string
	Type domain.DependencyType
	Lag  int
}

// BuildTree constructs a full TemplateTree from a TreeSpec. Task ids equal
// their short names so tests may address tasks directly.
func BuildTree(spec TreeSpec) *domain.TemplateTree {
	tpl := NewTemplate()
	phase := NewPhase(tpl.ID, "1", "Phase", 0)
	pkg := NewPackage(phase.ID, "1.1", "Package", 0)

	tree := &domain.TemplateTree{
		Template: tpl,
		Phases:   []*domain.Phase{phase},
		Packages: []*domain.WorkPackage{pkg},
	}

	i := 0
	for name, ts := range spec.Tasks {
		i++
		opts := []TaskOption{WithTaskID(name), WithDuration(ts.Duration)}
		if ts.Cost > 0 {
			opts = append(opts, WithCost(ts.Cost))
		}
		if ts.Optional {
			opts = append(opts, WithOptional())
		}
		task := NewTask(pkg.ID, fmt.Sprintf("1.1.%d", i), opts...)
		task.Name = name
		tree.Tasks = append(tree.Tasks, task)
	}

	for _, d := range spec.Deps {
		depType := d.Type
		if depType == "" {
			depType = domain.FinishToStart
		}
		tree.Dependencies = append(tree.Dependencies, NewDependency(tpl.ID, d.Pred, d.Succ, depType, d.Lag))
	}

	return tree
}
