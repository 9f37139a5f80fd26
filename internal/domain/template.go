package domain

import (
	"fmt"
	"time"
)

// Template is a reusable work breakdown structure blueprint. The
// TotalDurationDays and TotalEstimatedCost columns are denormalized rollups
// cached at save time; the apply path always recomputes from the live tree.
type Template struct {
	ID                 string
	Name               string
	Category           TemplateCategory
	Scope              TemplateScope
	RoomType           *string
	Active             bool
	TotalDurationDays  int
	TotalEstimatedCost int64 // cents
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Phase is an ordered top-level grouping within a template.
type Phase struct {
	ID         string
	TemplateID string
	WBSCode    string // e.g. "1"
	Name       string
	OrderIndex int
}

// WorkPackage is a mid-level grouping within a phase.
type WorkPackage struct {
	ID         string
	PhaseID    string
	WBSCode    string // e.g. "1.2"
	Name       string
	OrderIndex int
}

// Task is the leaf unit of work. Tasks are the only node type that
// participates in the dependency graph.
type Task struct {
	ID            string
	PackageID     string
	WBSCode       string // e.g. "1.2.3"
	Name          string
	Description   string
	DurationDays  int
	EstimatedCost *int64 // cents, nil when unpriced
	TradeCategory *string
	Optional      bool
}

// Validate checks the task's intrinsic constraints.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.DurationDays < 0 {
		return fmt.Errorf("task %q: duration must be >= 0, got %d", t.Name, t.DurationDays)
	}
	if t.EstimatedCost != nil && *t.EstimatedCost < 0 {
		return fmt.Errorf("task %q: estimated cost must be >= 0", t.Name)
	}
	return nil
}

// CostOrZero returns the estimated cost in cents, treating nil as 0.
func (t *Task) CostOrZero() int64 {
	if t.EstimatedCost == nil {
		return 0
	}
	return *t.EstimatedCost
}
