package domain

import "time"

// Project is the renovation target that receives instantiated plan records.
// Ownership of the wider project lifecycle lives outside this engine; only
// the fields the plan writer needs are modeled here.
type Project struct {
	ID        string
	Name      string
	UnitLabel string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectPhase is an instantiated phase. Source ids are provenance only;
// project records never link back live to the template.
type ProjectPhase struct {
	ID               string
	ProjectID        string
	WBSCode          string
	Name             string
	OrderIndex       int
	SourceTemplateID string
	SourcePhaseID    string
}

type ProjectWorkPackage struct {
	ID              string
	PhaseID         string
	WBSCode         string
	Name            string
	OrderIndex      int
	SourcePackageID string
}

// ProjectTask is an instantiated task with its derived schedule window.
type ProjectTask struct {
	ID             string
	PackageID      string
	WBSCode        string
	Name           string
	Description    string
	DurationDays   int
	EstimatedCost  *int64
	TradeCategory  *string
	Status         TaskStatus
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	SourceTaskID   string
}

type ProjectDependency struct {
	ID                string
	ProjectID         string
	PredecessorTaskID string
	SuccessorTaskID   string
	Type              DependencyType
	LagDays           int
}

type ProjectGate struct {
	ID                string
	Level             GateLevel
	PhaseID           *string
	PackageID         *string
	Name              string
	Description       string
	Checklist         []ChecklistItem
	MinPhotosRequired int
	Blocking          bool
	AutoApprove       bool
	SourceGateID      string
}
