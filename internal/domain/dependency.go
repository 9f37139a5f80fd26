package domain

import "fmt"

// Dependency is a typed, lagged directed edge between two tasks of the same
// template. Negative lag is lead time.
type Dependency struct {
	ID                string
	TemplateID        string
	PredecessorTaskID string
	SuccessorTaskID   string
	Type              DependencyType
	LagDays           int
}

// Validate checks the edge's intrinsic constraints. Acyclicity of the full
// edge set is the graph package's concern, not the single edge's.
func (d *Dependency) Validate() error {
	if d.PredecessorTaskID == "" || d.SuccessorTaskID == "" {
		return fmt.Errorf("dependency requires both predecessor and successor task ids")
	}
	if d.PredecessorTaskID == d.SuccessorTaskID {
		return fmt.Errorf("dependency cannot reference task %q as both predecessor and successor", d.PredecessorTaskID)
	}
	if !ValidDependencyTypes[string(d.Type)] {
		return fmt.Errorf("invalid dependency type %q", d.Type)
	}
	return nil
}
