package domain

// TemplateTree is the fully loaded template aggregate: the ownership tree
// plus the dependency overlay and quality gates. The tree is strict
// ownership (phase owns package owns task); dependencies are kept as a flat
// edge list keyed by task id, never as pointers on the tree nodes.
type TemplateTree struct {
	Template     *Template
	Phases       []*Phase
	Packages     []*WorkPackage
	Tasks        []*Task
	Dependencies []Dependency
	Gates        []*QualityGate
}

// PackagesByPhase groups work packages by owning phase id.
func (t *TemplateTree) PackagesByPhase() map[string][]*WorkPackage {
	m := make(map[string][]*WorkPackage, len(t.Phases))
	for _, p := range t.Packages {
		m[p.PhaseID] = append(m[p.PhaseID], p)
	}
	return m
}

// TasksByPackage groups tasks by owning work package id.
func (t *TemplateTree) TasksByPackage() map[string][]*Task {
	m := make(map[string][]*Task, len(t.Packages))
	for _, task := range t.Tasks {
		m[task.PackageID] = append(m[task.PackageID], task)
	}
	return m
}

// TaskByID returns the task with the given id, or nil.
func (t *TemplateTree) TaskByID(id string) *Task {
	for _, task := range t.Tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// GatesByOwner groups quality gates by owning phase or package id.
func (t *TemplateTree) GatesByOwner() map[string][]*QualityGate {
	m := make(map[string][]*QualityGate)
	for _, g := range t.Gates {
		m[g.OwnerID()] = append(m[g.OwnerID()], g)
	}
	return m
}
