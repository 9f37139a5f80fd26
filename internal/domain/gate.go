package domain

import "fmt"

// ChecklistItem is one entry of a quality gate checklist. Items are stored
// as a JSON array on the gate row, so the field tags are load-bearing.
type ChecklistItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// QualityGate is a checklist/photo-evidence checkpoint attached to exactly
// one phase or one work package; Level discriminates the owner.
type QualityGate struct {
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
}

// Validate checks the owner discriminator and numeric constraints.
func (g *QualityGate) Validate() error {
	switch g.Level {
	case GatePhase:
		if g.PhaseID == nil || g.PackageID != nil {
			return fmt.Errorf("gate %q: phase-level gate must reference a phase and no package", g.Name)
		}
	case GatePackage:
		if g.PackageID == nil || g.PhaseID != nil {
			return fmt.Errorf("gate %q: package-level gate must reference a package and no phase", g.Name)
		}
	default:
		return fmt.Errorf("gate %q: invalid gate level %q", g.Name, g.Level)
	}
	if g.MinPhotosRequired < 0 {
		return fmt.Errorf("gate %q: min photos required must be >= 0", g.Name)
	}
	return nil
}

// OwnerID returns the id of the phase or package the gate is attached to.
func (g *QualityGate) OwnerID() string {
	if g.Level == GatePhase && g.PhaseID != nil {
		return *g.PhaseID
	}
	if g.PackageID != nil {
		return *g.PackageID
	}
	return ""
}
