// Package importer loads template definition files: JSON documents that
// declare a full WBS tree with ref-based cross-references, validated and
// converted into domain entities with fresh ids before persistence.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// TemplateImport is the top-level JSON structure for a template definition.
type TemplateImport struct {
	Template     TemplateHeader     `json:"template"`
	Phases       []PhaseImport      `json:"phases"`
	Packages     []PackageImport    `json:"packages"`
	Tasks        []TaskImport       `json:"tasks"`
	Dependencies []DependencyImport `json:"dependencies,omitempty"`
	Gates        []GateImport       `json:"gates,omitempty"`
}

// TemplateHeader defines the template-level fields.
type TemplateHeader struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Scope    string  `json:"scope"`
	RoomType *string `json:"room_type,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// PhaseImport defines one phase; order follows list position when Order is
// omitted.
type PhaseImport struct {
	Ref   string `json:"ref"`
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
}

// PackageImport defines one work package within a phase.
type PackageImport struct {
	Ref      string `json:"ref"`
	PhaseRef string `json:"phase_ref"`
	Name     string `json:"name"`
	Order    *int   `json:"order,omitempty"`
}

// TaskImport defines one leaf task within a package. Cost is in cents.
type TaskImport struct {
	Ref           string  `json:"ref"`
	PackageRef    string  `json:"package_ref"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	DurationDays  int     `json:"duration_days"`
	EstimatedCost *int64  `json:"estimated_cost,omitempty"`
	TradeCategory *string `json:"trade_category,omitempty"`
	Optional      bool    `json:"optional,omitempty"`
}

// DependencyImport defines a typed, lagged edge between two task refs.
type DependencyImport struct {
	PredecessorRef string `json:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref"`
	Type           string `json:"type,omitempty"` // defaults to FS
	LagDays        int    `json:"lag_days,omitempty"`
}

// GateImport defines a quality gate attached to a phase ref or package ref.
type GateImport struct {
	Level             string                `json:"level"`
	PhaseRef          *string               `json:"phase_ref,omitempty"`
	PackageRef        *string               `json:"package_ref,omitempty"`
	Name              string                `json:"name"`
	Description       string                `json:"description,omitempty"`
	Checklist         []ChecklistItemImport `json:"checklist,omitempty"`
	MinPhotosRequired int                   `json:"min_photos_required,omitempty"`
	Blocking          bool                  `json:"blocking,omitempty"`
	AutoApprove       bool                  `json:"auto_approve,omitempty"`
}

// ChecklistItemImport defines one checklist entry on a gate.
type ChecklistItemImport struct {
	Text     string `json:"text"`
	Required bool   `json:"required,omitempty"`
}

// LoadTemplateImport reads and parses a template definition JSON file.
func LoadTemplateImport(path string) (*TemplateImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema TemplateImport
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template definition: %w", err)
	}
	return &schema, nil
}
