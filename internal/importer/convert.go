package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renoplan/renoplan/internal/domain"
)

// Convert transforms a validated TemplateImport into a domain tree ready
// for persistence. WBS codes are derived from tree position ("1", "1.2",
// "1.2.3"). Call ValidateTemplateImport first; Convert assumes the schema
// is valid.
func Convert(schema *TemplateImport) (*domain.TemplateTree, error) {
	now := time.Now().UTC()

	active := true
	if schema.Template.Active != nil {
		active = *schema.Template.Active
	}

	tpl := &domain.Template{
		ID:        uuid.New().String(),
		Name:      schema.Template.Name,
		Category:  domain.TemplateCategory(schema.Template.Category),
		Scope:     domain.TemplateScope(schema.Template.Scope),
		RoomType:  schema.Template.RoomType,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tree := &domain.TemplateTree{Template: tpl}

	refMap := make(map[string]string) // ref -> uuid
	phaseWBS := make(map[string]string)

	for i, p := range schema.Phases {
		id := uuid.New().String()
		refMap[p.Ref] = id
		wbs := fmt.Sprintf("%d", i+1)
		phaseWBS[p.Ref] = wbs

		order := i
		if p.Order != nil {
			order = *p.Order
		}
		tree.Phases = append(tree.Phases, &domain.Phase{
			ID:         id,
			TemplateID: tpl.ID,
			WBSCode:    wbs,
			Name:       p.Name,
			OrderIndex: order,
		})
	}

	packageWBS := make(map[string]string)
	packageSeq := make(map[string]int) // phase ref -> next package ordinal

	for i, p := range schema.Packages {
		id := uuid.New().String()
		refMap[p.Ref] = id

		packageSeq[p.PhaseRef]++
		wbs := fmt.Sprintf("%s.%d", phaseWBS[p.PhaseRef], packageSeq[p.PhaseRef])
		packageWBS[p.Ref] = wbs

		order := i
		if p.Order != nil {
			order = *p.Order
		}
		tree.Packages = append(tree.Packages, &domain.WorkPackage{
			ID:         id,
			PhaseID:    refMap[p.PhaseRef],
			WBSCode:    wbs,
			Name:       p.Name,
			OrderIndex: order,
		})
	}

	taskSeq := make(map[string]int) // package ref -> next task ordinal

	for _, t := range schema.Tasks {
		id := uuid.New().String()
		refMap[t.Ref] = id

		taskSeq[t.PackageRef]++
		task := &domain.Task{
			ID:            id,
			PackageID:     refMap[t.PackageRef],
			WBSCode:       fmt.Sprintf("%s.%d", packageWBS[t.PackageRef], taskSeq[t.PackageRef]),
			Name:          t.Name,
			Description:   t.Description,
			DurationDays:  t.DurationDays,
			EstimatedCost: t.EstimatedCost,
			TradeCategory: t.TradeCategory,
			Optional:      t.Optional,
		}
		if err := task.Validate(); err != nil {
			return nil, err
		}
		tree.Tasks = append(tree.Tasks, task)
	}

	for _, d := range schema.Dependencies {
		depType := d.Type
		if depType == "" {
			depType = string(domain.FinishToStart)
		}
		dep := domain.Dependency{
			ID:                uuid.New().String(),
			TemplateID:        tpl.ID,
			PredecessorTaskID: refMap[d.PredecessorRef],
			SuccessorTaskID:   refMap[d.SuccessorRef],
			Type:              domain.DependencyType(depType),
			LagDays:           d.LagDays,
		}
		if err := dep.Validate(); err != nil {
			return nil, err
		}
		tree.Dependencies = append(tree.Dependencies, dep)
	}

	for _, g := range schema.Gates {
		gate := &domain.QualityGate{
			ID:                uuid.New().String(),
			Level:             domain.GateLevel(g.Level),
			Name:              g.Name,
			Description:       g.Description,
			MinPhotosRequired: g.MinPhotosRequired,
			Blocking:          g.Blocking,
			AutoApprove:       g.AutoApprove,
		}
		if g.PhaseRef != nil {
			id := refMap[*g.PhaseRef]
			gate.PhaseID = &id
		}
		if g.PackageRef != nil {
			id := refMap[*g.PackageRef]
			gate.PackageID = &id
		}
		for _, item := range g.Checklist {
			gate.Checklist = append(gate.Checklist, domain.ChecklistItem{
				ID:       uuid.New().String(),
				Text:     item.Text,
				Required: item.Required,
			})
		}
		if err := gate.Validate(); err != nil {
			return nil, err
		}
		tree.Gates = append(tree.Gates, gate)
	}

	return tree, nil
}
