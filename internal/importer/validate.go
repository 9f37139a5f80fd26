package importer

import (
	"fmt"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/graph"
)

// ValidateTemplateImport checks a template definition before conversion.
// Returns every validation error found, not just the first.
func ValidateTemplateImport(schema *TemplateImport) []error {
	var errs []error

	errs = append(errs, validateHeader(&schema.Template)...)

	phaseRefs := make(map[string]bool)
	errs = append(errs, validatePhases(schema.Phases, phaseRefs)...)

	packageRefs := make(map[string]bool)
	errs = append(errs, validatePackages(schema.Packages, phaseRefs, packageRefs)...)

	taskRefs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, packageRefs, taskRefs)...)

	errs = append(errs, validateDependencies(schema.Dependencies, taskRefs)...)
	errs = append(errs, validateGates(schema.Gates, phaseRefs, packageRefs)...)

	return errs
}

func validateHeader(h *TemplateHeader) []error {
	var errs []error

	if h.Name == "" {
		errs = append(errs, fmt.Errorf("template.name is required"))
	}
	if h.Category == "" {
		errs = append(errs, fmt.Errorf("template.category is required"))
	} else if !domain.ValidTemplateCategories[h.Category] {
		errs = append(errs, fmt.Errorf("template.category: invalid value %q", h.Category))
	}
	if h.Scope != string(domain.ScopeUnit) && h.Scope != string(domain.ScopeRoom) {
		errs = append(errs, fmt.Errorf("template.scope: invalid value %q (expected unit or room)", h.Scope))
	}

	return errs
}

func validatePhases(phases []PhaseImport, phaseRefs map[string]bool) []error {
	var errs []error

	if len(phases) == 0 {
		errs = append(errs, fmt.Errorf("at least one phase is required"))
	}
	for i, p := range phases {
		prefix := fmt.Sprintf("phases[%d]", i)

		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if phaseRefs[p.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, p.Ref))
		} else {
			phaseRefs[p.Ref] = true
		}

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	return errs
}

func validatePackages(packages []PackageImport, phaseRefs, packageRefs map[string]bool) []error {
	var errs []error

	for i, p := range packages {
		prefix := fmt.Sprintf("packages[%d]", i)

		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if packageRefs[p.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, p.Ref))
		} else {
			packageRefs[p.Ref] = true
		}

		if p.PhaseRef == "" {
			errs = append(errs, fmt.Errorf("%s.phase_ref is required", prefix))
		} else if !phaseRefs[p.PhaseRef] {
			errs = append(errs, fmt.Errorf("%s.phase_ref: ref %q not found in phases", prefix, p.PhaseRef))
		}

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, packageRefs, taskRefs map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if taskRefs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			taskRefs[t.Ref] = true
		}

		if t.PackageRef == "" {
			errs = append(errs, fmt.Errorf("%s.package_ref is required", prefix))
		} else if !packageRefs[t.PackageRef] {
			errs = append(errs, fmt.Errorf("%s.package_ref: ref %q not found in packages", prefix, t.PackageRef))
		}

		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.DurationDays < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_days must be >= 0, got %d", prefix, t.DurationDays))
		}
		if t.EstimatedCost != nil && *t.EstimatedCost < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_cost must be >= 0", prefix))
		}
		if t.TradeCategory != nil && !domain.ValidTradeCategories[*t.TradeCategory] {
			errs = append(errs, fmt.Errorf("%s.trade_category: invalid value %q", prefix, *t.TradeCategory))
		}
	}

	return errs
}

func validateDependencies(deps []DependencyImport, taskRefs map[string]bool) []error {
	var errs []error

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if d.PredecessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref is required", prefix))
		} else if !taskRefs[d.PredecessorRef] {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref: ref %q not found in tasks", prefix, d.PredecessorRef))
		}

		if d.SuccessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.successor_ref is required", prefix))
		} else if !taskRefs[d.SuccessorRef] {
			errs = append(errs, fmt.Errorf("%s.successor_ref: ref %q not found in tasks", prefix, d.SuccessorRef))
		}

		if d.PredecessorRef != "" && d.PredecessorRef == d.SuccessorRef {
			errs = append(errs, fmt.Errorf("%s: self-dependency (predecessor_ref == successor_ref == %q)", prefix, d.PredecessorRef))
		}

		if d.Type != "" && !domain.ValidDependencyTypes[d.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q (expected FS, SS, FF, or SF)", prefix, d.Type))
		}
	}

	// A definition whose edges close a cycle can never be applied; reject
	// it at the door rather than at instantiation time.
	edges := make([]graph.Edge, 0, len(deps))
	for _, d := range deps {
		if d.PredecessorRef != "" && d.SuccessorRef != "" && d.PredecessorRef != d.SuccessorRef {
			edges = append(edges, graph.Edge{Predecessor: d.PredecessorRef, Successor: d.SuccessorRef})
		}
	}
	if graph.HasCycle(edges) {
		errs = append(errs, fmt.Errorf("dependencies: %w", graph.ErrCycle))
	}

	return errs
}

func validateGates(gates []GateImport, phaseRefs, packageRefs map[string]bool) []error {
	var errs []error

	for i, g := range gates {
		prefix := fmt.Sprintf("gates[%d]", i)

		if g.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if g.MinPhotosRequired < 0 {
			errs = append(errs, fmt.Errorf("%s.min_photos_required must be >= 0", prefix))
		}

		switch g.Level {
		case string(domain.GatePhase):
			if g.PhaseRef == nil || *g.PhaseRef == "" {
				errs = append(errs, fmt.Errorf("%s: phase-level gate requires phase_ref", prefix))
			} else if !phaseRefs[*g.PhaseRef] {
				errs = append(errs, fmt.Errorf("%s.phase_ref: ref %q not found in phases", prefix, *g.PhaseRef))
			}
			if g.PackageRef != nil {
				errs = append(errs, fmt.Errorf("%s: phase-level gate must not set package_ref", prefix))
			}
		case string(domain.GatePackage):
			if g.PackageRef == nil || *g.PackageRef == "" {
				errs = append(errs, fmt.Errorf("%s: package-level gate requires package_ref", prefix))
			} else if !packageRefs[*g.PackageRef] {
				errs = append(errs, fmt.Errorf("%s.package_ref: ref %q not found in packages", prefix, *g.PackageRef))
			}
			if g.PhaseRef != nil {
				errs = append(errs, fmt.Errorf("%s: package-level gate must not set phase_ref", prefix))
			}
		default:
			errs = append(errs, fmt.Errorf("%s.level: invalid value %q (expected phase or package)", prefix, g.Level))
		}
	}

	return errs
}
