package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

// SQLiteProjectPlanRepo implements ProjectPlanRepo. Its Create methods run
// inside the apply service's unit of work; List methods serve plan display.
type SQLiteProjectPlanRepo struct {
	conn db.DBTX
}

// NewSQLiteProjectPlanRepo creates a new SQLiteProjectPlanRepo.
func NewSQLiteProjectPlanRepo(conn db.DBTX) *SQLiteProjectPlanRepo {
	return &SQLiteProjectPlanRepo{conn: conn}
}

func (r *SQLiteProjectPlanRepo) CreatePhase(ctx context.Context, p *domain.ProjectPhase) error {
	query := `INSERT INTO project_phases (id, project_id, wbs_code, name, order_index,
		source_template_id, source_phase_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID, p.ProjectID, p.WBSCode, p.Name, p.OrderIndex, p.SourceTemplateID, p.SourcePhaseID)
	if err != nil {
		return fmt.Errorf("inserting project phase: %w", err)
	}
	return nil
}

func (r *SQLiteProjectPlanRepo) CreatePackage(ctx context.Context, p *domain.ProjectWorkPackage) error {
	query := `INSERT INTO project_packages (id, phase_id, wbs_code, name, order_index, source_package_id)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		p.ID, p.PhaseID, p.WBSCode, p.Name, p.OrderIndex, p.SourcePackageID)
	if err != nil {
		return fmt.Errorf("inserting project package: %w", err)
	}
	return nil
}

func (r *SQLiteProjectPlanRepo) CreateTask(ctx context.Context, t *domain.ProjectTask) error {
	query := `INSERT INTO project_tasks (id, package_id, wbs_code, name, description,
		duration_days, estimated_cost, trade_category, status, scheduled_start, scheduled_end, source_task_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.PackageID,
		t.WBSCode,
		t.Name,
		t.Description,
		t.DurationDays,
		nullableInt64(t.EstimatedCost),
		nullableStr(t.TradeCategory),
		string(t.Status),
		t.ScheduledStart.Format(dateLayout),
		t.ScheduledEnd.Format(dateLayout),
		t.SourceTaskID,
	)
	if err != nil {
		return fmt.Errorf("inserting project task: %w", err)
	}
	return nil
}

func (r *SQLiteProjectPlanRepo) CreateDependency(ctx context.Context, d *domain.ProjectDependency) error {
	query := `INSERT INTO project_dependencies
		(id, project_id, predecessor_task_id, successor_task_id, dependency_type, lag_days)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		d.ID, d.ProjectID, d.PredecessorTaskID, d.SuccessorTaskID, string(d.Type), d.LagDays)
	if err != nil {
		return fmt.Errorf("inserting project dependency: %w", err)
	}
	return nil
}

func (r *SQLiteProjectPlanRepo) CreateGate(ctx context.Context, g *domain.ProjectGate) error {
	checklist, err := checklistToJSON(g.Checklist)
	if err != nil {
		return err
	}
	query := `INSERT INTO project_gates (id, gate_level, phase_id, package_id, name,
		description, checklist_json, min_photos_required, is_blocking, auto_approve, source_gate_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.conn.ExecContext(ctx, query,
		g.ID,
		string(g.Level),
		nullableStr(g.PhaseID),
		nullableStr(g.PackageID),
		g.Name,
		g.Description,
		checklist,
		g.MinPhotosRequired,
		boolToInt(g.Blocking),
		boolToInt(g.AutoApprove),
		g.SourceGateID,
	)
	if err != nil {
		return fmt.Errorf("inserting project gate: %w", err)
	}
	return nil
}

func (r *SQLiteProjectPlanRepo) ListPhases(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error) {
	query := `SELECT id, project_id, wbs_code, name, order_index, source_template_id, source_phase_id
		FROM project_phases WHERE project_id = ? ORDER BY order_index`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.ProjectPhase
	for rows.Next() {
		var p domain.ProjectPhase
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.WBSCode, &p.Name, &p.OrderIndex,
			&p.SourceTemplateID, &p.SourcePhaseID); err != nil {
			return nil, fmt.Errorf("scanning project phase: %w", err)
		}
		phases = append(phases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project phases: %w", err)
	}
	return phases, nil
}

func (r *SQLiteProjectPlanRepo) ListPackages(ctx context.Context, projectID string) ([]*domain.ProjectWorkPackage, error) {
	query := `SELECT p.id, p.phase_id, p.wbs_code, p.name, p.order_index, p.source_package_id
		FROM project_packages p
		JOIN project_phases ph ON p.phase_id = ph.id
		WHERE ph.project_id = ?
		ORDER BY ph.order_index, p.order_index`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project packages: %w", err)
	}
	defer rows.Close()

	var packages []*domain.ProjectWorkPackage
	for rows.Next() {
		var p domain.ProjectWorkPackage
		if err := rows.Scan(&p.ID, &p.PhaseID, &p.WBSCode, &p.Name, &p.OrderIndex, &p.SourcePackageID); err != nil {
			return nil, fmt.Errorf("scanning project package: %w", err)
		}
		packages = append(packages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project packages: %w", err)
	}
	return packages, nil
}

func (r *SQLiteProjectPlanRepo) ListTasks(ctx context.Context, projectID string) ([]*domain.ProjectTask, error) {
	query := `SELECT t.id, t.package_id, t.wbs_code, t.name, t.description,
		t.duration_days, t.estimated_cost, t.trade_category, t.status,
		t.scheduled_start, t.scheduled_end, t.source_task_id
		FROM project_tasks t
		JOIN project_packages p ON t.package_id = p.id
		JOIN project_phases ph ON p.phase_id = ph.id
		WHERE ph.project_id = ?
		ORDER BY ph.order_index, p.order_index, t.wbs_code`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.ProjectTask
	for rows.Next() {
		var t domain.ProjectTask
		var cost sql.NullInt64
		var trade sql.NullString
		var status, start, end string

		err := rows.Scan(&t.ID, &t.PackageID, &t.WBSCode, &t.Name, &t.Description,
			&t.DurationDays, &cost, &trade, &status, &start, &end, &t.SourceTaskID)
		if err != nil {
			return nil, fmt.Errorf("scanning project task: %w", err)
		}
		t.EstimatedCost = int64Ptr(cost)
		t.TradeCategory = strPtr(trade)
		t.Status = domain.TaskStatus(status)
		if t.ScheduledStart, err = parseDate("scheduled_start", start); err != nil {
			return nil, err
		}
		if t.ScheduledEnd, err = parseDate("scheduled_end", end); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteProjectPlanRepo) ListDependencies(ctx context.Context, projectID string) ([]domain.ProjectDependency, error) {
	query := `SELECT id, project_id, predecessor_task_id, successor_task_id, dependency_type, lag_days
		FROM project_dependencies WHERE project_id = ?
		ORDER BY predecessor_task_id, successor_task_id`
	rows, err := r.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.ProjectDependency
	for rows.Next() {
		var d domain.ProjectDependency
		var depType string
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.PredecessorTaskID, &d.SuccessorTaskID, &depType, &d.LagDays); err != nil {
			return nil, fmt.Errorf("scanning project dependency: %w", err)
		}
		d.Type = domain.DependencyType(depType)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project dependencies: %w", err)
	}
	return deps, nil
}

func (r *SQLiteProjectPlanRepo) ListGates(ctx context.Context, projectID string) ([]*domain.ProjectGate, error) {
	query := `SELECT g.id, g.gate_level, g.phase_id, g.package_id, g.name,
		g.description, g.checklist_json, g.min_photos_required, g.is_blocking, g.auto_approve, g.source_gate_id
		FROM project_gates g
		LEFT JOIN project_phases ph ON g.phase_id = ph.id
		LEFT JOIN project_packages p ON g.package_id = p.id
		LEFT JOIN project_phases pph ON p.phase_id = pph.id
		WHERE ph.project_id = ? OR pph.project_id = ?
		ORDER BY g.gate_level, g.name`
	rows, err := r.conn.QueryContext(ctx, query, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project gates: %w", err)
	}
	defer rows.Close()

	var gates []*domain.ProjectGate
	for rows.Next() {
		var g domain.ProjectGate
		var level, checklist string
		var phaseID, packageID sql.NullString
		var blocking, autoApprove int

		err := rows.Scan(&g.ID, &level, &phaseID, &packageID, &g.Name,
			&g.Description, &checklist, &g.MinPhotosRequired, &blocking, &autoApprove, &g.SourceGateID)
		if err != nil {
			return nil, fmt.Errorf("scanning project gate: %w", err)
		}
		g.Level = domain.GateLevel(level)
		g.PhaseID = strPtr(phaseID)
		g.PackageID = strPtr(packageID)
		g.Blocking = intToBool(blocking)
		g.AutoApprove = intToBool(autoApprove)
		if g.Checklist, err = checklistFromJSON(checklist); err != nil {
			return nil, err
		}
		gates = append(gates, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project gates: %w", err)
	}
	return gates, nil
}
