package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

// SQLiteGateRepo implements GateRepo.
type SQLiteGateRepo struct {
	conn db.DBTX
}

// NewSQLiteGateRepo creates a new SQLiteGateRepo.
func NewSQLiteGateRepo(conn db.DBTX) *SQLiteGateRepo {
	return &SQLiteGateRepo{conn: conn}
}

func (r *SQLiteGateRepo) Create(ctx context.Context, g *domain.QualityGate) error {
	checklist, err := checklistToJSON(g.Checklist)
	if err != nil {
		return err
	}
	query := `INSERT INTO quality_gates (id, gate_level, phase_id, package_id, name,
		description, checklist_json, min_photos_required, is_blocking, auto_approve)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
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
	)
	if err != nil {
		return fmt.Errorf("inserting quality gate: %w", err)
	}
	return nil
}

// ListByTemplate returns all gates in the template, phase-level gates first.
func (r *SQLiteGateRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.QualityGate, error) {
	query := `SELECT g.id, g.gate_level, g.phase_id, g.package_id, g.name,
		g.description, g.checklist_json, g.min_photos_required, g.is_blocking, g.auto_approve
		FROM quality_gates g
		LEFT JOIN template_phases ph ON g.phase_id = ph.id
		LEFT JOIN template_packages p ON g.package_id = p.id
		LEFT JOIN template_phases pph ON p.phase_id = pph.id
		WHERE ph.template_id = ? OR pph.template_id = ?
		ORDER BY g.gate_level, g.name`
	rows, err := r.conn.QueryContext(ctx, query, templateID, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing quality gates: %w", err)
	}
	defer rows.Close()

	var gates []*domain.QualityGate
	for rows.Next() {
		var g domain.QualityGate
		var level, checklist string
		var phaseID, packageID sql.NullString
		var blocking, autoApprove int

		err := rows.Scan(&g.ID, &level, &phaseID, &packageID, &g.Name,
			&g.Description, &checklist, &g.MinPhotosRequired, &blocking, &autoApprove)
		if err != nil {
			return nil, fmt.Errorf("scanning quality gate: %w", err)
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
		return nil, fmt.Errorf("iterating quality gates: %w", err)
	}
	return gates, nil
}

func (r *SQLiteGateRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM quality_gates WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting quality gate: %w", err)
	}
	return nil
}
