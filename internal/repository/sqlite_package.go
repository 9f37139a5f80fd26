package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

// SQLitePackageRepo implements PackageRepo.
type SQLitePackageRepo struct {
	conn db.DBTX
}

// NewSQLitePackageRepo creates a new SQLitePackageRepo.
func NewSQLitePackageRepo(conn db.DBTX) *SQLitePackageRepo {
	return &SQLitePackageRepo{conn: conn}
}

func (r *SQLitePackageRepo) Create(ctx context.Context, p *domain.WorkPackage) error {
	query := `INSERT INTO template_packages (id, phase_id, wbs_code, name, order_index)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, p.ID, p.PhaseID, p.WBSCode, p.Name, p.OrderIndex)
	if err != nil {
		return fmt.Errorf("inserting work package: %w", err)
	}
	return nil
}

func (r *SQLitePackageRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.WorkPackage, error) {
	query := `SELECT id, phase_id, wbs_code, name, order_index
		FROM template_packages WHERE phase_id = ? ORDER BY order_index`
	rows, err := r.conn.QueryContext(ctx, query, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing work packages by phase: %w", err)
	}
	defer rows.Close()
	return r.scanPackages(rows)
}

// ListByTemplate returns every package in the template in phase, then
// package order, avoiding a query per phase when loading the full tree.
func (r *SQLitePackageRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.WorkPackage, error) {
	query := `SELECT p.id, p.phase_id, p.wbs_code, p.name, p.order_index
		FROM template_packages p
		JOIN template_phases ph ON p.phase_id = ph.id
		WHERE ph.template_id = ?
		ORDER BY ph.order_index, p.order_index`
	rows, err := r.conn.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing work packages by template: %w", err)
	}
	defer rows.Close()
	return r.scanPackages(rows)
}

func (r *SQLitePackageRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM template_packages WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting work package: %w", err)
	}
	return nil
}

func (r *SQLitePackageRepo) scanPackages(rows *sql.Rows) ([]*domain.WorkPackage, error) {
	var packages []*domain.WorkPackage
	for rows.Next() {
		var p domain.WorkPackage
		if err := rows.Scan(&p.ID, &p.PhaseID, &p.WBSCode, &p.Name, &p.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning work package: %w", err)
		}
		packages = append(packages, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work packages: %w", err)
	}
	return packages, nil
}
