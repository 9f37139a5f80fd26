package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo.
type SQLiteDependencyRepo struct {
	conn db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{conn: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO template_dependencies
		(id, template_id, predecessor_task_id, successor_task_id, dependency_type, lag_days)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		d.ID, d.TemplateID, d.PredecessorTaskID, d.SuccessorTaskID, string(d.Type), d.LagDays)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	query := `DELETE FROM template_dependencies
		WHERE predecessor_task_id = ? AND successor_task_id = ?`
	_, err := r.conn.ExecContext(ctx, query, predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListByTemplate(ctx context.Context, templateID string) ([]domain.Dependency, error) {
	query := `SELECT id, template_id, predecessor_task_id, successor_task_id, dependency_type, lag_days
		FROM template_dependencies WHERE template_id = ? ORDER BY predecessor_task_id, successor_task_id`
	rows, err := r.conn.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) scanDependencies(rows *sql.Rows) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var depType string
		if err := rows.Scan(&d.ID, &d.TemplateID, &d.PredecessorTaskID, &d.SuccessorTaskID, &depType, &d.LagDays); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Type = domain.DependencyType(depType)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
