package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

const taskColumns = `id, package_id, wbs_code, name, description,
		duration_days, estimated_cost, trade_category, is_optional`

// SQLiteTaskRepo implements TaskRepo.
type SQLiteTaskRepo struct {
	conn db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{conn: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO template_tasks (id, package_id, wbs_code, name, description,
		duration_days, estimated_cost, trade_category, is_optional)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.PackageID,
		t.WBSCode,
		t.Name,
		t.Description,
		t.DurationDays,
		nullableInt64(t.EstimatedCost),
		nullableStr(t.TradeCategory),
		boolToInt(t.Optional),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM template_tasks WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)

	t, err := scanTaskValues(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByPackage(ctx context.Context, packageID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM template_tasks WHERE package_id = ? ORDER BY wbs_code`
	rows, err := r.conn.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by package: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

// ListByTemplate returns every task in the template in tree order.
func (r *SQLiteTaskRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.Task, error) {
	query := `SELECT t.id, t.package_id, t.wbs_code, t.name, t.description,
		t.duration_days, t.estimated_cost, t.trade_category, t.is_optional
		FROM template_tasks t
		JOIN template_packages p ON t.package_id = p.id
		JOIN template_phases ph ON p.phase_id = ph.id
		WHERE ph.template_id = ?
		ORDER BY ph.order_index, p.order_index, t.wbs_code`
	rows, err := r.conn.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by template: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM template_tasks WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// scanTaskValues scans one task through any row's Scan function.
func scanTaskValues(scan func(dest ...any) error) (*domain.Task, error) {
	var t domain.Task
	var cost sql.NullInt64
	var trade sql.NullString
	var optional int

	err := scan(&t.ID, &t.PackageID, &t.WBSCode, &t.Name, &t.Description,
		&t.DurationDays, &cost, &trade, &optional)
	if err != nil {
		return nil, err
	}
	t.EstimatedCost = int64Ptr(cost)
	t.TradeCategory = strPtr(trade)
	t.Optional = intToBool(optional)
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTaskValues(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
