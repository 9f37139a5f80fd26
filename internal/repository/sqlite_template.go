package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

const templateColumns = `id, name, category, scope, room_type, active,
		total_duration_days, total_estimated_cost, created_at, updated_at`

// SQLiteTemplateRepo implements TemplateRepo over a DBTX, so the same repo
// works against the database or inside a transaction.
type SQLiteTemplateRepo struct {
	conn db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{conn: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO templates (id, name, category, scope, room_type, active,
		total_duration_days, total_estimated_cost, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query,
		t.ID,
		t.Name,
		string(t.Category),
		string(t.Scope),
		nullableStr(t.RoomType),
		boolToInt(t.Active),
		t.TotalDurationDays,
		t.TotalEstimatedCost,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = ?`
	row := r.conn.QueryRowContext(ctx, query, id)
	return r.scanTemplate(row)
}

func (r *SQLiteTemplateRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates ORDER BY name`
	if activeOnly {
		query = `SELECT ` + templateColumns + ` FROM templates WHERE active = 1 ORDER BY name`
	}
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.Template
	for rows.Next() {
		t, err := r.scanTemplateRow(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	query := `UPDATE templates SET name = ?, category = ?, scope = ?, room_type = ?,
		active = ?, total_duration_days = ?, total_estimated_cost = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query,
		t.Name,
		string(t.Category),
		string(t.Scope),
		nullableStr(t.RoomType),
		boolToInt(t.Active),
		t.TotalDurationDays,
		t.TotalEstimatedCost,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE templates SET active = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, boolToInt(active), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting template active flag: %w", err)
	}
	return nil
}

// UpdateRollups refreshes the denormalized duration/cost cache. The apply
// path never reads these back; they exist for listings.
func (r *SQLiteTemplateRepo) UpdateRollups(ctx context.Context, id string, totalDays int, totalCost int64) error {
	query := `UPDATE templates SET total_duration_days = ?, total_estimated_cost = ?, updated_at = ? WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, totalDays, totalCost, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating template rollups: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM templates WHERE id = ?`
	_, err := r.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) scanTemplate(row *sql.Row) (*domain.Template, error) {
	var t domain.Template
	var category, scope, createdAt, updatedAt string
	var roomType sql.NullString
	var active int

	err := row.Scan(&t.ID, &t.Name, &category, &scope, &roomType, &active,
		&t.TotalDurationDays, &t.TotalEstimatedCost, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	return r.populateTemplate(&t, category, scope, createdAt, updatedAt, roomType, active)
}

func (r *SQLiteTemplateRepo) scanTemplateRow(rows *sql.Rows) (*domain.Template, error) {
	var t domain.Template
	var category, scope, createdAt, updatedAt string
	var roomType sql.NullString
	var active int

	err := rows.Scan(&t.ID, &t.Name, &category, &scope, &roomType, &active,
		&t.TotalDurationDays, &t.TotalEstimatedCost, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scanning template row: %w", err)
	}
	return r.populateTemplate(&t, category, scope, createdAt, updatedAt, roomType, active)
}

func (r *SQLiteTemplateRepo) populateTemplate(t *domain.Template, category, scope, createdAt, updatedAt string, roomType sql.NullString, active int) (*domain.Template, error) {
	t.Category = domain.TemplateCategory(category)
	t.Scope = domain.TemplateScope(scope)
	t.RoomType = strPtr(roomType)
	t.Active = intToBool(active)

	var err error
	if t.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return t, nil
}
