package repository

import (
	"context"
	"fmt"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo.
type SQLitePhaseRepo struct {
	conn db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{conn: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO template_phases (id, template_id, wbs_code, name, order_index)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.conn.ExecContext(ctx, query, p.ID, p.TemplateID, p.WBSCode, p.Name, p.OrderIndex)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.Phase, error) {
	query := `SELECT id, template_id, wbs_code, name, order_index
		FROM template_phases WHERE template_id = ? ORDER BY order_index`
	rows, err := r.conn.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		var p domain.Phase
		if err := rows.Scan(&p.ID, &p.TemplateID, &p.WBSCode, &p.Name, &p.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		phases = append(phases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM template_phases WHERE id = ?`
	if _, err := r.conn.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}
