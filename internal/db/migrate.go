package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies all schema statements. Statements are idempotent
// (CREATE ... IF NOT EXISTS); ALTER TABLE additions tolerate re-runs.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		category             TEXT NOT NULL
		                     CHECK(category IN ('kitchen','bathroom','flooring','painting','electrical','plumbing','full_unit','general')),
		scope                TEXT NOT NULL CHECK(scope IN ('unit','room')),
		room_type            TEXT,
		active               INTEGER NOT NULL DEFAULT 1,
		total_duration_days  INTEGER NOT NULL DEFAULT 0,
		total_estimated_cost INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_phases (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		wbs_code    TEXT NOT NULL,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_template_phases_template ON template_phases(template_id)`,

	`CREATE TABLE IF NOT EXISTS template_packages (
		id          TEXT PRIMARY KEY,
		phase_id    TEXT NOT NULL REFERENCES template_phases(id) ON DELETE CASCADE,
		wbs_code    TEXT NOT NULL,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_template_packages_phase ON template_packages(phase_id)`,

	`CREATE TABLE IF NOT EXISTS template_tasks (
		id             TEXT PRIMARY KEY,
		package_id     TEXT NOT NULL REFERENCES template_packages(id) ON DELETE CASCADE,
		wbs_code       TEXT NOT NULL,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		duration_days  INTEGER NOT NULL DEFAULT 0 CHECK(duration_days >= 0),
		estimated_cost INTEGER CHECK(estimated_cost IS NULL OR estimated_cost >= 0),
		trade_category TEXT,
		is_optional    INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_template_tasks_package ON template_tasks(package_id)`,

	`CREATE TABLE IF NOT EXISTS template_dependencies (
		id                  TEXT PRIMARY KEY,
		template_id         TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		predecessor_task_id TEXT NOT NULL REFERENCES template_tasks(id) ON DELETE CASCADE,
		successor_task_id   TEXT NOT NULL REFERENCES template_tasks(id) ON DELETE CASCADE,
		dependency_type     TEXT NOT NULL CHECK(dependency_type IN ('FS','SS','FF','SF')),
		lag_days            INTEGER NOT NULL DEFAULT 0,
		CHECK(predecessor_task_id <> successor_task_id),
		UNIQUE(predecessor_task_id, successor_task_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_template_deps_template ON template_dependencies(template_id)`,

	`CREATE TABLE IF NOT EXISTS quality_gates (
		id                  TEXT PRIMARY KEY,
		gate_level          TEXT NOT NULL CHECK(gate_level IN ('phase','package')),
		phase_id            TEXT REFERENCES template_phases(id) ON DELETE CASCADE,
		package_id          TEXT REFERENCES template_packages(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		checklist_json      TEXT NOT NULL DEFAULT '[]',
		min_photos_required INTEGER NOT NULL DEFAULT 0 CHECK(min_photos_required >= 0),
		is_blocking         INTEGER NOT NULL DEFAULT 0,
		auto_approve        INTEGER NOT NULL DEFAULT 0,
		CHECK((gate_level = 'phase' AND phase_id IS NOT NULL AND package_id IS NULL)
		   OR (gate_level = 'package' AND package_id IS NOT NULL AND phase_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quality_gates_phase ON quality_gates(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quality_gates_package ON quality_gates(package_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		unit_label TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_phases (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		wbs_code           TEXT NOT NULL,
		name               TEXT NOT NULL,
		order_index        INTEGER NOT NULL DEFAULT 0,
		source_template_id TEXT NOT NULL DEFAULT '',
		source_phase_id    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_phases_project ON project_phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS project_packages (
		id                TEXT PRIMARY KEY,
		phase_id          TEXT NOT NULL REFERENCES project_phases(id) ON DELETE CASCADE,
		wbs_code          TEXT NOT NULL,
		name              TEXT NOT NULL,
		order_index       INTEGER NOT NULL DEFAULT 0,
		source_package_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_packages_phase ON project_packages(phase_id)`,

	`CREATE TABLE IF NOT EXISTS project_tasks (
		id              TEXT PRIMARY KEY,
		package_id      TEXT NOT NULL REFERENCES project_packages(id) ON DELETE CASCADE,
		wbs_code        TEXT NOT NULL,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		duration_days   INTEGER NOT NULL DEFAULT 0,
		estimated_cost  INTEGER,
		trade_category  TEXT,
		status          TEXT NOT NULL DEFAULT 'pending'
		                CHECK(status IN ('pending','in_progress','done','skipped')),
		scheduled_start TEXT NOT NULL,
		scheduled_end   TEXT NOT NULL,
		source_task_id  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_tasks_package ON project_tasks(package_id)`,

	`CREATE TABLE IF NOT EXISTS project_dependencies (
		id                  TEXT PRIMARY KEY,
		project_id          TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		predecessor_task_id TEXT NOT NULL REFERENCES project_tasks(id) ON DELETE CASCADE,
		successor_task_id   TEXT NOT NULL REFERENCES project_tasks(id) ON DELETE CASCADE,
		dependency_type     TEXT NOT NULL CHECK(dependency_type IN ('FS','SS','FF','SF')),
		lag_days            INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_deps_project ON project_dependencies(project_id)`,

	`CREATE TABLE IF NOT EXISTS project_gates (
		id                  TEXT PRIMARY KEY,
		gate_level          TEXT NOT NULL CHECK(gate_level IN ('phase','package')),
		phase_id            TEXT REFERENCES project_phases(id) ON DELETE CASCADE,
		package_id          TEXT REFERENCES project_packages(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		checklist_json      TEXT NOT NULL DEFAULT '[]',
		min_photos_required INTEGER NOT NULL DEFAULT 0,
		is_blocking         INTEGER NOT NULL DEFAULT 0,
		auto_approve        INTEGER NOT NULL DEFAULT 0,
		source_gate_id      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_gates_phase ON project_gates(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_project_gates_package ON project_gates(package_id)`,
}
