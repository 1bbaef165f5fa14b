package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_items (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		type        TEXT NOT NULL
		            CHECK(type IN ('feature','enhancement','bugfix','research','planning','refactoring','infrastructure')),
		phase       TEXT NOT NULL DEFAULT 'none'
		            CHECK(phase IN ('none','discovery','plan','implementation','review','operations','evolution')),
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','ready','active','in_review','done','archived','blocked','cancelled')),
		metadata    TEXT NOT NULL DEFAULT '{}',
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_phase ON work_items(phase)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_status ON work_items(status)`,

	`CREATE TABLE IF NOT EXISTS audit_events (
		id           TEXT PRIMARY KEY,
		work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		old_phase    TEXT NOT NULL,
		new_phase    TEXT NOT NULL,
		old_status   TEXT NOT NULL,
		new_status   TEXT NOT NULL,
		confidence   REAL NOT NULL,
		band         TEXT NOT NULL CHECK(band IN ('red','yellow','green')),
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_audit_events_work_item ON audit_events(work_item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_events_created ON audit_events(created_at)`,
}
