package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every open. Statements must stay
// re-runnable; ALTER TABLE additions rely on the duplicate-column tolerance
// in Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id               TEXT PRIMARY KEY,
		folder           TEXT NOT NULL,
		classification   TEXT NOT NULL
		                 CHECK(classification IN ('pro','perso','pending','off')),
		project_id       INTEGER,
		project_name     TEXT NOT NULL DEFAULT '',
		started_at       TEXT NOT NULL,
		last_activity    TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		current_activity TEXT NOT NULL DEFAULT '',
		activity_log     TEXT NOT NULL DEFAULT '[]',
		activity_minutes TEXT NOT NULL DEFAULT '{}'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_folder ON sessions(folder)`,

	`CREATE TABLE IF NOT EXISTS log_entries (
		id             TEXT PRIMARY KEY,
		date           TEXT NOT NULL,
		folder         TEXT NOT NULL,
		classification TEXT NOT NULL,
		project_id     INTEGER,
		project_name   TEXT NOT NULL DEFAULT '',
		activity       TEXT NOT NULL DEFAULT '',
		started_at     TEXT NOT NULL,
		ended_at       TEXT NOT NULL,
		billed_minutes INTEGER NOT NULL DEFAULT 0,
		real_minutes   INTEGER NOT NULL DEFAULT 0,
		pushed         INTEGER NOT NULL DEFAULT 0,
		description    TEXT NOT NULL DEFAULT '',
		commits        TEXT NOT NULL DEFAULT '[]',
		filled_from    TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_log_entries_date ON log_entries(date)`,
	`CREATE INDEX IF NOT EXISTS idx_log_entries_pushed ON log_entries(pushed)`,

	`CREATE TABLE IF NOT EXISTS daily_totals (
		date   TEXT PRIMARY KEY,
		billed INTEGER NOT NULL DEFAULT 0,
		real   INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS folder_mappings (
		folder         TEXT PRIMARY KEY,
		classification TEXT NOT NULL
		               CHECK(classification IN ('pro','perso','pending','off')),
		project_id     INTEGER,
		project_name   TEXT NOT NULL DEFAULT '',
		activity       TEXT NOT NULL DEFAULT ''
	)`,
}

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
