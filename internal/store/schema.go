package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableSnapshots      = "snapshots"
	tableProgressEvents = "progress_events"
	tableWorkoutEvents  = "workout_events"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS snapshots_timestamp ON snapshots (timestamp)`,
	`CREATE TABLE IF NOT EXISTS progress_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		unit_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		unlocked TEXT NOT NULL DEFAULT '',
		session_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS progress_events_unit ON progress_events (unit_id)`,
	`CREATE TABLE IF NOT EXISTS workout_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		target TEXT NOT NULL DEFAULT '',
		rounds INTEGER NOT NULL,
		combos INTEGER NOT NULL
	)`,
}

// createSchema creates any missing tables and indexes.
func createSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
