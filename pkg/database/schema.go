package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS classes (
    id TEXT NOT NULL,
    workspace_id TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (workspace_id, id)
)`,
	`CREATE TABLE IF NOT EXISTS subjects (
    id TEXT NOT NULL,
    workspace_id TEXT NOT NULL,
    name TEXT NOT NULL,
    default_room TEXT,
    PRIMARY KEY (workspace_id, id)
)`,
	`CREATE TABLE IF NOT EXISTS teachers (
    id TEXT NOT NULL,
    workspace_id TEXT NOT NULL,
    full_name TEXT NOT NULL,
    PRIMARY KEY (workspace_id, id)
)`,
	`CREATE TABLE IF NOT EXISTS teaching_plan_items (
    workspace_id TEXT NOT NULL,
    class_id TEXT NOT NULL,
    subject_id TEXT NOT NULL,
    teacher_id TEXT NOT NULL,
    hours_per_week INTEGER NOT NULL CHECK (hours_per_week >= 0),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (workspace_id, class_id, subject_id, teacher_id)
)`,
	`CREATE TABLE IF NOT EXISTS schedule_records (
    workspace_id TEXT PRIMARY KEY,
    schedule JSONB,
    weekly_schedules JSONB NOT NULL DEFAULT '{}'::jsonb,
    template_history JSONB NOT NULL DEFAULT '{}'::jsonb,
    week_history JSONB NOT NULL DEFAULT '{}'::jsonb,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
}

// Migrate creates the tables used by the editor when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
