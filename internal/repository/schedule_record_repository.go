package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// ScheduleRecordRepository persists the scope-layered schedule of each workspace.
type ScheduleRecordRepository struct {
	db *sqlx.DB
}

// NewScheduleRecordRepository builds repository.
func NewScheduleRecordRepository(db *sqlx.DB) *ScheduleRecordRepository {
	return &ScheduleRecordRepository{db: db}
}

type scheduleRecordRow struct {
	WorkspaceID     string         `db:"workspace_id"`
	Schedule        types.JSONText `db:"schedule"`
	WeeklySchedules types.JSONText `db:"weekly_schedules"`
	TemplateHistory types.JSONText `db:"template_history"`
	WeekHistory     types.JSONText `db:"week_history"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Get loads the record of a workspace. A missing record yields sql.ErrNoRows.
func (r *ScheduleRecordRepository) Get(ctx context.Context, workspaceID string) (*models.ScheduleRecord, error) {
	const query = `SELECT workspace_id, schedule, weekly_schedules, template_history, week_history, updated_at
FROM schedule_records WHERE workspace_id = $1`
	var row scheduleRecordRow
	if err := r.db.GetContext(ctx, &row, query, workspaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get schedule record: %w", err)
	}
	return row.toModel()
}

// Save upserts the record. Older snapshots never overwrite a newer stored one.
func (r *ScheduleRecordRepository) Save(ctx context.Context, record *models.ScheduleRecord) error {
	if record == nil {
		return fmt.Errorf("save schedule record: nil record")
	}
	row, err := newScheduleRecordRow(record)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO schedule_records (workspace_id, schedule, weekly_schedules, template_history, week_history, updated_at)
VALUES (:workspace_id, :schedule, :weekly_schedules, :template_history, :week_history, :updated_at)
ON CONFLICT (workspace_id) DO UPDATE
SET schedule = EXCLUDED.schedule,
    weekly_schedules = EXCLUDED.weekly_schedules,
    template_history = EXCLUDED.template_history,
    week_history = EXCLUDED.week_history,
    updated_at = EXCLUDED.updated_at
WHERE schedule_records.updated_at <= EXCLUDED.updated_at`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, row); err != nil {
		return fmt.Errorf("save schedule record: %w", err)
	}
	return nil
}

// ListWorkspaceIDs returns the workspaces holding a record.
func (r *ScheduleRecordRepository) ListWorkspaceIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT workspace_id FROM schedule_records ORDER BY workspace_id ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list schedule record workspaces: %w", err)
	}
	return ids, nil
}

func newScheduleRecordRow(record *models.ScheduleRecord) (scheduleRecordRow, error) {
	row := scheduleRecordRow{WorkspaceID: record.WorkspaceID, UpdatedAt: record.UpdatedAt}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	weekly := record.WeeklySchedules
	if weekly == nil {
		weekly = map[string]*models.ScheduleResponse{}
	}
	fields := []struct {
		dest  *types.JSONText
		value interface{}
		name  string
	}{
		{&row.Schedule, record.Schedule, "schedule"},
		{&row.WeeklySchedules, weekly, "weekly schedules"},
		{&row.TemplateHistory, record.TemplateHistory, "template history"},
		{&row.WeekHistory, record.WeekHistory, "week history"},
	}
	for _, field := range fields {
		raw, err := json.Marshal(field.value)
		if err != nil {
			return row, fmt.Errorf("marshal %s: %w", field.name, err)
		}
		*field.dest = types.JSONText(raw)
	}
	return row, nil
}

func (row scheduleRecordRow) toModel() (*models.ScheduleRecord, error) {
	record := models.NewScheduleRecord(row.WorkspaceID)
	record.UpdatedAt = row.UpdatedAt
	fields := []struct {
		raw  types.JSONText
		dest interface{}
		name string
	}{
		{row.Schedule, &record.Schedule, "schedule"},
		{row.WeeklySchedules, &record.WeeklySchedules, "weekly schedules"},
		{row.TemplateHistory, &record.TemplateHistory, "template history"},
		{row.WeekHistory, &record.WeekHistory, "week history"},
	}
	for _, field := range fields {
		if len(field.raw) == 0 {
			continue
		}
		if err := field.raw.Unmarshal(field.dest); err != nil {
			return nil, fmt.Errorf("decode %s: %w", field.name, err)
		}
	}
	if record.WeeklySchedules == nil {
		record.WeeklySchedules = make(map[string]*models.ScheduleResponse)
	}
	return record, nil
}
