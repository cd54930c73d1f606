package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

func newScheduleRecordRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleRecordRepositoryGet(t *testing.T) {
	db, mock, cleanup := newScheduleRecordRepoMock(t)
	defer cleanup()
	repo := NewScheduleRecordRepository(db)

	schedule := `{"status":"success","schedule":[{"id":"l1","class_id":"c1","subject_id":"s1","teacher_id":"t1","day":"MONDAY","period":1}]}`
	weekly := `{"2025-W07":{"status":"conflict","schedule":[]}}`
	history := `{"past":[],"present":null,"future":[]}`
	rows := sqlmock.NewRows([]string{"workspace_id", "schedule", "weekly_schedules", "template_history", "week_history", "updated_at"}).
		AddRow("ws-1", schedule, weekly, history, history, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT workspace_id, schedule, weekly_schedules, template_history, week_history, updated_at FROM schedule_records WHERE workspace_id = $1")).
		WithArgs("ws-1").
		WillReturnRows(rows)

	record, err := repo.Get(context.Background(), "ws-1")
	require.NoError(t, err)
	require.NotNil(t, record.Schedule)
	assert.Len(t, record.Schedule.Schedule, 1)
	assert.Equal(t, models.Monday, record.Schedule.Schedule[0].Day)
	override, ok := record.WeekOverride("2025-W07")
	require.True(t, ok)
	assert.True(t, override.IsConflict())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRecordRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newScheduleRecordRepoMock(t)
	defer cleanup()
	repo := NewScheduleRecordRepository(db)

	mock.ExpectQuery("FROM schedule_records").
		WithArgs("ws-404").
		WillReturnError(sql.ErrNoRows)

	record, err := repo.Get(context.Background(), "ws-404")
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRecordRepositorySave(t *testing.T) {
	db, mock, cleanup := newScheduleRecordRepoMock(t)
	defer cleanup()
	repo := NewScheduleRecordRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_records")).
		WithArgs("ws-1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := models.NewScheduleRecord("ws-1")
	record.Schedule = models.NewSuccessResponse([]models.Lesson{{ID: "l1", ClassID: "c1", SubjectID: "s1", TeacherID: "t1", Day: models.Monday, Period: 1}})
	require.NoError(t, repo.Save(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRecordRepositoryListWorkspaceIDs(t *testing.T) {
	db, mock, cleanup := newScheduleRecordRepoMock(t)
	defer cleanup()
	repo := NewScheduleRecordRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT workspace_id FROM schedule_records ORDER BY workspace_id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"workspace_id"}).AddRow("ws-1").AddRow("ws-2"))

	ids, err := repo.ListWorkspaceIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ws-1", "ws-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
