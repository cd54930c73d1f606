package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestClassRepositoryList(t *testing.T) {
	db, mock, cleanup := newCatalogRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, workspace_id, name FROM classes WHERE workspace_id = $1 ORDER BY name ASC")).
		WithArgs("ws-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "name"}).AddRow("c1", "ws-1", "X IPA 1"))

	classes, err := repo.List(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "X IPA 1", classes[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newCatalogRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects WHERE workspace_id = $1 AND LOWER(name) LIKE $2 ORDER BY name ASC")).
		WithArgs("ws-1", "%math%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "name", "default_room"}).AddRow("s1", "ws-1", "Mathematics", "R101"))

	subjects, err := repo.List(context.Background(), "ws-1", "Math")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "R101", subjects[0].DefaultRoom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newCatalogRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, workspace_id, full_name FROM teachers WHERE workspace_id = $1 ORDER BY full_name ASC")).
		WithArgs("ws-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "full_name"}).AddRow("t1", "ws-1", "Bu Sari"))

	teachers, err := repo.List(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Bu Sari", teachers[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
