package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// TeacherRepository provides access to teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a teacher repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns the teachers of a workspace ordered by name.
func (r *TeacherRepository) List(ctx context.Context, workspaceID string) ([]models.Teacher, error) {
	const query = `SELECT id, workspace_id, full_name FROM teachers WHERE workspace_id = $1 ORDER BY full_name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, workspaceID); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}
