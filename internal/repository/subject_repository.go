package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns the subjects of a workspace, optionally filtered by a name fragment.
func (r *SubjectRepository) List(ctx context.Context, workspaceID, search string) ([]models.Subject, error) {
	query := "SELECT id, workspace_id, name, COALESCE(default_room, '') AS default_room FROM subjects WHERE workspace_id = $1"
	args := []interface{}{workspaceID}
	if search != "" {
		query += " AND LOWER(name) LIKE $2"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += " ORDER BY name ASC"

	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
