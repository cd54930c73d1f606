package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns the classes of a workspace ordered by name.
func (r *ClassRepository) List(ctx context.Context, workspaceID string) ([]models.Class, error) {
	const query = `SELECT id, workspace_id, name FROM classes WHERE workspace_id = $1 ORDER BY name ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, workspaceID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}
