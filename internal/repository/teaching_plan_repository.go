package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// TeachingPlanRepository manages weekly hour quotas per class, subject and teacher.
type TeachingPlanRepository struct {
	db *sqlx.DB
}

// NewTeachingPlanRepository builds repository.
func NewTeachingPlanRepository(db *sqlx.DB) *TeachingPlanRepository {
	return &TeachingPlanRepository{db: db}
}

// List returns the plan of a workspace ordered by class and subject.
func (r *TeachingPlanRepository) List(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, error) {
	const query = `SELECT workspace_id, class_id, subject_id, teacher_id, hours_per_week, updated_at
FROM teaching_plan_items WHERE workspace_id = $1 ORDER BY class_id ASC, subject_id ASC, teacher_id ASC`
	var items []models.TeachingPlanItem
	if err := r.db.SelectContext(ctx, &items, query, workspaceID); err != nil {
		return nil, fmt.Errorf("list teaching plan: %w", err)
	}
	return items, nil
}

// Upsert stores the quota of one triple.
func (r *TeachingPlanRepository) Upsert(ctx context.Context, item *models.TeachingPlanItem) error {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}
	const query = `
INSERT INTO teaching_plan_items (workspace_id, class_id, subject_id, teacher_id, hours_per_week, updated_at)
VALUES (:workspace_id, :class_id, :subject_id, :teacher_id, :hours_per_week, :updated_at)
ON CONFLICT (workspace_id, class_id, subject_id, teacher_id) DO UPDATE
SET hours_per_week = EXCLUDED.hours_per_week,
    updated_at = EXCLUDED.updated_at`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, item); err != nil {
		return fmt.Errorf("upsert teaching plan item: %w", err)
	}
	return nil
}

// Delete removes the quota of one triple. It reports whether a row was removed.
func (r *TeachingPlanRepository) Delete(ctx context.Context, workspaceID string, triple models.PlanTriple) (bool, error) {
	const query = `DELETE FROM teaching_plan_items WHERE workspace_id = $1 AND class_id = $2 AND subject_id = $3 AND teacher_id = $4`
	res, err := r.db.ExecContext(ctx, query, workspaceID, triple.ClassID, triple.SubjectID, triple.TeacherID)
	if err != nil {
		return false, fmt.Errorf("delete teaching plan item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete teaching plan item rows: %w", err)
	}
	return affected > 0, nil
}
