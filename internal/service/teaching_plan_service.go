package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
)

type teachingPlanRepository interface {
	List(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, error)
	Upsert(ctx context.Context, item *models.TeachingPlanItem) error
	Delete(ctx context.Context, workspaceID string, triple models.PlanTriple) (bool, error)
}

// planReconciler trims schedules after the plan changed.
type planReconciler interface {
	Reconcile(ctx context.Context, workspaceID string) (models.ReconcileReport, error)
}

// TeachingPlanService manages weekly hour quotas and keeps schedules aligned with them.
type TeachingPlanService struct {
	repo       teachingPlanRepository
	cache      *CacheService
	ttl        time.Duration
	reconciler planReconciler
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewTeachingPlanService constructs the service. Cache may be nil.
func NewTeachingPlanService(repo teachingPlanRepository, cache *CacheService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *TeachingPlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeachingPlanService{repo: repo, cache: cache, ttl: ttl, validate: validate, logger: logger}
}

// SetReconciler registers the component trimming schedules after plan edits.
func (s *TeachingPlanService) SetReconciler(reconciler planReconciler) {
	s.reconciler = reconciler
}

// List returns the plan of a workspace.
func (s *TeachingPlanService) List(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, error) {
	items, _, err := s.ListCached(ctx, workspaceID)
	return items, err
}

// ListCached returns the plan and whether it was served from cache.
func (s *TeachingPlanService) ListCached(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, bool, error) {
	key := PlanCacheKey(workspaceID)
	var cached []models.TeachingPlanItem
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}
	items, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teaching plan")
	}
	if items == nil {
		items = []models.TeachingPlanItem{}
	}
	_ = s.cache.Set(ctx, key, items, s.ttl)
	return items, false, nil
}

// Upsert sets the quota of a triple and trims schedules exceeding it.
func (s *TeachingPlanService) Upsert(ctx context.Context, workspaceID string, req dto.UpsertPlanItemRequest) (*models.TeachingPlanItem, *models.ReconcileReport, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan item")
	}
	item := &models.TeachingPlanItem{
		WorkspaceID:  workspaceID,
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		HoursPerWeek: req.HoursPerWeek,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save plan item")
	}
	report, err := s.afterChange(ctx, workspaceID)
	if err != nil {
		return item, nil, err
	}
	return item, report, nil
}

// Delete removes the quota of a triple. Lessons of the triple become orphans and are purged.
func (s *TeachingPlanService) Delete(ctx context.Context, workspaceID string, key dto.PlanItemKey) (*models.ReconcileReport, error) {
	if err := s.validate.Struct(key); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan item key")
	}
	removed, err := s.repo.Delete(ctx, workspaceID, key.Triple())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete plan item")
	}
	if !removed {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "plan item not found")
	}
	return s.afterChange(ctx, workspaceID)
}

func (s *TeachingPlanService) afterChange(ctx context.Context, workspaceID string) (*models.ReconcileReport, error) {
	_ = s.cache.Invalidate(ctx, PlanCacheKey(workspaceID))
	if s.reconciler == nil {
		return nil, nil
	}
	report, err := s.reconciler.Reconcile(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if total := report.Total(); total > 0 {
		s.logger.Info("schedule trimmed after plan change", zap.String("workspace", workspaceID), zap.Int("removed", total))
	}
	return &report, nil
}
