package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
)

type classLister interface {
	List(ctx context.Context, workspaceID string) ([]models.Class, error)
}

type subjectLister interface {
	List(ctx context.Context, workspaceID, search string) ([]models.Subject, error)
}

type teacherLister interface {
	List(ctx context.Context, workspaceID string) ([]models.Teacher, error)
}

// CatalogService resolves the class, subject and teacher catalog of a workspace.
type CatalogService struct {
	classes  classLister
	subjects subjectLister
	teachers teacherLister
	cache    *CacheService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCatalogService constructs a catalog service. Cache may be nil.
func NewCatalogService(classes classLister, subjects subjectLister, teachers teacherLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{classes: classes, subjects: subjects, teachers: teachers, cache: cache, ttl: ttl, logger: logger}
}

// Load returns the catalog, served from cache when possible.
func (s *CatalogService) Load(ctx context.Context, workspaceID string) (models.Catalog, error) {
	key := CatalogCacheKey(workspaceID)
	var cached models.Catalog
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	classes, err := s.classes.List(ctx, workspaceID)
	if err != nil {
		return models.Catalog{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	subjects, err := s.subjects.List(ctx, workspaceID, "")
	if err != nil {
		return models.Catalog{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	teachers, err := s.teachers.List(ctx, workspaceID)
	if err != nil {
		return models.Catalog{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}

	catalog := models.NewCatalog(classes, subjects, teachers)
	if err := s.cache.Set(ctx, key, catalog, s.ttl); err != nil {
		s.logger.Debug("catalog cache write skipped", zap.String("workspace", workspaceID), zap.Error(err))
	}
	return catalog, nil
}
