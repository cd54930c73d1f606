package cmd

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/internal/repository"
	"github.com/noah-isme/sma-schedule-editor/internal/service"
	"github.com/noah-isme/sma-schedule-editor/pkg/cache"
	"github.com/noah-isme/sma-schedule-editor/pkg/config"
	"github.com/noah-isme/sma-schedule-editor/pkg/database"
	"github.com/noah-isme/sma-schedule-editor/pkg/jobs"
	"github.com/noah-isme/sma-schedule-editor/pkg/realtime"
)

// application holds the wired services shared by the commands.
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *sqlx.DB
	redis   *redis.Client
	metrics *service.MetricsService
	store   *repository.CacheRepository
	cache   *service.CacheService
	records *repository.ScheduleRecordRepository
	editor  *service.ScheduleEditorService
	plans   *service.TeachingPlanService
	exports *service.ExportService
	tokens  *service.TokenService
	hub     *realtime.Hub
	queue   *jobs.Queue
}

func newApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	store := repository.NewCacheRepository(redisClient, logger)
	cacheSvc := service.NewCacheService(store, metrics, cfg.Editor.PlanCacheTTL, logger, redisClient != nil)

	records := repository.NewScheduleRecordRepository(db)
	plans := service.NewTeachingPlanService(repository.NewTeachingPlanRepository(db), cacheSvc, cfg.Editor.PlanCacheTTL, validate, logger)
	catalogs := service.NewCatalogService(
		repository.NewClassRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewTeacherRepository(db),
		cacheSvc,
		cfg.Editor.PlanCacheTTL,
		logger,
	)
	editor := service.NewScheduleEditorService(records, plans, catalogs, metrics, validate, logger, service.ScheduleEditorConfig{
		HistoryLimit:    cfg.Editor.HistoryLimit,
		ConfirmationTTL: cfg.Editor.ConfirmationTTL,
	})
	plans.SetReconciler(editor)
	hub := realtime.NewHub(0, logger)
	editor.UseEvents(hub)

	return &application{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		redis:   redisClient,
		metrics: metrics,
		store:   store,
		cache:   cacheSvc,
		records: records,
		editor:  editor,
		plans:   plans,
		exports: service.NewExportService(editor, catalogs, validate, logger, nil, nil),
		tokens:  service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration),
		hub:     hub,
	}, nil
}

// startPersistence routes schedule saves through a background queue.
func (a *application) startPersistence(ctx context.Context) {
	a.queue = jobs.NewQueue("schedule-persist", a.editor.PersistJob, jobs.QueueConfig{
		Workers:    a.cfg.Persist.Workers,
		BufferSize: a.cfg.Persist.BufferSize,
		MaxRetries: a.cfg.Persist.Retries,
		RetryDelay: a.cfg.Persist.RetryDelay,
		Logger:     a.logger,
		OnGiveUp:   a.editor.PersistFailed,
	})
	a.queue.Start(ctx)
	a.editor.UseQueue(a.queue)
}

func (a *application) close() {
	if a.queue != nil {
		a.logger.Info("draining persistence queue", zap.Int("pending", a.queue.Pending()))
		a.queue.Stop()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
}
