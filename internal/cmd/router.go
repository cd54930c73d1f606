package cmd

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/sma-schedule-editor/api/swagger"
	"github.com/noah-isme/sma-schedule-editor/internal/handler"
	"github.com/noah-isme/sma-schedule-editor/internal/middleware"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	"github.com/noah-isme/sma-schedule-editor/pkg/config"
	"github.com/noah-isme/sma-schedule-editor/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-schedule-editor/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-schedule-editor/pkg/middleware/requestid"
)

func newRouter(app *application) *gin.Engine {
	cfg := app.cfg
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(app.logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(app.metrics))
	r.Use(middleware.WithResponseMeta())

	checks := map[string]handler.Pinger{"database": app.db}
	if app.redis != nil {
		checks["redis"] = handler.PingFunc(app.store.Ping)
	}
	metricsHandler := handler.NewMetricsHandler(app.metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/status", metricsHandler.Status)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if cfg.JWT.Enabled {
		api.Use(middleware.JWT(app.tokens))
	} else {
		api.Use(middleware.OptionalJWT(app.tokens))
	}
	adminOnly := func(c *gin.Context) { c.Next() }
	if cfg.JWT.Enabled {
		adminOnly = middleware.RequireRoles(models.RoleAdmin)
	}

	editorHandler := handler.NewScheduleEditorHandler(app.editor, app.exports)
	planHandler := handler.NewTeachingPlanHandler(app.plans)
	streamHandler := handler.NewScheduleStreamHandler(app.hub, cfg.CORS.AllowedOrigins, app.logger)
	audit := func(action string) gin.HandlerFunc { return middleware.Audit(app.logger, action) }

	workspace := api.Group("/workspaces/:workspace")

	schedule := workspace.Group("/schedule")
	schedule.GET("", editorHandler.View)
	schedule.PUT("", adminOnly, audit("schedule.import"), editorHandler.Import)
	schedule.POST("/drop", audit("schedule.drop"), editorHandler.Drop)
	schedule.POST("/confirmations/:id", audit("schedule.confirm"), editorHandler.Confirm)
	schedule.DELETE("/confirmations/:id", audit("schedule.reject"), editorHandler.Reject)
	schedule.POST("/undo", audit("schedule.undo"), editorHandler.Undo)
	schedule.POST("/redo", audit("schedule.redo"), editorHandler.Redo)
	schedule.DELETE("/weeks/:week", audit("schedule.reset_week"), editorHandler.ResetWeek)
	schedule.POST("/weeks/:week/clone", audit("schedule.clone_template"), editorHandler.CloneTemplate)
	schedule.PUT("/cells", audit("schedule.set_cell"), editorHandler.SetCell)
	schedule.POST("/bulk", audit("schedule.bulk_assign"), editorHandler.BulkAssign)
	schedule.DELETE("/lessons/:id", audit("schedule.delete_lesson"), editorHandler.DeleteLesson)
	schedule.GET("/conflicts", editorHandler.Conflicts)
	schedule.GET("/unscheduled", editorHandler.Unscheduled)
	schedule.GET("/export", editorHandler.Export)
	schedule.GET("/stream", streamHandler.Stream)
	schedule.POST("/reconcile", adminOnly, audit("schedule.reconcile"), editorHandler.Reconcile)

	plan := workspace.Group("/plan")
	plan.GET("", planHandler.List)
	plan.PUT("", adminOnly, audit("plan.upsert"), planHandler.Upsert)
	plan.DELETE("", adminOnly, audit("plan.delete"), planHandler.Delete)

	return r
}
