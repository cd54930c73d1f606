package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/middleware"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
	"github.com/noah-isme/sma-schedule-editor/pkg/response"
)

type teachingPlanService interface {
	ListCached(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, bool, error)
	Upsert(ctx context.Context, workspaceID string, req dto.UpsertPlanItemRequest) (*models.TeachingPlanItem, *models.ReconcileReport, error)
	Delete(ctx context.Context, workspaceID string, key dto.PlanItemKey) (*models.ReconcileReport, error)
}

// TeachingPlanHandler exposes the weekly hour quotas of a workspace.
type TeachingPlanHandler struct {
	service teachingPlanService
}

// NewTeachingPlanHandler builds a new handler.
func NewTeachingPlanHandler(service teachingPlanService) *TeachingPlanHandler {
	return &TeachingPlanHandler{service: service}
}

// List godoc
// @Summary List the teaching plan
// @Tags Plan
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/plan [get]
func (h *TeachingPlanHandler) List(c *gin.Context) {
	items, cacheHit, err := h.service.ListCached(c.Request.Context(), c.Param("workspace"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, items, middleware.ExtractMeta(c))
}

// Upsert godoc
// @Summary Set the weekly hours of a class, subject and teacher
// @Tags Plan
// @Accept json
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param payload body dto.UpsertPlanItemRequest true "Plan item"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/plan [put]
func (h *TeachingPlanHandler) Upsert(c *gin.Context) {
	var req dto.UpsertPlanItemRequest
	if !bindJSON(c, &req, "invalid plan item") {
		return
	}
	item, report, err := h.service.Upsert(c.Request.Context(), c.Param("workspace"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.PlanChangeResponse{Item: item, Reconcile: report})
}

// Delete godoc
// @Summary Remove a plan item and purge its lessons
// @Tags Plan
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param class_id query string true "Class ID"
// @Param subject_id query string true "Subject ID"
// @Param teacher_id query string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/plan [delete]
func (h *TeachingPlanHandler) Delete(c *gin.Context) {
	var key dto.PlanItemKey
	if err := c.ShouldBindQuery(&key); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid plan item key"))
		return
	}
	report, err := h.service.Delete(c.Request.Context(), c.Param("workspace"), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.PlanChangeResponse{Reconcile: report})
}
