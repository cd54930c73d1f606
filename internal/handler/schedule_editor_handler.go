package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/middleware"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	"github.com/noah-isme/sma-schedule-editor/internal/service"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
	"github.com/noah-isme/sma-schedule-editor/pkg/response"
)

type scheduleEditorService interface {
	View(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error)
	Drop(ctx context.Context, ec models.EditContext, req dto.DropRequest) (*dto.DropResponse, error)
	Confirm(ctx context.Context, ec models.EditContext, id string) (*dto.DropResponse, error)
	Reject(ctx context.Context, workspaceID, id string) error
	Undo(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error)
	Redo(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error)
	ResetWeek(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error)
	SetCell(ctx context.Context, ec models.EditContext, req dto.SetCellRequest) (*dto.ScheduleView, error)
	BulkAssign(ctx context.Context, ec models.EditContext, req dto.BulkAssignRequest) (*dto.ScheduleView, error)
	DeleteLesson(ctx context.Context, ec models.EditContext, lessonID string) (*dto.ScheduleView, error)
	CloneTemplateToWeek(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error)
	Import(ctx context.Context, ec models.EditContext, req dto.ImportScheduleRequest) (*dto.ScheduleView, error)
	Conflicts(ctx context.Context, ec models.EditContext, query dto.ConflictQuery) (*dto.ConflictResult, error)
	Unscheduled(ctx context.Context, ec models.EditContext) ([]models.UnscheduledItem, error)
	Reconcile(ctx context.Context, workspaceID string) (models.ReconcileReport, error)
}

type timetableExporter interface {
	Export(ctx context.Context, ec models.EditContext, query dto.ExportQuery) (*service.ExportResult, error)
}

// ScheduleEditorHandler exposes the schedule editing endpoints of a workspace.
type ScheduleEditorHandler struct {
	service  scheduleEditorService
	exporter timetableExporter
	now      func() time.Time
}

// NewScheduleEditorHandler builds a new handler. The exporter may be nil.
func NewScheduleEditorHandler(service scheduleEditorService, exporter timetableExporter) *ScheduleEditorHandler {
	return &ScheduleEditorHandler{service: service, exporter: exporter, now: time.Now}
}

// View godoc
// @Summary Get the schedule of a week
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param scope query string false "Edit scope (template or week)"
// @Param week query string false "Week key, e.g. 2025-W07"
// @Param date query string false "Any date of the week (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule [get]
func (h *ScheduleEditorHandler) View(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	view, err := h.service.View(c.Request.Context(), ec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// Import godoc
// @Summary Replace the template with a generated schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param payload body dto.ImportScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule [put]
func (h *ScheduleEditorHandler) Import(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	var req dto.ImportScheduleRequest
	if !bindJSON(c, &req, "invalid schedule payload") {
		return
	}
	view, err := h.service.Import(c.Request.Context(), ec, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// Drop godoc
// @Summary Drop a dragged lesson or unscheduled card on a cell
// @Tags Schedule
// @Accept json
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param payload body dto.DropRequest true "Drop payload"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/drop [post]
func (h *ScheduleEditorHandler) Drop(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	var req dto.DropRequest
	if !bindJSON(c, &req, "invalid drop payload") {
		return
	}
	result, err := h.service.Drop(c.Request.Context(), ec, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if result.Outcome == dto.DropOutcomePending {
		status = http.StatusAccepted
	}
	response.JSON(c, status, result, middleware.ExtractMeta(c))
}

// Confirm godoc
// @Summary Apply a pending drop confirmation
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param id path string true "Confirmation ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/confirmations/{id} [post]
func (h *ScheduleEditorHandler) Confirm(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	result, err := h.service.Confirm(c.Request.Context(), ec, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// Reject godoc
// @Summary Discard a pending drop confirmation
// @Tags Schedule
// @Param workspace path string true "Workspace ID"
// @Param id path string true "Confirmation ID"
// @Success 204
// @Router /workspaces/{workspace}/schedule/confirmations/{id} [delete]
func (h *ScheduleEditorHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("workspace"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Undo godoc
// @Summary Undo the last change of the scope
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param scope query string false "Edit scope (template or week)"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/undo [post]
func (h *ScheduleEditorHandler) Undo(c *gin.Context) {
	h.runView(c, h.service.Undo)
}

// Redo godoc
// @Summary Redo the last undone change of the scope
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param scope query string false "Edit scope (template or week)"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/redo [post]
func (h *ScheduleEditorHandler) Redo(c *gin.Context) {
	h.runView(c, h.service.Redo)
}

// ResetWeek godoc
// @Summary Drop the week override so the week follows the template again
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param week path string true "Week key"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/weeks/{week} [delete]
func (h *ScheduleEditorHandler) ResetWeek(c *gin.Context) {
	h.runView(c, h.service.ResetWeek)
}

// CloneTemplate godoc
// @Summary Copy the template into the week override
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param week path string true "Week key"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/weeks/{week}/clone [post]
func (h *ScheduleEditorHandler) CloneTemplate(c *gin.Context) {
	h.runView(c, h.service.CloneTemplateToWeek)
}

// SetCell godoc
// @Summary Set or clear one class cell
// @Tags Schedule
// @Accept json
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param payload body dto.SetCellRequest true "Cell payload"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/cells [put]
func (h *ScheduleEditorHandler) SetCell(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	var req dto.SetCellRequest
	if !bindJSON(c, &req, "invalid cell payload") {
		return
	}
	view, err := h.service.SetCell(c.Request.Context(), ec, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// BulkAssign godoc
// @Summary Assign a subject and teacher to many cells of a class
// @Tags Schedule
// @Accept json
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param payload body dto.BulkAssignRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/bulk [post]
func (h *ScheduleEditorHandler) BulkAssign(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	var req dto.BulkAssignRequest
	if !bindJSON(c, &req, "invalid bulk assignment") {
		return
	}
	view, err := h.service.BulkAssign(c.Request.Context(), ec, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// DeleteLesson godoc
// @Summary Remove a lesson
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param id path string true "Lesson ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/lessons/{id} [delete]
func (h *ScheduleEditorHandler) DeleteLesson(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	view, err := h.service.DeleteLesson(c.Request.Context(), ec, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// Conflicts godoc
// @Summary List who already occupies a slot
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Param day query string true "Day"
// @Param period query int true "Period"
// @Param teacher_id query string false "Teacher to check"
// @Param class_id query string false "Class to check"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/conflicts [get]
func (h *ScheduleEditorHandler) Conflicts(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	var query dto.ConflictQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict query"))
		return
	}
	result, err := h.service.Conflicts(c.Request.Context(), ec, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// Unscheduled godoc
// @Summary List plan hours not placed in the week
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/unscheduled [get]
func (h *ScheduleEditorHandler) Unscheduled(c *gin.Context) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	items, err := h.service.Unscheduled(c.Request.Context(), ec)
	if err != nil {
		response.Error(c, err)
		return
	}
	remaining := 0
	for _, item := range items {
		remaining += item.RemainingHours
	}
	middleware.SetMeta(c, "remaining_hours", remaining)
	response.JSON(c, http.StatusOK, items, middleware.ExtractMeta(c))
}

// Reconcile godoc
// @Summary Trim the schedule to the teaching plan
// @Tags Schedule
// @Produce json
// @Param workspace path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspace}/schedule/reconcile [post]
func (h *ScheduleEditorHandler) Reconcile(c *gin.Context) {
	report, err := h.service.Reconcile(c.Request.Context(), c.Param("workspace"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export a week timetable for a class or teacher
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param workspace path string true "Workspace ID"
// @Param format query string true "csv, pdf or xlsx"
// @Param class_id query string false "Class ID"
// @Param teacher_id query string false "Teacher ID"
// @Success 200 {file} file
// @Router /workspaces/{workspace}/schedule/export [get]
func (h *ScheduleEditorHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is not enabled"))
		return
	}
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	result, err := h.exporter.Export(c.Request.Context(), ec, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}

func (h *ScheduleEditorHandler) runView(c *gin.Context, fn func(context.Context, models.EditContext) (*dto.ScheduleView, error)) {
	ec, ok := h.editContext(c)
	if !ok {
		return
	}
	view, err := fn(c.Request.Context(), ec)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

func (h *ScheduleEditorHandler) editContext(c *gin.Context) (models.EditContext, bool) {
	ec, err := editContext(c, h.now)
	if err != nil {
		response.Error(c, err)
		return ec, false
	}
	middleware.SetEditContext(c, ec)
	return ec, true
}

func bindJSON(c *gin.Context, target interface{}, message string) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}
