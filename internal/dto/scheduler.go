package dto

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// ErrMalformedPayload marks a drag payload that failed the shape check.
var ErrMalformedPayload = errors.New("malformed drag payload")

// DragPayload is the object carried across the drag-and-drop boundary.
type DragPayload struct {
	ID            string  `json:"id"`
	ClassID       string  `json:"class_id" validate:"required"`
	SubjectID     string  `json:"subject_id" validate:"required"`
	TeacherID     string  `json:"teacher_id" validate:"required"`
	Day           *string `json:"day"`
	Period        *int    `json:"period" validate:"omitempty,min=0,max=7"`
	Room          string  `json:"room"`
	Kind          string  `json:"kind" validate:"omitempty,oneof=single paired"`
	Duration      *int    `json:"duration" validate:"omitempty,min=1,max=8"`
	IsUnscheduled bool    `json:"isUnscheduled"`
}

// ParseDragPayload decodes and validates a raw payload into a drag source.
func ParseDragPayload(raw []byte, validate *validator.Validate) (models.DragSource, error) {
	if len(raw) == 0 {
		return nil, ErrMalformedPayload
	}
	var payload DragPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	return payload.Source(validate)
}

// Source validates the payload shape and returns the matching union member.
func (p DragPayload) Source(validate *validator.Validate) (models.DragSource, error) {
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.Struct(p); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	if p.IsUnscheduled {
		duration := 1
		if p.Duration != nil {
			duration = *p.Duration
		}
		return models.UnscheduledCard{
			ClassID:   p.ClassID,
			SubjectID: p.SubjectID,
			TeacherID: p.TeacherID,
			Duration:  duration,
		}, nil
	}
	if p.Day == nil || p.Period == nil {
		return nil, ErrMalformedPayload
	}
	day, ok := models.ParseWeekday(*p.Day)
	if !ok {
		return nil, ErrMalformedPayload
	}
	kind := models.LessonKind(p.Kind)
	if kind == "" {
		kind = models.LessonKindSingle
	}
	return models.RealLesson{Lesson: models.Lesson{
		ID:        p.ID,
		ClassID:   p.ClassID,
		SubjectID: p.SubjectID,
		TeacherID: p.TeacherID,
		Day:       day,
		Period:    *p.Period,
		Room:      p.Room,
		Kind:      kind,
	}}, nil
}

// DropTargetRequest addresses the cell a card was dropped on.
type DropTargetRequest struct {
	View        string `json:"view" validate:"required,oneof=class teacher matrix"`
	ContainerID string `json:"container_id" validate:"required"`
	Day         string `json:"day" validate:"required"`
	Period      int    `json:"period" validate:"min=0,max=7"`
}

// DropRequest carries a raw drag payload and its target.
type DropRequest struct {
	Payload json.RawMessage   `json:"payload"`
	Target  DropTargetRequest `json:"target"`
	Copy    bool              `json:"copy"`
}

// SlotRequest addresses one day/period.
type SlotRequest struct {
	Day    string `json:"day" validate:"required"`
	Period int    `json:"period" validate:"min=0,max=7"`
}

// SetCellRequest replaces the content of one class cell. An empty subject clears the cell.
type SetCellRequest struct {
	ClassID   string `json:"class_id" validate:"required"`
	Day       string `json:"day" validate:"required"`
	Period    int    `json:"period" validate:"min=0,max=7"`
	SubjectID string `json:"subject_id"`
	TeacherID string `json:"teacher_id" validate:"required_with=SubjectID"`
	Room      string `json:"room"`
	Kind      string `json:"kind" validate:"omitempty,oneof=single paired"`
}

// BulkAssignRequest assigns one subject/teacher pair to many cells of a class.
type BulkAssignRequest struct {
	ClassID   string        `json:"class_id" validate:"required"`
	SubjectID string        `json:"subject_id" validate:"required"`
	TeacherID string        `json:"teacher_id" validate:"required"`
	Room      string        `json:"room"`
	Slots     []SlotRequest `json:"slots" validate:"required,min=1,max=40,dive"`
	Overwrite bool          `json:"overwrite"`
}

// ImportScheduleRequest accepts a generated schedule as the new template.
type ImportScheduleRequest struct {
	Status     string                    `json:"status" validate:"omitempty,oneof=success conflict"`
	Schedule   []models.Lesson           `json:"schedule" validate:"dive"`
	Violations []models.ScheduleConflict `json:"violations"`
}

// UpsertPlanItemRequest sets the weekly quota of a triple.
type UpsertPlanItemRequest struct {
	ClassID      string `json:"class_id" validate:"required"`
	SubjectID    string `json:"subject_id" validate:"required"`
	TeacherID    string `json:"teacher_id" validate:"required"`
	HoursPerWeek int    `json:"hours_per_week" validate:"min=0,max=40"`
}

// ConflictQuery asks who already occupies a slot.
type ConflictQuery struct {
	TeacherID        string `form:"teacher_id"`
	ClassID          string `form:"class_id"`
	Day              string `form:"day" validate:"required"`
	Period           int    `form:"period" validate:"min=0,max=7"`
	ExcludeClassID   string `form:"exclude_class_id"`
	ExcludeTeacherID string `form:"exclude_teacher_id"`
}

// ConflictResult answers a ConflictQuery.
type ConflictResult struct {
	Classes      []string `json:"classes,omitempty"`
	Teachers     []string `json:"teachers,omitempty"`
	DoubleBooked bool     `json:"double_booked"`
}

// ScheduleView is the editor state of one week.
type ScheduleView struct {
	WorkspaceID   string                   `json:"workspace_id"`
	WeekID        string                   `json:"week_id"`
	Scope         models.EditScope         `json:"scope"`
	UsingTemplate bool                     `json:"using_template"`
	Schedule      *models.ScheduleResponse `json:"schedule"`
	CanUndo       bool                     `json:"can_undo"`
	CanRedo       bool                     `json:"can_redo"`
	UndoCount     int                      `json:"undo_count"`
	RedoCount     int                      `json:"redo_count"`
}

// Drop outcomes.
const (
	DropOutcomeApplied = "applied"
	DropOutcomePending = "pending"
	DropOutcomeNoop    = "noop"
)

// DropResponse reports how a drop was handled.
type DropResponse struct {
	Outcome      string               `json:"outcome"`
	View         *ScheduleView        `json:"view,omitempty"`
	Confirmation *models.Confirmation `json:"confirmation,omitempty"`
}

// ExportQuery selects the timetable to export.
type ExportQuery struct {
	Format    string `form:"format" validate:"required,oneof=csv pdf xlsx"`
	ClassID   string `form:"class_id" validate:"required_without=TeacherID"`
	TeacherID string `form:"teacher_id" validate:"required_without=ClassID"`
}

// PlanItemKey addresses a plan item to delete.
type PlanItemKey struct {
	ClassID   string `form:"class_id" validate:"required"`
	SubjectID string `form:"subject_id" validate:"required"`
	TeacherID string `form:"teacher_id" validate:"required"`
}

// Triple returns the plan triple addressed by the key.
func (k PlanItemKey) Triple() models.PlanTriple {
	return models.PlanTriple{ClassID: k.ClassID, SubjectID: k.SubjectID, TeacherID: k.TeacherID}
}

// PlanChangeResponse reports a plan edit and the schedule lessons it trimmed.
type PlanChangeResponse struct {
	Item      *models.TeachingPlanItem `json:"item,omitempty"`
	Reconcile *models.ReconcileReport  `json:"reconcile,omitempty"`
}

// ScheduleEventUpdated is published after a workspace schedule changed.
const ScheduleEventUpdated = "schedule.updated"

// ScheduleEvent is pushed to the live stream of a workspace.
type ScheduleEvent struct {
	Type        string    `json:"type"`
	WorkspaceID string    `json:"workspace_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}
