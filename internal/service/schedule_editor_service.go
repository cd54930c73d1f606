package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
	"github.com/noah-isme/sma-schedule-editor/pkg/jobs"
)

// PersistJobType identifies schedule record saves on the job queue.
const PersistJobType = "schedule.save"

type scheduleRecordStore interface {
	Get(ctx context.Context, workspaceID string) (*models.ScheduleRecord, error)
	Save(ctx context.Context, record *models.ScheduleRecord) error
}

type planLister interface {
	List(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, error)
}

type catalogLoader interface {
	Load(ctx context.Context, workspaceID string) (models.Catalog, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type eventPublisher interface {
	Publish(topic string, v interface{}) error
}

// ScheduleTopic names the live stream topic of a workspace.
func ScheduleTopic(workspaceID string) string {
	return "schedule:" + workspaceID
}

// ScheduleEditorConfig tunes the editor.
type ScheduleEditorConfig struct {
	HistoryLimit    int
	ConfirmationTTL time.Duration
}

type workspaceState struct {
	mu     sync.Mutex
	record *models.ScheduleRecord
}

// ScheduleEditorService applies editing gestures to workspace schedules, keeps their history and
// hands snapshots to the persistence queue.
type ScheduleEditorService struct {
	records  scheduleRecordStore
	plans    planLister
	catalogs catalogLoader
	queue    jobEnqueuer
	events   eventPublisher
	metrics  *MetricsService
	history  *HistoryManager
	pending  *confirmationStore
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	workspaces map[string]*workspaceState
	loads      singleflight.Group
}

// NewScheduleEditorService wires the editor dependencies. Catalogs and metrics may be nil.
func NewScheduleEditorService(
	records scheduleRecordStore,
	plans planLister,
	catalogs catalogLoader,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleEditorConfig,
) *ScheduleEditorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ConfirmationTTL <= 0 {
		cfg.ConfirmationTTL = 10 * time.Minute
	}
	return &ScheduleEditorService{
		records:    records,
		plans:      plans,
		catalogs:   catalogs,
		metrics:    metrics,
		history:    NewHistoryManager(cfg.HistoryLimit),
		pending:    newConfirmationStore(cfg.ConfirmationTTL),
		validate:   validate,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		workspaces: make(map[string]*workspaceState),
	}
}

// UseQueue makes persistence asynchronous through the queue. Without a queue records are saved inline.
func (s *ScheduleEditorService) UseQueue(queue jobEnqueuer) {
	s.queue = queue
}

// UseEvents publishes a ScheduleEvent on the workspace topic after every change.
func (s *ScheduleEditorService) UseEvents(events eventPublisher) {
	s.events = events
}

// PersistJob is the queue handler saving a record snapshot.
func (s *ScheduleEditorService) PersistJob(ctx context.Context, job jobs.Job) error {
	record, ok := job.Payload.(*models.ScheduleRecord)
	if !ok || record == nil {
		return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.ID)
	}
	return s.save(ctx, record)
}

func (s *ScheduleEditorService) save(ctx context.Context, record *models.ScheduleRecord) error {
	start := time.Now()
	err := s.records.Save(ctx, record)
	s.metrics.ObserveDBQuery("schedule_record_save", time.Since(start))
	return err
}

// PersistFailed is called by the queue once a save exhausted its retries.
func (s *ScheduleEditorService) PersistFailed(job jobs.Job, err error) {
	s.metrics.RecordPersistFailure()
	s.logger.Error("schedule record not persisted", zap.String("job_id", job.ID), zap.Error(err))
}

// View returns the editor state of the context's week.
func (s *ScheduleEditorService) View(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error) {
	if err := validateEditContext(ec); err != nil {
		return nil, err
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return s.view(state.record, ec), nil
}

// Drop resolves a drag gesture. Conflict-free moves into empty cells are applied, anything else
// is held as a pending confirmation. Malformed payloads are ignored.
func (s *ScheduleEditorService) Drop(ctx context.Context, ec models.EditContext, req dto.DropRequest) (*dto.DropResponse, error) {
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req.Target); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drop target")
	}
	day, ok := models.ParseWeekday(req.Target.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid drop target day")
	}
	target := models.DropTarget{
		View:        models.ScheduleView(req.Target.View),
		ContainerID: req.Target.ContainerID,
		Day:         day,
		Period:      req.Target.Period,
	}

	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	catalog := s.catalog(ctx, ec.WorkspaceID)

	state.mu.Lock()
	defer state.mu.Unlock()

	source, err := dto.ParseDragPayload(req.Payload, s.validate)
	if err != nil {
		s.logger.Warn("ignoring malformed drag payload", zap.String("workspace", ec.WorkspaceID), zap.Error(err))
		s.metrics.RecordDrop("", dto.DropOutcomeNoop, 0)
		return &dto.DropResponse{Outcome: dto.DropOutcomeNoop, View: s.view(state.record, ec)}, nil
	}

	current := s.current(state.record, ec)
	resolver := NewDragTransitionResolver(catalog)
	resolution := resolver.Resolve(current.Lessons(), source, target, req.Copy)

	switch {
	case resolution.Applied:
		s.commit(ctx, state.record, ec, tagSnapshot(current, resolution.Lessons, catalog))
		s.metrics.RecordDrop(models.TransitionMove, dto.DropOutcomeApplied, 0)
		return &dto.DropResponse{Outcome: dto.DropOutcomeApplied, View: s.view(state.record, ec)}, nil
	case resolution.Confirmation != nil:
		pending := s.pending.Save(pendingConfirmation{WorkspaceID: ec.WorkspaceID, Context: ec, Confirmation: *resolution.Confirmation})
		s.metrics.SetPendingConfirmations(pending)
		s.metrics.RecordDrop(resolution.Confirmation.Type, dto.DropOutcomePending, len(resolution.Confirmation.Conflicts))
		return &dto.DropResponse{Outcome: dto.DropOutcomePending, View: s.view(state.record, ec), Confirmation: resolution.Confirmation}, nil
	default:
		s.metrics.RecordDrop("", dto.DropOutcomeNoop, 0)
		return &dto.DropResponse{Outcome: dto.DropOutcomeNoop, View: s.view(state.record, ec)}, nil
	}
}

// Confirm applies a pending confirmation against the current schedule of the scope and week the
// drop was made in. A confirmation whose dragged lesson disappeared in the meantime is dropped
// without changes.
func (s *ScheduleEditorService) Confirm(ctx context.Context, ec models.EditContext, id string) (*dto.DropResponse, error) {
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	pending, ok := s.takeConfirmation(ec.WorkspaceID, id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "confirmation not found")
	}

	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	catalog := s.catalog(ctx, ec.WorkspaceID)

	state.mu.Lock()
	defer state.mu.Unlock()

	origin := pending.Context
	origin.ReadOnly = ec.ReadOnly
	current := s.current(state.record, origin)
	lessons, applied := NewDragTransitionResolver(catalog).Apply(current.Lessons(), pending.Confirmation)
	if !applied {
		s.logger.Info("stale drop confirmation ignored", zap.String("workspace", ec.WorkspaceID), zap.String("confirmation", id))
		s.metrics.RecordDrop(pending.Confirmation.Type, dto.DropOutcomeNoop, 0)
		return &dto.DropResponse{Outcome: dto.DropOutcomeNoop, View: s.view(state.record, origin)}, nil
	}
	s.commit(ctx, state.record, origin, tagSnapshot(current, lessons, catalog))
	s.metrics.RecordDrop(pending.Confirmation.Type, dto.DropOutcomeApplied, 0)
	return &dto.DropResponse{Outcome: dto.DropOutcomeApplied, View: s.view(state.record, origin)}, nil
}

// Reject discards a pending confirmation.
func (s *ScheduleEditorService) Reject(ctx context.Context, workspaceID, id string) error {
	if _, ok := s.takeConfirmation(workspaceID, id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "confirmation not found")
	}
	return nil
}

// takeConfirmation removes a pending confirmation owned by the workspace.
func (s *ScheduleEditorService) takeConfirmation(workspaceID, id string) (pendingConfirmation, bool) {
	if pending, ok := s.pending.Get(id); !ok || pending.WorkspaceID != workspaceID {
		return pendingConfirmation{}, false
	}
	pending, ok := s.pending.Take(id)
	s.metrics.SetPendingConfirmations(s.pending.Len())
	return pending, ok
}

// Undo restores the previous snapshot of the context's scope.
func (s *ScheduleEditorService) Undo(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error) {
	return s.step(ctx, ec, "undo", s.history.Undo)
}

// Redo re-applies the next snapshot of the context's scope.
func (s *ScheduleEditorService) Redo(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error) {
	return s.step(ctx, ec, "redo", s.history.Redo)
}

func (s *ScheduleEditorService) step(ctx context.Context, ec models.EditContext, op string, fn func(*models.ScheduleRecord, models.EditContext) bool) (*dto.ScheduleView, error) {
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if fn(state.record, ec) {
		s.metrics.RecordHistory(ec.Scope, op)
		s.persist(ctx, state.record)
	}
	return s.view(state.record, ec), nil
}

// ResetWeek removes the week override so the week shows the template again.
func (s *ScheduleEditorService) ResetWeek(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error) {
	ec.Scope = models.EditScopeWeek
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if _, ok := state.record.WeekOverride(ec.WeekID); ok {
		s.history.ResetWeek(state.record, ec)
		s.metrics.RecordHistory(ec.Scope, "reset")
		s.persist(ctx, state.record)
	}
	return s.view(state.record, ec), nil
}

// SetCell replaces the content of one class cell. An empty subject clears it.
func (s *ScheduleEditorService) SetCell(ctx context.Context, ec models.EditContext, req dto.SetCellRequest) (*dto.ScheduleView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cell")
	}
	day, ok := models.ParseWeekday(req.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid day")
	}
	slot := models.Slot{Day: day, Period: req.Period}

	return s.mutate(ctx, ec, func(lessons []models.Lesson, catalog models.Catalog) ([]models.Lesson, bool, error) {
		next, removed := removeClassCell(lessons, req.ClassID, slot)
		if req.SubjectID == "" {
			return next, removed > 0, nil
		}
		next = append(next, s.newLesson(req.ClassID, req.SubjectID, req.TeacherID, slot, req.Room, req.Kind, catalog))
		return next, true, nil
	})
}

// BulkAssign places one subject/teacher pair into many cells of a class. Occupied cells are
// skipped unless Overwrite is set.
func (s *ScheduleEditorService) BulkAssign(ctx context.Context, ec models.EditContext, req dto.BulkAssignRequest) (*dto.ScheduleView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk assignment")
	}
	slots := make([]models.Slot, 0, len(req.Slots))
	for _, raw := range req.Slots {
		day, ok := models.ParseWeekday(raw.Day)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid day %q", raw.Day))
		}
		slots = append(slots, models.Slot{Day: day, Period: raw.Period})
	}

	return s.mutate(ctx, ec, func(lessons []models.Lesson, catalog models.Catalog) ([]models.Lesson, bool, error) {
		next := lessons
		changed := false
		for _, slot := range slots {
			if !req.Overwrite && len(NewConflictDetector(next, catalog).SlotLessons(req.ClassID, slot.Day, slot.Period)) > 0 {
				continue
			}
			next, _ = removeClassCell(next, req.ClassID, slot)
			next = append(next, s.newLesson(req.ClassID, req.SubjectID, req.TeacherID, slot, req.Room, "", catalog))
			changed = true
		}
		return next, changed, nil
	})
}

// DeleteLesson removes one lesson by id.
func (s *ScheduleEditorService) DeleteLesson(ctx context.Context, ec models.EditContext, lessonID string) (*dto.ScheduleView, error) {
	return s.mutate(ctx, ec, func(lessons []models.Lesson, _ models.Catalog) ([]models.Lesson, bool, error) {
		for _, lesson := range lessons {
			if lesson.ID == lessonID {
				return removeLesson(lessons, lesson), true, nil
			}
		}
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, "lesson not found")
	})
}

// CloneTemplateToWeek materialises the template as the week's own override.
func (s *ScheduleEditorService) CloneTemplateToWeek(ctx context.Context, ec models.EditContext) (*dto.ScheduleView, error) {
	ec.Scope = models.EditScopeWeek
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	template := state.record.Schedule
	lessons := make([]models.Lesson, 0, len(template.Lessons()))
	for _, lesson := range template.Lessons() {
		lesson.ID = uuid.NewString()
		lessons = append(lessons, lesson)
	}
	s.commit(ctx, state.record, ec, template.WithLessons(lessons))
	return s.view(state.record, ec), nil
}

// Import accepts a generated schedule as the new template. Without an explicit status the tag
// is derived from the violations found in it.
func (s *ScheduleEditorService) Import(ctx context.Context, ec models.EditContext, req dto.ImportScheduleRequest) (*dto.ScheduleView, error) {
	ec.Scope = models.EditScopeTemplate
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule")
	}
	lessons := make([]models.Lesson, 0, len(req.Schedule))
	for _, lesson := range req.Schedule {
		day, ok := models.ParseWeekday(string(lesson.Day))
		if !ok || !(models.Slot{Day: day, Period: lesson.Period}).Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("lesson %s has an invalid slot", lesson.ID))
		}
		lesson.Day = day
		lesson.IsUnscheduled = false
		if lesson.ID == "" {
			lesson.ID = uuid.NewString()
		}
		if lesson.Kind == "" {
			lesson.Kind = models.LessonKindSingle
		}
		lessons = append(lessons, lesson)
	}

	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	catalog := s.catalog(ctx, ec.WorkspaceID)

	state.mu.Lock()
	defer state.mu.Unlock()

	var snapshot *models.ScheduleResponse
	if req.Status != "" {
		snapshot = &models.ScheduleResponse{Status: models.ScheduleStatus(req.Status), Schedule: lessons, Violations: req.Violations}
	} else {
		snapshot = tagSnapshot(nil, lessons, catalog)
	}
	s.commit(ctx, state.record, ec, snapshot)
	return s.view(state.record, ec), nil
}

// Conflicts answers a highlight query for one slot of the context's week.
func (s *ScheduleEditorService) Conflicts(ctx context.Context, ec models.EditContext, query dto.ConflictQuery) (*dto.ConflictResult, error) {
	if err := validateEditContext(ec); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict query")
	}
	day, ok := models.ParseWeekday(query.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid day")
	}
	if query.TeacherID == "" && query.ClassID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id or class_id is required")
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	catalog := s.catalog(ctx, ec.WorkspaceID)

	state.mu.Lock()
	effective, _ := state.record.Effective(ec.WeekID)
	state.mu.Unlock()

	detector := NewConflictDetector(effective.Lessons(), catalog)
	result := &dto.ConflictResult{}
	if query.TeacherID != "" {
		result.Classes = detector.TeacherConflicts(query.TeacherID, day, query.Period, query.ExcludeClassID)
	}
	if query.ClassID != "" {
		result.Teachers = detector.ClassConflicts(query.ClassID, day, query.Period, query.ExcludeTeacherID)
		result.DoubleBooked = detector.IsDoubleBooked(query.ClassID, day, query.Period)
	}
	return result, nil
}

// Unscheduled lists the plan hours not yet placed in the context's week.
func (s *ScheduleEditorService) Unscheduled(ctx context.Context, ec models.EditContext) ([]models.UnscheduledItem, error) {
	if err := validateEditContext(ec); err != nil {
		return nil, err
	}
	plan, err := s.plans.List(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	effective, _ := state.record.Effective(ec.WeekID)
	state.mu.Unlock()
	return ComputeUnscheduled(plan, effective.Lessons()), nil
}

// Reconcile trims every scope of the workspace schedule against the teaching plan.
func (s *ScheduleEditorService) Reconcile(ctx context.Context, workspaceID string) (models.ReconcileReport, error) {
	plan, err := s.plans.List(ctx, workspaceID)
	if err != nil {
		return models.ReconcileReport{}, err
	}
	state, err := s.state(ctx, workspaceID)
	if err != nil {
		return models.ReconcileReport{}, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	report := ReconcileRecord(plan, state.record)
	if total := report.Total(); total > 0 {
		s.metrics.RecordReconcile(total)
		s.logger.Info("schedule reconciled with plan",
			zap.String("workspace", workspaceID),
			zap.Int("template_removed", report.TemplateRemoved),
			zap.Int("weeks_changed", len(report.WeeksRemoved)),
		)
		if err := s.persist(ctx, state.record); err != nil {
			return report, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save reconciled schedule")
		}
	}
	return report, nil
}

type lessonMutation func(lessons []models.Lesson, catalog models.Catalog) ([]models.Lesson, bool, error)

// mutate runs fn on the snapshot the context's scope edits and records the result in history.
func (s *ScheduleEditorService) mutate(ctx context.Context, ec models.EditContext, fn lessonMutation) (*dto.ScheduleView, error) {
	if err := s.guardMutation(ec); err != nil {
		return nil, err
	}
	state, err := s.state(ctx, ec.WorkspaceID)
	if err != nil {
		return nil, err
	}
	catalog := s.catalog(ctx, ec.WorkspaceID)

	state.mu.Lock()
	defer state.mu.Unlock()

	current := s.current(state.record, ec)
	next, changed, err := fn(current.Lessons(), catalog)
	if err != nil {
		return nil, err
	}
	if changed {
		s.commit(ctx, state.record, ec, tagSnapshot(current, next, catalog))
	}
	return s.view(state.record, ec), nil
}

// commit pushes the snapshot onto the scope's history and queues the record for saving.
func (s *ScheduleEditorService) commit(ctx context.Context, record *models.ScheduleRecord, ec models.EditContext, snapshot *models.ScheduleResponse) {
	s.history.Push(record, ec, snapshot)
	s.metrics.RecordHistory(ec.Scope, "push")
	_ = s.persist(ctx, record)
}

// persist hands a copy of the record to the queue, or saves it inline when no queue is set.
func (s *ScheduleEditorService) persist(ctx context.Context, record *models.ScheduleRecord) error {
	updated := s.now()
	if !updated.After(record.UpdatedAt) {
		updated = record.UpdatedAt.Add(time.Microsecond)
	}
	record.UpdatedAt = updated
	snapshot := record.Clone()

	if s.queue != nil {
		err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: PersistJobType, Payload: snapshot})
		if err == nil {
			s.publish(snapshot)
			return nil
		}
		s.logger.Warn("persist queue unavailable, saving inline", zap.String("workspace", record.WorkspaceID), zap.Error(err))
	}
	if err := s.save(ctx, snapshot); err != nil {
		s.metrics.RecordPersistFailure()
		s.logger.Error("failed to save schedule record", zap.String("workspace", record.WorkspaceID), zap.Error(err))
		return err
	}
	s.publish(snapshot)
	return nil
}

func (s *ScheduleEditorService) publish(record *models.ScheduleRecord) {
	if s.events == nil {
		return
	}
	event := dto.ScheduleEvent{Type: dto.ScheduleEventUpdated, WorkspaceID: record.WorkspaceID, UpdatedAt: record.UpdatedAt}
	if err := s.events.Publish(ScheduleTopic(record.WorkspaceID), event); err != nil {
		s.logger.Warn("schedule event not published", zap.String("workspace", record.WorkspaceID), zap.Error(err))
	}
}

// state returns the in-memory state of a workspace, loading it on first use. Concurrent first
// uses of one workspace share a single load; loads of other workspaces do not wait on it.
func (s *ScheduleEditorService) state(ctx context.Context, workspaceID string) (*workspaceState, error) {
	if state, ok := s.cached(workspaceID); ok {
		return state, nil
	}
	loaded, err, _ := s.loads.Do(workspaceID, func() (interface{}, error) {
		if state, ok := s.cached(workspaceID); ok {
			return state, nil
		}
		start := time.Now()
		record, err := s.records.Get(ctx, workspaceID)
		s.metrics.ObserveDBQuery("schedule_record_get", time.Since(start))
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
			}
			record = models.NewScheduleRecord(workspaceID)
		}
		state := &workspaceState{record: record}
		s.mu.Lock()
		s.workspaces[workspaceID] = state
		s.mu.Unlock()
		return state, nil
	})
	if err != nil {
		return nil, err
	}
	return loaded.(*workspaceState), nil
}

func (s *ScheduleEditorService) cached(workspaceID string) (*workspaceState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.workspaces[workspaceID]
	return state, ok
}

func (s *ScheduleEditorService) catalog(ctx context.Context, workspaceID string) models.Catalog {
	if s.catalogs == nil {
		return models.Catalog{}
	}
	catalog, err := s.catalogs.Load(ctx, workspaceID)
	if err != nil {
		s.logger.Warn("catalog unavailable, using raw ids", zap.String("workspace", workspaceID), zap.Error(err))
		return models.Catalog{}
	}
	return catalog
}

// current returns the snapshot the scope edits: the template, or what the week displays.
func (s *ScheduleEditorService) current(record *models.ScheduleRecord, ec models.EditContext) *models.ScheduleResponse {
	if ec.Scope == models.EditScopeWeek {
		effective, _ := record.Effective(ec.WeekID)
		return effective
	}
	return record.Schedule
}

func (s *ScheduleEditorService) view(record *models.ScheduleRecord, ec models.EditContext) *dto.ScheduleView {
	effective, usingTemplate := record.Effective(ec.WeekID)
	if effective == nil {
		effective = models.NewSuccessResponse([]models.Lesson{})
	}
	undo, redo := s.history.Counts(record, ec)
	return &dto.ScheduleView{
		WorkspaceID:   record.WorkspaceID,
		WeekID:        ec.WeekID,
		Scope:         ec.Scope,
		UsingTemplate: usingTemplate,
		Schedule:      effective,
		CanUndo:       undo > 0,
		CanRedo:       redo > 0,
		UndoCount:     undo,
		RedoCount:     redo,
	}
}

func (s *ScheduleEditorService) newLesson(classID, subjectID, teacherID string, slot models.Slot, room, kind string, catalog models.Catalog) models.Lesson {
	if room == "" {
		room = catalog.DefaultRoom(subjectID)
	}
	lessonKind := models.LessonKind(kind)
	if lessonKind == "" {
		lessonKind = models.LessonKindSingle
	}
	return models.Lesson{
		ID:        uuid.NewString(),
		ClassID:   classID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		Day:       slot.Day,
		Period:    slot.Period,
		Room:      room,
		Kind:      lessonKind,
	}
}

func (s *ScheduleEditorService) guardMutation(ec models.EditContext) error {
	if ec.ReadOnly {
		return appErrors.ErrReadOnly
	}
	return validateEditContext(ec)
}

func validateEditContext(ec models.EditContext) error {
	if ec.WorkspaceID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "workspace is required")
	}
	if !ec.Scope.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "scope must be template or week")
	}
	if _, ok := models.ParseWeekKey(ec.WeekID); !ok {
		return appErrors.Clone(appErrors.ErrValidation, "week must look like 2025-W07")
	}
	return nil
}

// tagSnapshot wraps lessons in a response keeping base's tag. Double bookings switch the tag to
// conflict so they are never stored silently under success.
func tagSnapshot(base *models.ScheduleResponse, lessons []models.Lesson, catalog models.Catalog) *models.ScheduleResponse {
	violations := NewConflictDetector(lessons, catalog).Violations()
	if len(violations) > 0 {
		return &models.ScheduleResponse{Status: models.ScheduleStatusConflict, Schedule: lessons, Violations: violations}
	}
	status := models.ScheduleStatusSuccess
	if base != nil && base.Status != "" {
		status = base.Status
	}
	return &models.ScheduleResponse{Status: status, Schedule: lessons}
}
