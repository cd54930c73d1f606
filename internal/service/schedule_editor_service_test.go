package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-editor/internal/dto"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
	"github.com/noah-isme/sma-schedule-editor/pkg/jobs"
)

type recordStoreStub struct {
	mu      sync.Mutex
	records map[string]*models.ScheduleRecord
	saved   []*models.ScheduleRecord
	getErr  error
	saveErr error
}

func newRecordStoreStub(records ...*models.ScheduleRecord) *recordStoreStub {
	stub := &recordStoreStub{records: make(map[string]*models.ScheduleRecord)}
	for _, record := range records {
		stub.records[record.WorkspaceID] = record
	}
	return stub
}

func (s *recordStoreStub) Get(ctx context.Context, workspaceID string) (*models.ScheduleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	record, ok := s.records[workspaceID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return record, nil
}

func (s *recordStoreStub) Save(ctx context.Context, record *models.ScheduleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, record)
	return nil
}

func (s *recordStoreStub) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

type planListerStub struct {
	items []models.TeachingPlanItem
	err   error
}

func (s *planListerStub) List(ctx context.Context, workspaceID string) ([]models.TeachingPlanItem, error) {
	return s.items, s.err
}

type catalogLoaderStub struct {
	catalog models.Catalog
	err     error
}

func (s *catalogLoaderStub) Load(ctx context.Context, workspaceID string) (models.Catalog, error) {
	return s.catalog, s.err
}

type enqueuerStub struct {
	jobs []jobs.Job
	err  error
}

func (s *enqueuerStub) Enqueue(job jobs.Job) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

type eventsStub struct {
	topics []string
	events []dto.ScheduleEvent
	err    error
}

func (s *eventsStub) Publish(topic string, v interface{}) error {
	s.topics = append(s.topics, topic)
	s.events = append(s.events, v.(dto.ScheduleEvent))
	return s.err
}

func seededRecord(lessons ...models.Lesson) *models.ScheduleRecord {
	record := models.NewScheduleRecord("ws-1")
	record.Schedule = models.NewSuccessResponse(lessons)
	return record
}

func newTestEditor(store *recordStoreStub, plan []models.TeachingPlanItem) (*ScheduleEditorService, *MetricsService) {
	metrics := NewMetricsService()
	editor := NewScheduleEditorService(store, &planListerStub{items: plan}, &catalogLoaderStub{catalog: testCatalog()}, metrics, nil, nil, ScheduleEditorConfig{})
	return editor, metrics
}

func dropRequest(t *testing.T, payload interface{}, target dto.DropTargetRequest, copyMode bool) dto.DropRequest {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return dto.DropRequest{Payload: raw, Target: target, Copy: copyMode}
}

func lessonPayload(l models.Lesson) map[string]interface{} {
	return map[string]interface{}{
		"id":         l.ID,
		"class_id":   l.ClassID,
		"subject_id": l.SubjectID,
		"teacher_id": l.TeacherID,
		"day":        string(l.Day),
		"period":     l.Period,
		"kind":       string(l.Kind),
	}
}

var editWeek = templateCtx("2025-W07")

func TestScheduleEditorViewOfNewWorkspace(t *testing.T) {
	editor, _ := newTestEditor(newRecordStoreStub(), nil)

	view, err := editor.View(context.Background(), weekCtx("2025-W07"))

	require.NoError(t, err)
	assert.True(t, view.UsingTemplate)
	assert.Empty(t, view.Schedule.Lessons())
	assert.Equal(t, models.ScheduleStatusSuccess, view.Schedule.Status)
	assert.False(t, view.CanUndo)
}

func TestScheduleEditorRejectsInvalidContext(t *testing.T) {
	editor, _ := newTestEditor(newRecordStoreStub(), nil)

	_, err := editor.View(context.Background(), models.EditContext{WorkspaceID: "ws-1", Scope: models.EditScopeWeek, WeekID: "2025-7"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = editor.View(context.Background(), models.EditContext{WorkspaceID: "ws-1", Scope: "month", WeekID: "2025-W07"})
	require.Error(t, err)
}

func TestScheduleEditorReadOnlyRejectsMutations(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	store := newRecordStoreStub(seededRecord(a))
	editor, _ := newTestEditor(store, nil)
	ec := weekCtx("2025-W07")
	ec.ReadOnly = true

	_, err := editor.Drop(context.Background(), ec, dropRequest(t, lessonPayload(a), dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "TUESDAY", Period: 2}, false))
	assert.ErrorIs(t, err, appErrors.ErrReadOnly)
	_, err = editor.Undo(context.Background(), ec)
	assert.ErrorIs(t, err, appErrors.ErrReadOnly)
	_, err = editor.ResetWeek(context.Background(), ec)
	assert.ErrorIs(t, err, appErrors.ErrReadOnly)
	_, err = editor.DeleteLesson(context.Background(), ec, "a")
	assert.ErrorIs(t, err, appErrors.ErrReadOnly)

	view, err := editor.View(context.Background(), ec)
	require.NoError(t, err)
	assert.Len(t, view.Schedule.Lessons(), 1)
	assert.Zero(t, store.savedCount())
}

func TestScheduleEditorMalformedPayloadIsNoop(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	store := newRecordStoreStub(seededRecord(a))
	editor, _ := newTestEditor(store, nil)
	target := dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "TUESDAY", Period: 2}

	for _, payload := range []interface{}{
		map[string]interface{}{"class_id": "x1"},
		map[string]interface{}{"class_id": "x1", "subject_id": "math", "teacher_id": "t1"},
		"not-an-object",
	} {
		resp, err := editor.Drop(context.Background(), editWeek, dropRequest(t, payload, target, false))
		require.NoError(t, err)
		assert.Equal(t, dto.DropOutcomeNoop, resp.Outcome)
	}
	assert.Zero(t, store.savedCount())
}

func TestScheduleEditorDropMoveAppliesAndPersists(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	store := newRecordStoreStub(seededRecord(a))
	editor, metrics := newTestEditor(store, nil)

	resp, err := editor.Drop(context.Background(), editWeek, dropRequest(t, lessonPayload(a), dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "wednesday", Period: 3}, false))

	require.NoError(t, err)
	assert.Equal(t, dto.DropOutcomeApplied, resp.Outcome)
	lessons := resp.View.Schedule.Lessons()
	require.Len(t, lessons, 1)
	assert.Equal(t, models.Wednesday, lessons[0].Day)
	assert.True(t, resp.View.CanUndo)
	assert.Equal(t, 1, store.savedCount())
	assert.EqualValues(t, 1, metrics.Snapshot().DropsTotal)
}

func TestScheduleEditorConfirmedConflictIsTagged(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	busy := mkLesson("c", "x2", "math", "t1", models.Wednesday, 3)
	store := newRecordStoreStub(seededRecord(a, busy))
	editor, metrics := newTestEditor(store, nil)

	resp, err := editor.Drop(context.Background(), editWeek, dropRequest(t, lessonPayload(a), dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "WEDNESDAY", Period: 3}, false))
	require.NoError(t, err)
	require.Equal(t, dto.DropOutcomePending, resp.Outcome)
	require.NotNil(t, resp.Confirmation)
	assert.NotEmpty(t, resp.Confirmation.Conflicts)
	assert.Zero(t, store.savedCount(), "nothing changes before confirmation")

	confirmed, err := editor.Confirm(context.Background(), editWeek, resp.Confirmation.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.DropOutcomeApplied, confirmed.Outcome)
	schedule := confirmed.View.Schedule
	assert.Equal(t, models.ScheduleStatusConflict, schedule.Status)
	require.NotEmpty(t, schedule.Violations)
	assert.Equal(t, models.ConflictDimensionTeacher, schedule.Violations[0].Dimension)
	assert.EqualValues(t, 1, metrics.Snapshot().ConflictingDrops)

	_, err = editor.Confirm(context.Background(), editWeek, resp.Confirmation.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func lessonByID(t *testing.T, lessons []models.Lesson, id string) models.Lesson {
	t.Helper()
	for _, lesson := range lessons {
		if lesson.ID == id {
			return lesson
		}
	}
	t.Fatalf("lesson %s not found", id)
	return models.Lesson{}
}

func TestScheduleEditorConfirmAppliesInDropContext(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	busy := mkLesson("c", "x2", "math", "t1", models.Wednesday, 3)
	editor, _ := newTestEditor(newRecordStoreStub(seededRecord(a, busy)), nil)
	ctx := context.Background()
	week := weekCtx("2025-W07")

	resp, err := editor.Drop(ctx, week, dropRequest(t, lessonPayload(a), dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "WEDNESDAY", Period: 3}, false))
	require.NoError(t, err)
	require.Equal(t, dto.DropOutcomePending, resp.Outcome)

	confirmed, err := editor.Confirm(ctx, templateCtx("2025-W08"), resp.Confirmation.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.DropOutcomeApplied, confirmed.Outcome)
	assert.Equal(t, models.EditScopeWeek, confirmed.View.Scope)
	assert.Equal(t, "2025-W07", confirmed.View.WeekID)

	weekView, err := editor.View(ctx, week)
	require.NoError(t, err)
	assert.False(t, weekView.UsingTemplate)
	moved := lessonByID(t, weekView.Schedule.Lessons(), "a")
	assert.Equal(t, models.Wednesday, moved.Day)
	assert.Equal(t, 3, moved.Period)

	template, err := editor.View(ctx, templateCtx("2025-W08"))
	require.NoError(t, err)
	kept := lessonByID(t, template.Schedule.Lessons(), "a")
	assert.Equal(t, models.Monday, kept.Day, "the template is not where the drop was made")
	assert.False(t, template.CanUndo)
}

func TestScheduleEditorConfirmHonoursCallerReadOnly(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	busy := mkLesson("c", "x2", "math", "t1", models.Wednesday, 3)
	editor, _ := newTestEditor(newRecordStoreStub(seededRecord(a, busy)), nil)
	week := weekCtx("2025-W07")

	resp, err := editor.Drop(context.Background(), week, dropRequest(t, lessonPayload(a), dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "WEDNESDAY", Period: 3}, false))
	require.NoError(t, err)
	require.NotNil(t, resp.Confirmation)

	readOnly := week
	readOnly.ReadOnly = true
	_, err = editor.Confirm(context.Background(), readOnly, resp.Confirmation.ID)
	require.Error(t, err)
}

func TestScheduleEditorSuccessTagNeverHidesDoubleBooking(t *testing.T) {
	lessons := []models.Lesson{
		mkLesson("a", "x1", "math", "t1", models.Monday, 1),
		mkLesson("b", "x2", "bio", "t2", models.Monday, 2),
		mkLesson("c", "x2", "math", "t1", models.Tuesday, 1),
		mkLesson("d", "x1", "bio", "t2", models.Tuesday, 2),
	}
	editor, _ := newTestEditor(newRecordStoreStub(seededRecord(lessons...)), nil)
	ctx := context.Background()

	gestures := []struct {
		source models.Lesson
		target dto.DropTargetRequest
		copy   bool
	}{
		{lessons[0], dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "TUESDAY", Period: 1}, false},
		{lessons[1], dto.DropTargetRequest{View: "teacher", ContainerID: "t1", Day: "MONDAY", Period: 1}, false},
		{lessons[2], dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "TUESDAY", Period: 2}, true},
		{lessons[3], dto.DropTargetRequest{View: "matrix", ContainerID: "x2", Day: "MONDAY", Period: 2}, false},
	}
	for _, gesture := range gestures {
		view, err := editor.View(ctx, editWeek)
		require.NoError(t, err)
		current, ok := findLesson(view.Schedule.Lessons(), gesture.source)
		if !ok {
			continue
		}
		resp, err := editor.Drop(ctx, editWeek, dropRequest(t, lessonPayload(current), gesture.target, gesture.copy))
		require.NoError(t, err)
		if resp.Confirmation != nil {
			resp, err = editor.Confirm(ctx, editWeek, resp.Confirmation.ID)
			require.NoError(t, err)
		}

		schedule := resp.View.Schedule
		if schedule.Status != models.ScheduleStatusSuccess {
			continue
		}
		seen := make(map[string]string)
		for _, l := range schedule.Lessons() {
			key := fmt.Sprintf("%s|%s|%d", l.TeacherID, l.Day, l.Period)
			if other, dup := seen[key]; dup {
				t.Fatalf("success schedule double-books %s: %s and %s", key, other, l.ID)
			}
			seen[key] = l.ID
		}
	}
}

func TestScheduleEditorRejectConfirmation(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	b := mkLesson("b", "x1", "bio", "t2", models.Tuesday, 2)
	editor, _ := newTestEditor(newRecordStoreStub(seededRecord(a, b)), nil)

	resp, err := editor.Drop(context.Background(), editWeek, dropRequest(t, lessonPayload(a), dto.DropTargetRequest{View: "class", ContainerID: "x1", Day: "TUESDAY", Period: 2}, false))
	require.NoError(t, err)
	require.NotNil(t, resp.Confirmation)
	assert.Equal(t, models.TransitionSwap, resp.Confirmation.Type)

	require.Error(t, editor.Reject(context.Background(), "ws-other", resp.Confirmation.ID))
	require.NoError(t, editor.Reject(context.Background(), "ws-1", resp.Confirmation.ID))
	require.Error(t, editor.Reject(context.Background(), "ws-1", resp.Confirmation.ID))

	view, err := editor.View(context.Background(), editWeek)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Lesson{a, b}, view.Schedule.Lessons())
}

func TestScheduleEditorUndoRedoByScope(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	store := newRecordStoreStub(seededRecord(a))
	editor, _ := newTestEditor(store, nil)
	ctx := context.Background()
	week := weekCtx("2025-W07")

	view, err := editor.DeleteLesson(ctx, week, "a")
	require.NoError(t, err)
	assert.Empty(t, view.Schedule.Lessons())
	assert.False(t, view.UsingTemplate)

	template, err := editor.View(ctx, templateCtx("2025-W08"))
	require.NoError(t, err)
	assert.Len(t, template.Schedule.Lessons(), 1, "week edits leave the template alone")
	assert.False(t, template.CanUndo)

	view, err = editor.Undo(ctx, week)
	require.NoError(t, err)
	assert.Len(t, view.Schedule.Lessons(), 1)
	assert.True(t, view.CanRedo)

	view, err = editor.Redo(ctx, week)
	require.NoError(t, err)
	assert.Empty(t, view.Schedule.Lessons())

	view, err = editor.Undo(ctx, templateCtx("2025-W07"))
	require.NoError(t, err)
	assert.Empty(t, view.Schedule.Lessons(), "template undo with empty stack is a no-op")
}

func TestScheduleEditorResetWeek(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	store := newRecordStoreStub(seededRecord(a))
	editor, _ := newTestEditor(store, nil)
	ctx := context.Background()
	week := weekCtx("2025-W07")

	view, err := editor.ResetWeek(ctx, week)
	require.NoError(t, err)
	assert.True(t, view.UsingTemplate)
	assert.Zero(t, store.savedCount(), "nothing to reset")

	_, err = editor.DeleteLesson(ctx, week, "a")
	require.NoError(t, err)

	view, err = editor.ResetWeek(ctx, week)
	require.NoError(t, err)
	assert.True(t, view.UsingTemplate)
	assert.Len(t, view.Schedule.Lessons(), 1)

	view, err = editor.Undo(ctx, week)
	require.NoError(t, err)
	assert.False(t, view.UsingTemplate)
	assert.Empty(t, view.Schedule.Lessons())
}

func TestScheduleEditorCellEditing(t *testing.T) {
	store := newRecordStoreStub(seededRecord(mkLesson("a", "x1", "math", "t1", models.Monday, 1)))
	editor, _ := newTestEditor(store, nil)
	ctx := context.Background()

	view, err := editor.SetCell(ctx, editWeek, dto.SetCellRequest{ClassID: "x1", Day: "MONDAY", Period: 1, SubjectID: "bio", TeacherID: "t2"})
	require.NoError(t, err)
	cell := lessonAt(view.Schedule.Lessons(), "x1", models.Monday, 1)
	require.Len(t, cell, 1)
	assert.Equal(t, "bio", cell[0].SubjectID)
	assert.Equal(t, "LAB-1", cell[0].Room)
	assert.NotEmpty(t, cell[0].ID)

	view, err = editor.SetCell(ctx, editWeek, dto.SetCellRequest{ClassID: "x1", Day: "MONDAY", Period: 1})
	require.NoError(t, err)
	assert.Empty(t, view.Schedule.Lessons())

	_, err = editor.SetCell(ctx, editWeek, dto.SetCellRequest{ClassID: "x1", Day: "SUNDAY", Period: 1})
	require.Error(t, err)
}

func TestScheduleEditorBulkAssignSkipsOccupiedCells(t *testing.T) {
	store := newRecordStoreStub(seededRecord(mkLesson("a", "x1", "bio", "t2", models.Monday, 1)))
	editor, _ := newTestEditor(store, nil)

	req := dto.BulkAssignRequest{
		ClassID:   "x1",
		SubjectID: "math",
		TeacherID: "t1",
		Slots:     []dto.SlotRequest{{Day: "MONDAY", Period: 1}, {Day: "MONDAY", Period: 2}, {Day: "TUESDAY", Period: 0}},
	}
	view, err := editor.BulkAssign(context.Background(), editWeek, req)
	require.NoError(t, err)
	assert.Len(t, view.Schedule.Lessons(), 3)
	assert.Equal(t, "bio", lessonAt(view.Schedule.Lessons(), "x1", models.Monday, 1)[0].SubjectID)

	req.Overwrite = true
	view, err = editor.BulkAssign(context.Background(), editWeek, req)
	require.NoError(t, err)
	assert.Len(t, view.Schedule.Lessons(), 3)
	assert.Equal(t, "math", lessonAt(view.Schedule.Lessons(), "x1", models.Monday, 1)[0].SubjectID)
}

func TestScheduleEditorDeleteUnknownLesson(t *testing.T) {
	editor, _ := newTestEditor(newRecordStoreStub(seededRecord()), nil)

	_, err := editor.DeleteLesson(context.Background(), editWeek, "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleEditorCloneTemplateToWeek(t *testing.T) {
	a := mkLesson("a", "x1", "math", "t1", models.Monday, 1)
	editor, _ := newTestEditor(newRecordStoreStub(seededRecord(a)), nil)

	view, err := editor.CloneTemplateToWeek(context.Background(), templateCtx("2025-W09"))
	require.NoError(t, err)
	assert.False(t, view.UsingTemplate)
	assert.Equal(t, models.EditScopeWeek, view.Scope)
	require.Len(t, view.Schedule.Lessons(), 1)
	assert.NotEqual(t, "a", view.Schedule.Lessons()[0].ID)
}

func TestScheduleEditorImportTagsConflicts(t *testing.T) {
	editor, _ := newTestEditor(newRecordStoreStub(), nil)

	view, err := editor.Import(context.Background(), weekCtx("2025-W07"), dto.ImportScheduleRequest{Schedule: []models.Lesson{
		{ClassID: "x1", SubjectID: "math", TeacherID: "t1", Day: "monday", Period: 1},
		{ClassID: "x2", SubjectID: "math", TeacherID: "t1", Day: models.Monday, Period: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusConflict, view.Schedule.Status)
	for _, l := range view.Schedule.Lessons() {
		assert.NotEmpty(t, l.ID)
		assert.Equal(t, models.Monday, l.Day)
		assert.Equal(t, models.LessonKindSingle, l.Kind)
	}

	_, err = editor.Import(context.Background(), editWeek, dto.ImportScheduleRequest{Schedule: []models.Lesson{
		{ClassID: "x1", SubjectID: "math", TeacherID: "t1", Day: models.Monday, Period: 8},
	}})
	require.Error(t, err)
}

func TestScheduleEditorConflictsQuery(t *testing.T) {
	store := newRecordStoreStub(seededRecord(
		mkLesson("a", "x1", "math", "t1", models.Monday, 1),
		mkLesson("b", "x2", "bio", "t2", models.Monday, 1),
		mkLesson("c", "x2", "math", "t3", models.Monday, 1),
	))
	editor, _ := newTestEditor(store, nil)

	result, err := editor.Conflicts(context.Background(), editWeek, dto.ConflictQuery{TeacherID: "t1", ClassID: "x2", Day: "MONDAY", Period: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"X-1"}, result.Classes)
	assert.Equal(t, []string{"Budi", "Citra"}, result.Teachers)
	assert.True(t, result.DoubleBooked)

	_, err = editor.Conflicts(context.Background(), editWeek, dto.ConflictQuery{Day: "MONDAY", Period: 1})
	require.Error(t, err)
}

func TestScheduleEditorUnscheduledAndReconcile(t *testing.T) {
	store := newRecordStoreStub(seededRecord(
		mkLesson("mon", "x1", "math", "t1", models.Monday, 1),
		mkLesson("tue", "x1", "math", "t1", models.Tuesday, 1),
		mkLesson("fri", "x1", "math", "t1", models.Friday, 1),
	))
	plan := []models.TeachingPlanItem{
		{ClassID: "x1", SubjectID: "math", TeacherID: "t1", HoursPerWeek: 2},
		{ClassID: "x1", SubjectID: "bio", TeacherID: "t2", HoursPerWeek: 3},
	}
	editor, metrics := newTestEditor(store, plan)
	ctx := context.Background()

	items, err := editor.Unscheduled(ctx, editWeek)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].RemainingHours)

	report, err := editor.Reconcile(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TemplateRemoved)
	assert.Equal(t, 1, store.savedCount())
	assert.EqualValues(t, 1, metrics.Snapshot().LessonsTrimmed)

	view, err := editor.View(ctx, editWeek)
	require.NoError(t, err)
	ids := []string{}
	for _, l := range view.Schedule.Lessons() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"mon", "tue"}, ids)

	report, err = editor.Reconcile(ctx, "ws-1")
	require.NoError(t, err)
	assert.Zero(t, report.Total())
	assert.Equal(t, 1, store.savedCount(), "second pass changes nothing")
}

func TestScheduleEditorPersistsThroughQueue(t *testing.T) {
	store := newRecordStoreStub(seededRecord(mkLesson("a", "x1", "math", "t1", models.Monday, 1)))
	editor, _ := newTestEditor(store, nil)
	queue := &enqueuerStub{}
	editor.UseQueue(queue)

	_, err := editor.DeleteLesson(context.Background(), editWeek, "a")
	require.NoError(t, err)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, PersistJobType, queue.jobs[0].Type)
	assert.Zero(t, store.savedCount())

	require.NoError(t, editor.PersistJob(context.Background(), queue.jobs[0]))
	require.Equal(t, 1, store.savedCount())
	saved := store.saved[0]
	assert.Empty(t, saved.Schedule.Lessons())
	assert.Error(t, editor.PersistJob(context.Background(), jobs.Job{ID: "bad", Payload: "oops"}))

	queue.err = errors.New("queue full")
	_, err = editor.SetCell(context.Background(), editWeek, dto.SetCellRequest{ClassID: "x1", Day: "MONDAY", Period: 2, SubjectID: "math", TeacherID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 2, store.savedCount(), "falls back to an inline save")
	assert.True(t, store.saved[1].UpdatedAt.After(saved.UpdatedAt))
}

func TestScheduleEditorPersistFailureDoesNotFailMutation(t *testing.T) {
	store := newRecordStoreStub(seededRecord(mkLesson("a", "x1", "math", "t1", models.Monday, 1)))
	store.saveErr = errors.New("database unavailable")
	editor, metrics := newTestEditor(store, nil)

	view, err := editor.DeleteLesson(context.Background(), editWeek, "a")
	require.NoError(t, err)
	assert.Empty(t, view.Schedule.Lessons())
	assert.EqualValues(t, 1, metrics.Snapshot().PersistFailures)

	editor.PersistFailed(jobs.Job{ID: "job-1"}, errors.New("gave up"))
	assert.EqualValues(t, 2, metrics.Snapshot().PersistFailures)
}

func TestScheduleEditorPublishesChanges(t *testing.T) {
	store := newRecordStoreStub(seededRecord(mkLesson("a", "x1", "math", "t1", models.Monday, 1)))
	editor, _ := newTestEditor(store, nil)
	events := &eventsStub{}
	editor.UseEvents(events)

	_, err := editor.View(context.Background(), editWeek)
	require.NoError(t, err)
	assert.Empty(t, events.events, "reads publish nothing")

	_, err = editor.DeleteLesson(context.Background(), editWeek, "a")
	require.NoError(t, err)
	require.Len(t, events.events, 1)
	assert.Equal(t, "schedule:ws-1", events.topics[0])
	assert.Equal(t, dto.ScheduleEventUpdated, events.events[0].Type)
	assert.Equal(t, "ws-1", events.events[0].WorkspaceID)
	assert.Equal(t, store.saved[0].UpdatedAt, events.events[0].UpdatedAt)

	events.err = errors.New("hub closed")
	_, err = editor.SetCell(context.Background(), editWeek, dto.SetCellRequest{ClassID: "x1", Day: "MONDAY", Period: 2, SubjectID: "math", TeacherID: "t1"})
	require.NoError(t, err, "a failed publish never fails the edit")

	store.saveErr = errors.New("database unavailable")
	_, err = editor.SetCell(context.Background(), editWeek, dto.SetCellRequest{ClassID: "x1", Day: "MONDAY", Period: 3, SubjectID: "math", TeacherID: "t1"})
	require.NoError(t, err)
	assert.Len(t, events.events, 2, "unsaved changes are not announced")
}

func TestScheduleEditorLoadFailure(t *testing.T) {
	store := newRecordStoreStub()
	store.getErr = errors.New("connection reset")
	editor, _ := newTestEditor(store, nil)

	_, err := editor.View(context.Background(), editWeek)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

type blockingRecordStore struct {
	*recordStoreStub
	slowWorkspace string
	entered       chan struct{}
	release       chan struct{}
}

func (s *blockingRecordStore) Get(ctx context.Context, workspaceID string) (*models.ScheduleRecord, error) {
	if workspaceID == s.slowWorkspace {
		close(s.entered)
		<-s.release
	}
	return s.recordStoreStub.Get(ctx, workspaceID)
}

func TestScheduleEditorSlowLoadDoesNotBlockOtherWorkspaces(t *testing.T) {
	store := &blockingRecordStore{
		recordStoreStub: newRecordStoreStub(seededRecord(mkLesson("a", "x1", "math", "t1", models.Monday, 1))),
		slowWorkspace:   "ws-slow",
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	editor := NewScheduleEditorService(store, &planListerStub{}, &catalogLoaderStub{catalog: testCatalog()}, NewMetricsService(), nil, nil, ScheduleEditorConfig{})
	slow := models.EditContext{WorkspaceID: "ws-slow", Scope: models.EditScopeWeek, WeekID: "2025-W07"}

	slowDone := make(chan error, 1)
	go func() {
		_, err := editor.View(context.Background(), slow)
		slowDone <- err
	}()
	<-store.entered

	fastDone := make(chan error, 1)
	go func() {
		view, err := editor.View(context.Background(), weekCtx("2025-W07"))
		if err == nil && len(view.Schedule.Lessons()) != 1 {
			err = fmt.Errorf("unexpected lessons: %d", len(view.Schedule.Lessons()))
		}
		fastDone <- err
	}()

	select {
	case err := <-fastDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("view of ws-1 waited on the ws-slow load")
	}

	close(store.release)
	require.NoError(t, <-slowDone)
	view, err := editor.View(context.Background(), slow)
	require.NoError(t, err)
	assert.Empty(t, view.Schedule.Lessons())
}
