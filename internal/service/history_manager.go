package service

import "github.com/noah-isme/sma-schedule-editor/internal/models"

// DefaultHistoryLimit bounds the number of past snapshots kept per scope.
const DefaultHistoryLimit = 50

// HistoryManager maintains the undo/redo stacks of a schedule record and commits
// snapshots into the layer selected by the edit context.
type HistoryManager struct {
	limit int
}

// NewHistoryManager returns a manager keeping at most limit past snapshots per scope.
func NewHistoryManager(limit int) *HistoryManager {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryManager{limit: limit}
}

// Push records next as the present snapshot of the scope and commits it. The previous
// present moves to the past and the redo stack is cleared. A week edit in another week than
// the stack's starts a fresh stack from what that week shows.
func (m *HistoryManager) Push(record *models.ScheduleRecord, ctx models.EditContext, next *models.ScheduleResponse) {
	history := m.history(record, ctx.Scope)
	if ctx.Scope == models.EditScopeWeek && history.WeekID != ctx.WeekID {
		*history = models.History{WeekID: ctx.WeekID}
	}
	present := history.Present
	if present == nil {
		present = live(record, ctx)
	}

	if present == nil {
		*history = models.History{WeekID: history.WeekID, Present: next}
	} else {
		past := make([]*models.ScheduleResponse, 0, len(history.Past)+1)
		past = append(past, history.Past...)
		past = append(past, present)
		if overflow := len(past) - m.limit; overflow > 0 {
			past = past[overflow:]
		}
		*history = models.History{WeekID: history.WeekID, Past: past, Present: next}
	}
	commit(record, ctx, next)
}

// Undo restores the previous snapshot of the scope. It reports false when there is
// nothing to undo.
func (m *HistoryManager) Undo(record *models.ScheduleRecord, ctx models.EditContext) bool {
	history := m.stack(record, ctx)
	if len(history.Past) == 0 {
		return false
	}
	current := history.Present
	if current == nil && ctx.Scope == models.EditScopeTemplate {
		current = record.Schedule
	}
	previous := history.Past[len(history.Past)-1]

	future := make([]*models.ScheduleResponse, 0, len(history.Future)+1)
	future = append(future, current)
	future = append(future, history.Future...)
	*history = models.History{
		WeekID:  history.WeekID,
		Past:    append([]*models.ScheduleResponse(nil), history.Past[:len(history.Past)-1]...),
		Present: previous,
		Future:  future,
	}
	commit(record, ctx, previous)
	return true
}

// Redo re-applies the next snapshot of the scope. It reports false when there is
// nothing to redo.
func (m *HistoryManager) Redo(record *models.ScheduleRecord, ctx models.EditContext) bool {
	history := m.stack(record, ctx)
	if len(history.Future) == 0 {
		return false
	}
	current := history.Present
	if current == nil && ctx.Scope == models.EditScopeTemplate {
		current = record.Schedule
	}
	next := history.Future[0]

	past := make([]*models.ScheduleResponse, 0, len(history.Past)+1)
	past = append(past, history.Past...)
	past = append(past, current)
	if overflow := len(past) - m.limit; overflow > 0 {
		past = past[overflow:]
	}
	*history = models.History{
		WeekID:  history.WeekID,
		Past:    past,
		Present: next,
		Future:  append([]*models.ScheduleResponse(nil), history.Future[1:]...),
	}
	commit(record, ctx, next)
	return true
}

// ResetWeek drops the override of the context's week through the week history so the
// reset can be undone.
func (m *HistoryManager) ResetWeek(record *models.ScheduleRecord, ctx models.EditContext) {
	ctx.Scope = models.EditScopeWeek
	m.Push(record, ctx, nil)
}

// CanUndo reports whether the context has a past snapshot.
func (m *HistoryManager) CanUndo(record *models.ScheduleRecord, ctx models.EditContext) bool {
	return len(m.stack(record, ctx).Past) > 0
}

// CanRedo reports whether the context has a future snapshot.
func (m *HistoryManager) CanRedo(record *models.ScheduleRecord, ctx models.EditContext) bool {
	return len(m.stack(record, ctx).Future) > 0
}

// Counts returns the undo and redo depth of the context.
func (m *HistoryManager) Counts(record *models.ScheduleRecord, ctx models.EditContext) (int, int) {
	history := m.stack(record, ctx)
	return len(history.Past), len(history.Future)
}

// stack returns the history the context may step through. The week stack of another week is
// empty to this one.
func (m *HistoryManager) stack(record *models.ScheduleRecord, ctx models.EditContext) *models.History {
	history := m.history(record, ctx.Scope)
	if ctx.Scope == models.EditScopeWeek && history.WeekID != ctx.WeekID {
		return &models.History{}
	}
	return history
}

func (m *HistoryManager) history(record *models.ScheduleRecord, scope models.EditScope) *models.History {
	if scope == models.EditScopeWeek {
		return &record.WeekHistory
	}
	return &record.TemplateHistory
}

// live returns what the scope currently shows when its history has no present.
func live(record *models.ScheduleRecord, ctx models.EditContext) *models.ScheduleResponse {
	if ctx.Scope == models.EditScopeWeek {
		effective, _ := record.Effective(ctx.WeekID)
		return effective
	}
	return record.Schedule
}

// commit writes a snapshot into the layer of the scope. Template edits also become the
// override of the week being viewed; a nil week snapshot removes the override.
func commit(record *models.ScheduleRecord, ctx models.EditContext, snapshot *models.ScheduleResponse) {
	switch ctx.Scope {
	case models.EditScopeWeek:
		if snapshot == nil {
			delete(record.WeeklySchedules, ctx.WeekID)
			return
		}
		record.SetWeekOverride(ctx.WeekID, snapshot)
	default:
		record.Schedule = snapshot
		if ctx.WeekID != "" && snapshot != nil {
			record.SetWeekOverride(ctx.WeekID, snapshot)
		}
	}
}
