package models

import (
	"fmt"
	"time"
)

// EditScope selects which layer of the schedule a mutation targets.
type EditScope string

const (
	EditScopeTemplate EditScope = "template"
	EditScopeWeek     EditScope = "week"
)

// Valid reports whether the scope is known.
func (s EditScope) Valid() bool {
	return s == EditScopeTemplate || s == EditScopeWeek
}

// History is an undo/redo stack for one edit scope. The week stack belongs to the week it was
// last pushed in; WeekID is empty for the template stack.
type History struct {
	WeekID  string              `json:"weekId,omitempty"`
	Past    []*ScheduleResponse `json:"past"`
	Present *ScheduleResponse   `json:"present"`
	Future  []*ScheduleResponse `json:"future"`
}

// ScheduleRecord is the persisted, scope-layered schedule of a workspace.
type ScheduleRecord struct {
	WorkspaceID     string                       `json:"workspaceId"`
	Schedule        *ScheduleResponse            `json:"schedule"`
	WeeklySchedules map[string]*ScheduleResponse `json:"weeklySchedules"`
	TemplateHistory History                      `json:"templateHistory"`
	WeekHistory     History                      `json:"weekHistory"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// NewScheduleRecord returns an empty record for the workspace.
func NewScheduleRecord(workspaceID string) *ScheduleRecord {
	return &ScheduleRecord{
		WorkspaceID:     workspaceID,
		WeeklySchedules: make(map[string]*ScheduleResponse),
	}
}

// Clone copies the record containers. Schedule responses are immutable and shared.
func (r *ScheduleRecord) Clone() *ScheduleRecord {
	if r == nil {
		return nil
	}
	clone := *r
	clone.WeeklySchedules = make(map[string]*ScheduleResponse, len(r.WeeklySchedules))
	for week, resp := range r.WeeklySchedules {
		clone.WeeklySchedules[week] = resp
	}
	clone.TemplateHistory = r.TemplateHistory.clone()
	clone.WeekHistory = r.WeekHistory.clone()
	return &clone
}

func (h History) clone() History {
	return History{
		WeekID:  h.WeekID,
		Past:    append([]*ScheduleResponse(nil), h.Past...),
		Present: h.Present,
		Future:  append([]*ScheduleResponse(nil), h.Future...),
	}
}

// WeekOverride returns the override stored for the week, if any.
func (r *ScheduleRecord) WeekOverride(weekID string) (*ScheduleResponse, bool) {
	if r == nil || r.WeeklySchedules == nil {
		return nil, false
	}
	resp, ok := r.WeeklySchedules[weekID]
	return resp, ok
}

// Effective returns what the week displays: its override or the template.
func (r *ScheduleRecord) Effective(weekID string) (*ScheduleResponse, bool) {
	if r == nil {
		return nil, true
	}
	if resp, ok := r.WeekOverride(weekID); ok {
		return resp, false
	}
	return r.Schedule, true
}

// SetWeekOverride stores an override for the week.
func (r *ScheduleRecord) SetWeekOverride(weekID string, resp *ScheduleResponse) {
	if r.WeeklySchedules == nil {
		r.WeeklySchedules = make(map[string]*ScheduleResponse)
	}
	r.WeeklySchedules[weekID] = resp
}

// EditContext carries the caller state every engine call needs.
type EditContext struct {
	WorkspaceID string
	Scope       EditScope
	WeekID      string
	ReadOnly    bool
}

// WeekKey formats the ISO year-week key for a date, e.g. 2025-W07.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeekKey validates a year-week key.
func ParseWeekKey(raw string) (string, bool) {
	var year, week int
	if _, err := fmt.Sscanf(raw, "%d-W%d", &year, &week); err != nil {
		return "", false
	}
	if year < 1970 || week < 1 || week > 53 {
		return "", false
	}
	key := fmt.Sprintf("%d-W%02d", year, week)
	return key, key == raw
}
