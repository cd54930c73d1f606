package models

import "strings"

// Weekday is the code of a teaching day.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// MaxPeriod is the last period index of a teaching day.
const MaxPeriod = 7

// Index returns the 1-based position of the day in the week, 0 when unknown.
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether the day is one of the teaching days.
func (d Weekday) Valid() bool {
	return d.Index() > 0
}

// ParseWeekday normalises a user supplied day name.
func ParseWeekday(raw string) (Weekday, bool) {
	day := Weekday(strings.ToUpper(strings.TrimSpace(raw)))
	return day, day.Valid()
}

// LessonKind distinguishes intentional double lessons from accidental overlaps.
type LessonKind string

const (
	LessonKindSingle LessonKind = "single"
	LessonKindPaired LessonKind = "paired"
)

// Slot addresses one period of one day.
type Slot struct {
	Day    Weekday `json:"day"`
	Period int     `json:"period"`
}

// Valid reports whether the slot is inside the teaching week.
func (s Slot) Valid() bool {
	return s.Day.Valid() && s.Period >= 0 && s.Period <= MaxPeriod
}

// Lesson is one scheduled occupation of a class slot.
type Lesson struct {
	ID            string     `json:"id,omitempty"`
	ClassID       string     `json:"class_id"`
	SubjectID     string     `json:"subject_id"`
	TeacherID     string     `json:"teacher_id"`
	Day           Weekday    `json:"day"`
	Period        int        `json:"period"`
	Room          string     `json:"room,omitempty"`
	Kind          LessonKind `json:"kind,omitempty"`
	IsUnscheduled bool       `json:"is_unscheduled,omitempty"`
}

// LessonKey is the composite identity used for lessons without a surrogate id.
type LessonKey struct {
	ClassID   string
	Day       Weekday
	Period    int
	SubjectID string
}

// Key returns the composite key of the lesson.
func (l Lesson) Key() LessonKey {
	return LessonKey{ClassID: l.ClassID, Day: l.Day, Period: l.Period, SubjectID: l.SubjectID}
}

// Slot returns the day/period the lesson occupies.
func (l Lesson) Slot() Slot {
	return Slot{Day: l.Day, Period: l.Period}
}

// Triple returns the plan triple the lesson counts towards.
func (l Lesson) Triple() PlanTriple {
	return PlanTriple{ClassID: l.ClassID, SubjectID: l.SubjectID, TeacherID: l.TeacherID}
}

// IsPaired reports whether the lesson is part of an intentional double lesson.
func (l Lesson) IsPaired() bool {
	return l.Kind == LessonKindPaired
}

// Same reports whether both values denote the same stored lesson.
func (l Lesson) Same(other Lesson) bool {
	if l.ID != "" && other.ID != "" {
		return l.ID == other.ID
	}
	return l.Key() == other.Key()
}

// ScheduleStatus is the tag of a schedule response.
type ScheduleStatus string

const (
	ScheduleStatusSuccess  ScheduleStatus = "success"
	ScheduleStatusConflict ScheduleStatus = "conflict"
)

// ScheduleConflict describes one double booking found in a schedule.
type ScheduleConflict struct {
	Dimension string   `json:"dimension"`
	Day       Weekday  `json:"day"`
	Period    int      `json:"period"`
	ClassID   string   `json:"class_id,omitempty"`
	TeacherID string   `json:"teacher_id,omitempty"`
	LessonIDs []string `json:"lesson_ids,omitempty"`
	Message   string   `json:"message"`
}

// Conflict dimensions.
const (
	ConflictDimensionTeacher = "TEACHER"
	ConflictDimensionClass   = "CLASS"
)

// ScheduleResponse is a tagged schedule snapshot. Values are treated as immutable:
// every mutation produces a new response through WithLessons.
type ScheduleResponse struct {
	Status     ScheduleStatus     `json:"status"`
	Schedule   []Lesson           `json:"schedule"`
	Violations []ScheduleConflict `json:"violations,omitempty"`
}

// NewSuccessResponse wraps lessons in a success-tagged response.
func NewSuccessResponse(lessons []Lesson) *ScheduleResponse {
	return &ScheduleResponse{Status: ScheduleStatusSuccess, Schedule: lessons}
}

// Lessons returns the schedule array regardless of tag. Nil responses yield nil.
func (r *ScheduleResponse) Lessons() []Lesson {
	if r == nil {
		return nil
	}
	return r.Schedule
}

// IsConflict reports whether the response carries the conflict tag.
func (r *ScheduleResponse) IsConflict() bool {
	return r != nil && r.Status == ScheduleStatusConflict
}

// WithLessons returns a new response with the same tag and violations holding the given lessons.
// A nil receiver produces a success response.
func (r *ScheduleResponse) WithLessons(lessons []Lesson) *ScheduleResponse {
	if r == nil {
		return NewSuccessResponse(lessons)
	}
	return &ScheduleResponse{Status: r.Status, Schedule: lessons, Violations: r.Violations}
}
