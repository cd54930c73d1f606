package models

import "time"

// ScheduleView is the grid a drop target belongs to.
type ScheduleView string

const (
	ViewClass   ScheduleView = "class"
	ViewTeacher ScheduleView = "teacher"
	ViewMatrix  ScheduleView = "matrix"
)

// TeacherIndexed reports whether containers in the view are teachers.
func (v ScheduleView) TeacherIndexed() bool {
	return v == ViewTeacher
}

// DropTarget addresses the cell a card was dropped on.
type DropTarget struct {
	View        ScheduleView `json:"view"`
	ContainerID string       `json:"container_id"`
	Day         Weekday      `json:"day"`
	Period      int          `json:"period"`
}

// Slot returns the day/period of the target cell.
func (t DropTarget) Slot() Slot {
	return Slot{Day: t.Day, Period: t.Period}
}

// DragSource is the thing being dragged: a RealLesson or an UnscheduledCard.
type DragSource interface {
	// AsLesson returns the lesson the source would place.
	AsLesson() Lesson
	isDragSource()
}

// RealLesson is a scheduled lesson being moved, swapped or copied.
type RealLesson struct {
	Lesson Lesson
}

// AsLesson implements DragSource.
func (r RealLesson) AsLesson() Lesson { return r.Lesson }
func (RealLesson) isDragSource()      {}

// UnscheduledCard is a synthetic card standing for an unplaced plan hour.
type UnscheduledCard struct {
	ClassID   string
	SubjectID string
	TeacherID string
	Duration  int
}

// AsLesson implements DragSource. The lesson carries the transient unscheduled marker.
func (u UnscheduledCard) AsLesson() Lesson {
	return Lesson{ClassID: u.ClassID, SubjectID: u.SubjectID, TeacherID: u.TeacherID, IsUnscheduled: true}
}
func (UnscheduledCard) isDragSource() {}

// TransitionType is the kind of change a drop gesture produces.
type TransitionType string

const (
	TransitionMove TransitionType = "move"
	TransitionSwap TransitionType = "swap"
	TransitionCopy TransitionType = "copy"
)

// Confirmation is a resolved drop awaiting user approval.
type Confirmation struct {
	ID        string         `json:"id"`
	Type      TransitionType `json:"type"`
	Source    Lesson         `json:"source"`
	Target    DropTarget     `json:"target"`
	Conflicts []string       `json:"conflicts"`
	CreatedAt time.Time      `json:"created_at"`
}
