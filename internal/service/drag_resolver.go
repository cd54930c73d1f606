package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// DragResolution is the outcome of resolving one drop gesture.
// Exactly one of NoOp, Applied or Confirmation is set.
type DragResolution struct {
	NoOp         bool
	Applied      bool
	Lessons      []models.Lesson
	Confirmation *models.Confirmation
}

// DragTransitionResolver classifies drop gestures as move, swap or copy and applies them.
type DragTransitionResolver struct {
	catalog models.Catalog
	newID   func() string
	now     func() time.Time
}

// NewDragTransitionResolver builds a resolver using the catalog for rooms and names.
func NewDragTransitionResolver(catalog models.Catalog) *DragTransitionResolver {
	return &DragTransitionResolver{
		catalog: catalog,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Resolve decides what dropping source on target means for the snapshot. Only a
// conflict-free move of a real lesson into an empty cell is applied directly.
func (r *DragTransitionResolver) Resolve(lessons []models.Lesson, source models.DragSource, target models.DropTarget, copyMode bool) DragResolution {
	if source == nil || !target.Slot().Valid() || target.ContainerID == "" {
		return DragResolution{NoOp: true}
	}
	src := source.AsLesson()
	_, isCard := source.(models.UnscheduledCard)
	if !isCard {
		stored, ok := findLesson(lessons, src)
		if !ok {
			return DragResolution{NoOp: true}
		}
		src = stored
		if isSelfDrop(src, target) {
			return DragResolution{NoOp: true}
		}
	}

	targetLesson, hasTarget := r.targetLesson(lessons, src, target)
	kind := models.TransitionMove
	switch {
	case copyMode:
		kind = models.TransitionCopy
	case hasTarget && !isCard:
		kind = models.TransitionSwap
	}

	conflicts := r.conflicts(lessons, src, isCard, target, targetLesson, hasTarget, kind)

	if !hasTarget && len(conflicts) == 0 && !isCard && !copyMode {
		return DragResolution{Applied: true, Lessons: r.apply(lessons, src, isCard, target, kind)}
	}
	return DragResolution{Confirmation: &models.Confirmation{
		ID:        r.newID(),
		Type:      kind,
		Source:    src,
		Target:    target,
		Conflicts: conflicts,
		CreatedAt: r.now(),
	}}
}

// Apply commits an accepted confirmation against the current snapshot. It reports false
// when the dragged lesson no longer exists.
func (r *DragTransitionResolver) Apply(lessons []models.Lesson, confirmation models.Confirmation) ([]models.Lesson, bool) {
	src := confirmation.Source
	isCard := src.IsUnscheduled
	if !isCard {
		stored, ok := findLesson(lessons, src)
		if !ok {
			return lessons, false
		}
		src = stored
	}
	kind := confirmation.Type
	if _, hasTarget := r.targetLesson(lessons, src, confirmation.Target); !hasTarget && kind == models.TransitionSwap {
		kind = models.TransitionMove
	}
	return r.apply(lessons, src, isCard, confirmation.Target, kind), true
}

func (r *DragTransitionResolver) apply(lessons []models.Lesson, src models.Lesson, isCard bool, target models.DropTarget, kind models.TransitionType) []models.Lesson {
	targetLesson, hasTarget := r.targetLesson(lessons, src, target)

	next := append([]models.Lesson(nil), lessons...)
	if !isCard && kind != models.TransitionCopy {
		next = removeLesson(next, src)
	}
	if hasTarget {
		next = removeLesson(next, targetLesson)
		if kind == models.TransitionSwap {
			next = append(next, r.displace(targetLesson, src, target))
		}
	}

	placed := r.place(src, target)
	if isCard || kind == models.TransitionCopy {
		placed.ID = r.newID()
	}
	if isCard {
		placed.Kind = models.LessonKindSingle
	}
	return append(next, placed)
}

// conflicts describes the double bookings the transition would create. The vacating
// source and the target occupant are left out of the snapshot since both leave their cells.
func (r *DragTransitionResolver) conflicts(
	lessons []models.Lesson,
	src models.Lesson,
	isCard bool,
	target models.DropTarget,
	targetLesson models.Lesson,
	hasTarget bool,
	kind models.TransitionType,
) []string {
	base := lessons
	if !isCard && kind != models.TransitionCopy {
		base = removeLesson(base, src)
	}
	if hasTarget {
		base = removeLesson(base, targetLesson)
	}
	detector := NewConflictDetector(base, r.catalog)

	placed := r.place(src, target)
	conflicts := make([]string, 0)
	for _, className := range detector.TeacherConflicts(placed.TeacherID, placed.Day, placed.Period, placed.ClassID) {
		conflicts = append(conflicts, fmt.Sprintf("%s already teaches %s on %s period %d",
			r.catalog.TeacherName(placed.TeacherID), className, placed.Day, placed.Period))
	}
	if target.View.TeacherIndexed() && !placed.IsPaired() {
		for _, teacherName := range detector.ClassConflicts(placed.ClassID, placed.Day, placed.Period, placed.TeacherID) {
			conflicts = append(conflicts, fmt.Sprintf("%s already has %s on %s period %d",
				r.catalog.ClassName(placed.ClassID), teacherName, placed.Day, placed.Period))
		}
	}

	if kind == models.TransitionSwap {
		displaced := r.displace(targetLesson, src, target)
		for _, className := range detector.TeacherConflicts(displaced.TeacherID, displaced.Day, displaced.Period, displaced.ClassID) {
			conflicts = append(conflicts, fmt.Sprintf("%s already teaches %s on %s period %d",
				r.catalog.TeacherName(displaced.TeacherID), className, displaced.Day, displaced.Period))
		}
	}
	return conflicts
}

// targetLesson returns the occupant of the target cell, addressed by class in class and
// matrix views and by teacher in the teacher view.
func (r *DragTransitionResolver) targetLesson(lessons []models.Lesson, src models.Lesson, target models.DropTarget) (models.Lesson, bool) {
	for _, lesson := range lessons {
		if lesson.IsUnscheduled || lesson.Day != target.Day || lesson.Period != target.Period {
			continue
		}
		if !src.IsUnscheduled && lesson.Same(src) {
			continue
		}
		if containerOf(lesson, target.View) == target.ContainerID {
			return lesson, true
		}
	}
	return models.Lesson{}, false
}

// place returns src as it will sit in the target cell.
func (r *DragTransitionResolver) place(src models.Lesson, target models.DropTarget) models.Lesson {
	placed := src
	placed.IsUnscheduled = false
	placed.Day = target.Day
	placed.Period = target.Period
	if target.View.TeacherIndexed() {
		placed.TeacherID = target.ContainerID
	} else {
		placed.ClassID = target.ContainerID
	}
	placed.Room = r.room(src, placed.TeacherID != src.TeacherID)
	return placed
}

// displace returns the swapped-out occupant moved to the source's old cell, taking over the
// source's container.
func (r *DragTransitionResolver) displace(occupant, src models.Lesson, target models.DropTarget) models.Lesson {
	moved := occupant
	moved.Day = src.Day
	moved.Period = src.Period
	if target.View.TeacherIndexed() {
		moved.TeacherID = src.TeacherID
	} else {
		moved.ClassID = src.ClassID
	}
	moved.Room = r.room(occupant, moved.TeacherID != occupant.TeacherID)
	return moved
}

// room applies the room rule: a teacher change falls back to the subject default,
// otherwise the lesson keeps its room when set.
func (r *DragTransitionResolver) room(lesson models.Lesson, teacherChanged bool) string {
	if !teacherChanged && lesson.Room != "" {
		return lesson.Room
	}
	return r.catalog.DefaultRoom(lesson.SubjectID)
}

func isSelfDrop(src models.Lesson, target models.DropTarget) bool {
	return src.Day == target.Day && src.Period == target.Period && containerOf(src, target.View) == target.ContainerID
}

func containerOf(lesson models.Lesson, view models.ScheduleView) string {
	if view.TeacherIndexed() {
		return lesson.TeacherID
	}
	return lesson.ClassID
}
