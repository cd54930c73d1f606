package service

import (
	"fmt"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// ConflictDetector answers occupancy questions over one schedule snapshot.
// It never mutates the lessons it was built from.
type ConflictDetector struct {
	lessons []models.Lesson
	catalog models.Catalog
}

// NewConflictDetector builds a detector for the snapshot.
func NewConflictDetector(lessons []models.Lesson, catalog models.Catalog) ConflictDetector {
	return ConflictDetector{lessons: lessons, catalog: catalog}
}

// TeacherConflicts returns the names of classes, other than excludeClassID, the teacher
// already teaches at the slot.
func (d ConflictDetector) TeacherConflicts(teacherID string, day models.Weekday, period int, excludeClassID string) []string {
	var names []string
	for _, lesson := range d.lessons {
		if lesson.IsUnscheduled || lesson.TeacherID != teacherID || lesson.Day != day || lesson.Period != period {
			continue
		}
		if excludeClassID != "" && lesson.ClassID == excludeClassID {
			continue
		}
		names = appendUnique(names, d.catalog.ClassName(lesson.ClassID))
	}
	return names
}

// ClassConflicts returns the names of teachers, other than excludeTeacherID, already
// assigned to the class at the slot.
func (d ConflictDetector) ClassConflicts(classID string, day models.Weekday, period int, excludeTeacherID string) []string {
	var names []string
	for _, lesson := range d.lessons {
		if lesson.IsUnscheduled || lesson.ClassID != classID || lesson.Day != day || lesson.Period != period {
			continue
		}
		if excludeTeacherID != "" && lesson.TeacherID == excludeTeacherID {
			continue
		}
		names = appendUnique(names, d.catalog.TeacherName(lesson.TeacherID))
	}
	return names
}

// SlotLessons returns the lessons of a class cell in schedule order.
func (d ConflictDetector) SlotLessons(classID string, day models.Weekday, period int) []models.Lesson {
	var out []models.Lesson
	for _, lesson := range d.lessons {
		if !lesson.IsUnscheduled && lesson.ClassID == classID && lesson.Day == day && lesson.Period == period {
			out = append(out, lesson)
		}
	}
	return out
}

// IsDoubleBooked reports a class cell holding several lessons that are not all paired.
func (d ConflictDetector) IsDoubleBooked(classID string, day models.Weekday, period int) bool {
	return !allPaired(d.SlotLessons(classID, day, period))
}

// Violations lists every teacher and class double booking of the snapshot.
func (d ConflictDetector) Violations() []models.ScheduleConflict {
	type cellKey struct {
		id     string
		day    models.Weekday
		period int
	}
	teacherCells := make(map[cellKey][]models.Lesson)
	classCells := make(map[cellKey][]models.Lesson)
	var teacherOrder, classOrder []cellKey
	for _, lesson := range d.lessons {
		if lesson.IsUnscheduled {
			continue
		}
		tk := cellKey{id: lesson.TeacherID, day: lesson.Day, period: lesson.Period}
		if _, seen := teacherCells[tk]; !seen {
			teacherOrder = append(teacherOrder, tk)
		}
		teacherCells[tk] = append(teacherCells[tk], lesson)

		ck := cellKey{id: lesson.ClassID, day: lesson.Day, period: lesson.Period}
		if _, seen := classCells[ck]; !seen {
			classOrder = append(classOrder, ck)
		}
		classCells[ck] = append(classCells[ck], lesson)
	}

	var violations []models.ScheduleConflict
	for _, key := range teacherOrder {
		lessons := teacherCells[key]
		if distinctClasses(lessons) < 2 {
			continue
		}
		violations = append(violations, models.ScheduleConflict{
			Dimension: models.ConflictDimensionTeacher,
			Day:       key.day,
			Period:    key.period,
			TeacherID: key.id,
			LessonIDs: lessonIDs(lessons),
			Message:   fmt.Sprintf("%s is booked %d times on %s period %d", d.catalog.TeacherName(key.id), len(lessons), key.day, key.period),
		})
	}
	for _, key := range classOrder {
		lessons := classCells[key]
		if allPaired(lessons) {
			continue
		}
		violations = append(violations, models.ScheduleConflict{
			Dimension: models.ConflictDimensionClass,
			Day:       key.day,
			Period:    key.period,
			ClassID:   key.id,
			LessonIDs: lessonIDs(lessons),
			Message:   fmt.Sprintf("%s has %d lessons on %s period %d", d.catalog.ClassName(key.id), len(lessons), key.day, key.period),
		})
	}
	return violations
}

// allPaired reports whether a cell's lessons may legally share it: at most one lesson,
// or only paired lessons.
func allPaired(lessons []models.Lesson) bool {
	if len(lessons) < 2 {
		return true
	}
	for _, lesson := range lessons {
		if !lesson.IsPaired() {
			return false
		}
	}
	return true
}

func distinctClasses(lessons []models.Lesson) int {
	seen := make(map[string]struct{}, len(lessons))
	for _, lesson := range lessons {
		seen[lesson.ClassID] = struct{}{}
	}
	return len(seen)
}

func lessonIDs(lessons []models.Lesson) []string {
	ids := make([]string, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.ID != "" {
			ids = append(ids, lesson.ID)
		}
	}
	return ids
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

// --- Lesson slice helpers ---

// findLesson locates a stored lesson by id, falling back to the composite key.
func findLesson(lessons []models.Lesson, target models.Lesson) (models.Lesson, bool) {
	for _, lesson := range lessons {
		if !lesson.IsUnscheduled && lesson.Same(target) {
			return lesson, true
		}
	}
	return models.Lesson{}, false
}

// removeLesson returns a copy of lessons without the first lesson matching target.
func removeLesson(lessons []models.Lesson, target models.Lesson) []models.Lesson {
	out := make([]models.Lesson, 0, len(lessons))
	removed := false
	for _, lesson := range lessons {
		if !removed && lesson.Same(target) {
			removed = true
			continue
		}
		out = append(out, lesson)
	}
	return out
}

// removeClassCell returns a copy of lessons without anything in the class cell.
func removeClassCell(lessons []models.Lesson, classID string, slot models.Slot) ([]models.Lesson, int) {
	out := make([]models.Lesson, 0, len(lessons))
	removed := 0
	for _, lesson := range lessons {
		if lesson.ClassID == classID && lesson.Slot() == slot {
			removed++
			continue
		}
		out = append(out, lesson)
	}
	return out, removed
}
