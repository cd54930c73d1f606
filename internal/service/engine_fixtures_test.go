package service

import (
	"fmt"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

func testCatalog() models.Catalog {
	return models.NewCatalog(
		[]models.Class{{ID: "x1", Name: "X-1"}, {ID: "x2", Name: "X-2"}},
		[]models.Subject{{ID: "math", Name: "Mathematics", DefaultRoom: "R-101"}, {ID: "bio", Name: "Biology", DefaultRoom: "LAB-1"}},
		[]models.Teacher{{ID: "t1", FullName: "Ani"}, {ID: "t2", FullName: "Budi"}, {ID: "t3", FullName: "Citra"}},
	)
}

func mkLesson(id, classID, subjectID, teacherID string, day models.Weekday, period int) models.Lesson {
	return models.Lesson{
		ID:        id,
		ClassID:   classID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		Day:       day,
		Period:    period,
		Kind:      models.LessonKindSingle,
	}
}

func classTarget(classID string, day models.Weekday, period int) models.DropTarget {
	return models.DropTarget{View: models.ViewClass, ContainerID: classID, Day: day, Period: period}
}

func teacherTarget(teacherID string, day models.Weekday, period int) models.DropTarget {
	return models.DropTarget{View: models.ViewTeacher, ContainerID: teacherID, Day: day, Period: period}
}

func lessonAt(lessons []models.Lesson, classID string, day models.Weekday, period int) []models.Lesson {
	var out []models.Lesson
	for _, l := range lessons {
		if l.ClassID == classID && l.Day == day && l.Period == period {
			out = append(out, l)
		}
	}
	return out
}

// sequentialIDs returns an id generator yielding new-1, new-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}
