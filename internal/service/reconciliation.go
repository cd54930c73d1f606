package service

import (
	"sort"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// ComputeUnscheduled reports, per plan item, the hours still missing from the schedule.
// Satisfied items are omitted.
func ComputeUnscheduled(plan []models.TeachingPlanItem, lessons []models.Lesson) []models.UnscheduledItem {
	placed := make(map[models.PlanTriple]int, len(plan))
	for _, lesson := range lessons {
		if lesson.IsUnscheduled {
			continue
		}
		placed[lesson.Triple()]++
	}

	items := make([]models.UnscheduledItem, 0)
	for _, item := range plan {
		count := placed[item.Triple()]
		if count >= item.HoursPerWeek {
			continue
		}
		items = append(items, models.UnscheduledItem{
			SubjectID:      item.SubjectID,
			ClassID:        item.ClassID,
			TeacherID:      item.TeacherID,
			TotalHours:     item.HoursPerWeek,
			PlacedHours:    count,
			RemainingHours: item.HoursPerWeek - count,
		})
	}
	return items
}

// RemoveExcess trims lessons beyond each plan item's weekly quota, latest day and period
// first, and drops lessons whose triple is not planned at all. Survivors keep their order.
func RemoveExcess(plan []models.TeachingPlanItem, lessons []models.Lesson) []models.Lesson {
	quota := make(map[models.PlanTriple]int, len(plan))
	for _, item := range plan {
		quota[item.Triple()] = item.HoursPerWeek
	}

	matches := make(map[models.PlanTriple][]int)
	drop := make(map[int]struct{})
	for i, lesson := range lessons {
		triple := lesson.Triple()
		if _, planned := quota[triple]; !planned {
			drop[i] = struct{}{}
			continue
		}
		matches[triple] = append(matches[triple], i)
	}

	for triple, indexes := range matches {
		excess := len(indexes) - quota[triple]
		if excess <= 0 {
			continue
		}
		ordered := append([]int(nil), indexes...)
		sort.SliceStable(ordered, func(a, b int) bool {
			la, lb := lessons[ordered[a]], lessons[ordered[b]]
			if la.Day.Index() != lb.Day.Index() {
				return la.Day.Index() > lb.Day.Index()
			}
			if la.Period != lb.Period {
				return la.Period > lb.Period
			}
			return ordered[a] > ordered[b]
		})
		for _, idx := range ordered[:excess] {
			drop[idx] = struct{}{}
		}
	}

	if len(drop) == 0 {
		return lessons
	}
	kept := make([]models.Lesson, 0, len(lessons)-len(drop))
	for i, lesson := range lessons {
		if _, dropped := drop[i]; !dropped {
			kept = append(kept, lesson)
		}
	}
	return kept
}

// ReconcileRecord trims the template and every week override of the record against the
// plan. Trimming bypasses history; the present of the matching stack is trimmed alongside so
// the next undo does not restore removed lessons. Presents are matched by scope and week, not
// by pointer, because a reloaded record no longer shares them with the live snapshots.
func ReconcileRecord(plan []models.TeachingPlanItem, record *models.ScheduleRecord) models.ReconcileReport {
	report := models.ReconcileReport{WeeksRemoved: make(map[string]int)}
	if record == nil {
		return report
	}

	if record.Schedule != nil {
		before := len(record.Schedule.Schedule)
		trimmed := RemoveExcess(plan, record.Schedule.Schedule)
		if removed := before - len(trimmed); removed > 0 {
			next := record.Schedule.WithLessons(trimmed)
			record.TemplateHistory.Present = trimPresent(plan, record.TemplateHistory.Present, record.Schedule, next)
			record.Schedule = next
			report.TemplateRemoved = removed
		}
	}

	for week, override := range record.WeeklySchedules {
		if override == nil {
			continue
		}
		before := len(override.Schedule)
		trimmed := RemoveExcess(plan, override.Schedule)
		if removed := before - len(trimmed); removed > 0 {
			next := override.WithLessons(trimmed)
			if record.WeekHistory.WeekID == "" || record.WeekHistory.WeekID == week {
				record.WeekHistory.Present = trimPresent(plan, record.WeekHistory.Present, override, next)
			}
			record.WeeklySchedules[week] = next
			report.WeeksRemoved[week] = removed
		}
	}
	return report
}

func trimPresent(plan []models.TeachingPlanItem, present, live, next *models.ScheduleResponse) *models.ScheduleResponse {
	switch {
	case present == nil:
		return nil
	case present == live:
		return next
	}
	trimmed := RemoveExcess(plan, present.Schedule)
	if len(trimmed) == len(present.Schedule) {
		return present
	}
	return present.WithLessons(trimmed)
}
