package models

import "time"

// PlanTriple identifies the (class, subject, teacher) combination a quota applies to.
type PlanTriple struct {
	ClassID   string `json:"class_id"`
	SubjectID string `json:"subject_id"`
	TeacherID string `json:"teacher_id"`
}

// TeachingPlanItem is a weekly hour quota for a triple.
type TeachingPlanItem struct {
	WorkspaceID  string    `db:"workspace_id" json:"workspace_id,omitempty"`
	ClassID      string    `db:"class_id" json:"class_id"`
	SubjectID    string    `db:"subject_id" json:"subject_id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	HoursPerWeek int       `db:"hours_per_week" json:"hours_per_week"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Triple returns the triple the quota applies to.
func (p TeachingPlanItem) Triple() PlanTriple {
	return PlanTriple{ClassID: p.ClassID, SubjectID: p.SubjectID, TeacherID: p.TeacherID}
}

// UnscheduledItem reports hours required by the plan that are not placed yet.
type UnscheduledItem struct {
	SubjectID      string `json:"subject_id"`
	ClassID        string `json:"class_id"`
	TeacherID      string `json:"teacher_id"`
	TotalHours     int    `json:"total_hours"`
	PlacedHours    int    `json:"placed_hours"`
	RemainingHours int    `json:"remaining_hours"`
}

// ReconcileReport summarises a reconciliation pass over a schedule record.
type ReconcileReport struct {
	TemplateRemoved int            `json:"template_removed"`
	WeeksRemoved    map[string]int `json:"weeks_removed,omitempty"`
}

// Total returns the number of lessons removed across all scopes.
func (r ReconcileReport) Total() int {
	total := r.TemplateRemoved
	for _, n := range r.WeeksRemoved {
		total += n
	}
	return total
}
