package models

// Class represents a school class whose timetable is edited.
type Class struct {
	ID          string `db:"id" json:"id"`
	WorkspaceID string `db:"workspace_id" json:"workspace_id,omitempty"`
	Name        string `db:"name" json:"name"`
}
