package models

// Subject represents a taught subject with the room it normally uses.
type Subject struct {
	ID          string `db:"id" json:"id"`
	WorkspaceID string `db:"workspace_id" json:"workspace_id,omitempty"`
	Name        string `db:"name" json:"name"`
	DefaultRoom string `db:"default_room" json:"default_room,omitempty"`
}
