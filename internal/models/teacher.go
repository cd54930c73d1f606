package models

// Teacher represents an instructor who can be assigned to lessons.
type Teacher struct {
	ID          string `db:"id" json:"id"`
	WorkspaceID string `db:"workspace_id" json:"workspace_id,omitempty"`
	FullName    string `db:"full_name" json:"full_name"`
}

// Catalog resolves display names and default rooms for schedule entities.
type Catalog struct {
	Classes  map[string]Class
	Subjects map[string]Subject
	Teachers map[string]Teacher
}

// NewCatalog indexes the given entities by id.
func NewCatalog(classes []Class, subjects []Subject, teachers []Teacher) Catalog {
	cat := Catalog{
		Classes:  make(map[string]Class, len(classes)),
		Subjects: make(map[string]Subject, len(subjects)),
		Teachers: make(map[string]Teacher, len(teachers)),
	}
	for _, c := range classes {
		cat.Classes[c.ID] = c
	}
	for _, s := range subjects {
		cat.Subjects[s.ID] = s
	}
	for _, t := range teachers {
		cat.Teachers[t.ID] = t
	}
	return cat
}

// ClassName returns the class name or its id when unknown.
func (c Catalog) ClassName(id string) string {
	if class, ok := c.Classes[id]; ok && class.Name != "" {
		return class.Name
	}
	return id
}

// TeacherName returns the teacher name or its id when unknown.
func (c Catalog) TeacherName(id string) string {
	if teacher, ok := c.Teachers[id]; ok && teacher.FullName != "" {
		return teacher.FullName
	}
	return id
}

// SubjectName returns the subject name or its id when unknown.
func (c Catalog) SubjectName(id string) string {
	if subject, ok := c.Subjects[id]; ok && subject.Name != "" {
		return subject.Name
	}
	return id
}

// DefaultRoom returns the subject's default room, empty when none.
func (c Catalog) DefaultRoom(subjectID string) string {
	return c.Subjects[subjectID].DefaultRoom
}
