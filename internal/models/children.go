package models

import "gorm.io/gorm"

// MaxContactsPerProject caps how many contacts a project may carry.
const MaxContactsPerProject = 3

type Contact struct {
	gorm.Model
	ProjectID uint `gorm:"index;not null" json:"project_id"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Title string `gorm:"size:255" json:"title"`
	Phone string `gorm:"size:50" json:"phone"`
	Email string `gorm:"size:255" json:"email"`
}

// NoteEntry is a free-text note on a project. Not to be confused with
// the Notes text column on the project row itself.
type NoteEntry struct {
	gorm.Model
	ProjectID uint `gorm:"index;not null" json:"project_id"`

	Content string `gorm:"type:text;not null" json:"content"`
	Author  string `gorm:"size:255" json:"author"`
}

func (NoteEntry) TableName() string { return "project_notes" }

type Drawing struct {
	gorm.Model
	ProjectID uint `gorm:"index;not null" json:"project_id"`

	Title    string `gorm:"size:255;not null" json:"title"`
	URL      string `gorm:"size:1024" json:"url"`
	Revision string `gorm:"size:50" json:"revision"`
}
