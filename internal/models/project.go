package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`

	BuilderID      *uint `json:"builder_id"`
	EstimatorID    *uint `json:"estimator_id"`
	SupervisorID   *uint `json:"supervisor_id"`
	LocationID     *uint `json:"location_id"`
	StatusID       *uint `json:"status_id"`
	PriorityID     *uint `json:"priority_id"`
	ProjectTypeID  *uint `json:"project_type_id"`
	ProjectStyleID *uint `json:"project_style_id"`

	Builder      *Builder      `json:"builder,omitempty"`
	Estimator    *Estimator    `json:"estimator,omitempty"`
	Supervisor   *Supervisor   `json:"supervisor,omitempty"`
	Location     *Location     `json:"location,omitempty"`
	Status       *Status       `json:"status,omitempty"`
	Priority     *Priority     `json:"priority,omitempty"`
	ProjectType  *ProjectType  `json:"project_type,omitempty"`
	ProjectStyle *ProjectStyle `json:"project_style,omitempty"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`

	SquareFootage int     `json:"square_footage"`
	ContractValue float64 `json:"contract_value"`
	Notes         string  `gorm:"type:text" json:"notes"`

	Contacts []Contact   `json:"contacts,omitempty"`
	NoteList []NoteEntry `json:"note_list,omitempty"`
	Drawings []Drawing   `json:"drawings,omitempty"`
}

type ResidentialProject struct {
	gorm.Model
	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`

	BuilderID        *uint `json:"builder_id"`
	StatusID         *uint `json:"status_id"`
	ProgressStatusID *uint `json:"progress_status_id"`
	SubcontractorID  *uint `json:"subcontractor_id"`
	SupervisorID     *uint `json:"supervisor_id"`

	Builder        *ResidentialBuilder `json:"builder,omitempty"`
	Status         *ResidentialStatus  `json:"status,omitempty"`
	ProgressStatus *ProgressStatus     `json:"progress_status,omitempty"`
	Subcontractor  *Subcontractor      `json:"subcontractor,omitempty"`
	Supervisor     *Supervisor         `json:"supervisor,omitempty"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`
	Notes     string     `gorm:"type:text" json:"notes"`
}
