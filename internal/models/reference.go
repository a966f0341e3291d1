package models

import "time"

// Reference is the shape shared by every lookup table: an integer
// identity plus a unique name. The unique index backs up the
// application-level duplicate check, so two concurrent creates cannot
// both slip through.
type Reference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

type Builder struct{ Reference }
type Estimator struct{ Reference }
type Supervisor struct{ Reference }
type Location struct{ Reference }
type Status struct{ Reference }
type Priority struct{ Reference }
type ProjectType struct{ Reference }
type ProjectStyle struct{ Reference }
type Position struct{ Reference }

// residential side
type ResidentialBuilder struct{ Reference }
type ResidentialStatus struct{ Reference }
type ProgressStatus struct{ Reference }
type Subcontractor struct{ Reference }
