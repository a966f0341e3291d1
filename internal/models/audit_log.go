package models

import "time"

// AuditLog rows are insert-only: written once when a mutation succeeds,
// never updated afterward.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username string `gorm:"size:255;not null" json:"username"`
	Email    string `gorm:"size:255" json:"email"`
	Page     string `gorm:"size:100;not null" json:"page"`
	Action   string `gorm:"type:text;not null" json:"action"`
}
