package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleViewer  UserRole = "viewer"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleViewer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string   `gorm:"size:255" json:"name"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Active       bool     `gorm:"not null;default:true" json:"active"`

	// optional links to the estimator / supervisor rows this account represents
	EstimatorID  *uint `json:"estimator_id"`
	SupervisorID *uint `json:"supervisor_id"`

	Positions []UserPosition `json:"positions"`
}

// UserPosition joins a user to a position; at most one row per user
// carries IsPrimary.
type UserPosition struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"index;not null" json:"user_id"`
	PositionID uint `gorm:"not null" json:"position_id"`
	IsPrimary  bool `gorm:"not null;default:false" json:"is_primary"`

	Position Position `json:"position"`
}
