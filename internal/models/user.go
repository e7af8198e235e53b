package models

import "time"

// Roles supported by the portal. Role is fixed at signup and never changes.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a registered portal account. Role-specific columns are
// only populated for the matching role; the DTO layer exposes them as a
// tagged variant.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:16;not null;index" json:"role"`

	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"size:512" json:"address"`

	// Student fields
	RollNumber string `gorm:"size:64" json:"roll_number,omitempty"`
	Class      string `gorm:"size:64" json:"class,omitempty"`

	// Teacher fields
	Department    string `gorm:"size:128" json:"department,omitempty"`
	Designation   string `gorm:"size:128" json:"designation,omitempty"`
	Qualification string `gorm:"size:255" json:"qualification,omitempty"`
	Experience    string `gorm:"size:255" json:"experience,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTeacher reports whether the account holds the teacher role.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
