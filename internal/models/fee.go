package models

import "time"

// Fee installment statuses.
const (
	FeeStatusPending = "pending"
	FeeStatusPaid    = "paid"
)

// FeeInstallment is a single billable item on a student's fee schedule.
type FeeInstallment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StudentID uint       `gorm:"not null;index" json:"student_id"`
	Label     string     `gorm:"size:128;not null" json:"label"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Status    string     `gorm:"size:16;not null;default:pending;index" json:"status"`
	DueDate   time.Time  `json:"due_date"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
