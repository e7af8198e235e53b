package models

import "time"

// AttendanceRecord tracks per-subject attendance counters for a student.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_attendance_student_subject" json:"student_id"`
	Subject   string    `gorm:"size:128;not null;uniqueIndex:idx_attendance_student_subject" json:"subject"`
	Attended  int       `gorm:"not null" json:"attended"`
	Total     int       `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Percentage returns the attendance percentage for the record, or zero when
// no classes have been held yet.
func (a AttendanceRecord) Percentage() float64 {
	if a.Total <= 0 {
		return 0
	}
	return float64(a.Attended) / float64(a.Total) * 100
}
