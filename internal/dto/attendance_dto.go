package dto

import "github.com/campuslink/portal-api/internal/models"

// Minimum attendance percentage required for exam eligibility.
const AttendanceEligibilityThreshold = 75.0

// SubjectAttendance is a single per-subject attendance line.
type SubjectAttendance struct {
	Subject    string  `json:"subject"`
	Attended   int     `json:"attended"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AttendanceSummary aggregates a student's attendance.
type AttendanceSummary struct {
	StudentID  uint                `json:"student_id"`
	Subjects   []SubjectAttendance `json:"subjects"`
	Overall    float64             `json:"overall"`
	IsEligible bool                `json:"is_eligible"`
}

// AttendanceRosterEntry is one student line in the teacher's roster view.
type AttendanceRosterEntry struct {
	StudentID  uint    `json:"student_id"`
	Name       string  `json:"name"`
	RollNumber string  `json:"roll_number"`
	Class      string  `json:"class"`
	Overall    float64 `json:"overall"`
	IsEligible bool    `json:"is_eligible"`
}

// AttendanceUpsertRequest carries per-subject counters recorded by a teacher.
type AttendanceUpsertRequest struct {
	Subject  string `json:"subject" validate:"required,max=128"`
	Attended int    `json:"attended" validate:"gte=0"`
	Total    int    `json:"total" validate:"gte=0,gtefield=Attended"`
}

// NewAttendanceSummary aggregates stored records into the API view.
func NewAttendanceSummary(studentID uint, records []models.AttendanceRecord) AttendanceSummary {
	summary := AttendanceSummary{
		StudentID: studentID,
		Subjects:  make([]SubjectAttendance, 0, len(records)),
	}

	var attended, total int
	for _, record := range records {
		attended += record.Attended
		total += record.Total
		summary.Subjects = append(summary.Subjects, SubjectAttendance{
			Subject:    record.Subject,
			Attended:   record.Attended,
			Total:      record.Total,
			Percentage: record.Percentage(),
		})
	}

	if total > 0 {
		summary.Overall = float64(attended) / float64(total) * 100
	}
	summary.IsEligible = summary.Overall >= AttendanceEligibilityThreshold

	return summary
}
