package dto

// CertificateCounts groups request totals by status for one kind.
type CertificateCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// StudentDashboardResponse is the student variant of the dashboard.
type StudentDashboardResponse struct {
	AttendancePercentage float64           `json:"attendance_percentage"`
	AttendanceEligible   bool              `json:"attendance_eligible"`
	FeeStatus            string            `json:"fee_status"`
	FeeTotalDue          float64           `json:"fee_total_due"`
	Bonafide             CertificateCounts `json:"bonafide"`
	Migration            CertificateCounts `json:"migration"`
}

// PendingRequestSummary is a teacher-facing line item for one open request.
type PendingRequestSummary struct {
	ID          uint   `json:"id"`
	Kind        string `json:"kind"`
	StudentName string `json:"student_name"`
	Purpose     string `json:"purpose"`
}

// TeacherDashboardResponse is the teacher variant of the dashboard.
type TeacherDashboardResponse struct {
	Bonafide       CertificateCounts       `json:"bonafide"`
	Migration      CertificateCounts       `json:"migration"`
	PendingTotal   int64                   `json:"pending_total"`
	RecentRequests []PendingRequestSummary `json:"recent_requests"`
}

// DashboardResponse is the role-dispatched dashboard payload: exactly one
// of the two variants is populated.
type DashboardResponse struct {
	Role    string                    `json:"role"`
	Student *StudentDashboardResponse `json:"student,omitempty"`
	Teacher *TeacherDashboardResponse `json:"teacher,omitempty"`
}
