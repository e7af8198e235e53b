package models

import "time"

// Certificate request statuses. A request starts pending and moves at most
// once to approved or rejected; both are terminal.
const (
	CertificateStatusPending  = "pending"
	CertificateStatusApproved = "approved"
	CertificateStatusRejected = "rejected"
)

// Certificate kinds map to their backing tables.
const (
	CertificateKindBonafide  = "bonafide"
	CertificateKindMigration = "migration"

	BonafideRequestsTable  = "bonafide_requests"
	MigrationRequestsTable = "migration_requests"
)

// CertificateRequest is a student-submitted certificate request. Bonafide
// and migration requests share this shape and live in separate tables.
type CertificateRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;index" json:"student_id"`
	StudentName  string    `gorm:"size:255;not null" json:"student_name"`
	Purpose      string    `gorm:"size:255;not null" json:"purpose"`
	Status       string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	DocumentPath string    `gorm:"size:512;not null" json:"document_path"`
	Comments     string    `gorm:"type:text" json:"comments"`
	DecidedBy    *uint     `json:"decided_by,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsDecided reports whether the request has reached a terminal status.
func (r CertificateRequest) IsDecided() bool {
	return r.Status != CertificateStatusPending
}

// ValidDecision reports whether status is an allowed decision outcome.
func ValidDecision(status string) bool {
	return status == CertificateStatusApproved || status == CertificateStatusRejected
}
