package dto

import (
	"time"

	"github.com/campuslink/portal-api/internal/models"
)

// CertificateCreateRequest carries a new certificate request submission.
// The supporting document arrives as a multipart file alongside it.
type CertificateCreateRequest struct {
	Purpose string `json:"purpose" form:"purpose" validate:"required,max=255"`
}

// CertificateDecisionRequest carries a teacher's decision on a pending request.
type CertificateDecisionRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments" validate:"omitempty,max=2000"`
}

// CertificateResponse is the API view of a certificate request.
type CertificateResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name"`
	Purpose     string    `json:"purpose"`
	Status      string    `json:"status"`
	HasDocument bool      `json:"has_document"`
	Comments    string    `json:"comments,omitempty"`
	DecidedBy   *uint     `json:"decided_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentLinkResponse carries a freshly minted, short-lived access URL for
// a request's supporting document.
type DocumentLinkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewCertificateResponse maps a stored request onto its API view. The raw
// object key stays server-side; clients redeem it through the document
// link endpoint.
func NewCertificateResponse(request models.CertificateRequest) CertificateResponse {
	return CertificateResponse{
		ID:          request.ID,
		StudentID:   request.StudentID,
		StudentName: request.StudentName,
		Purpose:     request.Purpose,
		Status:      request.Status,
		HasDocument: request.DocumentPath != "",
		Comments:    request.Comments,
		DecidedBy:   request.DecidedBy,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}
}

// NewCertificateResponseSlice maps a list of stored requests.
func NewCertificateResponseSlice(requests []models.CertificateRequest) []CertificateResponse {
	responses := make([]CertificateResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, NewCertificateResponse(request))
	}
	return responses
}
