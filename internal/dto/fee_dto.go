package dto

import (
	"time"

	"github.com/campuslink/portal-api/internal/models"
)

// FeeInstallmentResponse is the API view of one installment.
type FeeInstallmentResponse struct {
	ID      uint       `json:"id"`
	Label   string     `json:"label"`
	Amount  float64    `json:"amount"`
	Status  string     `json:"status"`
	DueDate time.Time  `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`
}

// FeeSummaryResponse aggregates a student's fee schedule.
type FeeSummaryResponse struct {
	StudentID    uint                     `json:"student_id"`
	Installments []FeeInstallmentResponse `json:"installments"`
	TotalPaid    float64                  `json:"total_paid"`
	TotalDue     float64                  `json:"total_due"`
	Status       string                   `json:"status"`
}

// NewFeeSummaryResponse aggregates stored installments into the API view.
// Status is "paid" only when nothing remains due.
func NewFeeSummaryResponse(studentID uint, installments []models.FeeInstallment) FeeSummaryResponse {
	summary := FeeSummaryResponse{
		StudentID:    studentID,
		Installments: make([]FeeInstallmentResponse, 0, len(installments)),
		Status:       models.FeeStatusPaid,
	}

	for _, installment := range installments {
		summary.Installments = append(summary.Installments, FeeInstallmentResponse{
			ID:      installment.ID,
			Label:   installment.Label,
			Amount:  installment.Amount,
			Status:  installment.Status,
			DueDate: installment.DueDate,
			PaidAt:  installment.PaidAt,
		})

		switch installment.Status {
		case models.FeeStatusPaid:
			summary.TotalPaid += installment.Amount
		default:
			summary.TotalDue += installment.Amount
			summary.Status = models.FeeStatusPending
		}
	}

	return summary
}
