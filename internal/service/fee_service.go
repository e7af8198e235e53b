package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/repository"
)

var (
	// ErrInstallmentNotFound indicates the installment id is unknown.
	ErrInstallmentNotFound = errors.New("fee installment not found")
	// ErrAlreadyPaid indicates a payment was already recorded for the
	// installment.
	ErrAlreadyPaid = errors.New("fee installment already paid")
)

// FeeService exposes fee schedule views and teacher-side payment recording.
type FeeService interface {
	SummaryFor(ctx context.Context, studentID uint) (dto.FeeSummaryResponse, error)
	RecordPayment(ctx context.Context, actor Actor, installmentID uint) (dto.FeeInstallmentResponse, error)
}

type feeService struct {
	repo   repository.FeeRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewFeeService builds the fee service.
func NewFeeService(repo repository.FeeRepository, logger zerolog.Logger) FeeService {
	return &feeService{
		repo:   repo,
		logger: logger.With().Str("component", "fee_service").Logger(),
		now:    time.Now,
	}
}

func (s *feeService) SummaryFor(ctx context.Context, studentID uint) (dto.FeeSummaryResponse, error) {
	installments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.FeeSummaryResponse{}, err
	}

	return dto.NewFeeSummaryResponse(studentID, installments), nil
}

func (s *feeService) RecordPayment(ctx context.Context, actor Actor, installmentID uint) (dto.FeeInstallmentResponse, error) {
	if !actor.IsTeacher() {
		return dto.FeeInstallmentResponse{}, ErrRoleNotAllowed
	}

	affected, err := s.repo.MarkPaid(ctx, installmentID, s.now())
	if err != nil {
		return dto.FeeInstallmentResponse{}, err
	}

	if affected == 0 {
		if _, err := s.repo.GetByID(ctx, installmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.FeeInstallmentResponse{}, ErrInstallmentNotFound
			}
			return dto.FeeInstallmentResponse{}, err
		}
		return dto.FeeInstallmentResponse{}, ErrAlreadyPaid
	}

	paid, err := s.repo.GetByID(ctx, installmentID)
	if err != nil {
		return dto.FeeInstallmentResponse{}, err
	}

	s.logger.Info().Uint("installment_id", installmentID).Uint("teacher_id", actor.ID).Msg("fee payment recorded")

	return dto.FeeInstallmentResponse{
		ID:      paid.ID,
		Label:   paid.Label,
		Amount:  paid.Amount,
		Status:  paid.Status,
		DueDate: paid.DueDate,
		PaidAt:  paid.PaidAt,
	}, nil
}
