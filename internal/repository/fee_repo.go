package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

// FeeRepository exposes persistence helpers for fee installments.
type FeeRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.FeeInstallment, error)
	GetByID(ctx context.Context, id uint) (models.FeeInstallment, error)
	Create(ctx context.Context, installment *models.FeeInstallment) error
	// MarkPaid flips a pending installment to paid and reports how many
	// rows changed; zero means unknown id or already paid.
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) (int64, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository constructs the repository implementation.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.FeeInstallment, error) {
	installments := []models.FeeInstallment{}
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *feeRepository) GetByID(ctx context.Context, id uint) (models.FeeInstallment, error) {
	var installment models.FeeInstallment
	err := r.db.WithContext(ctx).First(&installment, id).Error
	return installment, err
}

func (r *feeRepository) Create(ctx context.Context, installment *models.FeeInstallment) error {
	return r.db.WithContext(ctx).Create(installment).Error
}

func (r *feeRepository) MarkPaid(ctx context.Context, id uint, paidAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.FeeInstallment{}).
		Where("id = ? AND status = ?", id, models.FeeStatusPending).
		Updates(map[string]interface{}{
			"status":     models.FeeStatusPaid,
			"paid_at":    paidAt,
			"updated_at": paidAt,
		})
	return result.RowsAffected, result.Error
}
