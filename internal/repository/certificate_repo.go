package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

// CertificateRepository exposes persistence helpers for certificate
// requests. Bonafide and migration requests share one implementation
// parameterised by table name.
type CertificateRepository interface {
	Create(ctx context.Context, request *models.CertificateRequest) error
	GetByID(ctx context.Context, id uint) (models.CertificateRequest, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.CertificateRequest, error)
	ListAll(ctx context.Context) ([]models.CertificateRequest, error)
	ListPending(ctx context.Context, limit int) ([]models.CertificateRequest, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByStudentAndStatus(ctx context.Context, studentID uint, status string) (int64, error)
	// Decide applies a decision only while the row is still pending and
	// reports how many rows were updated. Zero means the request either
	// does not exist or was already decided.
	Decide(ctx context.Context, id uint, status, comments string, decidedBy uint, decidedAt time.Time) (int64, error)
}

type certificateRepository struct {
	db    *gorm.DB
	table string
}

// NewCertificateRepository constructs a repository bound to the given table.
func NewCertificateRepository(db *gorm.DB, table string) CertificateRepository {
	return &certificateRepository{db: db, table: table}
}

func (r *certificateRepository) Create(ctx context.Context, request *models.CertificateRequest) error {
	return r.db.WithContext(ctx).Table(r.table).Create(request).Error
}

func (r *certificateRepository) GetByID(ctx context.Context, id uint) (models.CertificateRequest, error) {
	var request models.CertificateRequest
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&request).Error
	return request, err
}

func (r *certificateRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.CertificateRequest, error) {
	requests := []models.CertificateRequest{}
	err := r.db.WithContext(ctx).Table(r.table).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *certificateRepository) ListAll(ctx context.Context) ([]models.CertificateRequest, error) {
	requests := []models.CertificateRequest{}
	err := r.db.WithContext(ctx).Table(r.table).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *certificateRepository) ListPending(ctx context.Context, limit int) ([]models.CertificateRequest, error) {
	requests := []models.CertificateRequest{}
	query := r.db.WithContext(ctx).Table(r.table).
		Where("status = ?", models.CertificateStatusPending).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&requests).Error
	return requests, err
}

func (r *certificateRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(r.table).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *certificateRepository) CountByStudentAndStatus(ctx context.Context, studentID uint, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(r.table).
		Where("student_id = ? AND status = ?", studentID, status).
		Count(&count).Error
	return count, err
}

func (r *certificateRepository) Decide(ctx context.Context, id uint, status, comments string, decidedBy uint, decidedAt time.Time) (int64, error) {
	// Compare-and-set on the status column: the WHERE clause re-checks
	// "still pending" at write time, so a concurrent decision loses here
	// instead of overwriting a terminal state.
	result := r.db.WithContext(ctx).Table(r.table).
		Where("id = ? AND status = ?", id, models.CertificateStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"comments":   comments,
			"decided_by": decidedBy,
			"updated_at": decidedAt,
		})
	return result.RowsAffected, result.Error
}
