package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campuslink/portal-api/internal/models"
)

// AttendanceRepository exposes persistence helpers for attendance records.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error)
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the repository implementation.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.AttendanceRecord, error) {
	records := []models.AttendanceRecord{}
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("subject ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"attended", "total", "updated_at"}),
	}).Create(record).Error
}
