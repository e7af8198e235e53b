package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/repository"
)

// ErrStudentNotFound indicates the referenced student account is unknown
// or not a student.
var ErrStudentNotFound = errors.New("student not found")

// AttendanceService exposes attendance views and teacher-side recording.
type AttendanceService interface {
	SummaryFor(ctx context.Context, studentID uint) (dto.AttendanceSummary, error)
	Roster(ctx context.Context, actor Actor) ([]dto.AttendanceRosterEntry, error)
	Record(ctx context.Context, actor Actor, studentID uint, payload dto.AttendanceUpsertRequest) (dto.AttendanceSummary, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService builds the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) SummaryFor(ctx context.Context, studentID uint) (dto.AttendanceSummary, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.AttendanceSummary{}, err
	}

	return dto.NewAttendanceSummary(studentID, records), nil
}

// Roster builds the teacher-facing overview: one line per enrolled
// student with their overall percentage and eligibility flag.
func (s *attendanceService) Roster(ctx context.Context, actor Actor) ([]dto.AttendanceRosterEntry, error) {
	if !actor.IsTeacher() {
		return nil, ErrRoleNotAllowed
	}

	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	roster := make([]dto.AttendanceRosterEntry, 0, len(students))
	for _, student := range students {
		records, err := s.repo.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}
		summary := dto.NewAttendanceSummary(student.ID, records)
		roster = append(roster, dto.AttendanceRosterEntry{
			StudentID:  student.ID,
			Name:       student.Name,
			RollNumber: student.RollNumber,
			Class:      student.Class,
			Overall:    summary.Overall,
			IsEligible: summary.IsEligible,
		})
	}

	return roster, nil
}

func (s *attendanceService) Record(ctx context.Context, actor Actor, studentID uint, payload dto.AttendanceUpsertRequest) (dto.AttendanceSummary, error) {
	if !actor.IsTeacher() {
		return dto.AttendanceSummary{}, ErrRoleNotAllowed
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceSummary{}, err
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceSummary{}, ErrStudentNotFound
		}
		return dto.AttendanceSummary{}, err
	}
	if student.Role != models.RoleStudent {
		return dto.AttendanceSummary{}, ErrStudentNotFound
	}

	record := models.AttendanceRecord{
		StudentID: studentID,
		Subject:   payload.Subject,
		Attended:  payload.Attended,
		Total:     payload.Total,
	}

	if err := s.repo.Upsert(ctx, &record); err != nil {
		return dto.AttendanceSummary{}, err
	}

	s.logger.Info().
		Uint("student_id", studentID).
		Str("subject", payload.Subject).
		Msg("attendance recorded")

	return s.SummaryFor(ctx, studentID)
}
