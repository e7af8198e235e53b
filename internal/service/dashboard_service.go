package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/repository"
)

const recentRequestLimit = 5

// DashboardService produces the role-dispatched dashboard aggregates.
type DashboardService interface {
	GetDashboard(ctx context.Context, actor Actor) (dto.DashboardResponse, error)
}

type dashboardService struct {
	bonafide   repository.CertificateRepository
	migration  repository.CertificateRepository
	attendance repository.AttendanceRepository
	fees       repository.FeeRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(bonafide, migration repository.CertificateRepository, attendance repository.AttendanceRepository, fees repository.FeeRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &dashboardService{
		bonafide:   bonafide,
		migration:  migration,
		attendance: attendance,
		fees:       fees,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, actor Actor) (dto.DashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%d", actor.Role, actor.ID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", actor.ID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	var (
		response dto.DashboardResponse
		err      error
	)

	switch actor.Role {
	case models.RoleStudent:
		response, err = s.buildStudent(ctx, actor.ID)
	case models.RoleTeacher:
		response, err = s.buildTeacher(ctx)
	default:
		return dto.DashboardResponse{}, ErrRoleNotAllowed
	}
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(response); marshalErr == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) buildStudent(ctx context.Context, studentID uint) (dto.DashboardResponse, error) {
	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	attendanceSummary := dto.NewAttendanceSummary(studentID, records)

	installments, err := s.fees.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	feeSummary := dto.NewFeeSummaryResponse(studentID, installments)

	bonafideCounts, err := s.studentCounts(ctx, s.bonafide, studentID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	migrationCounts, err := s.studentCounts(ctx, s.migration, studentID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	return dto.DashboardResponse{
		Role: models.RoleStudent,
		Student: &dto.StudentDashboardResponse{
			AttendancePercentage: attendanceSummary.Overall,
			AttendanceEligible:   attendanceSummary.IsEligible,
			FeeStatus:            feeSummary.Status,
			FeeTotalDue:          feeSummary.TotalDue,
			Bonafide:             bonafideCounts,
			Migration:            migrationCounts,
		},
	}, nil
}

func (s *dashboardService) buildTeacher(ctx context.Context) (dto.DashboardResponse, error) {
	bonafideCounts, err := s.allCounts(ctx, s.bonafide)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	migrationCounts, err := s.allCounts(ctx, s.migration)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	recent := make([]dto.PendingRequestSummary, 0, 2*recentRequestLimit)
	for kind, repo := range map[string]repository.CertificateRepository{
		models.CertificateKindBonafide:  s.bonafide,
		models.CertificateKindMigration: s.migration,
	} {
		pending, err := repo.ListPending(ctx, recentRequestLimit)
		if err != nil {
			return dto.DashboardResponse{}, err
		}
		for _, request := range pending {
			recent = append(recent, dto.PendingRequestSummary{
				ID:          request.ID,
				Kind:        kind,
				StudentName: request.StudentName,
				Purpose:     request.Purpose,
			})
		}
	}

	return dto.DashboardResponse{
		Role: models.RoleTeacher,
		Teacher: &dto.TeacherDashboardResponse{
			Bonafide:       bonafideCounts,
			Migration:      migrationCounts,
			PendingTotal:   bonafideCounts.Pending + migrationCounts.Pending,
			RecentRequests: recent,
		},
	}, nil
}

func (s *dashboardService) studentCounts(ctx context.Context, repo repository.CertificateRepository, studentID uint) (dto.CertificateCounts, error) {
	counts := dto.CertificateCounts{}
	for status, target := range map[string]*int64{
		models.CertificateStatusPending:  &counts.Pending,
		models.CertificateStatusApproved: &counts.Approved,
		models.CertificateStatusRejected: &counts.Rejected,
	} {
		count, err := repo.CountByStudentAndStatus(ctx, studentID, status)
		if err != nil {
			return dto.CertificateCounts{}, err
		}
		*target = count
	}
	return counts, nil
}

func (s *dashboardService) allCounts(ctx context.Context, repo repository.CertificateRepository) (dto.CertificateCounts, error) {
	counts := dto.CertificateCounts{}
	for status, target := range map[string]*int64{
		models.CertificateStatusPending:  &counts.Pending,
		models.CertificateStatusApproved: &counts.Approved,
		models.CertificateStatusRejected: &counts.Rejected,
	} {
		count, err := repo.CountByStatus(ctx, status)
		if err != nil {
			return dto.CertificateCounts{}, err
		}
		*target = count
	}
	return counts, nil
}
