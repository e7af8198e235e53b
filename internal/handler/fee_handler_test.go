package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/service"
)

type mockFeeService struct {
	summaryFn func(ctx context.Context, studentID uint) (dto.FeeSummaryResponse, error)
	payFn     func(ctx context.Context, actor service.Actor, installmentID uint) (dto.FeeInstallmentResponse, error)
}

func (m *mockFeeService) SummaryFor(ctx context.Context, studentID uint) (dto.FeeSummaryResponse, error) {
	return m.summaryFn(ctx, studentID)
}

func (m *mockFeeService) RecordPayment(ctx context.Context, actor service.Actor, installmentID uint) (dto.FeeInstallmentResponse, error) {
	return m.payFn(ctx, actor, installmentID)
}

func newFeeTestApp(svc service.FeeService, actor service.Actor) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", actor.ID)
		c.Locals("user_name", actor.Name)
		c.Locals("user_role", actor.Role)
		return c.Next()
	})
	NewFeeHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/fees"))
	return app
}

func TestFeeHandlerStudentSummaryIgnoresQueryOverride(t *testing.T) {
	app := newFeeTestApp(&mockFeeService{
		summaryFn: func(_ context.Context, studentID uint) (dto.FeeSummaryResponse, error) {
			require.Equal(t, uint(1), studentID)
			return dto.FeeSummaryResponse{StudentID: studentID, Status: models.FeeStatusPending}, nil
		},
	}, service.Actor{ID: 1, Role: models.RoleStudent})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/fees?student_id=99", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFeeHandlerRecordPaymentTeacherOnly(t *testing.T) {
	app := newFeeTestApp(&mockFeeService{}, service.Actor{ID: 1, Role: models.RoleStudent})

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/fees/3/pay", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestFeeHandlerRecordPayment(t *testing.T) {
	app := newFeeTestApp(&mockFeeService{
		payFn: func(_ context.Context, actor service.Actor, installmentID uint) (dto.FeeInstallmentResponse, error) {
			require.Equal(t, uint(3), installmentID)
			require.Equal(t, models.RoleTeacher, actor.Role)
			return dto.FeeInstallmentResponse{ID: installmentID, Status: models.FeeStatusPaid}, nil
		},
	}, service.Actor{ID: 7, Role: models.RoleTeacher})

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/fees/3/pay", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFeeHandlerRecordPaymentConflict(t *testing.T) {
	app := newFeeTestApp(&mockFeeService{
		payFn: func(context.Context, service.Actor, uint) (dto.FeeInstallmentResponse, error) {
			return dto.FeeInstallmentResponse{}, service.ErrAlreadyPaid
		},
	}, service.Actor{ID: 7, Role: models.RoleTeacher})

	resp, err := app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/fees/3/pay", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
