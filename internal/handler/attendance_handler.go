package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/middleware"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/service"
	"github.com/campuslink/portal-api/internal/utils"
)

// AttendanceHandler manages attendance endpoints.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler builds an attendance handler instance.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Put("/:studentId", middleware.RequireRole(models.RoleTeacher), h.record)
}

// summary serves the student's own attendance. Teachers get the whole
// roster, or a single student's summary via an explicit student_id query.
func (h *AttendanceHandler) summary(c *fiber.Ctx) error {
	actor := actorFromContext(c)

	studentID := actor.ID
	if actor.IsTeacher() {
		raw := c.Query("student_id")
		if raw == "" {
			roster, err := h.service.Roster(c.Context(), actor)
			if err != nil {
				return h.handleError(c, err)
			}
			return utils.SendSuccess(c, "roster retrieved", roster)
		}

		id, parseErr := parseQueryUint(raw)
		if parseErr != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		studentID = id
	}

	summary, err := h.service.SummaryFor(c.Context(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attendance retrieved", summary)
}

func (h *AttendanceHandler) record(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AttendanceUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	summary, err := h.service.Record(c.Context(), actorFromContext(c), studentID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attendance recorded", summary)
}

func (h *AttendanceHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrRoleNotAllowed):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
