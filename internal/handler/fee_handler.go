package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuslink/portal-api/internal/middleware"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/service"
	"github.com/campuslink/portal-api/internal/utils"
)

// FeeHandler manages fee schedule endpoints.
type FeeHandler struct {
	service service.FeeService
	logger  zerolog.Logger
}

// NewFeeHandler builds a fee handler instance.
func NewFeeHandler(service service.FeeService, logger zerolog.Logger) *FeeHandler {
	return &FeeHandler{
		service: service,
		logger:  logger.With().Str("component", "fee_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *FeeHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Patch("/:id/pay", middleware.RequireRole(models.RoleTeacher), h.recordPayment)
}

func (h *FeeHandler) summary(c *fiber.Ctx) error {
	actor := actorFromContext(c)

	studentID := actor.ID
	if actor.IsTeacher() {
		if raw := c.Query("student_id"); raw != "" {
			id, parseErr := parseQueryUint(raw)
			if parseErr != nil {
				return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
			}
			studentID = id
		}
	}

	summary, err := h.service.SummaryFor(c.Context(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "fees retrieved", summary)
}

func (h *FeeHandler) recordPayment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	installment, err := h.service.RecordPayment(c.Context(), actorFromContext(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "payment recorded", installment)
}

func (h *FeeHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInstallmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "installment not found")
	case errors.Is(err, service.ErrAlreadyPaid):
		return utils.SendError(c, fiber.StatusConflict, "installment already paid")
	case errors.Is(err, service.ErrRoleNotAllowed):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
