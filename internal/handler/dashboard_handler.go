package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuslink/portal-api/internal/service"
	"github.com/campuslink/portal-api/internal/utils"
)

// DashboardHandler serves the role-dispatched dashboard endpoint.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler builds a dashboard handler instance.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("", h.get)
}

func (h *DashboardHandler) get(c *fiber.Ctx) error {
	dashboard, err := h.service.GetDashboard(c.Context(), actorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrRoleNotAllowed) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
