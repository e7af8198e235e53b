package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/service"
	"github.com/campuslink/portal-api/internal/utils"
)

// ProfileHandler manages the authenticated user's profile endpoints.
type ProfileHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewProfileHandler builds a profile handler instance.
func NewProfileHandler(service service.AuthService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
}

func (h *ProfileHandler) get(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.UpdateProfile(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", profile)
}

func (h *ProfileHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "account not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
