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

// BlogHandler manages blog post endpoints.
type BlogHandler struct {
	service service.BlogService
	logger  zerolog.Logger
}

// NewBlogHandler builds a blog handler instance.
func NewBlogHandler(service service.BlogService, logger zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  logger.With().Str("component", "blog_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. Write routes
// carry an additional teacher-role guard.
func (h *BlogHandler) Register(router fiber.Router) {
	router.Get("", h.list)

	teacherOnly := middleware.RequireRole(models.RoleTeacher)
	router.Post("", teacherOnly, h.create)
	router.Put("/:id", teacherOnly, h.update)
	router.Delete("/:id", teacherOnly, h.delete)
}

func (h *BlogHandler) list(c *fiber.Ctx) error {
	posts, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "posts retrieved", posts)
}

func (h *BlogHandler) create(c *fiber.Ctx) error {
	var payload dto.BlogCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !models.ValidBlogCategory(payload.Category) {
		return utils.SendError(c, fiber.StatusBadRequest, "category must be news, scholarship, events or announcements")
	}

	post, err := h.service.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "post created", post)
}

func (h *BlogHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.BlogUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Category != nil && !models.ValidBlogCategory(*payload.Category) {
		return utils.SendError(c, fiber.StatusBadRequest, "category must be news, scholarship, events or announcements")
	}

	post, err := h.service.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "post updated", post)
}

func (h *BlogHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "post deleted", nil)
}

func (h *BlogHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrRoleNotAllowed):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
