package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campuslink/portal-api/internal/dto"
	"github.com/campuslink/portal-api/internal/models"
	"github.com/campuslink/portal-api/internal/service"
	"github.com/campuslink/portal-api/internal/utils"
)

// CertificateHandler manages certificate request endpoints for one kind
// (bonafide or migration); the router mounts one instance per kind.
type CertificateHandler struct {
	service service.CertificateService
	logger  zerolog.Logger
}

// NewCertificateHandler builds a certificate handler instance.
func NewCertificateHandler(svc service.CertificateService, kind string, logger zerolog.Logger) *CertificateHandler {
	return &CertificateHandler{
		service: svc,
		logger:  logger.With().Str("component", "certificate_handler").Str("kind", kind).Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CertificateHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.submit)
	router.Patch("/:id/decision", h.decide)
	router.Get("/:id/document", h.documentLink)
}

func (h *CertificateHandler) list(c *fiber.Ctx) error {
	requests, err := h.service.List(c.Context(), actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "requests retrieved", requests)
}

func (h *CertificateHandler) submit(c *fiber.Ctx) error {
	payload := dto.CertificateCreateRequest{Purpose: c.FormValue("purpose")}

	file, err := c.FormFile("document")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "supporting document is required")
	}

	request, err := h.service.Submit(c.Context(), actorFromContext(c), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "request submitted", request)
}

func (h *CertificateHandler) decide(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CertificateDecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !models.ValidDecision(payload.Status) {
		return utils.SendError(c, fiber.StatusBadRequest, "status must be approved or rejected")
	}

	request, err := h.service.Decide(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "request decided", request)
}

func (h *CertificateHandler) documentLink(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	link, err := h.service.DocumentLink(c.Context(), actorFromContext(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "document link created", link)
}

func (h *CertificateHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCertificateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "request not found")
	case errors.Is(err, service.ErrAlreadyDecided):
		return utils.SendError(c, fiber.StatusConflict, "request already processed, please refresh")
	case errors.Is(err, service.ErrDocumentRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "supporting document is required")
	case errors.Is(err, service.ErrDocumentTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "supporting document exceeds size limit")
	case errors.Is(err, service.ErrUnsupportedDocument):
		return utils.SendError(c, fiber.StatusBadRequest, "document must be a PDF, PNG or JPG")
	case errors.Is(err, service.ErrRoleNotAllowed):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
