package handler

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/service"
	"github.com/voxhire/voxhire-api/internal/utils"
)

// AdminInterviewHandler wires interview management routes for the admin surface.
type AdminInterviewHandler struct {
	service service.AdminInterviewService
	logger  zerolog.Logger
}

// NewAdminInterviewHandler constructs the handler.
func NewAdminInterviewHandler(service service.AdminInterviewService, logger zerolog.Logger) *AdminInterviewHandler {
	return &AdminInterviewHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_interview_handler").Logger(),
	}
}

// Register attaches interview management endpoints to the router group.
func (h *AdminInterviewHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/report", h.report)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminInterviewHandler) list(c *fiber.Ctx) error {
	interviews, err := h.service.List(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "interviews retrieved", interviews)
}

func (h *AdminInterviewHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	interview, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "interview retrieved", interview)
}

func (h *AdminInterviewHandler) report(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	content, _, err := h.service.GetReport(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	mime := mimetype.Detect(content)
	c.Set(fiber.HeaderContentType, mime.String())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("interview_%d_report%s", id, mime.Extension())))
	return c.Send(content)
}

func (h *AdminInterviewHandler) create(c *fiber.Ctx) error {
	var payload dto.InterviewCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	interview, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interview scheduled", interview)
}

func (h *AdminInterviewHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.InterviewUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	interview, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "interview updated", interview)
}

func (h *AdminInterviewHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "interview deleted", fiber.Map{"id": id})
}

func (h *AdminInterviewHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInterviewNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "interview not found")
	case errors.Is(err, service.ErrCandidateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "candidate not found")
	case errors.Is(err, service.ErrReportNotReady):
		return utils.SendError(c, fiber.StatusNotFound, "interview report not ready")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *AdminInterviewHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
