package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/service"
	"github.com/voxhire/voxhire-api/internal/utils"
)

// CandidateHandler wires candidate HTTP routes. Candidate creation accepts a
// multipart form with an optional resume file part.
type CandidateHandler struct {
	service service.CandidateService
	logger  zerolog.Logger
}

// NewCandidateHandler constructs the handler.
func NewCandidateHandler(service service.CandidateService, logger zerolog.Logger) *CandidateHandler {
	return &CandidateHandler{
		service: service,
		logger:  logger.With().Str("component", "candidate_handler").Logger(),
	}
}

// Register attaches candidate endpoints to the router group.
func (h *CandidateHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/resume", h.resume)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *CandidateHandler) list(c *fiber.Ctx) error {
	positionID, err := parseQueryUint(c, "position_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid position_id")
	}

	candidates, err := h.service.List(c.Context(), positionID)
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "candidates retrieved", candidates)
}

func (h *CandidateHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	candidate, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "candidate retrieved", candidate)
}

func (h *CandidateHandler) resume(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	content, mime, err := h.service.GetResume(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, mime)
	return c.Send(content)
}

func (h *CandidateHandler) create(c *fiber.Ctx) error {
	positionID, _ := strconv.ParseUint(c.FormValue("position_id"), 10, 64)
	payload := dto.CandidateCreateRequest{
		Name:       c.FormValue("name"),
		Email:      c.FormValue("email"),
		PositionID: uint(positionID),
	}

	resume, err := h.resumeBytes(c)
	if err != nil {
		return h.internalError(c, err)
	}

	candidate, err := h.service.Create(c.Context(), payload, resume)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "candidate registered", candidate)
}

func (h *CandidateHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.CandidateUpdateRequest{}
	if name := c.FormValue("name"); name != "" {
		payload.Name = &name
	}
	if email := c.FormValue("email"); email != "" {
		payload.Email = &email
	}
	if raw := c.FormValue("position_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid position id")
		}
		positionID := uint(parsed)
		payload.PositionID = &positionID
	}

	resume, err := h.resumeBytes(c)
	if err != nil {
		return h.internalError(c, err)
	}

	candidate, err := h.service.Update(c.Context(), id, payload, resume)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "candidate updated", candidate)
}

func (h *CandidateHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "candidate deleted", fiber.Map{"id": id})
}

// resumeBytes reads the optional resume form part. A missing part is not an
// error; candidates can be registered before their resume arrives.
func (h *CandidateHandler) resumeBytes(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		return nil, nil
	}

	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func (h *CandidateHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCandidateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "candidate not found")
	case errors.Is(err, service.ErrPositionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "position not found")
	case errors.Is(err, service.ErrResumeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "resume not found")
	case errors.Is(err, service.ErrUnsupportedResumeType):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *CandidateHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
