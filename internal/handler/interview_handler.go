package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/dto"
	"github.com/voxhire/voxhire-api/internal/service"
	"github.com/voxhire/voxhire-api/internal/utils"
)

// InterviewHandler wires the candidate-facing session routes. Every route is
// addressed by the opaque access token; no other authentication applies.
type InterviewHandler struct {
	service service.InterviewSessionService
	logger  zerolog.Logger
}

// NewInterviewHandler constructs the handler.
func NewInterviewHandler(service service.InterviewSessionService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register attaches session endpoints to the router group.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Get("/:token/info", h.info)
	router.Get("/:token/get_question", h.nextQuestion)
	router.Post("/:token/submit_answer", h.submitAnswer)
	router.Post("/:token/toggle_voice_reading", h.toggleVoiceReading)
}

func (h *InterviewHandler) info(c *fiber.Ctx) error {
	snapshot, err := h.service.GetInfo(c.Context(), c.Params("token"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "interview info retrieved", snapshot)
}

func (h *InterviewHandler) nextQuestion(c *fiber.Ctx) error {
	currentID, err := parseQueryUint(c, "current_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid current_id")
	}

	question, err := h.service.NextQuestion(c.Context(), c.Params("token"), currentID)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "question retrieved", question)
}

func (h *InterviewHandler) submitAnswer(c *fiber.Ctx) error {
	questionID, _ := strconv.ParseUint(c.FormValue("question_id"), 10, 64)

	audio, err := h.audioBytes(c)
	if err != nil {
		return h.internalError(c, err)
	}

	result, err := h.service.SubmitAnswer(c.Context(), c.Params("token"), uint(questionID), audio)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "answer submitted", result)
}

func (h *InterviewHandler) toggleVoiceReading(c *fiber.Ctx) error {
	var payload dto.ToggleVoiceReadingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.SetVoiceReading(c.Context(), c.Params("token"), payload.Enabled); err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "voice reading updated", fiber.Map{"voice_reading": payload.Enabled})
}

func (h *InterviewHandler) audioBytes(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("audio_answer")
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

func (h *InterviewHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInterviewNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "interview not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found for interview")
	case errors.Is(err, service.ErrMissingAnswer):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *InterviewHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
