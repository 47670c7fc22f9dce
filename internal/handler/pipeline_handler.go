package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/service"
	"github.com/voxhire/voxhire-api/internal/utils"
)

// PipelineHandler exposes manual triggers for the background workers, so an
// operator does not have to wait for the next polling cycle.
type PipelineHandler struct {
	questions service.QuestionGenerationService
	reports   service.ReportSynthesisService
	logger    zerolog.Logger
}

// NewPipelineHandler constructs the handler.
func NewPipelineHandler(questions service.QuestionGenerationService, reports service.ReportSynthesisService, logger zerolog.Logger) *PipelineHandler {
	return &PipelineHandler{
		questions: questions,
		reports:   reports,
		logger:    logger.With().Str("component", "pipeline_handler").Logger(),
	}
}

// Register attaches the trigger endpoints to the router group.
func (h *PipelineHandler) Register(router fiber.Router) {
	router.Post("/generate_questions", h.generateQuestions)
	router.Post("/process_reports", h.processReports)
}

func (h *PipelineHandler) generateQuestions(c *fiber.Ctx) error {
	processed, err := h.questions.RunOnce(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("manual question generation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "question generation failed")
	}
	return utils.SendSuccess(c, "question generation finished", fiber.Map{"processed": processed})
}

func (h *PipelineHandler) processReports(c *fiber.Ctx) error {
	processed, err := h.reports.RunOnce(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("manual report synthesis failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "report synthesis failed")
	}
	return utils.SendSuccess(c, "report synthesis finished", fiber.Map{"processed": processed})
}
