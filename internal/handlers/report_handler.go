package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pitchlens/submission-evaluator/internal/repositories"
	"pitchlens/submission-evaluator/internal/services"
)

type ReportHandler struct {
	evalRepo repositories.EvaluationRepository
	renderer services.ReportRenderer
}

func NewReportHandler(evalRepo repositories.EvaluationRepository, renderer services.ReportRenderer) *ReportHandler {
	return &ReportHandler{
		evalRepo: evalRepo,
		renderer: renderer,
	}
}

// HandleGetReport handles GET /api/v1/evaluations/:id/report
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByIDForOwner(evalID, OwnerID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Evaluation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluation",
		})
	}

	report, err := h.renderer.Render(evaluation)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate the evaluation report",
		})
	}

	base := strings.TrimSuffix(evaluation.OriginalName, filepath.Ext(evaluation.OriginalName))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="evaluation_report_%s.pdf"`, base))

	return c.Send(report)
}
