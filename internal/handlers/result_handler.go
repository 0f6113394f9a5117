package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pitchlens/submission-evaluator/internal/models"
	"pitchlens/submission-evaluator/internal/repositories"
)

const defaultHistoryLimit = 50

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
}

func NewResultHandler(evalRepo repositories.EvaluationRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
	}
}

// HandleGetHistory handles GET /api/v1/evaluations
func (h *ResultHandler) HandleGetHistory(c *fiber.Ctx) error {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit parameter",
			})
		}
		// Callers can shrink the page but never grow it past the
		// default.
		if parsed > defaultHistoryLimit {
			parsed = defaultHistoryLimit
		}
		limit = parsed
	}

	evaluations, err := h.evalRepo.ListByOwner(OwnerID(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluation history",
		})
	}

	return c.JSON(models.HistoryResponse{
		Success:     true,
		Evaluations: evaluations,
	})
}

// HandleGetResult handles GET /api/v1/evaluations/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
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

	return c.JSON(models.ResultResponse{
		Success:    true,
		Evaluation: evaluation,
	})
}
