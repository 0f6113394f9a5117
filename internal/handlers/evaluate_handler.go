package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pitchlens/submission-evaluator/internal/models"
	"pitchlens/submission-evaluator/internal/services"
)

type EvaluationHandler struct {
	evaluator      services.EvaluatorService
	storageService services.StorageService
	maxFileSize    int64
}

func NewEvaluationHandler(
	evaluator services.EvaluatorService,
	storageService services.StorageService,
	maxFileSize int64,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator:      evaluator,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleEvaluate handles POST /api/v1/evaluations
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a PDF or PowerPoint file as 'file'.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	format, ok := formatForExtension(file.Filename)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type. Please upload a PDF or PowerPoint file.",
		})
	}

	filename, filePath, err := h.storageService.SaveUpload(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save uploaded file: %v", err),
		})
	}
	// The upload is scratch space for this request only.
	defer h.storageService.DeleteFile(filename)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	evaluation, err := h.evaluator.Evaluate(c.Context(), services.EvaluationRequest{
		Data:         data,
		Format:       format,
		Filename:     filename,
		OriginalName: file.Filename,
		OwnerID:      OwnerID(c),
	})
	if err != nil {
		return evaluationErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.EvaluateResponse{
		Success:    true,
		Evaluation: evaluation,
	})
}

func formatForExtension(filename string) (services.DocumentFormat, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return services.FormatPDF, true
	case ".ppt", ".pptx":
		return services.FormatPresentation, true
	default:
		return "", false
	}
}

func evaluationErrorResponse(c *fiber.Ctx, err error) error {
	var extractionErr *services.ExtractionError

	switch {
	case errors.Is(err, services.ErrEmptyContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ErrEmptyContent.Error(),
		})
	case errors.Is(err, services.ErrInvalidContentType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ErrInvalidContentType.Error(),
		})
	case errors.As(err, &extractionErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": extractionErr.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to evaluate the submission",
		})
	}
}
