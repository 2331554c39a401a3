package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studentpipeline/ai-validator/internal/models"
	"studentpipeline/ai-validator/internal/repositories"
)

type ResultHandler struct {
	jobRepo repositories.ValidationJobRepository
}

func NewResultHandler(jobRepo repositories.ValidationJobRepository) *ResultHandler {
	return &ResultHandler{
		jobRepo: jobRepo,
	}
}

// HandleGetResult handles GET /result/:id.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	jobID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Validation job not found",
		})
	}

	response := models.ResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	if job.Status == models.StatusCompleted && job.Verdict != nil {
		var verdict models.ApplicationVerdict
		if err := json.Unmarshal([]byte(*job.Verdict), &verdict); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode stored verdict",
			})
		}
		response.Verdict = &verdict
	}

	if job.Status == models.StatusFailed {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}
