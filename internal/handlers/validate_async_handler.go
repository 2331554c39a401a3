package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studentpipeline/ai-validator/internal/models"
	"studentpipeline/ai-validator/internal/repositories"
	"studentpipeline/ai-validator/internal/services"
)

// ValidateAsyncHandler queues a validation job over previously uploaded
// documents and returns the job ID immediately.
type ValidateAsyncHandler struct {
	jobRepo        repositories.ValidationJobRepository
	docRepo        repositories.DocumentRepository
	worker         services.Worker
	defaultProfile string
}

func NewValidateAsyncHandler(
	jobRepo repositories.ValidationJobRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
	defaultProfile string,
) *ValidateAsyncHandler {
	return &ValidateAsyncHandler{
		jobRepo:        jobRepo,
		docRepo:        docRepo,
		worker:         worker,
		defaultProfile: defaultProfile,
	}
}

// HandleValidateAsync handles POST /validate-async.
func (h *ValidateAsyncHandler) HandleValidateAsync(c *fiber.Ctx) error {
	var req models.ValidateAsyncRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	ids := map[string]string{
		"resume_document_id":   req.ResumeDocumentID,
		"lor_document_id":      req.LORDocumentID,
		"class_10_document_id": req.Class10DocumentID,
		"class_12_document_id": req.Class12DocumentID,
		"college_document_id":  req.CollegeDocumentID,
	}

	parsed := make(map[string]uuid.UUID, len(ids))
	for field, raw := range ids {
		if raw == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is required", field),
			})
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid %s format", field),
			})
		}
		if _, err := h.docRepo.FindByID(id); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Document for %s not found", field),
			})
		}
		parsed[field] = id
	}

	applicationType := req.ApplicationType
	if applicationType == "" {
		applicationType = services.ApplicationTypeInternship
	}
	profile := req.PolicyProfile
	if profile == "" {
		profile = h.defaultProfile
	}

	job := &models.ValidationJob{
		ID:                uuid.New(),
		ApplicationType:   applicationType,
		PolicyProfile:     profile,
		ResumeDocumentID:  parsed["resume_document_id"],
		LORDocumentID:     parsed["lor_document_id"],
		Class10DocumentID: parsed["class_10_document_id"],
		Class12DocumentID: parsed["class_12_document_id"],
		CollegeDocumentID: parsed["college_document_id"],
		Status:            models.StatusQueued,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create validation job",
		})
	}

	h.worker.EnqueueJob(job.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ValidateAsyncResponse{
		ID:     job.ID.String(),
		Status: string(models.StatusQueued),
	})
}
