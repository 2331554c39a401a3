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

// Document roles accepted by the upload endpoint, in application order.
var uploadRoles = []string{
	models.RoleResume,
	models.RoleLOR,
	models.RoleClass10,
	models.RoleClass12,
	models.RoleCollege,
}

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. Each form field named after a
// document role is stored and gets a document record; any subset of the
// five roles may be uploaded at once.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	for _, role := range uploadRoles {
		roleFiles, exists := files[role]
		if !exists || len(roleFiles) == 0 {
			continue
		}
		file := roleFiles[0]

		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s file too large. Max size: %d bytes", role, h.maxFileSize),
			})
		}

		filename, filePath, err := h.storageService.SaveFile(file, role)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s file: %v", role, err),
			})
		}

		doc := models.Document{
			ID:               uuid.New(),
			Filename:         filename,
			OriginalFileName: file.Filename,
			Role:             role,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}

		if err := h.docRepo.Create(&doc); err != nil {
			// Cleanup uploaded file if database insert fails
			h.storageService.DeleteFile(filename)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s document record: %v", role, err),
			})
		}

		responses = append(responses, models.UploadResponse{
			ID:           doc.ID.String(),
			Filename:     doc.Filename,
			OriginalName: doc.OriginalFileName,
			Role:         doc.Role,
		})
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload PDF files under the document role field names: resume, lor, class_10, class_12, college_marksheets.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}
