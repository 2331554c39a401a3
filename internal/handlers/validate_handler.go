package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"studentpipeline/ai-validator/internal/models"
	"studentpipeline/ai-validator/internal/services"
)

// ValidateHandler serves the synchronous validation endpoints: documents
// come in as multipart PDFs and the verdict is returned in the same
// request.
type ValidateHandler struct {
	storageService    services.StorageService
	pdfParser         services.PDFParserService
	validationService services.ValidationService
	maxFileSize       int64
}

func NewValidateHandler(
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	validationService services.ValidationService,
	maxFileSize int64,
) *ValidateHandler {
	return &ValidateHandler{
		storageService:    storageService,
		pdfParser:         pdfParser,
		validationService: validationService,
		maxFileSize:       maxFileSize,
	}
}

// HandleValidate handles POST /validate: the full five-document flow.
func (h *ValidateHandler) HandleValidate(c *fiber.Ctx) error {
	var docs services.ApplicationDocuments

	slots := []struct {
		field  string
		target *models.DocumentInput
	}{
		{models.RoleResume, &docs.Resume},
		{models.RoleLOR, &docs.LOR},
		{models.RoleClass10, &docs.Class10},
		{models.RoleClass12, &docs.Class12},
		{models.RoleCollege, &docs.College},
	}

	for _, slot := range slots {
		input, errResp := h.readDocument(c, slot.field, true)
		if errResp != nil {
			return errResp
		}
		*slot.target = input
	}

	applicationType := c.FormValue("application_type", services.ApplicationTypeInternship)
	profile := services.ResolveProfile(c.FormValue("policy_profile"))

	verdict := h.validationService.ValidateApplication(c.Context(), docs, applicationType, profile)
	return c.JSON(verdict)
}

// HandleValidateResume handles POST /validate-resume.
func (h *ValidateHandler) HandleValidateResume(c *fiber.Ctx) error {
	input, errResp := h.readDocument(c, models.RoleResume, true)
	if errResp != nil {
		return errResp
	}

	profile := services.ResolveProfile(c.FormValue("policy_profile"))
	verdict := h.validationService.ValidateResumeOnly(c.Context(), input, profile)
	return c.JSON(verdict)
}

// HandleValidateLOR handles POST /validate-lor.
func (h *ValidateHandler) HandleValidateLOR(c *fiber.Ctx) error {
	input, errResp := h.readDocument(c, models.RoleLOR, true)
	if errResp != nil {
		return errResp
	}

	profile := services.ResolveProfile(c.FormValue("policy_profile"))
	verdict := h.validationService.ValidateLOROnly(c.Context(), input, profile)
	return c.JSON(verdict)
}

// HandleValidateMarksheets handles POST /validate-marksheets: the three
// academic documents plus the name-consistency check.
func (h *ValidateHandler) HandleValidateMarksheets(c *fiber.Ctx) error {
	class10, errResp := h.readDocument(c, models.RoleClass10, true)
	if errResp != nil {
		return errResp
	}
	class12, errResp := h.readDocument(c, models.RoleClass12, true)
	if errResp != nil {
		return errResp
	}
	college, errResp := h.readDocument(c, models.RoleCollege, true)
	if errResp != nil {
		return errResp
	}

	profile := services.ResolveProfile(c.FormValue("policy_profile"))
	verdict := h.validationService.ValidateMarksheetsOnly(c.Context(), class10, class12, college, profile)
	return c.JSON(verdict)
}

// readDocument stores the uploaded file just long enough to extract its
// content, then removes it. Sync validation keeps no document records.
func (h *ValidateHandler) readDocument(c *fiber.Ctx, field string, required bool) (models.DocumentInput, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if !required {
			return models.DocumentInput{}, nil
		}
		return models.DocumentInput{}, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("%s file is required", field),
		})
	}

	if file.Size > h.maxFileSize {
		return models.DocumentInput{}, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("%s file too large. Max size: %d bytes", field, h.maxFileSize),
		})
	}

	input, saveErr := h.extractFromUpload(file, field)
	if saveErr != nil {
		return models.DocumentInput{}, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read %s file: %v", field, saveErr),
		})
	}

	return input, nil
}

func (h *ValidateHandler) extractFromUpload(file *multipart.FileHeader, role string) (models.DocumentInput, error) {
	filename, filePath, err := h.storageService.SaveFile(file, role)
	if err != nil {
		return models.DocumentInput{}, err
	}
	defer h.storageService.DeleteFile(filename)

	return h.pdfParser.BuildDocumentInput(filePath)
}
