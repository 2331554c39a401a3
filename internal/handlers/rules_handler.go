package handlers

import (
	"github.com/gofiber/fiber/v2"

	"studentpipeline/ai-validator/internal/services"
)

// RulesHandler exposes the eligibility policy tables so applicants can
// check requirements before submitting.
type RulesHandler struct{}

func NewRulesHandler() *RulesHandler {
	return &RulesHandler{}
}

// HandleGetRules handles GET /eligibility-rules.
func (h *RulesHandler) HandleGetRules(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"degree_requirements": services.DegreeRequirements,
		"policy_profiles": []services.PolicyProfile{
			services.ProfileFiveDocument,
			services.ProfileIntakeForm,
		},
		"application_types": []string{
			services.ApplicationTypeInternship,
			services.ApplicationTypeProject,
		},
	})
}
