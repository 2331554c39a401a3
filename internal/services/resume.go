package services

import (
	"context"
	"fmt"
	"strings"

	"studentpipeline/ai-validator/internal/models"
)

const validationTemperature float32 = 0.2

// askOracle sends a validation prompt for a document, choosing the
// multimodal path when the document came through the payload fallback.
func askOracle(ctx context.Context, oracle GeminiService, prompt string, doc models.DocumentInput) (string, error) {
	if doc.HasPayloads() {
		return oracle.GenerateWithPayloads(ctx, prompt, doc.Payloads, validationTemperature)
	}
	return oracle.GenerateText(ctx, prompt, validationTemperature)
}

// noContentVerdict is the short-circuit for a caller that supplied
// neither text nor payloads.
func noContentVerdict(role string) models.DocumentVerdict {
	feedback := fmt.Sprintf("No content to validate for %s", role)
	return models.DocumentVerdict{
		Valid:    false,
		Feedback: feedback,
		Issues:   []string{feedback},
		Details:  map[string]any{},
	}
}

// ResumeValidator validates a resume or cover letter: technical skills
// must be present, academic marks must be explicitly stated, and the
// stated marks must clear the policy thresholds.
type ResumeValidator interface {
	Validate(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict
}

type resumeValidator struct {
	oracle        GeminiService
	retriever     GuidelineRetriever
	promptBuilder *PromptBuilder
}

func NewResumeValidator(oracle GeminiService, retriever GuidelineRetriever) ResumeValidator {
	return &resumeValidator{
		oracle:        oracle,
		retriever:     retriever,
		promptBuilder: NewPromptBuilder(),
	}
}

// Validate implements ResumeValidator.
func (v *resumeValidator) Validate(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict {
	if doc.IsEmpty() {
		return noContentVerdict("resume")
	}

	guidelineContext := v.retriever.RetrieveContext(ctx, GuidelineResume)
	prompt := v.promptBuilder.BuildResumePrompt(doc.Text, guidelineContext)

	response, err := askOracle(ctx, v.oracle, prompt, doc)
	if err != nil {
		feedback := fmt.Sprintf("Error validating resume: %v", err)
		return models.DocumentVerdict{
			Valid:    false,
			Feedback: feedback,
			Issues:   []string{feedback},
			Details:  map[string]any{},
		}
	}

	contentPass := ToBoolean(ExtractField(response, "VALID"))
	technicalSkills := ExtractField(response, "TECHNICAL_SKILLS")
	marksMentioned := ToBoolean(ExtractField(response, "MARKS_MENTIONED"))
	class10 := ToPercentage(ExtractField(response, "CLASS_10_PERCENTAGE"))
	class12 := ToPercentage(ExtractField(response, "CLASS_12_PERCENTAGE"))
	cgpa := ToCGPA(ExtractField(response, "CGPA"))

	meetsClass10 := class10 >= profile.MinPercentage
	meetsClass12 := class12 >= profile.MinPercentage
	meetsCGPA := cgpa >= profile.MinCGPA
	academicValid := meetsClass10 && meetsClass12 && meetsCGPA
	skillsPresent := strings.TrimSpace(technicalSkills) != ""

	var issues []string
	if !marksMentioned {
		issues = append(issues, "Academic marks are not mentioned in the document")
	} else {
		if !meetsClass10 {
			issues = append(issues, fmt.Sprintf("Class 10 percentage %.1f%% is below the %.0f%% minimum", class10, profile.MinPercentage))
		}
		if !meetsClass12 {
			issues = append(issues, fmt.Sprintf("Class 12 percentage %.1f%% is below the %.0f%% minimum", class12, profile.MinPercentage))
		}
		if !meetsCGPA {
			issues = append(issues, fmt.Sprintf("CGPA %.2f is below the %.2f minimum", cgpa, profile.MinCGPA))
		}
	}
	if !skillsPresent {
		issues = append(issues, "No technical skills identified in the document")
	}
	if !contentPass {
		issues = append(issues, "Document content does not meet the internship requirements")
	}

	valid := marksMentioned && academicValid && contentPass && skillsPresent

	feedback := "Document meets all requirements"
	if len(issues) > 0 {
		feedback = strings.Join(issues, ". ")
	}

	return models.DocumentVerdict{
		Valid:    valid,
		Feedback: feedback,
		Issues:   issues,
		Details: map[string]any{
			"technical_skills":    technicalSkills,
			"marks_mentioned":     marksMentioned,
			"class_10_percentage": class10,
			"class_12_percentage": class12,
			"cgpa":                cgpa,
			"academic_valid":      academicValid,
			"education_level":     ExtractField(response, "EDUCATION_LEVEL"),
			"projects_count":      ExtractField(response, "PROJECTS_COUNT"),
			"has_contact_info":    ToBoolean(ExtractField(response, "CONTACT_INFO")),
			"missing_elements":    ExtractField(response, "MISSING_ELEMENTS"),
		},
		RawResponse: response,
	}
}
