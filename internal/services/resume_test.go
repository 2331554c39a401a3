package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentpipeline/ai-validator/internal/models"
)

func resumeResponse(valid, marksMentioned string, class10, class12, cgpa float64, skills string) string {
	return fmt.Sprintf(`VALID: %s
FEEDBACK: scripted feedback
TECHNICAL_SKILLS: %s
MARKS_MENTIONED: %s
CLASS_10_PERCENTAGE: %.1f
CLASS_12_PERCENTAGE: %.1f
CGPA: %.2f
EDUCATION_LEVEL: BTech
PROJECTS_COUNT: 3
CONTACT_INFO: yes
MISSING_ELEMENTS: none`, valid, skills, marksMentioned, class10, class12, cgpa)
}

func TestResumeValidator(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		response  string
		wantValid bool
		wantIssue string
	}{
		{
			name:      "everything passes",
			response:  resumeResponse("true", "yes", 82.0, 75.5, 8.1, "Go, Python, SQL"),
			wantValid: true,
		},
		{
			name:      "marks not mentioned",
			response:  resumeResponse("true", "no", 0, 0, 0, "Go, Python"),
			wantValid: false,
			wantIssue: "Academic marks are not mentioned in the document",
		},
		{
			name:      "class 10 just below minimum",
			response:  resumeResponse("true", "yes", 59.9, 75.0, 8.1, "Go"),
			wantValid: false,
			wantIssue: "Class 10 percentage 59.9% is below the 60% minimum",
		},
		{
			name:      "class 10 exactly at minimum passes",
			response:  resumeResponse("true", "yes", 60.0, 75.0, 8.1, "Go"),
			wantValid: true,
		},
		{
			name:      "cgpa just below minimum",
			response:  resumeResponse("true", "yes", 82.0, 75.0, 6.31, "Go"),
			wantValid: false,
			wantIssue: "CGPA 6.31 is below the 6.32 minimum",
		},
		{
			name:      "cgpa exactly at minimum passes",
			response:  resumeResponse("true", "yes", 82.0, 75.0, 6.32, "Go"),
			wantValid: true,
		},
		{
			name: "no technical skills",
			response: `VALID: true
FEEDBACK: fine otherwise
MARKS_MENTIONED: yes
CLASS_10_PERCENTAGE: 82.0
CLASS_12_PERCENTAGE: 75.0
CGPA: 8.10
TECHNICAL_SKILLS:`,
			wantValid: false,
			wantIssue: "No technical skills identified in the document",
		},
		{
			name:      "model rejects content",
			response:  resumeResponse("false", "yes", 82.0, 75.0, 8.1, "Go"),
			wantValid: false,
			wantIssue: "Document content does not meet the internship requirements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewResumeValidator(staticOracle(tt.response), NewNoopGuidelineRetriever())
			verdict := validator.Validate(ctx, models.TextInput("resume text"), ProfileFiveDocument)

			assert.Equal(t, tt.wantValid, verdict.Valid)
			if tt.wantIssue != "" {
				assert.Contains(t, verdict.Issues, tt.wantIssue)
			}
			if tt.wantValid {
				assert.Empty(t, verdict.Issues)
				assert.Equal(t, "Document meets all requirements", verdict.Feedback)
			}
		})
	}
}

func TestResumeValidatorThresholdIssuesSuppressedWhenMarksMissing(t *testing.T) {
	ctx := context.Background()
	validator := NewResumeValidator(staticOracle(resumeResponse("true", "no", 0, 0, 0, "Go")), NewNoopGuidelineRetriever())

	verdict := validator.Validate(ctx, models.TextInput("resume text"), ProfileFiveDocument)
	require.False(t, verdict.Valid)
	require.Len(t, verdict.Issues, 1)
	assert.Equal(t, "Academic marks are not mentioned in the document", verdict.Issues[0])
}

func TestResumeValidatorEmptyDocument(t *testing.T) {
	ctx := context.Background()
	validator := NewResumeValidator(failingOracle(errors.New("should not be called")), NewNoopGuidelineRetriever())

	verdict := validator.Validate(ctx, models.DocumentInput{}, ProfileFiveDocument)
	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Feedback, "No content to validate")
}

func TestResumeValidatorModelError(t *testing.T) {
	ctx := context.Background()
	validator := NewResumeValidator(failingOracle(errors.New("quota exceeded")), NewNoopGuidelineRetriever())

	verdict := validator.Validate(ctx, models.TextInput("resume text"), ProfileFiveDocument)
	assert.False(t, verdict.Valid)
	assert.Contains(t, verdict.Feedback, "Error validating resume")
}
