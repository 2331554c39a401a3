package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentpipeline/ai-validator/internal/models"
)

func passingResumeVerdict() models.DocumentVerdict {
	return models.DocumentVerdict{
		Valid:    true,
		Feedback: "Document meets all requirements",
		Details:  map[string]any{"cgpa": 8.2},
	}
}

func passingLORVerdict() models.DocumentVerdict {
	return models.DocumentVerdict{
		Valid:    true,
		Feedback: "Letter of recommendation meets all requirements",
		Details:  map[string]any{},
	}
}

func passingMarksheetsVerdict() models.MarksheetsVerdict {
	return models.MarksheetsVerdict{
		Valid:           true,
		NamesConsistent: true,
		Class10:         models.SchoolMarksheetVerdict{Valid: true, ClassLevel: "10", Percentage: 82},
		Class12:         models.SchoolMarksheetVerdict{Valid: true, ClassLevel: "12", Percentage: 76},
		College: models.CollegeMarksheetVerdict{
			Valid:          true,
			CurrentCGPA:    8.2,
			MeetsCGPAReq:   true,
			HasNoBacklogs:  true,
			TotalSemesters: 6,
			DegreeType:     "BTECH",
			CollegeName:    "Example Institute of Technology",
			StudentName:    "Richard Samuel",
		},
		Issues: []string{},
		StudentInfo: models.StudentInfo{
			PrimaryName: "Richard Samuel",
			DegreeType:  "BTECH",
			CollegeName: "Example Institute of Technology",
		},
	}
}

func passingEligibility() models.EligibilityResult {
	return models.EligibilityResult{
		Eligible:           true,
		Reason:             "Meets semester requirement for BTECH",
		SemestersCompleted: 6,
		MinimumRequired:    6,
		DegreeCategory:     CategoryEngineering,
	}
}

func TestEvaluateAccepted(t *testing.T) {
	evaluator := NewApplicationEvaluator()

	verdict := evaluator.Evaluate(passingResumeVerdict(), passingLORVerdict(), passingMarksheetsVerdict(), passingEligibility())

	assert.True(t, verdict.Valid)
	assert.Equal(t, models.ApplicationAccepted, verdict.Status)
	assert.Empty(t, verdict.Issues)
	assert.Empty(t, verdict.InvalidDocuments)
	assert.Empty(t, verdict.Recommendations)
	assert.Contains(t, verdict.Summary, "Richard Samuel")
	assert.Contains(t, verdict.Summary, "accepted")

	require.Contains(t, verdict.Details, ComponentResume)
	require.Contains(t, verdict.Details, ComponentLOR)
	require.Contains(t, verdict.Details, ComponentAcademic)
	require.Contains(t, verdict.Details, ComponentEligibility)
	for _, detail := range verdict.Details {
		assert.Equal(t, "PASS", detail.Status)
	}

	assert.Equal(t, "Richard Samuel", verdict.ApplicantInfo.Name)
	assert.Equal(t, "BTECH", verdict.ApplicantInfo.Degree)
	assert.InDelta(t, 8.2, verdict.ApplicantInfo.CGPA, 0.0001)
	assert.Equal(t, 6, verdict.ApplicantInfo.SemestersCompleted)

	require.Len(t, verdict.NextSteps, 3)
	assert.Contains(t, verdict.NextSteps[0], "accepted")
}

func TestEvaluateRejectedCollectsIssuesInDocumentOrder(t *testing.T) {
	evaluator := NewApplicationEvaluator()

	resume := models.DocumentVerdict{
		Valid:    false,
		Feedback: "resume issues",
		Issues:   []string{"No technical skills identified in the document"},
		Details:  map[string]any{},
	}
	lor := models.DocumentVerdict{
		Valid:    false,
		Feedback: "lor issues",
		Issues:   []string{"Letter is missing an official institutional letterhead"},
		Details:  map[string]any{},
	}
	marksheets := passingMarksheetsVerdict()
	marksheets.Valid = false
	marksheets.Issues = []string{"College: CGPA 6.10 is below the 6.32 minimum"}
	eligibility := models.EligibilityResult{
		Eligible: false,
		Reason:   "Must have completed at least 6 semester(s) for BTECH",
	}

	verdict := evaluator.Evaluate(resume, lor, marksheets, eligibility)

	assert.False(t, verdict.Valid)
	assert.Equal(t, models.ApplicationRejected, verdict.Status)
	assert.Equal(t, []string{
		"No technical skills identified in the document",
		"Letter is missing an official institutional letterhead",
		"College: CGPA 6.10 is below the 6.32 minimum",
		"Must have completed at least 6 semester(s) for BTECH",
	}, verdict.Issues)
	assert.Equal(t, []string{
		"Resume",
		"Letter of Recommendation",
		"Academic Records",
		"Eligibility Criteria",
	}, verdict.InvalidDocuments)
	assert.Contains(t, verdict.Summary, "rejected")
	assert.Len(t, verdict.Recommendations, 4)
}

func TestEvaluateSingleFailureKeepsOtherComponentsVisible(t *testing.T) {
	evaluator := NewApplicationEvaluator()

	lor := models.DocumentVerdict{
		Valid:    false,
		Feedback: "lor issues",
		Issues:   []string{"Internship start date must be at least the next calendar month"},
		Details:  map[string]any{},
	}

	verdict := evaluator.Evaluate(passingResumeVerdict(), lor, passingMarksheetsVerdict(), passingEligibility())

	assert.False(t, verdict.Valid)
	assert.Equal(t, []string{"Letter of Recommendation"}, verdict.InvalidDocuments)
	assert.Equal(t, "PASS", verdict.Details[ComponentResume].Status)
	assert.Equal(t, "FAIL", verdict.Details[ComponentLOR].Status)
	assert.Equal(t, "PASS", verdict.Details[ComponentAcademic].Status)
	assert.Equal(t, "PASS", verdict.Details[ComponentEligibility].Status)
}

func TestEvaluateNextStepsLimitIssues(t *testing.T) {
	evaluator := NewApplicationEvaluator()

	resume := models.DocumentVerdict{
		Valid: false,
		Issues: []string{
			"issue one", "issue two", "issue three",
			"issue four", "issue five", "issue six", "issue seven",
		},
		Details: map[string]any{},
	}

	verdict := evaluator.Evaluate(resume, passingLORVerdict(), passingMarksheetsVerdict(), passingEligibility())

	// Header + capped five issues + contact line.
	require.Len(t, verdict.NextSteps, 7)
	assert.Equal(t, "Address the following issues and resubmit:", verdict.NextSteps[0])
	assert.Equal(t, "- issue five", verdict.NextSteps[5])
	assert.NotContains(t, verdict.NextSteps, "- issue six")
}

func TestEvaluateIsIdempotent(t *testing.T) {
	evaluator := NewApplicationEvaluator()

	first := evaluator.Evaluate(passingResumeVerdict(), passingLORVerdict(), passingMarksheetsVerdict(), passingEligibility())
	second := evaluator.Evaluate(passingResumeVerdict(), passingLORVerdict(), passingMarksheetsVerdict(), passingEligibility())

	assert.Equal(t, first, second)
}

func TestEvaluateUnknownApplicantName(t *testing.T) {
	evaluator := NewApplicationEvaluator()

	marksheets := passingMarksheetsVerdict()
	marksheets.StudentInfo.PrimaryName = ""

	verdict := evaluator.Evaluate(passingResumeVerdict(), passingLORVerdict(), marksheets, passingEligibility())
	assert.Contains(t, verdict.Summary, "Unknown")
}
