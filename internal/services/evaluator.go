package services

import (
	"fmt"
	"strings"

	"studentpipeline/ai-validator/internal/models"
)

// Component keys used in the final verdict's validation details.
const (
	ComponentResume      = "resume"
	ComponentLOR         = "letter_of_recommendation"
	ComponentAcademic    = "academic_records"
	ComponentEligibility = "eligibility"
)

// ApplicationEvaluator combines the per-document verdicts and the policy
// decision into one terminal application verdict.
type ApplicationEvaluator interface {
	Evaluate(resume models.DocumentVerdict, lor models.DocumentVerdict, marksheets models.MarksheetsVerdict, eligibility models.EligibilityResult) models.ApplicationVerdict
}

type applicationEvaluator struct{}

func NewApplicationEvaluator() ApplicationEvaluator {
	return &applicationEvaluator{}
}

// Evaluate implements ApplicationEvaluator. It is a pure aggregation:
// evaluating the same verdicts again yields the same result, and every
// contributing check is computed before the final conjunction so a single
// early failure cannot hide the others.
func (e *applicationEvaluator) Evaluate(resume models.DocumentVerdict, lor models.DocumentVerdict, marksheets models.MarksheetsVerdict, eligibility models.EligibilityResult) models.ApplicationVerdict {
	resumeValid := resume.Valid
	lorValid := lor.Valid
	marksheetsValid := marksheets.Valid
	eligible := eligibility.Eligible
	valid := resumeValid && lorValid && marksheetsValid && eligible

	details := map[string]models.ComponentDetail{
		ComponentResume: {
			Status:   passFail(resumeValid),
			Feedback: resume.Feedback,
			Issues:   emptyIfNil(resume.Issues),
			Fields:   resumeFields(resume),
		},
		ComponentLOR: {
			Status:   passFail(lorValid),
			Feedback: lor.Feedback,
			Issues:   emptyIfNil(lor.Issues),
			Fields:   lor.Details,
		},
		ComponentAcademic: {
			Status:   passFail(marksheetsValid),
			Feedback: academicFeedback(marksheets),
			Issues:   emptyIfNil(marksheets.Issues),
			Fields: map[string]any{
				"class_10_percentage": marksheets.Class10.Percentage,
				"class_12_percentage": marksheets.Class12.Percentage,
				"college_cgpa":        marksheets.College.CurrentCGPA,
				"backlogs":            marksheets.College.BacklogsCount,
				"names_consistent":    marksheets.NamesConsistent,
			},
		},
		ComponentEligibility: {
			Status:   passFail(eligible),
			Feedback: eligibility.Reason,
			Issues:   eligibilityIssues(eligibility),
			Fields: map[string]any{
				"degree_type":         marksheets.StudentInfo.DegreeType,
				"degree_category":     eligibility.DegreeCategory,
				"semesters_completed": eligibility.SemestersCompleted,
				"minimum_required":    eligibility.MinimumRequired,
			},
		},
	}

	// Issues keep a fixed document order so re-evaluation is stable.
	allIssues := make([]string, 0)
	allIssues = append(allIssues, resume.Issues...)
	allIssues = append(allIssues, lor.Issues...)
	allIssues = append(allIssues, marksheets.Issues...)
	allIssues = append(allIssues, eligibilityIssues(eligibility)...)

	var invalidDocuments []string
	if !resumeValid {
		invalidDocuments = append(invalidDocuments, "Resume")
	}
	if !lorValid {
		invalidDocuments = append(invalidDocuments, "Letter of Recommendation")
	}
	if !marksheetsValid {
		invalidDocuments = append(invalidDocuments, "Academic Records")
	}
	if !eligible {
		invalidDocuments = append(invalidDocuments, "Eligibility Criteria")
	}

	applicant := models.ApplicantInfo{
		Name:               marksheets.StudentInfo.PrimaryName,
		Degree:             marksheets.StudentInfo.DegreeType,
		College:            marksheets.StudentInfo.CollegeName,
		CGPA:               marksheets.College.CurrentCGPA,
		SemestersCompleted: marksheets.College.TotalSemesters,
	}

	status := models.ApplicationRejected
	var summary string
	if valid {
		status = models.ApplicationAccepted
		summary = fmt.Sprintf("Application for %s has been accepted. All documents are valid and eligibility criteria are met. CGPA: %.2f/10, Degree: %s",
			applicantName(applicant), applicant.CGPA, applicant.Degree)
	} else {
		summary = fmt.Sprintf("Application for %s has been rejected. Issues found in: %s",
			applicantName(applicant), strings.Join(invalidDocuments, ", "))
	}

	return models.ApplicationVerdict{
		Status:           status,
		Valid:            valid,
		Summary:          summary,
		Issues:           allIssues,
		InvalidDocuments: emptyIfNil(invalidDocuments),
		Details:          details,
		Recommendations:  buildRecommendations(resumeValid, lorValid, marksheetsValid, eligible),
		NextSteps:        buildNextSteps(valid, allIssues),
		ApplicantInfo:    applicant,
		Eligibility:      eligibility,
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func emptyIfNil(issues []string) []string {
	if issues == nil {
		return []string{}
	}
	return issues
}

func applicantName(info models.ApplicantInfo) string {
	if strings.TrimSpace(info.Name) == "" {
		return "Unknown"
	}
	return info.Name
}

// resumeFields carries the classifier's label into the final verdict
// without mutating the validator's details map.
func resumeFields(resume models.DocumentVerdict) map[string]any {
	if resume.DocumentType == "" {
		return resume.Details
	}
	fields := make(map[string]any, len(resume.Details)+1)
	for k, v := range resume.Details {
		fields[k] = v
	}
	fields["document_type"] = resume.DocumentType
	return fields
}

func academicFeedback(marksheets models.MarksheetsVerdict) string {
	if marksheets.Valid {
		return "All academic records meet the requirements"
	}
	return strings.Join(marksheets.Issues, ". ")
}

func eligibilityIssues(eligibility models.EligibilityResult) []string {
	if eligibility.Eligible {
		return []string{}
	}
	return []string{eligibility.Reason}
}

func buildRecommendations(resumeValid, lorValid, marksheetsValid, eligible bool) []string {
	recommendations := make([]string, 0)
	if !resumeValid {
		recommendations = append(recommendations, "Improve the resume by adding technical skills, project details and explicit academic marks")
	}
	if !lorValid {
		recommendations = append(recommendations, "Obtain a proper LOR from the HOD/Principal/Dean/Placement Officer with explicit internship dates")
	}
	if !marksheetsValid {
		recommendations = append(recommendations, "Ensure all academic records meet the minimum percentage/CGPA requirements with no backlogs")
	}
	if !eligible {
		recommendations = append(recommendations, "Check degree eligibility and semester completion requirements")
	}
	return recommendations
}

func buildNextSteps(approved bool, issues []string) []string {
	if approved {
		return []string{
			"Application accepted - await confirmation from the programme office",
			"Prepare for a potential interview or selection process",
			"Ensure availability for the full internship duration",
		}
	}

	steps := []string{"Address the following issues and resubmit:"}
	for i, issue := range issues {
		if i == 5 {
			break
		}
		steps = append(steps, fmt.Sprintf("- %s", issue))
	}
	steps = append(steps, "Contact the programme office for clarifications")
	return steps
}
