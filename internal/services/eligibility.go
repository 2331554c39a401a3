package services

import (
	"fmt"
	"strings"
	"time"

	"studentpipeline/ai-validator/internal/models"
)

// PolicyProfile bundles the threshold constants one validation flow
// applies. Two profiles exist because the original intake surfaces
// disagreed on the advance-application window; they are kept as distinct,
// named rule-sets and selected by caller intent rather than merged.
type PolicyProfile struct {
	Name                   string  `json:"name"`
	MinPercentage          float64 `json:"min_percentage"`
	MinCGPA                float64 `json:"min_cgpa"`
	AdvanceDays            int     `json:"advance_days"`
	InternshipDurationDays int     `json:"internship_duration_days"`
	ProjectMinDurationDays int     `json:"project_min_duration_days"`
	ProjectMaxDurationDays int     `json:"project_max_duration_days"`
	RequireAddressLine     bool    `json:"require_address_line"`
}

// ProfileFiveDocument is the full five-document validation flow: strict
// LOR addressing and a 30-day advance window.
var ProfileFiveDocument = PolicyProfile{
	Name:                   "five_document",
	MinPercentage:          60.0,
	MinCGPA:                6.32,
	AdvanceDays:            30,
	InternshipDurationDays: 45,
	ProjectMinDurationDays: 90,
	ProjectMaxDurationDays: 365,
	RequireAddressLine:     true,
}

// ProfileIntakeForm mirrors the spreadsheet intake flow: same academic
// thresholds, 15-day advance window, no address-line requirement.
var ProfileIntakeForm = PolicyProfile{
	Name:                   "intake_form",
	MinPercentage:          60.0,
	MinCGPA:                6.32,
	AdvanceDays:            15,
	InternshipDurationDays: 45,
	ProjectMinDurationDays: 90,
	ProjectMaxDurationDays: 365,
	RequireAddressLine:     false,
}

// ResolveProfile maps a caller-supplied profile name to a profile,
// defaulting to the five-document rules.
func ResolveProfile(name string) PolicyProfile {
	if strings.EqualFold(strings.TrimSpace(name), ProfileIntakeForm.Name) {
		return ProfileIntakeForm
	}
	return ProfileFiveDocument
}

// Degree categories.
const (
	CategoryEngineering   = "engineering"
	CategoryPostgrad      = "postgrad"
	CategoryFinalYearOnly = "final_year_only"
	CategoryPhD           = "phd"
)

// DegreeRequirement is one row of the degree eligibility table.
type DegreeRequirement struct {
	MinSemesters int    `json:"min_semesters"`
	Category     string `json:"type"`
}

// DegreeRequirements maps recognized degree types to their minimum
// completed-semester counts and rule category.
var DegreeRequirements = map[string]DegreeRequirement{
	"BE":      {MinSemesters: 6, Category: CategoryEngineering},
	"BTECH":   {MinSemesters: 6, Category: CategoryEngineering},
	"MCA":     {MinSemesters: 1, Category: CategoryPostgrad},
	"ME":      {MinSemesters: 1, Category: CategoryPostgrad},
	"MTECH":   {MinSemesters: 1, Category: CategoryPostgrad},
	"BSC":     {MinSemesters: 6, Category: CategoryFinalYearOnly},
	"DIPLOMA": {MinSemesters: 4, Category: CategoryFinalYearOnly},
	"MSC":     {MinSemesters: 1, Category: CategoryPostgrad},
	"PHD":     {MinSemesters: 2, Category: CategoryPhD},
}

// Application types.
const (
	ApplicationTypeInternship = "internship"
	ApplicationTypeProject    = "project"
)

// EligibilityChecker applies the degree/semester and date-window policy
// rules, independent of any one document.
type EligibilityChecker interface {
	CheckDegreeEligibility(degreeType string, semesterCount int, applicationType string) models.EligibilityResult
	CheckAdvanceApplication(startDate time.Time, now time.Time, profile PolicyProfile) models.AdvanceCheckResult
}

type eligibilityChecker struct{}

func NewEligibilityChecker() EligibilityChecker {
	return &eligibilityChecker{}
}

// CheckDegreeEligibility implements EligibilityChecker.
func (e *eligibilityChecker) CheckDegreeEligibility(degreeType string, semesterCount int, applicationType string) models.EligibilityResult {
	degreeUpper := strings.ToUpper(strings.TrimSpace(degreeType))

	req, ok := DegreeRequirements[degreeUpper]
	if !ok {
		return models.EligibilityResult{
			Eligible:           false,
			Reason:             fmt.Sprintf("Degree type %s not recognized for the internship programme", degreeType),
			SemestersCompleted: semesterCount,
		}
	}

	minRequired := req.MinSemesters
	var eligible bool
	var reason string

	if req.Category == CategoryFinalYearOnly && applicationType == ApplicationTypeInternship {
		// BSc/Diploma internships are final-year only: the student must
		// have reached the last semester of the programme.
		eligible = semesterCount >= minRequired
		reason = fmt.Sprintf("%s students must be in their final year (completed %d+ semesters)", degreeUpper, minRequired)
	} else {
		eligible = semesterCount >= minRequired
		reason = fmt.Sprintf("Must have completed at least %d semester(s) for %s", minRequired, degreeUpper)
	}

	if eligible {
		reason = fmt.Sprintf("Meets semester requirement for %s", degreeUpper)
	}

	return models.EligibilityResult{
		Eligible:           eligible,
		Reason:             reason,
		SemestersCompleted: semesterCount,
		MinimumRequired:    minRequired,
		DegreeCategory:     req.Category,
	}
}

// CheckAdvanceApplication implements EligibilityChecker. The advance
// window differs between profiles (30 vs 15 days); the current date is an
// explicit input so the check stays deterministic under test.
func (e *eligibilityChecker) CheckAdvanceApplication(startDate time.Time, now time.Time, profile PolicyProfile) models.AdvanceCheckResult {
	daysInAdvance := int(startDate.Sub(now).Hours() / 24)
	meets := daysInAdvance >= profile.AdvanceDays

	reason := fmt.Sprintf("Meets the %d-day advance application requirement", profile.AdvanceDays)
	if !meets {
		reason = fmt.Sprintf("Application must be submitted at least %d days in advance", profile.AdvanceDays)
	}

	return models.AdvanceCheckResult{
		MeetsRequirement: meets,
		DaysInAdvance:    daysInAdvance,
		MinimumRequired:  profile.AdvanceDays,
		Reason:           reason,
	}
}
