package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studentpipeline/ai-validator/internal/models"
)

// Signing authorities allowed on a letter of recommendation. Matching is
// substring-based and case-insensitive to tolerate institution-specific
// variants.
var validAuthorities = []string{
	"head of department",
	"hod",
	"principal",
	"dean",
	"placement officer",
}

// LORValidator validates a letter of recommendation: official letterhead,
// an authorized signatory, correct addressing (in the stricter profile),
// and an explicit internship window starting at least next calendar
// month.
type LORValidator interface {
	Validate(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict
}

type lorValidator struct {
	oracle        GeminiService
	retriever     GuidelineRetriever
	promptBuilder *PromptBuilder
	now           func() time.Time
}

func NewLORValidator(oracle GeminiService, retriever GuidelineRetriever) LORValidator {
	return &lorValidator{
		oracle:        oracle,
		retriever:     retriever,
		promptBuilder: NewPromptBuilder(),
		now:           time.Now,
	}
}

// Validate implements LORValidator.
func (v *lorValidator) Validate(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict {
	if doc.IsEmpty() {
		return noContentVerdict("letter of recommendation")
	}

	guidelineContext := v.retriever.RetrieveContext(ctx, GuidelineLOR)
	prompt := v.promptBuilder.BuildLORPrompt(doc.Text, guidelineContext)

	response, err := askOracle(ctx, v.oracle, prompt, doc)
	if err != nil {
		feedback := fmt.Sprintf("Error validating letter of recommendation: %v", err)
		return models.DocumentVerdict{
			Valid:    false,
			Feedback: feedback,
			Issues:   []string{feedback},
			Details:  map[string]any{},
		}
	}

	oracleValid := ToBoolean(ExtractField(response, "VALID"))
	hasLetterhead := ToBoolean(ExtractField(response, "HAS_LETTERHEAD"))
	authorityName := ExtractField(response, "AUTHORITY_NAME")
	authorityDesignation := ExtractField(response, "AUTHORITY_DESIGNATION")
	addressedCorrectly := ToBoolean(ExtractField(response, "ADDRESSED_CORRECTLY"))
	durationMentioned := ToBoolean(ExtractField(response, "DURATION_MENTIONED"))
	startDateRaw := ExtractField(response, "START_DATE")
	endDateRaw := ExtractField(response, "END_DATE")

	authorityValid := false
	designationLower := strings.ToLower(authorityDesignation)
	for _, authority := range validAuthorities {
		if strings.Contains(designationLower, authority) {
			authorityValid = true
			break
		}
	}

	datesPresent := durationMentioned && datePresent(startDateRaw) && datePresent(endDateRaw)

	startYear, startMonth, startParsed := v.resolveStartMonth(ctx, startDateRaw)
	now := v.now()
	startWindowOK := startParsed &&
		(startYear > now.Year() || (startYear == now.Year() && startMonth > now.Month()))

	var issues []string
	if !hasLetterhead {
		issues = append(issues, "Letter is missing an official institutional letterhead")
	}
	if !authorityValid {
		issues = append(issues, fmt.Sprintf("Invalid signing authority: %s. Must be HOD/Principal/Dean/Placement Officer", authorityDesignation))
	}
	if profile.RequireAddressLine && !addressedCorrectly {
		issues = append(issues, "Letter is not addressed to the Group Director, Training, Education and Outreach Group")
	}
	if !datesPresent {
		issues = append(issues, "Internship duration with explicit start and end dates is not mentioned")
	}
	if !startParsed {
		issues = append(issues, fmt.Sprintf("Start date %q is missing or unparsable", startDateRaw))
	} else if !startWindowOK {
		issues = append(issues, "Internship start date must be at least the next calendar month")
	}
	if !oracleValid {
		issues = append(issues, "Letter content does not meet the recommendation requirements")
	}

	addressedOK := addressedCorrectly || !profile.RequireAddressLine
	valid := oracleValid && hasLetterhead && authorityValid && addressedOK && datesPresent && startWindowOK

	feedback := "Letter of recommendation meets all requirements"
	if len(issues) > 0 {
		feedback = strings.Join(issues, ". ")
	}

	return models.DocumentVerdict{
		Valid:    valid,
		Feedback: feedback,
		Issues:   issues,
		Details: map[string]any{
			"has_letterhead":        hasLetterhead,
			"authority_name":        authorityName,
			"authority_designation": authorityDesignation,
			"authority_valid":       authorityValid,
			"addressed_correctly":   addressedCorrectly,
			"duration_mentioned":    durationMentioned,
			"start_date":            startDateRaw,
			"end_date":              endDateRaw,
			"start_window_ok":       startWindowOK,
			"student_name":          ExtractField(response, "STUDENT_NAME"),
			"college_name":          ExtractField(response, "COLLEGE_NAME"),
			"branch_course":         ExtractField(response, "BRANCH_COURSE"),
			"letter_format":         ExtractField(response, "LETTER_FORMAT"),
		},
		RawResponse: response,
	}
}

// resolveStartMonth parses the stated start date down to (year, month).
// Month-year strings parse directly; anything else goes through the
// model-backed date canonicalization first.
func (v *lorValidator) resolveStartMonth(ctx context.Context, raw string) (int, time.Month, bool) {
	if !datePresent(raw) {
		return 0, 0, false
	}
	if year, month, ok := ParseMonthYear(raw); ok {
		return year, month, true
	}
	normalized := NormalizeDate(ctx, v.oracle, raw)
	if normalized == NotMentioned || normalized == InvalidDate {
		return 0, 0, false
	}
	return ParseMonthYear(normalized)
}

func datePresent(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed != "" && !strings.EqualFold(trimmed, NotMentioned)
}
