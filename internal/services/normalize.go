package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// NotMentioned is the sentinel for a date the document never states.
	NotMentioned = "Not mentioned"
	// InvalidDate is the sentinel for a date that could not be parsed.
	InvalidDate = "Invalid date"
)

var (
	percentDigitsRe = regexp.MustCompile(`[^0-9.]`)
	isoDateRe       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	leadingIntRe    = regexp.MustCompile(`-?\d+`)

	cgpaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:cgpa|gpa|grade)`),
		regexp.MustCompile(`(?i)cgpa\s*:?\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)gpa\s*:?\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(\d+\.?\d*)\s*/\s*10`),
		regexp.MustCompile(`(\d+\.?\d*)`),
	}

	trueIndicators  = []string{"true", "yes", "valid", "pass", "passed", "approved", "accept"}
	falseIndicators = []string{"false", "no", "invalid", "fail", "failed", "rejected", "reject"}

	monthYearFormats = []string{
		"2006-01-02",
		"2006-01",
		"January 2006",
		"Jan 2006",
		"January, 2006",
		"2 January 2006",
		"January 2, 2006",
		"02/01/2006",
		"01/2006",
		"02-01-2006",
	}
)

// ToPercentage converts a raw percentage string to a float in [0,100].
// Anything empty, unparsable, or out of range maps to 0.
func ToPercentage(text string) float64 {
	cleaned := percentDigitsRe.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 || value > 100 {
		return 0
	}
	return value
}

// ToCGPA converts a raw CGPA string to a float in [0,10], trying
// label-aware patterns first. Out-of-range or unparsable maps to 0.
func ToCGPA(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	for _, re := range cgpaPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if value >= 0 && value <= 10 {
			return value
		}
	}
	return 0
}

// ToBoolean derives a yes/no answer from free-form model text using fixed
// indicator vocabularies. Negative indicators win over positive ones so
// that "VALID: false" reads as false, and anything ambiguous or empty
// defaults to false.
func ToBoolean(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false
	}
	for _, indicator := range falseIndicators {
		if strings.Contains(lowered, indicator) {
			return false
		}
	}
	for _, indicator := range trueIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

// ToInt extracts the first integer from text, defaulting to 0 when none
// is present.
func ToInt(text string) int {
	m := leadingIntRe.FindString(text)
	if m == "" {
		return 0
	}
	value, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return value
}

// NormalizeDate canonicalizes a free-form date string to YYYY-MM-DD using
// the AI model. Empty or "not mentioned" inputs pass through as the
// NotMentioned sentinel. A reply without an extractable ISO date is
// treated the same as an explicit invalid reply.
func NormalizeDate(ctx context.Context, oracle GeminiService, text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, NotMentioned) {
		return NotMentioned
	}

	// Cheap path first: already month-year parseable, no model call needed.
	if t, ok := parseWithFormats(trimmed); ok {
		return t.Format("2006-01-02")
	}

	prompt := NewPromptBuilder().BuildDateNormalizationPrompt(trimmed)
	reply, err := oracle.GenerateText(ctx, prompt, 0)
	if err != nil {
		return InvalidDate
	}
	if strings.Contains(strings.ToLower(reply), "invalid date") {
		return InvalidDate
	}
	if iso := isoDateRe.FindString(reply); iso != "" {
		return iso
	}
	return InvalidDate
}

// ParseMonthYear parses a date string down to month granularity. Formats
// carrying only a month and year resolve to the first of that month.
func ParseMonthYear(text string) (year int, month time.Month, ok bool) {
	t, ok := parseWithFormats(strings.TrimSpace(text))
	if !ok {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

// StartsNextMonthOrLater reports whether the given start date falls
// strictly after the current calendar month. Comparison is on
// (year, month) tuples so month-only dates are accepted.
func StartsNextMonthOrLater(startDate string, now time.Time) bool {
	year, month, ok := ParseMonthYear(startDate)
	if !ok {
		return false
	}
	if year != now.Year() {
		return year > now.Year()
	}
	return month > now.Month()
}

func parseWithFormats(text string) (time.Time, bool) {
	for _, layout := range monthYearFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
