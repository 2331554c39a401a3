package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentpipeline/ai-validator/internal/models"
)

func schoolResponse(name, board string, percentage float64, year string) string {
	return fmt.Sprintf(`VALID: true
FEEDBACK: scripted feedback
STUDENT_NAME: %s
SCHOOL_BOARD: %s
PERCENTAGE: %.1f
GRADE: A
YEAR_OF_PASSING: %s
SUBJECTS_COUNT: 6
OFFICIAL_STATUS: Official
MEETS_MINIMUM: yes`, name, board, percentage, year)
}

func collegeResponse(name string, cgpa float64, backlogs int, semesters int, degree string) string {
	return fmt.Sprintf(`VALID: true
FEEDBACK: scripted feedback
CURRENT_CGPA: %.2f
SEMESTER_WISE_GPA: 8.1, 8.3, 7.9, 8.0, 8.2, 8.4
TOTAL_SEMESTERS: %d
CURRENT_SEMESTER: 7
BACKLOGS_COUNT: %d
FAILED_SUBJECTS: none
COLLEGE_NAME: Example Institute of Technology
STUDENT_NAME: %s
COURSE_BRANCH: Computer Science
DEGREE_TYPE: %s
MEETS_CGPA_REQ: yes
NO_BACKLOGS: yes`, cgpa, semesters, backlogs, name, degree)
}

func newTestMarksheetValidator(oracle GeminiService, now time.Time) *marksheetValidator {
	return &marksheetValidator{
		oracle:        oracle,
		retriever:     NewNoopGuidelineRetriever(),
		promptBuilder: NewPromptBuilder(),
		now:           fixedClock(now),
	}
}

func TestValidateSchoolMarksheet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		response  string
		wantValid bool
		wantIssue string
	}{
		{
			name:      "passes all checks",
			response:  schoolResponse("Richard Samuel", "CBSE", 78.5, "2019"),
			wantValid: true,
		},
		{
			name:      "exactly sixty percent passes",
			response:  schoolResponse("Richard Samuel", "CBSE", 60.0, "2019"),
			wantValid: true,
		},
		{
			name:      "just below sixty fails",
			response:  schoolResponse("Richard Samuel", "CBSE", 59.9, "2019"),
			wantValid: false,
			wantIssue: "Class 10 percentage 59.9% is below the 60% minimum",
		},
		{
			name:      "missing student name",
			response:  schoolResponse("Not mentioned", "CBSE", 78.5, "2019"),
			wantValid: false,
			wantIssue: "Class 10: student name is not visible on the marksheet",
		},
		{
			name:      "missing board",
			response:  schoolResponse("Richard Samuel", "Not mentioned", 78.5, "2019"),
			wantValid: false,
			wantIssue: "Class 10: school/board name is not visible on the marksheet",
		},
		{
			name:      "year before the sanity window",
			response:  schoolResponse("Richard Samuel", "CBSE", 78.5, "1985"),
			wantValid: false,
			wantIssue: `Class 10: year of passing "1985" is missing or implausible`,
		},
		{
			name:      "year in the future",
			response:  schoolResponse("Richard Samuel", "CBSE", 78.5, "2030"),
			wantValid: false,
			wantIssue: `Class 10: year of passing "2030" is missing or implausible`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := newTestMarksheetValidator(staticOracle(tt.response), now)
			verdict := validator.ValidateSchoolMarksheet(ctx, models.TextInput("marksheet text"), "10", ProfileFiveDocument)

			assert.Equal(t, tt.wantValid, verdict.Valid)
			assert.Equal(t, "10", verdict.ClassLevel)
			if tt.wantIssue != "" {
				assert.Contains(t, verdict.Issues, tt.wantIssue)
			}
		})
	}
}

func TestValidateCollegeMarksheet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		response  string
		wantValid bool
		wantIssue string
	}{
		{
			name:      "passes all checks",
			response:  collegeResponse("Richard Samuel", 8.2, 0, 6, "BTECH"),
			wantValid: true,
		},
		{
			name:      "cgpa exactly at minimum passes",
			response:  collegeResponse("Richard Samuel", 6.32, 0, 6, "BTECH"),
			wantValid: true,
		},
		{
			name:      "cgpa just below minimum",
			response:  collegeResponse("Richard Samuel", 6.31, 0, 6, "BTECH"),
			wantValid: false,
			wantIssue: "CGPA 6.31 is below the 6.32 minimum",
		},
		{
			name:      "backlogs present",
			response:  collegeResponse("Richard Samuel", 8.2, 2, 6, "BTECH"),
			wantValid: false,
			wantIssue: "2 current backlog(s) found, zero backlogs required",
		},
		{
			name:      "cgpa missing",
			response:  collegeResponse("Richard Samuel", 0, 0, 6, "BTECH"),
			wantValid: false,
			wantIssue: "Current CGPA could not be determined from the marksheets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := newTestMarksheetValidator(staticOracle(tt.response), now)
			verdict := validator.ValidateCollegeMarksheet(ctx, models.TextInput("marksheet text"), ProfileFiveDocument)

			assert.Equal(t, tt.wantValid, verdict.Valid)
			if tt.wantIssue != "" {
				assert.Contains(t, verdict.Issues, tt.wantIssue)
			}
		})
	}
}

func TestValidateCollegeMarksheetParsesSemesterGPAs(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	validator := newTestMarksheetValidator(staticOracle(collegeResponse("Richard Samuel", 8.2, 0, 6, "BTECH")), now)
	verdict := validator.ValidateCollegeMarksheet(ctx, models.TextInput("marksheet text"), ProfileFiveDocument)

	assert.Equal(t, []float64{8.1, 8.3, 7.9, 8.0, 8.2, 8.4}, verdict.SemesterGPAs)
	assert.Equal(t, 6, verdict.TotalSemesters)
	assert.Equal(t, "BTECH", verdict.DegreeType)
}

func TestCheckNameConsistency(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  bool
	}{
		{
			name:  "initials and reordering still consistent",
			names: []string{"Richard Samuel", "Richard S.", "R. Samuel"},
			want:  true,
		},
		{
			name:  "shared surname across all documents",
			names: []string{"Richard Samuel", "Richard K Samuel", "Samuel, Richard"},
			want:  true,
		},
		{
			name:  "one document names a different person",
			names: []string{"Richard Samuel", "Richard S.", "Anita Desai"},
			want:  false,
		},
		{
			name:  "different people",
			names: []string{"Richard Samuel", "John Doe", "Richard Samuel"},
			want:  false,
		},
		{
			name:  "identical names",
			names: []string{"Priya Nair", "Priya Nair", "Priya Nair"},
			want:  true,
		},
		{
			name:  "short names discarded, one usable left",
			names: []string{"RS", "Richard Samuel", ""},
			want:  true,
		},
		{
			name:  "all unreadable",
			names: []string{"", "", ""},
			want:  true,
		},
		{
			name:  "case insensitive",
			names: []string{"RICHARD SAMUEL", "richard samuel"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckNameConsistency(tt.names))
		})
	}
}

func TestValidateAll(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	// Route each scripted reply by the prompt's document section.
	oracle := &fakeOracle{reply: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Class 10 marksheet"):
			return schoolResponse("Richard Samuel", "CBSE", 82.0, "2019"), nil
		case strings.Contains(prompt, "Class 12 marksheet"):
			return schoolResponse("Richard Samuel", "CBSE", 76.0, "2021"), nil
		default:
			return collegeResponse("Richard Samuel", 8.2, 0, 6, "BTECH"), nil
		}
	}}

	validator := newTestMarksheetValidator(oracle, now)
	verdict := validator.ValidateAll(ctx,
		models.TextInput("class 10 text"),
		models.TextInput("class 12 text"),
		models.TextInput("college text"),
		ProfileFiveDocument,
	)

	assert.True(t, verdict.Valid)
	assert.True(t, verdict.NamesConsistent)
	assert.Empty(t, verdict.Issues)
	assert.Equal(t, "Richard Samuel", verdict.StudentInfo.PrimaryName)
	assert.Equal(t, "BTECH", verdict.StudentInfo.DegreeType)
	assert.Equal(t, "Example Institute of Technology", verdict.StudentInfo.CollegeName)
}

func TestValidateAllInconsistentNames(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	oracle := &fakeOracle{reply: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Class 10 marksheet"):
			return schoolResponse("Richard Samuel", "CBSE", 82.0, "2019"), nil
		case strings.Contains(prompt, "Class 12 marksheet"):
			return schoolResponse("John Doe", "CBSE", 76.0, "2021"), nil
		default:
			return collegeResponse("Richard Samuel", 8.2, 0, 6, "BTECH"), nil
		}
	}}

	validator := newTestMarksheetValidator(oracle, now)
	verdict := validator.ValidateAll(ctx,
		models.TextInput("class 10 text"),
		models.TextInput("class 12 text"),
		models.TextInput("college text"),
		ProfileFiveDocument,
	)

	require.False(t, verdict.Valid)
	assert.False(t, verdict.NamesConsistent)
	assert.Contains(t, verdict.Issues, "Student names are inconsistent across documents")
}

func TestValidateAllPrefixesComponentIssues(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	oracle := &fakeOracle{reply: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Class 10 marksheet"):
			return schoolResponse("Richard Samuel", "CBSE", 55.0, "2019"), nil
		case strings.Contains(prompt, "Class 12 marksheet"):
			return schoolResponse("Richard Samuel", "CBSE", 76.0, "2021"), nil
		default:
			return collegeResponse("Richard Samuel", 6.1, 0, 6, "BTECH"), nil
		}
	}}

	validator := newTestMarksheetValidator(oracle, now)
	verdict := validator.ValidateAll(ctx,
		models.TextInput("class 10 text"),
		models.TextInput("class 12 text"),
		models.TextInput("college text"),
		ProfileFiveDocument,
	)

	require.False(t, verdict.Valid)
	assert.Contains(t, verdict.Issues, "Class 10 percentage 55.0% is below the 60% minimum")
	assert.Contains(t, verdict.Issues, "College: CGPA 6.10 is below the 6.32 minimum")
}
