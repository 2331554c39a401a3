package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"studentpipeline/ai-validator/internal/models"
)

// Year-of-passing sanity window lower bound.
const earliestPassingYear = 1990

// MarksheetValidator validates the three academic documents (Class 10,
// Class 12, college semesters) individually and as a set, including the
// cross-document name-consistency check.
type MarksheetValidator interface {
	ValidateSchoolMarksheet(ctx context.Context, doc models.DocumentInput, classLevel string, profile PolicyProfile) models.SchoolMarksheetVerdict
	ValidateCollegeMarksheet(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.CollegeMarksheetVerdict
	ValidateAll(ctx context.Context, class10, class12, college models.DocumentInput, profile PolicyProfile) models.MarksheetsVerdict
}

type marksheetValidator struct {
	oracle        GeminiService
	retriever     GuidelineRetriever
	promptBuilder *PromptBuilder
	now           func() time.Time
}

func NewMarksheetValidator(oracle GeminiService, retriever GuidelineRetriever) MarksheetValidator {
	return &marksheetValidator{
		oracle:        oracle,
		retriever:     retriever,
		promptBuilder: NewPromptBuilder(),
		now:           time.Now,
	}
}

// ValidateSchoolMarksheet implements MarksheetValidator for a Class 10 or
// Class 12 marksheet.
func (v *marksheetValidator) ValidateSchoolMarksheet(ctx context.Context, doc models.DocumentInput, classLevel string, profile PolicyProfile) models.SchoolMarksheetVerdict {
	if doc.IsEmpty() {
		feedback := fmt.Sprintf("No content to validate for Class %s marksheet", classLevel)
		return models.SchoolMarksheetVerdict{
			Valid:      false,
			ClassLevel: classLevel,
			Feedback:   feedback,
			Issues:     []string{feedback},
			Details:    map[string]any{},
		}
	}

	guidelineContext := v.retriever.RetrieveContext(ctx, GuidelineAcademic)
	prompt := v.promptBuilder.BuildSchoolMarksheetPrompt(classLevel, doc.Text, guidelineContext)

	response, err := askOracle(ctx, v.oracle, prompt, doc)
	if err != nil {
		feedback := fmt.Sprintf("Error validating Class %s marksheet: %v", classLevel, err)
		return models.SchoolMarksheetVerdict{
			Valid:      false,
			ClassLevel: classLevel,
			Feedback:   feedback,
			Issues:     []string{feedback},
			Details:    map[string]any{},
		}
	}

	studentName := ExtractField(response, "STUDENT_NAME")
	schoolBoard := ExtractField(response, "SCHOOL_BOARD")
	percentage := ToPercentage(ExtractField(response, "PERCENTAGE"))
	yearOfPassing := ExtractField(response, "YEAR_OF_PASSING")

	meetsMinimum := percentage >= profile.MinPercentage
	yearValid := passingYearValid(yearOfPassing, v.now().Year())
	nameFound := strings.TrimSpace(studentName) != "" && !strings.EqualFold(studentName, NotMentioned)
	boardFound := strings.TrimSpace(schoolBoard) != "" && !strings.EqualFold(schoolBoard, NotMentioned)

	var issues []string
	if !nameFound {
		issues = append(issues, fmt.Sprintf("Class %s: student name is not visible on the marksheet", classLevel))
	}
	if !boardFound {
		issues = append(issues, fmt.Sprintf("Class %s: school/board name is not visible on the marksheet", classLevel))
	}
	if !meetsMinimum {
		issues = append(issues, fmt.Sprintf("Class %s percentage %.1f%% is below the %.0f%% minimum", classLevel, percentage, profile.MinPercentage))
	}
	if !yearValid {
		issues = append(issues, fmt.Sprintf("Class %s: year of passing %q is missing or implausible", classLevel, yearOfPassing))
	}

	valid := meetsMinimum && nameFound && boardFound && yearValid

	feedback := fmt.Sprintf("Class %s marksheet meets all requirements", classLevel)
	if len(issues) > 0 {
		feedback = strings.Join(issues, ". ")
	}

	return models.SchoolMarksheetVerdict{
		Valid:         valid,
		ClassLevel:    classLevel,
		Percentage:    percentage,
		MeetsMinimum:  meetsMinimum,
		StudentName:   studentName,
		SchoolBoard:   schoolBoard,
		YearOfPassing: yearOfPassing,
		YearValid:     yearValid,
		Feedback:      feedback,
		Issues:        issues,
		Details: map[string]any{
			"grade":           ExtractField(response, "GRADE"),
			"subjects_count":  ToInt(ExtractField(response, "SUBJECTS_COUNT")),
			"official_status": ExtractField(response, "OFFICIAL_STATUS"),
			"model_verdict":   ToBoolean(ExtractField(response, "VALID")),
		},
		RawResponse: response,
	}
}

// ValidateCollegeMarksheet implements MarksheetValidator for the college
// semester records.
func (v *marksheetValidator) ValidateCollegeMarksheet(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.CollegeMarksheetVerdict {
	if doc.IsEmpty() {
		feedback := "No content to validate for college marksheets"
		return models.CollegeMarksheetVerdict{
			Valid:    false,
			Feedback: feedback,
			Issues:   []string{feedback},
			Details:  map[string]any{},
		}
	}

	guidelineContext := v.retriever.RetrieveContext(ctx, GuidelineAcademic)
	prompt := v.promptBuilder.BuildCollegeMarksheetPrompt(doc.Text, guidelineContext)

	response, err := askOracle(ctx, v.oracle, prompt, doc)
	if err != nil {
		feedback := fmt.Sprintf("Error validating college marksheets: %v", err)
		return models.CollegeMarksheetVerdict{
			Valid:    false,
			Feedback: feedback,
			Issues:   []string{feedback},
			Details:  map[string]any{},
		}
	}

	cgpa := ToCGPA(ExtractField(response, "CURRENT_CGPA"))
	backlogsCount := ToInt(ExtractField(response, "BACKLOGS_COUNT"))
	semesterGPAs := parseSemesterGPAs(ExtractField(response, "SEMESTER_WISE_GPA"))
	totalSemesters := ToInt(ExtractField(response, "TOTAL_SEMESTERS"))
	if totalSemesters == 0 {
		totalSemesters = len(semesterGPAs)
	}

	meetsCGPA := cgpa >= profile.MinCGPA
	hasNoBacklogs := backlogsCount == 0
	cgpaFound := cgpa > 0

	var issues []string
	if !cgpaFound {
		issues = append(issues, "Current CGPA could not be determined from the marksheets")
	} else if !meetsCGPA {
		issues = append(issues, fmt.Sprintf("CGPA %.2f is below the %.2f minimum", cgpa, profile.MinCGPA))
	}
	if !hasNoBacklogs {
		issues = append(issues, fmt.Sprintf("%d current backlog(s) found, zero backlogs required", backlogsCount))
	}

	valid := cgpaFound && meetsCGPA && hasNoBacklogs

	feedback := "College marksheets meet all requirements"
	if len(issues) > 0 {
		feedback = strings.Join(issues, ". ")
	}

	return models.CollegeMarksheetVerdict{
		Valid:          valid,
		CurrentCGPA:    cgpa,
		MeetsCGPAReq:   meetsCGPA,
		HasNoBacklogs:  hasNoBacklogs,
		BacklogsCount:  backlogsCount,
		SemesterGPAs:   semesterGPAs,
		TotalSemesters: totalSemesters,
		DegreeType:     ExtractField(response, "DEGREE_TYPE"),
		CollegeName:    ExtractField(response, "COLLEGE_NAME"),
		StudentName:    ExtractField(response, "STUDENT_NAME"),
		CourseBranch:   ExtractField(response, "COURSE_BRANCH"),
		Feedback:       feedback,
		Issues:         issues,
		Details: map[string]any{
			"current_semester": ExtractField(response, "CURRENT_SEMESTER"),
			"failed_subjects":  ExtractField(response, "FAILED_SUBJECTS"),
			"model_verdict":    ToBoolean(ExtractField(response, "VALID")),
		},
		RawResponse: response,
	}
}

// ValidateAll implements MarksheetValidator. The three documents are
// validated concurrently, then the names found on them are checked for
// consistency.
func (v *marksheetValidator) ValidateAll(ctx context.Context, class10, class12, college models.DocumentInput, profile PolicyProfile) models.MarksheetsVerdict {
	var (
		wg             sync.WaitGroup
		class10Verdict models.SchoolMarksheetVerdict
		class12Verdict models.SchoolMarksheetVerdict
		collegeVerdict models.CollegeMarksheetVerdict
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		class10Verdict = v.ValidateSchoolMarksheet(ctx, class10, "10", profile)
	}()
	go func() {
		defer wg.Done()
		class12Verdict = v.ValidateSchoolMarksheet(ctx, class12, "12", profile)
	}()
	go func() {
		defer wg.Done()
		collegeVerdict = v.ValidateCollegeMarksheet(ctx, college, profile)
	}()
	wg.Wait()

	names := []string{
		class10Verdict.StudentName,
		class12Verdict.StudentName,
		collegeVerdict.StudentName,
	}
	namesConsistent := CheckNameConsistency(names)

	issues := make([]string, 0)
	issues = append(issues, prefixIssues("Class 10", class10Verdict.Issues)...)
	issues = append(issues, prefixIssues("Class 12", class12Verdict.Issues)...)
	issues = append(issues, prefixIssues("College", collegeVerdict.Issues)...)
	if !namesConsistent {
		issues = append(issues, "Student names are inconsistent across documents")
	}

	valid := class10Verdict.Valid && class12Verdict.Valid && collegeVerdict.Valid && namesConsistent

	return models.MarksheetsVerdict{
		Valid:           valid,
		NamesConsistent: namesConsistent,
		Class10:         class10Verdict,
		Class12:         class12Verdict,
		College:         collegeVerdict,
		Issues:          issues,
		StudentInfo: models.StudentInfo{
			PrimaryName:        primaryName(names),
			NamesFromDocuments: names,
			DegreeType:         collegeVerdict.DegreeType,
			CollegeName:        collegeVerdict.CollegeName,
		},
	}
}

// CheckNameConsistency reports whether the names found on the documents
// plausibly refer to the same person. Names shorter than three characters
// are treated as unreadable and skipped; with fewer than two usable names
// there is nothing to compare and the check passes. The fullest name acts
// as the anchor: every other name must share at least one meaningful
// token (a word longer than two characters) with it. Anchoring, rather
// than intersecting every pair, keeps abbreviated forms like
// "Richard S." and "R. Samuel" consistent with "Richard Samuel".
func CheckNameConsistency(names []string) bool {
	var usable []string
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if len(trimmed) >= 3 && !strings.EqualFold(trimmed, NotMentioned) {
			usable = append(usable, trimmed)
		}
	}
	if len(usable) < 2 {
		return true
	}

	anchorTokens := nameTokens(primaryName(usable))
	if len(anchorTokens) == 0 {
		return true
	}

	for _, name := range usable {
		tokens := nameTokens(name)
		if len(tokens) == 0 {
			// Pure initials carry no checkable token.
			continue
		}
		shared := false
		for token := range tokens {
			if anchorTokens[token] {
				shared = true
				break
			}
		}
		if !shared {
			return false
		}
	}
	return true
}

func nameTokens(name string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(name)) {
		word = strings.Trim(word, ".,")
		if len(word) > 2 {
			tokens[word] = true
		}
	}
	return tokens
}

// primaryName picks the longest readable name as the canonical one, on
// the assumption that the fullest form appears on at least one document.
func primaryName(names []string) string {
	best := ""
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if strings.EqualFold(trimmed, NotMentioned) {
			continue
		}
		if len(trimmed) > len(best) {
			best = trimmed
		}
	}
	return best
}

func prefixIssues(label string, issues []string) []string {
	prefixed := make([]string, 0, len(issues))
	for _, issue := range issues {
		if strings.HasPrefix(issue, label) {
			prefixed = append(prefixed, issue)
		} else {
			prefixed = append(prefixed, fmt.Sprintf("%s: %s", label, issue))
		}
	}
	return prefixed
}

func passingYearValid(yearText string, currentYear int) bool {
	year := ToInt(yearText)
	return year >= earliestPassingYear && year <= currentYear
}

func parseSemesterGPAs(text string) []float64 {
	if strings.TrimSpace(text) == "" || strings.EqualFold(strings.TrimSpace(text), NotMentioned) {
		return nil
	}
	var gpas []float64
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.LastIndex(part, ":"); idx >= 0 {
			part = strings.TrimSpace(part[idx+1:])
		}
		value, err := strconv.ParseFloat(strings.TrimSuffix(part, "/10"), 64)
		if err != nil || value < 0 || value > 10 {
			continue
		}
		gpas = append(gpas, value)
	}
	return gpas
}
