package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// documentSection embeds extracted text into a prompt, or tells the model
// to read the attached payloads when extraction yielded nothing usable.
func documentSection(docText string) string {
	if strings.TrimSpace(docText) == "" {
		return "Document content: see the attached file(s)."
	}
	return fmt.Sprintf("Document content:\n%s", docText)
}

func guidelineSection(guidelineContext string) string {
	if strings.TrimSpace(guidelineContext) == "" {
		return ""
	}
	return fmt.Sprintf("\nPROGRAMME GUIDELINES (reference material):\n%s\n", guidelineContext)
}

// BuildClassificationPrompt asks the model to label a document as exactly
// one of RESUME, COVERLETTER, or MARKSHEET.
func (pb *PromptBuilder) BuildClassificationPrompt(docText string) string {
	excerpt := docText
	if len(excerpt) > 1000 {
		excerpt = excerpt[:1000]
	}

	return fmt.Sprintf(`Analyze this document and determine its type.

RESUME indicators:
- Sections like "Experience", "Skills", "Projects", "Education"
- Lists of technical skills, programming languages, tools
- Work experience or project descriptions in a structured, bulleted format

COVER LETTER indicators:
- Formal letter format with greeting and closing
- Addresses a specific position or opportunity
- Written in paragraph form, with phrases like "I am writing to"

ACADEMIC TRANSCRIPT/MARKSHEET indicators:
- Subjects with their respective marks, grades, or scores
- CGPA/GPA or percentage, academic year/semester information
- Institutional letterhead

Document content (first 1000 characters):
%s

Respond with ONLY ONE of these words: RESUME, COVERLETTER, MARKSHEET`, excerpt)
}

// BuildResumePrompt asks for a structured assessment of a resume or cover
// letter, including the academic marks the document states.
func (pb *PromptBuilder) BuildResumePrompt(docText, guidelineContext string) string {
	return fmt.Sprintf(`You are validating a student's resume or cover letter for a research internship application.

CRITICAL REQUIREMENTS:
1. Must contain technical skills (programming languages, tools, technologies)
2. Must explicitly state academic marks: Class 10 percentage, Class 12 percentage, and current CGPA
3. Should contain projects or relevant experience
4. Must have contact information
%s
%s

Provide detailed analysis in this EXACT format:
VALID: [true/false]
FEEDBACK: [Detailed feedback explaining strengths and weaknesses]
TECHNICAL_SKILLS: [List all technical skills found]
MARKS_MENTIONED: [yes/no - whether Class 10, Class 12 and CGPA figures are explicitly stated]
CLASS_10_PERCENTAGE: [Class 10 percentage - number only, or blank]
CLASS_12_PERCENTAGE: [Class 12 percentage - number only, or blank]
CGPA: [Current CGPA on a 10 scale - number only, or blank]
EDUCATION_LEVEL: [Highest education level mentioned]
PROJECTS_COUNT: [Number of projects mentioned]
CONTACT_INFO: [yes/no]
MISSING_ELEMENTS: [List any critical missing elements]`,
		guidelineSection(guidelineContext), documentSection(docText))
}

// BuildLORPrompt asks for a structured assessment of a letter of
// recommendation against the programme's hard requirements.
func (pb *PromptBuilder) BuildLORPrompt(docText, guidelineContext string) string {
	return fmt.Sprintf(`You are validating a Letter of Recommendation for a research internship application.

CRITICAL REQUIREMENTS:
1. MUST have official institutional letterhead
2. MUST be signed by one of these authorities ONLY:
   - Head of Department (HOD)
   - Principal
   - Dean
   - Placement Officer
3. MUST be addressed to the Group Director, Training, Education and Outreach Group
4. MUST mention the internship/project duration with explicit start and end dates
5. Should follow proper official letter format
%s
%s

Provide analysis in this EXACT format:
VALID: [true/false]
FEEDBACK: [Detailed feedback on all requirements]
HAS_LETTERHEAD: [yes/no]
AUTHORITY_NAME: [Name of signing authority]
AUTHORITY_DESIGNATION: [Exact designation of signing authority]
ADDRESSED_CORRECTLY: [yes/no - addressed to the Group Director, Training, Education and Outreach Group]
DURATION_MENTIONED: [yes/no]
START_DATE: [Start date if mentioned]
END_DATE: [End date if mentioned]
STUDENT_NAME: [Student name mentioned in letter]
COLLEGE_NAME: [Institution name]
BRANCH_COURSE: [Course/branch mentioned]
LETTER_FORMAT: [Proper/Improper]`,
		guidelineSection(guidelineContext), documentSection(docText))
}

// BuildSchoolMarksheetPrompt asks for a structured reading of a Class 10
// or Class 12 marksheet.
func (pb *PromptBuilder) BuildSchoolMarksheetPrompt(classLevel, docText, guidelineContext string) string {
	return fmt.Sprintf(`You are validating a Class %s marksheet for a research internship application.

REQUIREMENTS:
1. Must contain the student's full name
2. Must have the school/board name clearly mentioned
3. Must show the overall percentage or grade (minimum 60%% required)
4. Must have the year of passing
5. Must be an official document (school seal/signature)
%s
%s

Analyze carefully and respond in this EXACT format:
VALID: [true/false]
FEEDBACK: [Detailed analysis of the marksheet]
STUDENT_NAME: [Full name of student]
SCHOOL_BOARD: [Name of school/board]
PERCENTAGE: [Overall percentage - number only]
GRADE: [Overall grade if percentage not available]
YEAR_OF_PASSING: [Year of examination]
SUBJECTS_COUNT: [Number of subjects listed]
OFFICIAL_STATUS: [Official/Unofficial - based on seals, signatures]
MEETS_MINIMUM: [yes/no - whether meets 60%% requirement]`,
		classLevel, guidelineSection(guidelineContext), documentSection(docText))
}

// BuildCollegeMarksheetPrompt asks for a structured reading of the
// college semester marksheets.
func (pb *PromptBuilder) BuildCollegeMarksheetPrompt(docText, guidelineContext string) string {
	return fmt.Sprintf(`You are validating college semester marksheets for a research internship application.

CRITICAL REQUIREMENTS:
1. Current CGPA must be at least 6.32 out of 10
2. NO current backlogs allowed (all subjects must be cleared)
3. Must contain semester-wise academic records
4. Must have college name and student details
%s
%s

Provide comprehensive analysis in this EXACT format:
VALID: [true/false]
FEEDBACK: [Detailed feedback on academic performance]
CURRENT_CGPA: [Current cumulative GPA]
SEMESTER_WISE_GPA: [All semester GPAs separated by commas]
TOTAL_SEMESTERS: [Number of completed semesters]
CURRENT_SEMESTER: [Current/latest semester]
BACKLOGS_COUNT: [Number of current backlogs]
FAILED_SUBJECTS: [List of failed subjects if any]
COLLEGE_NAME: [Name of institution]
STUDENT_NAME: [Student name]
COURSE_BRANCH: [Course and branch/specialization]
DEGREE_TYPE: [BE/BTech/MCA/etc.]
MEETS_CGPA_REQ: [yes/no - whether meets the 6.32 requirement]
NO_BACKLOGS: [yes/no - whether has zero current backlogs]`,
		guidelineSection(guidelineContext), documentSection(docText))
}

// BuildDateNormalizationPrompt asks the model to canonicalize a free-form
// date string.
func (pb *PromptBuilder) BuildDateNormalizationPrompt(rawDate string) string {
	return fmt.Sprintf(`Convert the following date to YYYY-MM-DD format. If only a month and year are given, use the first day of that month. If it is not a recognizable date, reply with exactly: Invalid date

Date: %s

Reply with the converted date only, nothing else.`, rawDate)
}

// BuildRetrievalQuery creates the query text used to retrieve guideline
// context for a document type.
func (pb *PromptBuilder) BuildRetrievalQuery(docType string) string {
	switch docType {
	case "resume_guidelines":
		return "Resume and cover letter requirements for internship applicants"
	case "lor_guidelines":
		return "Letter of recommendation requirements, signing authorities and addressing"
	case "academic_rules":
		return "Academic eligibility rules: minimum percentage, CGPA and backlog policy"
	default:
		return docType
	}
}

// FormatGuidelineContext renders retrieved guideline snippets into a
// prompt-ready block.
func FormatGuidelineContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Guideline %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
