package models

// DocumentVerdict is the outcome of validating a single document. It is
// built once by a validator and never mutated afterwards; re-validation
// produces a fresh verdict.
type DocumentVerdict struct {
	Valid        bool           `json:"valid"`
	Feedback     string         `json:"feedback"`
	Issues       []string       `json:"issues,omitempty"`
	Details      map[string]any `json:"details"`
	RawResponse  string         `json:"raw_response,omitempty"`
	DocumentType string         `json:"document_type,omitempty"`
}

// SchoolMarksheetVerdict is the verdict for a Class 10 or Class 12
// marksheet, with the numeric basis surfaced as typed fields.
type SchoolMarksheetVerdict struct {
	Valid         bool           `json:"valid"`
	ClassLevel    string         `json:"class_level"`
	Percentage    float64        `json:"percentage"`
	MeetsMinimum  bool           `json:"meets_minimum"`
	StudentName   string         `json:"student_name"`
	SchoolBoard   string         `json:"school_board"`
	YearOfPassing string         `json:"year_of_passing"`
	YearValid     bool           `json:"year_valid"`
	Feedback      string         `json:"feedback"`
	Issues        []string       `json:"issues,omitempty"`
	Details       map[string]any `json:"details"`
	RawResponse   string         `json:"raw_response,omitempty"`
}

// CollegeMarksheetVerdict is the verdict for the college semester
// marksheets.
type CollegeMarksheetVerdict struct {
	Valid          bool           `json:"valid"`
	CurrentCGPA    float64        `json:"current_cgpa"`
	MeetsCGPAReq   bool           `json:"meets_cgpa_requirement"`
	HasNoBacklogs  bool           `json:"has_no_backlogs"`
	BacklogsCount  int            `json:"backlogs_count"`
	SemesterGPAs   []float64      `json:"semester_gpas,omitempty"`
	TotalSemesters int            `json:"total_semesters"`
	DegreeType     string         `json:"degree_type"`
	CollegeName    string         `json:"college_name"`
	StudentName    string         `json:"student_name"`
	CourseBranch   string         `json:"course_branch"`
	Feedback       string         `json:"feedback"`
	Issues         []string       `json:"issues,omitempty"`
	Details        map[string]any `json:"details"`
	RawResponse    string         `json:"raw_response,omitempty"`
}

// MarksheetsVerdict aggregates the three academic documents plus the
// cross-document name-consistency check.
type MarksheetsVerdict struct {
	Valid           bool                    `json:"valid"`
	NamesConsistent bool                    `json:"names_consistent"`
	Class10         SchoolMarksheetVerdict  `json:"class_10"`
	Class12         SchoolMarksheetVerdict  `json:"class_12"`
	College         CollegeMarksheetVerdict `json:"college"`
	Issues          []string                `json:"issues"`
	StudentInfo     StudentInfo             `json:"student_info"`
}

// StudentInfo is the identity picture assembled from the academic
// documents.
type StudentInfo struct {
	PrimaryName        string   `json:"primary_name"`
	NamesFromDocuments []string `json:"names_from_documents"`
	DegreeType         string   `json:"degree_type"`
	CollegeName        string   `json:"college_name"`
}

// EligibilityResult is the policy engine's decision for a degree/semester
// combination, independent of any single document.
type EligibilityResult struct {
	Eligible           bool   `json:"eligible"`
	Reason             string `json:"reason"`
	SemestersCompleted int    `json:"semesters_completed"`
	MinimumRequired    int    `json:"minimum_required"`
	DegreeCategory     string `json:"degree_category"`
}

// AdvanceCheckResult is the application-window decision.
type AdvanceCheckResult struct {
	MeetsRequirement bool   `json:"meets_advance_requirement"`
	DaysInAdvance    int    `json:"days_in_advance"`
	MinimumRequired  int    `json:"minimum_required"`
	Reason           string `json:"reason"`
}

// ComponentDetail is the per-component section of an ApplicationVerdict.
type ComponentDetail struct {
	Status   string         `json:"status"`
	Feedback string         `json:"feedback"`
	Issues   []string       `json:"issues"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// ApplicantInfo summarizes the applicant for the final verdict.
type ApplicantInfo struct {
	Name               string  `json:"name"`
	Degree             string  `json:"degree"`
	College            string  `json:"college"`
	CGPA               float64 `json:"cgpa"`
	SemestersCompleted int     `json:"semesters_completed"`
}

// Application statuses for the terminal verdict.
const (
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// ApplicationVerdict is the terminal aggregate for one application.
// Valid is true iff every contributing document verdict is valid and
// every eligibility result is eligible. Immutable once returned.
type ApplicationVerdict struct {
	Status           string                     `json:"application_status"`
	Valid            bool                       `json:"overall_valid"`
	Summary          string                     `json:"summary"`
	Issues           []string                   `json:"all_issues"`
	InvalidDocuments []string                   `json:"invalid_documents"`
	Details          map[string]ComponentDetail `json:"validation_details"`
	Recommendations  []string                   `json:"recommendations"`
	NextSteps        []string                   `json:"next_steps"`
	ApplicantInfo    ApplicantInfo              `json:"applicant_info"`
	Eligibility      EligibilityResult          `json:"eligibility"`
}
