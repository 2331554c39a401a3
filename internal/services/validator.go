package services

import (
	"context"
	"log"
	"sync"
	"time"

	"studentpipeline/ai-validator/internal/models"
)

// ApplicationDocuments groups the five documents of one application.
type ApplicationDocuments struct {
	Resume  models.DocumentInput
	LOR     models.DocumentInput
	Class10 models.DocumentInput
	Class12 models.DocumentInput
	College models.DocumentInput
}

// ValidationService is the facade over the whole validation pipeline:
// classification, the per-document validators, the policy engine, and the
// final evaluation.
type ValidationService interface {
	ValidateApplication(ctx context.Context, docs ApplicationDocuments, applicationType string, profile PolicyProfile) models.ApplicationVerdict
	ValidateResumeOnly(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict
	ValidateLOROnly(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict
	ValidateMarksheetsOnly(ctx context.Context, class10, class12, college models.DocumentInput, profile PolicyProfile) models.MarksheetsVerdict
}

type validationService struct {
	classifier  DocumentClassifier
	resume      ResumeValidator
	lor         LORValidator
	marksheets  MarksheetValidator
	eligibility EligibilityChecker
	evaluator   ApplicationEvaluator
	now         func() time.Time
}

func NewValidationService(
	classifier DocumentClassifier,
	resume ResumeValidator,
	lor LORValidator,
	marksheets MarksheetValidator,
	eligibility EligibilityChecker,
	evaluator ApplicationEvaluator,
) ValidationService {
	return &validationService{
		classifier:  classifier,
		resume:      resume,
		lor:         lor,
		marksheets:  marksheets,
		eligibility: eligibility,
		evaluator:   evaluator,
		now:         time.Now,
	}
}

// ValidateApplication implements ValidationService. The five documents
// are independent until the final evaluation, so resume, LOR and the
// marksheet trio run concurrently.
func (s *validationService) ValidateApplication(ctx context.Context, docs ApplicationDocuments, applicationType string, profile PolicyProfile) models.ApplicationVerdict {
	log.Printf("🔍 Validating application (type=%s, profile=%s)\n", applicationType, profile.Name)

	var (
		wg                sync.WaitGroup
		resumeVerdict     models.DocumentVerdict
		lorVerdict        models.DocumentVerdict
		marksheetsVerdict models.MarksheetsVerdict
		documentType      string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		documentType = s.classifier.Classify(ctx, docs.Resume)
		resumeVerdict = s.resume.Validate(ctx, docs.Resume, profile)
		resumeVerdict.DocumentType = documentType
	}()
	go func() {
		defer wg.Done()
		lorVerdict = s.lor.Validate(ctx, docs.LOR, profile)
	}()
	go func() {
		defer wg.Done()
		marksheetsVerdict = s.marksheets.ValidateAll(ctx, docs.Class10, docs.Class12, docs.College, profile)
	}()
	wg.Wait()

	eligibility := s.eligibility.CheckDegreeEligibility(
		marksheetsVerdict.StudentInfo.DegreeType,
		marksheetsVerdict.College.TotalSemesters,
		applicationType,
	)

	verdict := s.evaluator.Evaluate(resumeVerdict, lorVerdict, marksheetsVerdict, eligibility)
	log.Printf("✅ Application evaluated: status=%s, issues=%d\n", verdict.Status, len(verdict.Issues))
	return verdict
}

// ValidateResumeOnly implements ValidationService.
func (s *validationService) ValidateResumeOnly(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict {
	verdict := s.resume.Validate(ctx, doc, profile)
	verdict.DocumentType = s.classifier.Classify(ctx, doc)
	return verdict
}

// ValidateLOROnly implements ValidationService.
func (s *validationService) ValidateLOROnly(ctx context.Context, doc models.DocumentInput, profile PolicyProfile) models.DocumentVerdict {
	return s.lor.Validate(ctx, doc, profile)
}

// ValidateMarksheetsOnly implements ValidationService.
func (s *validationService) ValidateMarksheetsOnly(ctx context.Context, class10, class12, college models.DocumentInput, profile PolicyProfile) models.MarksheetsVerdict {
	return s.marksheets.ValidateAll(ctx, class10, class12, college, profile)
}
