package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"studentpipeline/ai-validator/internal/models"
	"studentpipeline/ai-validator/internal/repositories"
)

// JobService executes one queued validation job end to end: load the
// stored documents, run the full validation pipeline, persist the
// verdict.
type JobService interface {
	ProcessJob(ctx context.Context, jobID uuid.UUID) error
}

type jobService struct {
	jobRepo    repositories.ValidationJobRepository
	docRepo    repositories.DocumentRepository
	pdfParser  PDFParserService
	validation ValidationService
}

func NewJobService(
	jobRepo repositories.ValidationJobRepository,
	docRepo repositories.DocumentRepository,
	pdfParser PDFParserService,
	validation ValidationService,
) JobService {
	return &jobService{
		jobRepo:    jobRepo,
		docRepo:    docRepo,
		pdfParser:  pdfParser,
		validation: validation,
	}
}

// ProcessJob implements JobService.
func (s *jobService) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	if job.Status != models.StatusQueued {
		log.Printf("⏭️  Job %s already %s, skipping\n", jobID, job.Status)
		return nil
	}

	if err := s.jobRepo.UpdateStatus(jobID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to mark job processing: %w", err)
	}

	docs, err := s.loadDocuments(job)
	if err != nil {
		s.failJob(jobID, err)
		return err
	}

	profile := ResolveProfile(job.PolicyProfile)
	verdict := s.validation.ValidateApplication(ctx, docs, job.ApplicationType, profile)

	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		err = fmt.Errorf("failed to marshal verdict: %w", err)
		s.failJob(jobID, err)
		return err
	}

	if err := s.jobRepo.UpdateVerdict(jobID, string(verdictJSON)); err != nil {
		return fmt.Errorf("failed to persist verdict: %w", err)
	}

	log.Printf("✅ Job %s completed with status %s\n", jobID, verdict.Status)
	return nil
}

func (s *jobService) loadDocuments(job *models.ValidationJob) (ApplicationDocuments, error) {
	var docs ApplicationDocuments

	slots := []struct {
		id     uuid.UUID
		role   string
		target *models.DocumentInput
	}{
		{job.ResumeDocumentID, models.RoleResume, &docs.Resume},
		{job.LORDocumentID, models.RoleLOR, &docs.LOR},
		{job.Class10DocumentID, models.RoleClass10, &docs.Class10},
		{job.Class12DocumentID, models.RoleClass12, &docs.Class12},
		{job.CollegeDocumentID, models.RoleCollege, &docs.College},
	}

	for _, slot := range slots {
		doc, err := s.docRepo.FindByID(slot.id)
		if err != nil {
			return docs, fmt.Errorf("failed to load %s document: %w", slot.role, err)
		}

		input, err := s.pdfParser.BuildDocumentInput(doc.FilePath)
		if err != nil {
			return docs, fmt.Errorf("failed to read %s document: %w", slot.role, err)
		}

		*slot.target = input
	}

	return docs, nil
}

func (s *jobService) failJob(jobID uuid.UUID, cause error) {
	if err := s.jobRepo.UpdateError(jobID, cause.Error()); err != nil {
		log.Printf("❌ Failed to record job %s error: %v\n", jobID, err)
	}
}
