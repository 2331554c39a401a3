package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentpipeline/ai-validator/internal/models"
)

type ValidationJobRepository interface {
	Create(job *models.ValidationJob) error
	FindByID(id uuid.UUID) (*models.ValidationJob, error)
	UpdateStatus(id uuid.UUID, status models.ValidationStatus) error
	UpdateVerdict(id uuid.UUID, verdictJSON string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.ValidationJob, error)
}

type validationJobRepository struct {
	db *gorm.DB
}

func NewValidationJobRepository(db *gorm.DB) ValidationJobRepository {
	return &validationJobRepository{db: db}
}

func (r *validationJobRepository) Create(job *models.ValidationJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create validation job: %w", err)
	}
	return nil
}

func (r *validationJobRepository) FindByID(id uuid.UUID) (*models.ValidationJob, error) {
	var job models.ValidationJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("validation job not found")
		}
		return nil, fmt.Errorf("failed to find validation job: %w", err)
	}
	return &job, nil
}

func (r *validationJobRepository) UpdateStatus(id uuid.UUID, status models.ValidationStatus) error {
	result := r.db.Model(&models.ValidationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("validation job not found")
	}

	return nil
}

func (r *validationJobRepository) UpdateVerdict(id uuid.UUID, verdictJSON string) error {
	result := r.db.Model(&models.ValidationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusCompleted,
			"verdict":    verdictJSON,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update verdict: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("validation job not found")
	}

	return nil
}

func (r *validationJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ValidationJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("validation job not found")
	}

	return nil
}

func (r *validationJobRepository) FindPendingJobs(limit int) ([]models.ValidationJob, error) {
	var jobs []models.ValidationJob
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return jobs, nil
}
