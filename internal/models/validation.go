package models

import (
	"time"

	"github.com/google/uuid"
)

type ValidationStatus string

const (
	StatusQueued     ValidationStatus = "queued"
	StatusProcessing ValidationStatus = "processing"
	StatusCompleted  ValidationStatus = "completed"
	StatusFailed     ValidationStatus = "failed"
)

type ValidationJob struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationType   string           `gorm:"type:text;not null;default:'internship'" json:"application_type"`
	PolicyProfile     string           `gorm:"type:text;not null;default:'five_document'" json:"policy_profile"`
	ResumeDocumentID  uuid.UUID        `gorm:"type:uuid;not null" json:"resume_document_id"`
	LORDocumentID     uuid.UUID        `gorm:"type:uuid;not null" json:"lor_document_id"`
	Class10DocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"class_10_document_id"`
	Class12DocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"class_12_document_id"`
	CollegeDocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"college_document_id"`
	Status            ValidationStatus `gorm:"not null;default:'queued'" json:"status"`
	Verdict           *string          `gorm:"type:jsonb" json:"verdict,omitempty"`
	ErrorMessage      *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt         time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument  Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
	LORDocument     Document `gorm:"foreignKey:LORDocumentID" json:"-"`
	Class10Document Document `gorm:"foreignKey:Class10DocumentID" json:"-"`
	Class12Document Document `gorm:"foreignKey:Class12DocumentID" json:"-"`
	CollegeDocument Document `gorm:"foreignKey:CollegeDocumentID" json:"-"`
}

func (ValidationJob) TableName() string {
	return "validation_jobs"
}
