package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Role         string `json:"role"`
}

type ValidateAsyncRequest struct {
	ApplicationType   string `json:"application_type"`
	PolicyProfile     string `json:"policy_profile"`
	ResumeDocumentID  string `json:"resume_document_id" validate:"required,uuid"`
	LORDocumentID     string `json:"lor_document_id" validate:"required,uuid"`
	Class10DocumentID string `json:"class_10_document_id" validate:"required,uuid"`
	Class12DocumentID string `json:"class_12_document_id" validate:"required,uuid"`
	CollegeDocumentID string `json:"college_document_id" validate:"required,uuid"`
}

type ValidateAsyncResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string              `json:"id"`
	Status       string              `json:"status"`
	Verdict      *ApplicationVerdict `json:"verdict,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
}
