package dto

import "time"

// CreateKnowledgeDocumentRequest entrada para registrar un documento de la base de conocimiento.
type CreateKnowledgeDocumentRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=300"`
	StoragePath string `json:"storage_path" validate:"required,max=1000"`
	MimeType    string `json:"mime_type" validate:"required,max=200"`
}

// KnowledgeDocumentResponse salida de un documento.
type KnowledgeDocumentResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	StoragePath  string    `json:"storage_path"`
	MimeType     string    `json:"mime_type"`
	IngestStatus string    `json:"ingest_status"`
	PublicURL    string    `json:"public_url"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IngestRequest entrada para disparar la ingesta de un documento.
type IngestRequest struct {
	DocumentID string `json:"document_id" validate:"required,uuid"`
}

// IngestResponse confirmación del disparo de ingesta.
type IngestResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
