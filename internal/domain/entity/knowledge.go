package entity

import "time"

// Estados de ingesta de un documento de la base de conocimiento.
const (
	KBStatusPending  = "pending"
	KBStatusQueued   = "queued"
	KBStatusIndexed  = "indexed"
	KBStatusFailed   = "failed"
)

// KnowledgeDocument representa un documento de la base de conocimiento.
// La indexación la hace un workflow externo disparado por webhook; esta
// aplicación solo guarda la fila y el estado que el workflow reporta.
type KnowledgeDocument struct {
	ID           string
	Title        string
	StoragePath  string
	MimeType     string
	IngestStatus string // ver constantes KBStatus*
	UploadedBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
