package repository

import (
	"context"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// AttachmentRepository define el puerto de persistencia para los metadatos de adjuntos.
type AttachmentRepository interface {
	Create(ctx context.Context, a *entity.Attachment) error
	// ListByEntity devuelve los adjuntos de la entidad ordenados por created_at ascendente.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error)
	GetByID(ctx context.Context, id string) (*entity.Attachment, error)
	Delete(ctx context.Context, id string) error
}
