package repository

import (
	"context"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// KnowledgeRepository puerto de persistencia para documentos de la base de conocimiento.
type KnowledgeRepository interface {
	Create(ctx context.Context, d *entity.KnowledgeDocument) error
	GetByID(ctx context.Context, id string) (*entity.KnowledgeDocument, error)
	List(ctx context.Context, limit, offset int) ([]*entity.KnowledgeDocument, error)
	UpdateIngestStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
