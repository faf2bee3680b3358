package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// KnowledgeUseCase documentos de la base de conocimiento y disparo de ingesta.
type KnowledgeUseCase struct {
	repo    repository.KnowledgeRepository
	trigger IngestTrigger
	urls    PublicURLResolver
	log     *logger.Logger
}

// NewKnowledgeUseCase construye el caso de uso.
func NewKnowledgeUseCase(repo repository.KnowledgeRepository, trigger IngestTrigger, urls PublicURLResolver, log *logger.Logger) *KnowledgeUseCase {
	return &KnowledgeUseCase{repo: repo, trigger: trigger, urls: urls, log: log.Component("knowledge")}
}

// CreateDocument registra un documento en estado pending.
func (uc *KnowledgeUseCase) CreateDocument(ctx context.Context, in dto.CreateKnowledgeDocumentRequest, uploaderID string) (*dto.KnowledgeDocumentResponse, error) {
	now := time.Now()
	d := &entity.KnowledgeDocument{
		ID:           uuid.New().String(),
		Title:        in.Title,
		StoragePath:  in.StoragePath,
		MimeType:     in.MimeType,
		IngestStatus: entity.KBStatusPending,
		UploadedBy:   uploaderID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("crear documento: %w", err)
	}
	return uc.toDocumentResponse(d), nil
}

// ListDocuments lista documentos paginados.
func (uc *KnowledgeUseCase) ListDocuments(ctx context.Context, page dto.PageRequest) ([]*dto.KnowledgeDocumentResponse, error) {
	page.DefaultPage()
	rows, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.KnowledgeDocumentResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, uc.toDocumentResponse(d))
	}
	return out, nil
}

// GetDocument devuelve un documento; ErrNotFound si no existe.
func (uc *KnowledgeUseCase) GetDocument(ctx context.Context, id string) (*dto.KnowledgeDocumentResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toDocumentResponse(d), nil
}

// DeleteDocument elimina la fila del documento.
func (uc *KnowledgeUseCase) DeleteDocument(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// TriggerIngest dispara el workflow externo de indexación para el documento.
// Si el webhook falla, el estado del documento queda en failed y se devuelve
// ErrUpstream (el handler lo convierte en 502). No hay reintentos automáticos.
func (uc *KnowledgeUseCase) TriggerIngest(ctx context.Context, in dto.IngestRequest) (*dto.IngestResponse, error) {
	d, err := uc.repo.GetByID(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, in.DocumentID)
	}

	if err := uc.trigger.Trigger(ctx, d.ID, d.StoragePath); err != nil {
		uc.log.Error().Err(err).Str("document_id", d.ID).Msg("webhook de ingesta falló")
		if updErr := uc.repo.UpdateIngestStatus(ctx, d.ID, entity.KBStatusFailed); updErr != nil {
			uc.log.Warn().Err(updErr).Str("document_id", d.ID).Msg("no se pudo marcar failed")
		}
		return nil, fmt.Errorf("%w: webhook de ingesta: %v", domain.ErrUpstream, err)
	}

	if err := uc.repo.UpdateIngestStatus(ctx, d.ID, entity.KBStatusQueued); err != nil {
		return nil, fmt.Errorf("actualizar estado de ingesta: %w", err)
	}
	return &dto.IngestResponse{Success: true, Status: entity.KBStatusQueued}, nil
}

// toDocumentResponse arma el DTO; la URL pública se resuelve aquí porque el
// bucket de conocimiento es público y los lectores la consumen directa.
func (uc *KnowledgeUseCase) toDocumentResponse(d *entity.KnowledgeDocument) *dto.KnowledgeDocumentResponse {
	return &dto.KnowledgeDocumentResponse{
		ID:           d.ID,
		Title:        d.Title,
		StoragePath:  d.StoragePath,
		MimeType:     d.MimeType,
		IngestStatus: d.IngestStatus,
		PublicURL:    uc.urls.GetPublicURL(d.StoragePath),
		UploadedBy:   d.UploadedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
