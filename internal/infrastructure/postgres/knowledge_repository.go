package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.KnowledgeRepository = (*KnowledgeRepo)(nil)

// KnowledgeRepo implementación del puerto KnowledgeRepository sobre PostgreSQL.
type KnowledgeRepo struct {
	q Querier
}

// NewKnowledgeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKnowledgeRepository(q Querier) *KnowledgeRepo {
	return &KnowledgeRepo{q: q}
}

// Create persiste un documento de la base de conocimiento.
func (r *KnowledgeRepo) Create(ctx context.Context, d *entity.KnowledgeDocument) error {
	query := `
		INSERT INTO knowledge_documents (id, title, storage_path, mime_type, ingest_status, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Title, d.StoragePath, d.MimeType, d.IngestStatus, d.UploadedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert knowledge document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *KnowledgeRepo) GetByID(ctx context.Context, id string) (*entity.KnowledgeDocument, error) {
	query := `
		SELECT id, title, storage_path, mime_type, ingest_status, uploaded_by, created_at, updated_at
		FROM knowledge_documents WHERE id = $1`
	var d entity.KnowledgeDocument
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.StoragePath, &d.MimeType, &d.IngestStatus, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get knowledge document: %w", err)
	}
	return &d, nil
}

// List lista documentos con paginación, más reciente primero.
func (r *KnowledgeRepo) List(ctx context.Context, limit, offset int) ([]*entity.KnowledgeDocument, error) {
	query := `
		SELECT id, title, storage_path, mime_type, ingest_status, uploaded_by, created_at, updated_at
		FROM knowledge_documents ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list knowledge documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.KnowledgeDocument
	for rows.Next() {
		var d entity.KnowledgeDocument
		if err := rows.Scan(
			&d.ID, &d.Title, &d.StoragePath, &d.MimeType, &d.IngestStatus, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan knowledge document: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// UpdateIngestStatus actualiza el estado de ingesta reportado por el workflow externo.
func (r *KnowledgeRepo) UpdateIngestStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE knowledge_documents SET ingest_status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update ingest status: %w", err)
	}
	return nil
}

// Delete elimina un documento por ID.
func (r *KnowledgeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM knowledge_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete knowledge document: %w", err)
	}
	return nil
}
