package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.AttachmentRepository = (*AttachmentRepo)(nil)

// AttachmentRepo implementación del puerto AttachmentRepository sobre PostgreSQL.
type AttachmentRepo struct {
	q Querier
}

// NewAttachmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

// fkColumn devuelve la columna FK que corresponde al tipo de entidad.
// Cada tipo tiene su propia columna; la tabla garantiza que exactamente una esté poblada.
func fkColumn(entityType string) (string, error) {
	switch entityType {
	case entity.AttachPurchaseRequest:
		return "request_id", nil
	case entity.AttachPurchaseInvoice:
		return "invoice_id", nil
	case entity.AttachRDRequest:
		return "rd_request_id", nil
	default:
		return "", fmt.Errorf("unknown attachment entity type %q", entityType)
	}
}

// Create persiste los metadatos de un adjunto en la columna FK de su tipo.
func (r *AttachmentRepo) Create(ctx context.Context, a *entity.Attachment) error {
	col, err := fkColumn(a.EntityType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO attachments (id, %s, file_name, storage_path, mime_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, col)
	_, err = r.q.Exec(ctx, query,
		a.ID, a.EntityID, a.FileName, a.StoragePath, a.MimeType, a.SizeBytes, a.UploadedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

// ListByEntity devuelve los adjuntos de la entidad ordenados por created_at ascendente.
func (r *AttachmentRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error) {
	col, err := fkColumn(entityType)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, file_name, storage_path, mime_type, size_bytes, uploaded_by, created_at
		FROM attachments WHERE %s = $1 ORDER BY created_at ASC`, col, col)
	rows, err := r.q.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		if err := rows.Scan(
			&a.ID, &a.EntityID, &a.FileName, &a.StoragePath, &a.MimeType, &a.SizeBytes, &a.UploadedBy, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		a.EntityType = entityType
		attachments = append(attachments, &a)
	}
	return attachments, rows.Err()
}

// GetByID obtiene un adjunto por ID, resolviendo su tipo según la columna FK poblada.
func (r *AttachmentRepo) GetByID(ctx context.Context, id string) (*entity.Attachment, error) {
	query := `
		SELECT id, request_id, invoice_id, rd_request_id, file_name, storage_path, mime_type, size_bytes, uploaded_by, created_at
		FROM attachments WHERE id = $1`
	var (
		a                             entity.Attachment
		requestID, invoiceID, rdReqID *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &requestID, &invoiceID, &rdReqID,
		&a.FileName, &a.StoragePath, &a.MimeType, &a.SizeBytes, &a.UploadedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	switch {
	case requestID != nil:
		a.EntityType, a.EntityID = entity.AttachPurchaseRequest, *requestID
	case invoiceID != nil:
		a.EntityType, a.EntityID = entity.AttachPurchaseInvoice, *invoiceID
	case rdReqID != nil:
		a.EntityType, a.EntityID = entity.AttachRDRequest, *rdReqID
	}
	return &a, nil
}

// Delete elimina la fila de metadatos de un adjunto.
func (r *AttachmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}
