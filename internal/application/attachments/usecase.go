// Package attachments implementa el servicio de adjuntos: validación, subida
// con compensación, listado, borrado y URLs firmadas.
package attachments

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// MaxFileSize tamaño máximo de un adjunto (igual en todos los call sites).
const MaxFileSize = 5 << 20 // 5 MiB

// SignedURLTTL vigencia de las URLs firmadas de descarga.
const SignedURLTTL = time.Hour

// baseAllowedMimeTypes tipos permitidos para adjuntos de compras.
var baseAllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/jpeg": true,
	"image/png":  true,
}

// rdExtraMimeTypes tipos adicionales permitidos solo en la variante de I+D
// (fichas técnicas en texto plano, datos crudos en CSV, lotes comprimidos).
var rdExtraMimeTypes = map[string]bool{
	"text/plain":                   true,
	"text/csv":                     true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// entityColumns columna FK de metadatos por tipo de entidad.
var entityColumns = map[string]string{
	entity.AttachPurchaseRequest: "request_id",
	entity.AttachPurchaseInvoice: "invoice_id",
	entity.AttachRDRequest:       "rd_request_id",
}

// UploadInput describe el archivo a subir.
type UploadInput struct {
	FileName   string
	MimeType   string
	SizeBytes  int64
	Content    io.Reader
	EntityType string // ver entity.Attach*
	EntityID   string
	UploaderID string
}

// Service casos de uso de adjuntos.
type Service struct {
	storage ObjectStorage
	repo    repository.AttachmentRepository
	log     *logger.Logger
}

// NewService construye el servicio de adjuntos.
func NewService(storage ObjectStorage, repo repository.AttachmentRepository, log *logger.Logger) *Service {
	return &Service{storage: storage, repo: repo, log: log.Component("attachments")}
}

// Validate verifica MIME y tamaño antes de subir.
// Devuelve domain.ErrUnsupportedType o domain.ErrFileTooLarge; nil si es válido.
// El orden importa: el tipo se rechaza primero, el tamaño aplica a cualquier tipo.
func Validate(mimeType string, sizeBytes int64, entityType string) error {
	normalized := normalizeMime(mimeType)
	allowed := baseAllowedMimeTypes[normalized]
	if !allowed && entityType == entity.AttachRDRequest {
		allowed = rdExtraMimeTypes[normalized]
	}
	if !allowed {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	if sizeBytes > MaxFileSize {
		return fmt.Errorf("%w: %d bytes (máximo %d)", domain.ErrFileTooLarge, sizeBytes, MaxFileSize)
	}
	return nil
}

// normalizeMime descarta parámetros tipo "; charset=utf-8" y normaliza a minúsculas.
func normalizeMime(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// storageKey genera la clave del objeto: timestamp + UUID + extensión original.
// Nunca se usa el nombre crudo del archivo (evita problemas de encoding).
func storageKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}

// Upload valida, sube el objeto y registra la fila de metadatos.
//
// Si el insert de metadatos falla tras una subida exitosa, el objeto recién
// subido se elimina antes de devolver el error. La compensación es best-effort:
// si el Remove también falla se registra en el log y se devuelve el error
// original del insert, no el de la limpieza.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*entity.Attachment, error) {
	if _, ok := entityColumns[in.EntityType]; !ok {
		return nil, fmt.Errorf("%w: tipo de entidad %q", domain.ErrInvalidInput, in.EntityType)
	}
	if in.EntityID == "" {
		return nil, fmt.Errorf("%w: entity_id requerido", domain.ErrInvalidInput)
	}
	if err := Validate(in.MimeType, in.SizeBytes, in.EntityType); err != nil {
		return nil, err
	}

	// Path del objeto scoped por tipo de entidad e id.
	objectPath := path.Join(in.EntityType, in.EntityID, storageKey(in.FileName))

	if err := s.storage.Upload(ctx, objectPath, in.MimeType, in.Content, in.SizeBytes); err != nil {
		return nil, fmt.Errorf("subir adjunto: %w", err)
	}

	att := &entity.Attachment{
		ID:          uuid.New().String(),
		EntityType:  in.EntityType,
		EntityID:    in.EntityID,
		FileName:    in.FileName,
		StoragePath: objectPath,
		MimeType:    normalizeMime(in.MimeType),
		SizeBytes:   in.SizeBytes,
		UploadedBy:  in.UploaderID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, att); err != nil {
		// Compensación: el objeto quedó huérfano, eliminarlo antes de reportar.
		if rmErr := s.storage.Remove(ctx, objectPath); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", objectPath).
				Msg("no se pudo limpiar el objeto huérfano tras fallo de metadatos")
		}
		return nil, fmt.Errorf("registrar metadatos de adjunto: %w", err)
	}
	return att, nil
}

// Get devuelve un adjunto por id; (nil, nil) si no existe.
func (s *Service) Get(ctx context.Context, attachmentID string) (*entity.Attachment, error) {
	return s.repo.GetByID(ctx, attachmentID)
}

// List devuelve los adjuntos de una entidad, ordenados por created_at ascendente.
func (s *Service) List(ctx context.Context, entityType, entityID string) ([]*entity.Attachment, error) {
	if _, ok := entityColumns[entityType]; !ok {
		return nil, fmt.Errorf("%w: tipo de entidad %q", domain.ErrInvalidInput, entityType)
	}
	return s.repo.ListByEntity(ctx, entityType, entityID)
}

// Delete elimina primero el objeto (fallo solo se registra) y luego la fila de
// metadatos (fallo sí se devuelve al caller).
func (s *Service) Delete(ctx context.Context, attachmentID, storagePath string) error {
	if err := s.storage.Remove(ctx, storagePath); err != nil {
		s.log.Warn().Err(err).Str("path", storagePath).
			Msg("no se pudo eliminar el objeto de storage; se elimina la fila igualmente")
	}
	if err := s.repo.Delete(ctx, attachmentID); err != nil {
		return fmt.Errorf("eliminar metadatos de adjunto: %w", err)
	}
	return nil
}

// SignedURL pide a storage una URL de descarga con vencimiento de una hora.
func (s *Service) SignedURL(ctx context.Context, storagePath string) (string, time.Time, error) {
	url, err := s.storage.CreateSignedURL(ctx, storagePath, SignedURLTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("firmar URL: %w", err)
	}
	return url, time.Now().Add(SignedURLTTL), nil
}
