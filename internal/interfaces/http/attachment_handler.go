package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/attachments"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// AttachmentHandler maneja la subida, listado y eliminación de adjuntos.
type AttachmentHandler struct {
	svc *attachments.Service
}

// NewAttachmentHandler construye el handler de adjuntos.
func NewAttachmentHandler(svc *attachments.Service) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// Upload sube un archivo multipart y registra sus metadatos.
// Campos del form: file, entity_type, entity_id.
// POST /api/attachments
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo 'file' requerido"})
	}
	entityType := c.FormValue("entity_type")
	entityID := c.FormValue("entity_id")

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	att, err := h.svc.Upload(c.Context(), attachments.UploadInput{
		FileName:   fileHeader.Filename,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		SizeBytes:  fileHeader.Size,
		Content:    f,
		EntityType: entityType,
		EntityID:   entityID,
		UploaderID: GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_TYPE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toAttachmentResponse(att))
}

// List devuelve los adjuntos de una entidad.
// GET /api/attachments?entity_type=purchase_request&entity_id=<uuid>
func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	entityType := c.Query("entity_type")
	entityID := c.Query("entity_id")
	if entityType == "" || entityID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entity_type y entity_id son requeridos"})
	}
	rows, err := h.svc.List(c.Context(), entityType, entityID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.AttachmentResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAttachmentResponse(a))
	}
	return c.JSON(out)
}

// SignedURL devuelve un enlace de descarga con vencimiento de una hora.
// GET /api/attachments/:id/url
func (h *AttachmentHandler) SignedURL(c *fiber.Ctx) error {
	att, err := h.findAttachment(c)
	if err != nil {
		return err
	}
	url, expiresAt, err := h.svc.SignedURL(c.Context(), att.StoragePath)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE_UPSTREAM", Message: err.Error()})
	}
	return c.JSON(dto.SignedURLResponse{URL: url, ExpiresAt: expiresAt})
}

// Delete elimina el objeto de storage y la fila de metadatos.
// DELETE /api/attachments/:id
func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	att, err := h.findAttachment(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), att.ID, att.StoragePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// findAttachment resuelve el adjunto de :id o escribe la respuesta de error.
func (h *AttachmentHandler) findAttachment(c *fiber.Ctx) (*entity.Attachment, error) {
	id := c.Params("id")
	if id == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	att, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if att == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "adjunto no encontrado"})
	}
	return att, nil
}

func toAttachmentResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          a.ID,
		EntityType:  a.EntityType,
		EntityID:    a.EntityID,
		FileName:    a.FileName,
		StoragePath: a.StoragePath,
		MimeType:    a.MimeType,
		SizeBytes:   a.SizeBytes,
		UploadedBy:  a.UploadedBy,
		CreatedAt:   a.CreatedAt,
	}
}
