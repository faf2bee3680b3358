package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/auth"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

// AdminHandler panel de administración: aprovisionamiento de usuarios,
// importación por lotes, enlaces de reset y gestión de la base de conocimiento.
//
// Mapeo de errores del panel:
//   - validación           → 400
//   - token ausente        → 401 (AuthMiddleware)
//   - rol insuficiente     → 403 (RequireRole)
//   - SMTP/webhook caído   → 502 (domain.ErrUpstream)
//   - cualquier otro fallo → 500
type AdminHandler struct {
	provisionUC *admin.ProvisionUseCase
	knowledgeUC *admin.KnowledgeUseCase
	profileRepo repository.ProfileRepository
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(provisionUC *admin.ProvisionUseCase, knowledgeUC *admin.KnowledgeUseCase, profileRepo repository.ProfileRepository) *AdminHandler {
	return &AdminHandler{provisionUC: provisionUC, knowledgeUC: knowledgeUC, profileRepo: profileRepo}
}

// CreateUser aprovisiona un usuario con rol asignado.
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y role son requeridos"})
	}
	out, err := h.provisionUC.CreateUser(c.Context(), in)
	if err != nil {
		return h.mapAdminError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers lista todos los perfiles.
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	rows, err := h.profileRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.ProfileResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, auth.ToProfileResponse(p))
	}
	return c.JSON(out)
}

// ImportUsers importa un lote de usuarios. Cada registro se procesa de forma
// independiente: el resultado siempre es 200 con el detalle por registro.
// POST /api/admin/users/import
func (h *AdminHandler) ImportUsers(c *fiber.Ctx) error {
	var in dto.ImportUsersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Users) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "users no puede estar vacío"})
	}
	results := h.provisionUC.ImportUsers(c.Context(), in)
	return c.JSON(results)
}

// PasswordReset emite y envía por correo un enlace de restablecimiento.
// POST /api/admin/users/password-reset
func (h *AdminHandler) PasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	out, err := h.provisionUC.PasswordReset(c.Context(), in)
	if err != nil {
		return h.mapAdminError(c, err)
	}
	return c.JSON(out)
}

// CreateDocument registra un documento de la base de conocimiento.
// POST /api/admin/knowledge/documents
func (h *AdminHandler) CreateDocument(c *fiber.Ctx) error {
	var in dto.CreateKnowledgeDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.StoragePath == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y storage_path son requeridos"})
	}
	out, err := h.knowledgeUC.CreateDocument(c.Context(), in, GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteDocument elimina un documento.
// DELETE /api/admin/knowledge/documents/:id
func (h *AdminHandler) DeleteDocument(c *fiber.Ctx) error {
	if err := h.knowledgeUC.DeleteDocument(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TriggerIngest dispara la ingesta del documento vía webhook externo.
// POST /api/admin/knowledge/ingest
func (h *AdminHandler) TriggerIngest(c *fiber.Ctx) error {
	var in dto.IngestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "document_id es requerido"})
	}
	out, err := h.knowledgeUC.TriggerIngest(c.Context(), in)
	if err != nil {
		return h.mapAdminError(c, err)
	}
	return c.JSON(out)
}

// mapAdminError convierte los sentinelas de dominio en la respuesta HTTP del panel.
func (h *AdminHandler) mapAdminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
