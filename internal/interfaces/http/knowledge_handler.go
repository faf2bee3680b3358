package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
)

// KnowledgeHandler lectura de la base de conocimiento (visible para todo rol autenticado).
type KnowledgeHandler struct {
	uc *admin.KnowledgeUseCase
}

// NewKnowledgeHandler construye el handler de la base de conocimiento.
func NewKnowledgeHandler(uc *admin.KnowledgeUseCase) *KnowledgeHandler {
	return &KnowledgeHandler{uc: uc}
}

// List documentos con paginación.
// GET /api/knowledge/documents
func (h *KnowledgeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListDocuments(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get un documento por id.
// GET /api/knowledge/documents/:id
func (h *KnowledgeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDocument(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
