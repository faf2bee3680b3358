package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/application/rnd"
	"github.com/tu-usuario/foodflow-api/internal/domain"
)

// RNDHandler maneja el flujo de I+D: solicitudes, recetas y muestras.
type RNDHandler struct {
	uc *rnd.UseCase
}

// NewRNDHandler construye el handler de I+D.
func NewRNDHandler(uc *rnd.UseCase) *RNDHandler {
	return &RNDHandler{uc: uc}
}

// CreateRequest crea una solicitud de I+D.
// POST /api/rnd/requests
func (h *RNDHandler) CreateRequest(c *fiber.Ctx) error {
	var in dto.CreateRDRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.CreateRequest(c.Context(), in, GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRequest obtiene una solicitud por id.
// GET /api/rnd/requests/:id
func (h *RNDHandler) GetRequest(c *fiber.Ctx) error {
	out, err := h.uc.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListRequests lista solicitudes con filtro opcional ?status=.
// GET /api/rnd/requests
func (h *RNDHandler) ListRequests(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListRequests(c.Context(), c.Query("status"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Transition aplica una acción de workflow sobre la solicitud.
// POST /api/rnd/requests/:id/transition
func (h *RNDHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil || in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action es requerido"})
	}
	out, err := h.uc.Transition(c.Context(), c.Params("id"), in.Action, GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateRecipe crea una receta; la secuencia la asigna la DB bajo advisory lock.
// POST /api/rnd/recipes
func (h *RNDHandler) CreateRecipe(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RequestID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "request_id y name son requeridos"})
	}
	out, err := h.uc.CreateRecipe(c.Context(), in, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CopyRecipe copia una receta existente con secuencia nueva.
// POST /api/rnd/recipes/:id/copy
func (h *RNDHandler) CopyRecipe(c *fiber.Ctx) error {
	out, err := h.uc.CopyRecipe(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "receta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecipes recetas de una solicitud, ordenadas por secuencia.
// GET /api/rnd/requests/:id/recipes
func (h *RNDHandler) ListRecipes(c *fiber.Ctx) error {
	out, err := h.uc.ListRecipes(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateSample registra una muestra de una receta; el consecutivo de hoja de
// cata lo genera la DB.
// POST /api/rnd/samples
func (h *RNDHandler) CreateSample(c *fiber.Ctx) error {
	var in dto.CreateSampleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RecipeID == "" || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "recipe_id y code son requeridos"})
	}
	out, err := h.uc.CreateSample(c.Context(), in, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "receta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSamples muestras de una receta.
// GET /api/rnd/recipes/:id/samples
func (h *RNDHandler) ListSamples(c *fiber.Ctx) error {
	out, err := h.uc.ListSamples(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
