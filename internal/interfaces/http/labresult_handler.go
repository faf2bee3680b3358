package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/application/labtests"
	"github.com/tu-usuario/foodflow-api/internal/domain"
)

// LabResultHandler maneja el registro de resultados de laboratorio/planta piloto.
type LabResultHandler struct {
	uc *labtests.UseCase
}

// NewLabResultHandler construye el handler de resultados.
func NewLabResultHandler(uc *labtests.UseCase) *LabResultHandler {
	return &LabResultHandler{uc: uc}
}

// Upsert registra (o reemplaza) las mediciones de una prueba sobre una muestra.
// PUT /api/lab/results
func (h *LabResultHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertLabResultRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Upsert(c.Context(), in, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SAMPLE_NOT_FOUND", Message: "la muestra no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get resultado de (sample_id, test_type).
// GET /api/lab/results/:sampleId/:testType
func (h *LabResultHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("sampleId"), c.Params("testType"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resultado no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListBySample todos los resultados de una muestra.
// GET /api/lab/samples/:sampleId/results
func (h *LabResultHandler) ListBySample(c *fiber.Ctx) error {
	out, err := h.uc.ListBySample(c.Context(), c.Params("sampleId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SetTestingResult registra el veredicto de pruebas de una muestra (rutina de la DB).
// POST /api/lab/testing-result
func (h *LabResultHandler) SetTestingResult(c *fiber.Ctx) error {
	var in dto.SetTestingResultRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SampleID == "" || in.Result == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sample_id y result son requeridos"})
	}
	if err := h.uc.SetTestingResult(c.Context(), in, GetUserID(c)); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeclineFromTesting rechaza la solicitud de I+D desde la fase de pruebas.
// POST /api/lab/decline
func (h *LabResultHandler) DeclineFromTesting(c *fiber.Ctx) error {
	var in dto.DeclineFromTestingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RequestID == "" || in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "request_id y reason son requeridos"})
	}
	if err := h.uc.DeclineFromTesting(c.Context(), in, GetUserID(c)); err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
