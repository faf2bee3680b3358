package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/analytics"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
)

// ActivityHandler expone la analítica de uso sobre la ventana móvil.
type ActivityHandler struct {
	uc *analytics.ActivityUseCase
}

// NewActivityHandler construye el handler de analítica.
func NewActivityHandler(uc *analytics.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// windowDays lee ?days= con el valor por defecto de la ventana.
func windowDays(c *fiber.Ctx) int {
	return c.QueryInt("days", analytics.DefaultWindowDays)
}

// UserStats contadores por usuario, ordenados por actividad descendente.
// GET /api/analytics/activity/users
func (h *ActivityHandler) UserStats(c *fiber.Ctx) error {
	out, err := h.uc.UserStats(c.Context(), windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Timeline serie densa de eventos por día calendario.
// GET /api/analytics/activity/timeline
func (h *ActivityHandler) Timeline(c *fiber.Ctx) error {
	out, err := h.uc.Timeline(c.Context(), windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary resumen de la ventana (usuarios activos, total de eventos, más activo).
// GET /api/analytics/activity/summary
func (h *ActivityHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
