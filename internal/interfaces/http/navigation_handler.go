package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/navigation"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// NavigationHandler expone el menú calculado para el rol del token.
type NavigationHandler struct{}

// NewNavigationHandler construye el handler de navegación.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Compose devuelve las entradas visibles del menú y la entrada activa según
// la ruta actual (?path=/rnd/requests). La composición es pura: el rol viene
// del token, no del query.
// GET /api/navigation
func (h *NavigationHandler) Compose(c *fiber.Ctx) error {
	role := entity.Role(GetRole(c))
	currentPath := c.Query("path", "/")
	return c.JSON(navigation.Compose(role, currentPath))
}
