package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/foodflow-api/internal/application/navigation"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func moduleIDs(mods []navigation.Module) []string {
	ids := make([]string, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad por rol
// ──────────────────────────────────────────────────────────────────────────────

// Un rol ausente (sin perfil) produce menú vacío, sin error.
func TestVisibleModules_SinRolDevuelveVacio(t *testing.T) {
	assert.Empty(t, navigation.VisibleModules(""),
		"sin perfil no debe haber navegación")
}

// admin ve todos los módulos, en el orden de declaración de la tabla.
func TestVisibleModules_AdminVeTodoEnOrden(t *testing.T) {
	mods := navigation.VisibleModules(entity.RoleAdmin)
	assert.Equal(t,
		[]string{"dashboard", "rnd", "purchase", "lab", "knowledge", "analytics", "admin"},
		moduleIDs(mods))
}

// viewer solo ve los módulos abiertos a todos.
func TestVisibleModules_ViewerSoloModulosAbiertos(t *testing.T) {
	mods := navigation.VisibleModules(entity.RoleViewer)
	assert.Equal(t, []string{"dashboard", "knowledge"}, moduleIDs(mods))
}

// Propiedad: si el rol no está en AllowedRoles (y no es nil), el módulo no aparece.
func TestVisibleModules_RolFueraDeAllowedNoAparece(t *testing.T) {
	for _, role := range entity.AllRoles {
		visible := map[string]bool{}
		for _, m := range navigation.VisibleModules(role) {
			visible[m.ID] = true
		}
		for _, m := range navigation.Modules {
			allowed := m.AllowedRoles == nil
			for _, r := range m.AllowedRoles {
				if r == role {
					allowed = true
				}
			}
			assert.Equal(t, allowed, visible[m.ID],
				"módulo %s, rol %s", m.ID, role)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de rutas
// ──────────────────────────────────────────────────────────────────────────────

// Los roles de la cola de aprobación entran a /purchase/queue; el resto al listado.
func TestCompose_RutaDeComprasDependeDelRol(t *testing.T) {
	cases := []struct {
		role entity.Role
		want string
	}{
		{entity.RoleProcurementManager, "/purchase/queue"},
		{entity.RoleCOO, "/purchase/queue"},
		{entity.RoleCEO, "/purchase/queue"},
		{entity.RoleTreasurer, "/purchase/queue"},
		{entity.RoleAccountant, "/purchase/requests"},
		{entity.RoleSalesManager, "/purchase/requests"},
		{entity.RoleRDManager, "/purchase/requests"},
	}
	for _, tc := range cases {
		resp := navigation.Compose(tc.role, "/dashboard")
		found := false
		for _, e := range resp.Entries {
			if e.ID == "purchase" {
				found = true
				assert.Equal(t, tc.want, e.Path, "rol %s", tc.role)
			}
		}
		require.True(t, found, "rol %s debe ver el módulo de compras", tc.role)
	}
}

// Todo rol permitido recibe una ruta no vacía de su resolver.
func TestCompose_ResolverSiempreDevuelveRuta(t *testing.T) {
	for _, role := range entity.AllRoles {
		for _, e := range navigation.Compose(role, "/").Entries {
			assert.NotEmpty(t, e.Path, "módulo %s, rol %s", e.ID, role)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Detección de módulo activo
// ──────────────────────────────────────────────────────────────────────────────

func TestCompose_ActivoPorPrefijo(t *testing.T) {
	resp := navigation.Compose(entity.RoleRDDev, "/rnd/requests/42/recipes")
	assert.Equal(t, "rnd", resp.ActiveID)
}

func TestCompose_ActivoPorCoincidenciaExacta(t *testing.T) {
	resp := navigation.Compose(entity.RoleAdmin, "/dashboard")
	assert.Equal(t, "dashboard", resp.ActiveID)

	// "/" también activa el dashboard, pero "/dash" no.
	assert.Equal(t, "dashboard", navigation.Compose(entity.RoleAdmin, "/").ActiveID)
	assert.Equal(t, "", navigation.Compose(entity.RoleAdmin, "/dash").ActiveID)
}

func TestCompose_RutaDesconocidaSinActivo(t *testing.T) {
	resp := navigation.Compose(entity.RoleAdmin, "/no-existe")
	assert.Equal(t, "", resp.ActiveID)
	assert.NotEmpty(t, resp.Entries, "el menú sigue visible aunque nada esté activo")
}

// Un módulo no visible para el rol nunca puede quedar activo.
func TestCompose_ModuloOcultoNoPuedeSerActivo(t *testing.T) {
	resp := navigation.Compose(entity.RoleViewer, "/admin/users")
	assert.Equal(t, "", resp.ActiveID)
}
