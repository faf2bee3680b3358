// Package navigation calcula el menú visible por rol y la entrada activa según
// la ruta actual. Es lógica pura: ninguna función de este paquete hace I/O.
package navigation

import (
	"strings"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// Module es el descriptor estático de un módulo de navegación.
//
// Invariantes:
//   - AllowedRoles nil significa "todos los roles".
//   - Resolve debe devolver una ruta válida para todo rol permitido.
//   - ActivePrefixes/ExactPaths se enumeran por módulo; no se infieren.
type Module struct {
	ID           string
	Label        string
	Icon         string
	AllowedRoles []entity.Role // nil = todos
	// Resolve calcula la ruta destino para el rol. Función pura.
	Resolve func(role entity.Role) string
	// ActivePrefixes la ruta actual activa el módulo si empieza por alguno.
	ActivePrefixes []string
	// ExactPaths rutas que activan el módulo solo por coincidencia exacta.
	ExactPaths []string
}

// staticPath devuelve un resolver que ignora el rol.
func staticPath(p string) func(entity.Role) string {
	return func(entity.Role) string { return p }
}

// Modules tabla estática de módulos. El orden de declaración es el orden del
// menú (no se ordena después).
var Modules = []Module{
	{
		ID:         "dashboard",
		Label:      "Inicio",
		Icon:       "home",
		Resolve:    staticPath("/dashboard"),
		ExactPaths: []string{"/", "/dashboard"},
	},
	{
		ID:    "rnd",
		Label: "Desarrollo I+D",
		Icon:  "flask",
		AllowedRoles: []entity.Role{
			entity.RoleRDDev, entity.RoleRDManager, entity.RoleSalesManager, entity.RoleAdmin,
		},
		Resolve:        staticPath("/rnd/requests"),
		ActivePrefixes: []string{"/rnd"},
	},
	{
		ID:    "purchase",
		Label: "Compras",
		Icon:  "shopping-cart",
		AllowedRoles: []entity.Role{
			entity.RoleProcurementManager, entity.RoleCOO, entity.RoleCEO,
			entity.RoleTreasurer, entity.RoleAccountant, entity.RoleSalesManager,
			entity.RoleRDManager, entity.RoleAdmin,
		},
		// Los roles de la cola de aprobación entran directo a la cola;
		// el resto va al listado de solicitudes.
		Resolve: func(role entity.Role) string {
			if role.InApprovalQueue() {
				return "/purchase/queue"
			}
			return "/purchase/requests"
		},
		ActivePrefixes: []string{"/purchase"},
	},
	{
		ID:    "lab",
		Label: "Laboratorio",
		Icon:  "microscope",
		AllowedRoles: []entity.Role{
			entity.RoleRDDev, entity.RoleRDManager, entity.RoleLabTech, entity.RoleAdmin,
		},
		Resolve:        staticPath("/lab/results"),
		ActivePrefixes: []string{"/lab"},
	},
	{
		ID:             "knowledge",
		Label:          "Base de conocimiento",
		Icon:           "book",
		Resolve:        staticPath("/knowledge"),
		ActivePrefixes: []string{"/knowledge"},
	},
	{
		ID:    "analytics",
		Label: "Analítica",
		Icon:  "bar-chart",
		AllowedRoles: []entity.Role{
			entity.RoleAdmin, entity.RoleCEO, entity.RoleCOO,
		},
		Resolve:        staticPath("/analytics/activity"),
		ActivePrefixes: []string{"/analytics"},
	},
	{
		ID:             "admin",
		Label:          "Administración",
		Icon:           "settings",
		AllowedRoles:   []entity.Role{entity.RoleAdmin},
		Resolve:        staticPath("/admin/users"),
		ActivePrefixes: []string{"/admin"},
	},
}

// allows informa si el módulo es visible para el rol (nil = todos).
func (m Module) allows(role entity.Role) bool {
	if m.AllowedRoles == nil {
		return true
	}
	for _, r := range m.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// isActive informa si la ruta actual corresponde a este módulo.
func (m Module) isActive(path string) bool {
	for _, exact := range m.ExactPaths {
		if path == exact {
			return true
		}
	}
	for _, prefix := range m.ActivePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// VisibleModules filtra la tabla de módulos para el rol, en orden de declaración.
// Un rol vacío (sin perfil) devuelve lista vacía: fallo silencioso, no ruidoso.
func VisibleModules(role entity.Role) []Module {
	if role == "" {
		return nil
	}
	var visible []Module
	for _, m := range Modules {
		if m.allows(role) {
			visible = append(visible, m)
		}
	}
	return visible
}

// Compose construye la respuesta de navegación para el rol y la ruta actual:
// entradas visibles con ruta resuelta más el id de la entrada activa.
func Compose(role entity.Role, currentPath string) dto.NavigationResponse {
	visible := VisibleModules(role)
	entries := make([]dto.NavigationEntry, 0, len(visible))
	activeID := ""
	for _, m := range visible {
		entries = append(entries, dto.NavigationEntry{
			ID:    m.ID,
			Label: m.Label,
			Icon:  m.Icon,
			Path:  m.Resolve(role),
		})
		if activeID == "" && m.isActive(currentPath) {
			activeID = m.ID
		}
	}
	return dto.NavigationResponse{Entries: entries, ActiveID: activeID}
}
