package entity

// Role es el nivel de permiso de un usuario. Es la única enumeración de roles
// del sistema: navegación, middleware RBAC y el panel de administración usan
// estas mismas constantes (evita el drift de tener listas por módulo).
type Role string

const (
	RoleAdmin              Role = "admin"
	RoleCEO                Role = "ceo"
	RoleCOO                Role = "coo"
	RoleTreasurer          Role = "treasurer"
	RoleAccountant         Role = "accountant"
	RoleProcurementManager Role = "procurement_manager"
	RoleSalesManager       Role = "sales_manager"
	RoleRDDev              Role = "rd_dev"
	RoleRDManager          Role = "rd_manager"

	// Roles extendidos: solo los asigna el panel de administración.
	RoleLabTech        Role = "lab_tech"
	RoleContentManager Role = "content_manager"
	RoleViewer         Role = "viewer"
)

// AllRoles roles válidos en orden de privilegio aproximado (para validación de entrada).
var AllRoles = []Role{
	RoleAdmin, RoleCEO, RoleCOO, RoleTreasurer, RoleAccountant,
	RoleProcurementManager, RoleSalesManager, RoleRDDev, RoleRDManager,
	RoleLabTech, RoleContentManager, RoleViewer,
}

// IsValid informa si r es un rol conocido.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ApprovalQueueRoles roles que revisan la cola de aprobación de compras.
// El módulo "purchase" de la navegación los envía a la vista de cola en vez del listado.
var ApprovalQueueRoles = []Role{RoleProcurementManager, RoleCOO, RoleCEO, RoleTreasurer}

// InApprovalQueue informa si el rol revisa la cola de aprobación de compras.
func (r Role) InApprovalQueue() bool {
	for _, q := range ApprovalQueueRoles {
		if r == q {
			return true
		}
	}
	return false
}
