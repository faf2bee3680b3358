package entity

import "time"

// RDRequest representa una solicitud de desarrollo de I+D (muestra o receta nueva).
type RDRequest struct {
	ID          string
	Number      string
	Title       string
	Brief       string
	Status      string
	RequesterID string
	AssigneeID  string // desarrollador de I+D asignado; vacío si aún no hay
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recipe representa una receta versionada. Sequence lo asigna la DB bajo
// advisory lock (RPC create_recipe_sequence); nunca se calcula en la aplicación.
type Recipe struct {
	ID        string
	RequestID string
	Name      string
	Sequence  int
	ParentID  string // receta de la que se copió; vacío si es original
	Status    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sample representa una muestra física producida a partir de una receta.
// TastingSheetNo lo genera la DB (RPC next_tasting_sheet_number).
type Sample struct {
	ID             string
	RecipeID       string
	Code           string
	TastingSheetNo int
	Status         string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RDEvent registra una acción de I+D (creación de receta, copia, cambio de
// estado de muestra). ActorEmail se conserva además del ID por filas legadas
// sin actor_id; la analítica cruza por email.
type RDEvent struct {
	ID         string
	RequestID  string
	Action     string
	ActorID    string
	ActorEmail string
	CreatedAt  time.Time
}
