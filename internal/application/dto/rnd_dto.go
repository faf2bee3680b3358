package dto

import "time"

// CreateRDRequestRequest entrada para crear una solicitud de I+D.
type CreateRDRequestRequest struct {
	Title string `json:"title" validate:"required,min=1,max=300"`
	Brief string `json:"brief" validate:"omitempty,max=5000"`
}

// RDRequestResponse salida de una solicitud de I+D.
type RDRequestResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Title       string    `json:"title"`
	Brief       string    `json:"brief"`
	Status      string    `json:"status"`
	RequesterID string    `json:"requester_id"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRecipeRequest entrada para crear una receta (la secuencia la asigna la DB).
type CreateRecipeRequest struct {
	RequestID string `json:"request_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=300"`
}

// RecipeResponse salida de una receta.
type RecipeResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	Name      string    `json:"name"`
	Sequence  int       `json:"sequence"`
	ParentID  string    `json:"parent_id,omitempty"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSampleRequest entrada para registrar una muestra de una receta.
type CreateSampleRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	Code     string `json:"code" validate:"required,max=100"`
}

// SampleResponse salida de una muestra.
type SampleResponse struct {
	ID             string    `json:"id"`
	RecipeID       string    `json:"recipe_id"`
	Code           string    `json:"code"`
	TastingSheetNo int       `json:"tasting_sheet_no"`
	Status         string    `json:"status"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}
