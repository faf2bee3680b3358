package repository

import (
	"context"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// RDRequestRepository puerto de persistencia para solicitudes de I+D.
type RDRequestRepository interface {
	Create(ctx context.Context, r *entity.RDRequest) error
	GetByID(ctx context.Context, id string) (*entity.RDRequest, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.RDRequest, error)
	Update(ctx context.Context, r *entity.RDRequest) error
}

// RecipeRepository puerto de persistencia para recetas.
// La creación de recetas (secuencia y copia) va por WorkflowStore, no por aquí.
type RecipeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	ListByRequest(ctx context.Context, requestID string) ([]*entity.Recipe, error)
	Update(ctx context.Context, r *entity.Recipe) error
}

// SampleRepository puerto de persistencia para muestras.
type SampleRepository interface {
	Create(ctx context.Context, s *entity.Sample) error
	GetByID(ctx context.Context, id string) (*entity.Sample, error)
	ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Sample, error)
	Update(ctx context.Context, s *entity.Sample) error
}

// RDEventRepository puerto para el registro de eventos de I+D.
type RDEventRepository interface {
	Append(ctx context.Context, e *entity.RDEvent) error
	ListByRequest(ctx context.Context, requestID string) ([]*entity.RDEvent, error)
}
