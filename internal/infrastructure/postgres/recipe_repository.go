package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL.
// La creación de recetas (secuencia y copia) va por WorkflowStore, no por aquí.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID obtiene una receta por ID.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `
		SELECT id, request_id, name, sequence, COALESCE(parent_id::text, ''), status, created_by, created_at, updated_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.RequestID, &rec.Name, &rec.Sequence, &rec.ParentID,
		&rec.Status, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// ListByRequest lista las recetas de una solicitud ordenadas por secuencia.
func (r *RecipeRepo) ListByRequest(ctx context.Context, requestID string) ([]*entity.Recipe, error) {
	query := `
		SELECT id, request_id, name, sequence, COALESCE(parent_id::text, ''), status, created_by, created_at, updated_at
		FROM recipes WHERE request_id = $1 ORDER BY sequence ASC`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(
			&rec.ID, &rec.RequestID, &rec.Name, &rec.Sequence, &rec.ParentID,
			&rec.Status, &rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, &rec)
	}
	return recipes, rows.Err()
}

// Update actualiza los campos mutables de una receta. Sequence nunca se toca aquí.
func (r *RecipeRepo) Update(ctx context.Context, rec *entity.Recipe) error {
	query := `
		UPDATE recipes SET name = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.Name, rec.Status, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}
