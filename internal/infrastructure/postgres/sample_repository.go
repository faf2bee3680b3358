package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.SampleRepository = (*SampleRepo)(nil)

// SampleRepo implementación del puerto SampleRepository sobre PostgreSQL.
type SampleRepo struct {
	q Querier
}

// NewSampleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSampleRepository(q Querier) *SampleRepo {
	return &SampleRepo{q: q}
}

// Create persiste una muestra. El consecutivo de hoja de cata lo asigna
// después la RPC next_tasting_sheet_number.
func (r *SampleRepo) Create(ctx context.Context, s *entity.Sample) error {
	query := `
		INSERT INTO samples (id, recipe_id, code, tasting_sheet_no, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RecipeID, s.Code, s.TastingSheetNo, s.Status, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// GetByID obtiene una muestra por ID.
func (r *SampleRepo) GetByID(ctx context.Context, id string) (*entity.Sample, error) {
	query := `
		SELECT id, recipe_id, code, tasting_sheet_no, status, created_by, created_at, updated_at
		FROM samples WHERE id = $1`
	var s entity.Sample
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.RecipeID, &s.Code, &s.TastingSheetNo, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sample: %w", err)
	}
	return &s, nil
}

// ListByRecipe lista las muestras de una receta, más antigua primero.
func (r *SampleRepo) ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Sample, error) {
	query := `
		SELECT id, recipe_id, code, tasting_sheet_no, status, created_by, created_at, updated_at
		FROM samples WHERE recipe_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var samples []*entity.Sample
	for rows.Next() {
		var s entity.Sample
		if err := rows.Scan(
			&s.ID, &s.RecipeID, &s.Code, &s.TastingSheetNo, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}

// Update actualiza una muestra (código, estado, consecutivo de hoja de cata).
func (r *SampleRepo) Update(ctx context.Context, s *entity.Sample) error {
	query := `
		UPDATE samples SET code = $2, tasting_sheet_no = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Code, s.TastingSheetNo, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sample: %w", err)
	}
	return nil
}
