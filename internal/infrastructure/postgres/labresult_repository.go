package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.LabResultRepository = (*LabResultRepo)(nil)

// LabResultRepo implementación del puerto LabResultRepository sobre PostgreSQL.
// Measurements se persiste como JSONB; la unicidad es por (sample_id, test_type).
type LabResultRepo struct {
	q Querier
}

// NewLabResultRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLabResultRepository(q Querier) *LabResultRepo {
	return &LabResultRepo{q: q}
}

// Upsert inserta o reemplaza las mediciones de (sampleID, testType).
func (r *LabResultRepo) Upsert(ctx context.Context, res *entity.LabResult) error {
	query := `
		INSERT INTO lab_results (id, sample_id, test_type, measurements, recorded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sample_id, test_type)
		DO UPDATE SET measurements = EXCLUDED.measurements, recorded_by = EXCLUDED.recorded_by, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.SampleID, res.TestType, res.Measurements, res.RecordedBy, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert lab result: %w", err)
	}
	return nil
}

// Get obtiene el resultado de (sampleID, testType).
func (r *LabResultRepo) Get(ctx context.Context, sampleID, testType string) (*entity.LabResult, error) {
	query := `
		SELECT id, sample_id, test_type, measurements, recorded_by, created_at, updated_at
		FROM lab_results WHERE sample_id = $1 AND test_type = $2`
	var res entity.LabResult
	err := r.q.QueryRow(ctx, query, sampleID, testType).Scan(
		&res.ID, &res.SampleID, &res.TestType, &res.Measurements, &res.RecordedBy, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lab result: %w", err)
	}
	return &res, nil
}

// ListBySample lista todos los resultados de una muestra.
func (r *LabResultRepo) ListBySample(ctx context.Context, sampleID string) ([]*entity.LabResult, error) {
	query := `
		SELECT id, sample_id, test_type, measurements, recorded_by, created_at, updated_at
		FROM lab_results WHERE sample_id = $1 ORDER BY test_type ASC`
	rows, err := r.q.Query(ctx, query, sampleID)
	if err != nil {
		return nil, fmt.Errorf("list lab results: %w", err)
	}
	defer rows.Close()

	var results []*entity.LabResult
	for rows.Next() {
		var res entity.LabResult
		if err := rows.Scan(
			&res.ID, &res.SampleID, &res.TestType, &res.Measurements, &res.RecordedBy, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lab result: %w", err)
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}
