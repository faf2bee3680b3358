package repository

import (
	"context"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// LabResultRepository puerto de persistencia para resultados de laboratorio/piloto.
type LabResultRepository interface {
	// Upsert inserta o reemplaza las mediciones de (sampleID, testType).
	Upsert(ctx context.Context, r *entity.LabResult) error
	Get(ctx context.Context, sampleID, testType string) (*entity.LabResult, error)
	ListBySample(ctx context.Context, sampleID string) ([]*entity.LabResult, error)
}
