// Package labtests implementa la captura de resultados de laboratorio y planta
// piloto: upsert de mediciones semiestructuradas con validación previa, y los
// veredictos de prueba que se delegan a las rutinas de la DB.
package labtests

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

// UseCase casos de uso de resultados de prueba.
type UseCase struct {
	resultRepo repository.LabResultRepository
	sampleRepo repository.SampleRepository
	workflow   repository.WorkflowStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(resultRepo repository.LabResultRepository, sampleRepo repository.SampleRepository, workflow repository.WorkflowStore) *UseCase {
	return &UseCase{resultRepo: resultRepo, sampleRepo: sampleRepo, workflow: workflow}
}

// Upsert valida las mediciones y las inserta o reemplaza para (sample, testType).
func (uc *UseCase) Upsert(ctx context.Context, in dto.UpsertLabResultRequest, recordedBy string) (*dto.LabResultResponse, error) {
	if err := ValidateMeasurements(in.Measurements); err != nil {
		return nil, err
	}
	sample, err := uc.sampleRepo.GetByID(ctx, in.SampleID)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, fmt.Errorf("%w: muestra %s", domain.ErrNotFound, in.SampleID)
	}

	now := time.Now()
	r := &entity.LabResult{
		ID:           uuid.New().String(),
		SampleID:     in.SampleID,
		TestType:     in.TestType,
		Measurements: in.Measurements,
		RecordedBy:   recordedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.resultRepo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("guardar resultado: %w", err)
	}
	return toResponse(r), nil
}

// Get devuelve el resultado de (sample, testType); ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, sampleID, testType string) (*dto.LabResultResponse, error) {
	r, err := uc.resultRepo.Get(ctx, sampleID, testType)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(r), nil
}

// ListBySample devuelve todos los resultados registrados de una muestra.
func (uc *UseCase) ListBySample(ctx context.Context, sampleID string) ([]*dto.LabResultResponse, error) {
	rows, err := uc.resultRepo.ListBySample(ctx, sampleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LabResultResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r))
	}
	return out, nil
}

// SetTestingResult registra el veredicto de pruebas de la muestra.
// La transición de estado la hace la rutina de la DB; aquí solo se invoca.
func (uc *UseCase) SetTestingResult(ctx context.Context, in dto.SetTestingResultRequest, actorID string) error {
	if err := uc.workflow.SetTestingResult(ctx, in.SampleID, in.Result, actorID); err != nil {
		return fmt.Errorf("registrar veredicto: %w", err)
	}
	return nil
}

// DeclineFromTesting rechaza la solicitud de I+D desde la fase de pruebas.
func (uc *UseCase) DeclineFromTesting(ctx context.Context, in dto.DeclineFromTestingRequest, actorID string) error {
	if err := uc.workflow.DeclineFromTesting(ctx, in.RequestID, in.Reason, actorID); err != nil {
		return fmt.Errorf("rechazar desde pruebas: %w", err)
	}
	return nil
}

func toResponse(r *entity.LabResult) *dto.LabResultResponse {
	return &dto.LabResultResponse{
		ID:           r.ID,
		SampleID:     r.SampleID,
		TestType:     r.TestType,
		Measurements: r.Measurements,
		RecordedBy:   r.RecordedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
