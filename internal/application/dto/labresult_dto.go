package dto

import "time"

// UpsertLabResultRequest entrada para registrar (o reemplazar) mediciones de una prueba.
type UpsertLabResultRequest struct {
	SampleID     string         `json:"sample_id" validate:"required,uuid"`
	TestType     string         `json:"test_type" validate:"required,oneof=lab pilot"`
	Measurements map[string]any `json:"measurements" validate:"required"`
}

// LabResultResponse salida de un resultado de prueba.
type LabResultResponse struct {
	ID           string         `json:"id"`
	SampleID     string         `json:"sample_id"`
	TestType     string         `json:"test_type"`
	Measurements map[string]any `json:"measurements"`
	RecordedBy   string         `json:"recorded_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// SetTestingResultRequest veredicto de pruebas de una muestra (lo aplica la DB).
type SetTestingResultRequest struct {
	SampleID string `json:"sample_id" validate:"required,uuid"`
	Result   string `json:"result" validate:"required,oneof=passed failed"`
}

// DeclineFromTestingRequest rechazo de la solicitud de I+D desde la fase de pruebas.
type DeclineFromTestingRequest struct {
	RequestID string `json:"request_id" validate:"required,uuid"`
	Reason    string `json:"reason" validate:"required,max=2000"`
}
