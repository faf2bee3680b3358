package entity

import "time"

// Tipos de prueba de laboratorio/planta piloto.
const (
	TestTypeLab   = "lab"
	TestTypePilot = "pilot"
)

// LabResult representa el registro de mediciones de una prueba sobre una muestra.
// Measurements es semiestructurado (JSONB): cada tipo de prueba guarda campos
// distintos (ph, humedad, temperatura, código de lote, notas...). La unicidad
// es por (SampleID, TestType): escribir de nuevo reemplaza las mediciones.
type LabResult struct {
	ID           string
	SampleID     string
	TestType     string // ver constantes TestType*
	Measurements map[string]any
	RecordedBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
