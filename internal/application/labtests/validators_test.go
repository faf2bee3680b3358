package labtests_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/foodflow-api/internal/application/labtests"
	"github.com/tu-usuario/foodflow-api/internal/domain"
)

func TestValidatePH_Rangos(t *testing.T) {
	assert.NoError(t, labtests.ValidatePH(0))
	assert.NoError(t, labtests.ValidatePH(7.2))
	assert.NoError(t, labtests.ValidatePH(14))
	assert.ErrorIs(t, labtests.ValidatePH(-0.1), domain.ErrInvalidInput)
	assert.ErrorIs(t, labtests.ValidatePH(14.5), domain.ErrInvalidInput)
}

func TestValidatePercentage_Rangos(t *testing.T) {
	assert.NoError(t, labtests.ValidatePercentage("moisture", 0))
	assert.NoError(t, labtests.ValidatePercentage("moisture", 100))
	assert.ErrorIs(t, labtests.ValidatePercentage("moisture", 100.5), domain.ErrInvalidInput)
}

func TestValidateTemperature_Rangos(t *testing.T) {
	assert.NoError(t, labtests.ValidateTemperature(-18))
	assert.NoError(t, labtests.ValidateTemperature(121.1))
	assert.ErrorIs(t, labtests.ValidateTemperature(300), domain.ErrInvalidInput)
}

func TestValidateBatchCode(t *testing.T) {
	assert.NoError(t, labtests.ValidateBatchCode("L-2026-08-31-A"))
	assert.ErrorIs(t, labtests.ValidateBatchCode(""), domain.ErrInvalidInput)
}

func TestValidateMeasurements_CamposConocidos(t *testing.T) {
	// Registro válido con campos conocidos y uno libre.
	assert.NoError(t, labtests.ValidateMeasurements(map[string]any{
		"ph":         6.8,
		"moisture":   42.5,
		"batch_code": "L-001",
		"notas":      "color uniforme",
	}))

	// Campo conocido fuera de rango.
	assert.ErrorIs(t, labtests.ValidateMeasurements(map[string]any{
		"ph": 15.0,
	}), domain.ErrInvalidInput)

	// Campo conocido con tipo equivocado.
	assert.ErrorIs(t, labtests.ValidateMeasurements(map[string]any{
		"temperature": "muy caliente",
	}), domain.ErrInvalidInput)

	// Mediciones vacías no se aceptan.
	assert.ErrorIs(t, labtests.ValidateMeasurements(map[string]any{}), domain.ErrInvalidInput)
}
