package labtests

import (
	"fmt"

	"github.com/tu-usuario/foodflow-api/internal/domain"
)

// Validadores puros de los campos de medición. Se ejecutan antes de cualquier
// escritura; un registro con algún campo inválido no llega a la DB.

// ValidatePH el pH debe estar en [0, 14].
func ValidatePH(ph float64) error {
	if ph < 0 || ph > 14 {
		return fmt.Errorf("%w: ph %.2f fuera de rango [0, 14]", domain.ErrInvalidInput, ph)
	}
	return nil
}

// ValidatePercentage porcentajes (humedad, grasa, proteína...) en [0, 100].
func ValidatePercentage(field string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %.2f fuera de rango [0, 100]", domain.ErrInvalidInput, field, v)
	}
	return nil
}

// ValidateTemperature temperaturas de proceso en Celsius, [-40, 250].
func ValidateTemperature(c float64) error {
	if c < -40 || c > 250 {
		return fmt.Errorf("%w: temperatura %.1f°C fuera de rango [-40, 250]", domain.ErrInvalidInput, c)
	}
	return nil
}

// ValidateBatchCode el código de lote no puede estar vacío ni exceder 100 caracteres.
func ValidateBatchCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: código de lote vacío", domain.ErrInvalidInput)
	}
	if len(code) > 100 {
		return fmt.Errorf("%w: código de lote demasiado largo", domain.ErrInvalidInput)
	}
	return nil
}

// campos numéricos conocidos y su validador.
var numericValidators = map[string]func(float64) error{
	"ph":          ValidatePH,
	"temperature": ValidateTemperature,
	"moisture":    func(v float64) error { return ValidatePercentage("moisture", v) },
	"fat":         func(v float64) error { return ValidatePercentage("fat", v) },
	"protein":     func(v float64) error { return ValidatePercentage("protein", v) },
}

// ValidateMeasurements valida los campos conocidos de un registro semiestructurado.
// Los campos desconocidos se aceptan tal cual (el esquema es abierto); los
// conocidos deben tener el tipo y rango correctos.
func ValidateMeasurements(m map[string]any) error {
	if len(m) == 0 {
		return fmt.Errorf("%w: mediciones vacías", domain.ErrInvalidInput)
	}
	for field, validate := range numericValidators {
		raw, ok := m[field]
		if !ok {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			return fmt.Errorf("%w: %s debe ser numérico", domain.ErrInvalidInput, field)
		}
		if err := validate(v); err != nil {
			return err
		}
	}
	if raw, ok := m["batch_code"]; ok {
		code, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: batch_code debe ser texto", domain.ErrInvalidInput)
		}
		if err := ValidateBatchCode(code); err != nil {
			return err
		}
	}
	return nil
}

// toFloat acepta float64 e int (el JSON decodifica números como float64,
// pero los callers internos pueden pasar int).
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
