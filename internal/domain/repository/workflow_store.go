package repository

import "context"

// WorkflowStore es la capacidad abstracta sobre las máquinas de estado que
// viven en la base de datos (funciones de Postgres). La lógica de transición
// (cadenas de aprobación, ciclo de vida de muestras) es propiedad de la DB;
// esta aplicación invoca las rutinas por nombre y confía en su resultado.
// Nunca se re-deriva el estado del lado de la aplicación.
type WorkflowStore interface {
	// Transition aplica una acción de workflow sobre una entidad y devuelve el
	// nuevo estado. La DB valida que la transición sea legal para el rol dado.
	Transition(ctx context.Context, entityType, entityID, action, actorID string) (newStatus string, err error)

	// CreateRecipeSequence crea una receta nueva con el siguiente número de
	// secuencia de la solicitud (advisory lock del lado de la DB).
	CreateRecipeSequence(ctx context.Context, requestID, name, createdBy string) (recipeID string, sequence int, err error)

	// CopyRecipe crea una copia de la receta con secuencia nueva (advisory lock).
	CopyRecipe(ctx context.Context, recipeID, createdBy string) (newRecipeID string, sequence int, err error)

	// NextTastingSheetNumber genera el consecutivo de hoja de cata para una muestra.
	NextTastingSheetNumber(ctx context.Context, sampleID string) (int, error)

	// SetTestingResult registra el veredicto de pruebas de una muestra (rutina de la DB).
	SetTestingResult(ctx context.Context, sampleID, result, actorID string) error

	// DeclineFromTesting rechaza la solicitud de I+D desde la fase de pruebas.
	DeclineFromTesting(ctx context.Context, requestID, reason, actorID string) error

	// EnqueueNotification encola un evento de notificación (las reglas de
	// enrutamiento viven en la DB).
	EnqueueNotification(ctx context.Context, eventType, entityID, actorID string) error
}
