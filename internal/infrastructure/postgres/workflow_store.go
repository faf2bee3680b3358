package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.WorkflowStore = (*WorkflowStoreRepo)(nil)

// WorkflowStoreRepo invoca las funciones de Postgres que gobiernan las
// máquinas de estado. La aplicación nunca re-deriva transiciones: llama la
// rutina por nombre y confía en el estado que devuelve.
type WorkflowStoreRepo struct {
	q Querier
}

// NewWorkflowStore construye el adaptador. Pasar pool o tx (Querier).
func NewWorkflowStore(q Querier) *WorkflowStoreRepo {
	return &WorkflowStoreRepo{q: q}
}

// Transition aplica una acción de workflow y devuelve el nuevo estado.
func (w *WorkflowStoreRepo) Transition(ctx context.Context, entityType, entityID, action, actorID string) (string, error) {
	var newStatus string
	err := w.q.QueryRow(ctx,
		`SELECT workflow_transition($1, $2, $3, $4)`,
		entityType, entityID, action, actorID,
	).Scan(&newStatus)
	if err != nil {
		return "", fmt.Errorf("workflow_transition(%s, %s): %w", entityType, action, err)
	}
	return newStatus, nil
}

// CreateRecipeSequence crea una receta con el siguiente número de secuencia de la solicitud.
func (w *WorkflowStoreRepo) CreateRecipeSequence(ctx context.Context, requestID, name, createdBy string) (string, int, error) {
	var (
		recipeID string
		sequence int
	)
	err := w.q.QueryRow(ctx,
		`SELECT recipe_id, seq FROM create_recipe_sequence($1, $2, $3)`,
		requestID, name, createdBy,
	).Scan(&recipeID, &sequence)
	if err != nil {
		return "", 0, fmt.Errorf("create_recipe_sequence: %w", err)
	}
	return recipeID, sequence, nil
}

// CopyRecipe crea una copia de la receta con secuencia nueva.
func (w *WorkflowStoreRepo) CopyRecipe(ctx context.Context, recipeID, createdBy string) (string, int, error) {
	var (
		newID    string
		sequence int
	)
	err := w.q.QueryRow(ctx,
		`SELECT recipe_id, seq FROM copy_recipe($1, $2)`,
		recipeID, createdBy,
	).Scan(&newID, &sequence)
	if err != nil {
		return "", 0, fmt.Errorf("copy_recipe: %w", err)
	}
	return newID, sequence, nil
}

// NextTastingSheetNumber genera el consecutivo de hoja de cata para una muestra.
func (w *WorkflowStoreRepo) NextTastingSheetNumber(ctx context.Context, sampleID string) (int, error) {
	var n int
	err := w.q.QueryRow(ctx, `SELECT next_tasting_sheet_number($1)`, sampleID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next_tasting_sheet_number: %w", err)
	}
	return n, nil
}

// SetTestingResult registra el veredicto de pruebas de una muestra.
func (w *WorkflowStoreRepo) SetTestingResult(ctx context.Context, sampleID, result, actorID string) error {
	_, err := w.q.Exec(ctx, `SELECT set_testing_result($1, $2, $3)`, sampleID, result, actorID)
	if err != nil {
		return fmt.Errorf("set_testing_result: %w", err)
	}
	return nil
}

// DeclineFromTesting rechaza la solicitud de I+D desde la fase de pruebas.
func (w *WorkflowStoreRepo) DeclineFromTesting(ctx context.Context, requestID, reason, actorID string) error {
	_, err := w.q.Exec(ctx, `SELECT decline_from_testing($1, $2, $3)`, requestID, reason, actorID)
	if err != nil {
		return fmt.Errorf("decline_from_testing: %w", err)
	}
	return nil
}

// EnqueueNotification encola un evento de notificación.
func (w *WorkflowStoreRepo) EnqueueNotification(ctx context.Context, eventType, entityID, actorID string) error {
	_, err := w.q.Exec(ctx, `SELECT enqueue_notification($1, $2, $3)`, eventType, entityID, actorID)
	if err != nil {
		return fmt.Errorf("enqueue_notification: %w", err)
	}
	return nil
}
