package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.RDEventRepository = (*RDEventRepo)(nil)

// RDEventRepo implementación del puerto RDEventRepository sobre PostgreSQL.
type RDEventRepo struct {
	q Querier
}

// NewRDEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRDEventRepository(q Querier) *RDEventRepo {
	return &RDEventRepo{q: q}
}

// Append registra un evento de I+D. ActorID puede venir vacío (filas legadas).
func (r *RDEventRepo) Append(ctx context.Context, e *entity.RDEvent) error {
	query := `
		INSERT INTO rd_events (id, request_id, action, actor_id, actor_email, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6)`
	_, err := r.q.Exec(ctx, query, e.ID, e.RequestID, e.Action, e.ActorID, e.ActorEmail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert rd event: %w", err)
	}
	return nil
}

// ListByRequest devuelve los eventos de una solicitud, más reciente primero.
func (r *RDEventRepo) ListByRequest(ctx context.Context, requestID string) ([]*entity.RDEvent, error) {
	query := `
		SELECT id, request_id, action, COALESCE(actor_id::text, ''), actor_email, created_at
		FROM rd_events WHERE request_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list rd events: %w", err)
	}
	defer rows.Close()

	var events []*entity.RDEvent
	for rows.Next() {
		var e entity.RDEvent
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Action, &e.ActorID, &e.ActorEmail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rd event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
