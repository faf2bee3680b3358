package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.PurchaseLogRepository = (*PurchaseLogRepo)(nil)

// PurchaseLogRepo implementación del puerto PurchaseLogRepository sobre PostgreSQL.
type PurchaseLogRepo struct {
	q Querier
}

// NewPurchaseLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseLogRepository(q Querier) *PurchaseLogRepo {
	return &PurchaseLogRepo{q: q}
}

// Append registra una acción del flujo de compras.
func (r *PurchaseLogRepo) Append(ctx context.Context, l *entity.PurchaseLog) error {
	query := `
		INSERT INTO purchase_logs (id, entity_type, entity_id, actor_id, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.EntityType, l.EntityID, l.ActorID, l.Action, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase log: %w", err)
	}
	return nil
}

// ListByEntity devuelve el historial de acciones de una entidad, más reciente primero.
func (r *PurchaseLogRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.PurchaseLog, error) {
	query := `
		SELECT id, entity_type, entity_id, actor_id, action, created_at
		FROM purchase_logs WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list purchase logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.PurchaseLog
	for rows.Next() {
		var l entity.PurchaseLog
		if err := rows.Scan(&l.ID, &l.EntityType, &l.EntityID, &l.ActorID, &l.Action, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
