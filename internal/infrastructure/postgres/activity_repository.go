package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo consultas de lectura para la analítica de uso. Todas filtran
// por created_at >= since (ventana móvil); el agregado se arma en memoria.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// RDEventsSince eventos de I+D dentro de la ventana.
func (r *ActivityRepo) RDEventsSince(ctx context.Context, since time.Time) ([]*entity.RDEvent, error) {
	query := `
		SELECT id, request_id, action, COALESCE(actor_id::text, ''), actor_email, created_at
		FROM rd_events WHERE created_at >= $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("rd events since: %w", err)
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

// PurchaseRequestsSince solicitudes de compra creadas dentro de la ventana.
func (r *ActivityRepo) PurchaseRequestsSince(ctx context.Context, since time.Time) ([]*entity.PurchaseRequest, error) {
	query := `
		SELECT id, number, title, description, status, amount, currency, requester_id, created_at, updated_at
		FROM purchase_requests WHERE created_at >= $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("purchase requests since: %w", err)
	}
	defer rows.Close()
	return scanPurchaseRequests(rows)
}

// PurchaseInvoicesSince facturas de compra creadas dentro de la ventana.
func (r *ActivityRepo) PurchaseInvoicesSince(ctx context.Context, since time.Time) ([]*entity.PurchaseInvoice, error) {
	query := `
		SELECT id, request_id, number, supplier, amount, currency, status, due_date, uploaded_by, created_at, updated_at
		FROM purchase_invoices WHERE created_at >= $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("purchase invoices since: %w", err)
	}
	defer rows.Close()
	return scanPurchaseInvoices(rows)
}

// PurchaseLogsSince acciones del flujo de compras dentro de la ventana.
func (r *ActivityRepo) PurchaseLogsSince(ctx context.Context, since time.Time) ([]*entity.PurchaseLog, error) {
	query := `
		SELECT id, entity_type, entity_id, actor_id, action, created_at
		FROM purchase_logs WHERE created_at >= $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("purchase logs since: %w", err)
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
