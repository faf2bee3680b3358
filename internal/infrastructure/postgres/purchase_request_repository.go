package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación del puerto PurchaseRequestRepository sobre PostgreSQL.
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

// Create persiste una solicitud de compra. El consecutivo (number) lo asigna la DB.
func (r *PurchaseRequestRepo) Create(ctx context.Context, req *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (id, title, description, status, amount, currency, requester_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING number`
	err := r.q.QueryRow(ctx, query,
		req.ID, req.Title, req.Description, req.Status, req.Amount, req.Currency,
		req.RequesterID, req.CreatedAt, req.UpdatedAt,
	).Scan(&req.Number)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud de compra por ID.
func (r *PurchaseRequestRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	query := `
		SELECT id, number, title, description, status, amount, currency, requester_id, created_at, updated_at
		FROM purchase_requests WHERE id = $1`
	var req entity.PurchaseRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Number, &req.Title, &req.Description, &req.Status, &req.Amount,
		&req.Currency, &req.RequesterID, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	return &req, nil
}

// List lista solicitudes de compra, opcionalmente filtradas por estado, con paginación.
func (r *PurchaseRequestRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `
		SELECT id, number, title, description, status, amount, currency, requester_id, created_at, updated_at
		FROM purchase_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()
	return scanPurchaseRequests(rows)
}

// ListByRequester lista solicitudes de compra de un solicitante con paginación.
func (r *PurchaseRequestRepo) ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `
		SELECT id, number, title, description, status, amount, currency, requester_id, created_at, updated_at
		FROM purchase_requests WHERE requester_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, requesterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests by requester: %w", err)
	}
	defer rows.Close()
	return scanPurchaseRequests(rows)
}

// Update actualiza los campos mutables de una solicitud. El estado va por WorkflowStore.
func (r *PurchaseRequestRepo) Update(ctx context.Context, req *entity.PurchaseRequest) error {
	query := `
		UPDATE purchase_requests SET title = $2, description = $3, amount = $4, currency = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, req.ID, req.Title, req.Description, req.Amount, req.Currency, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase request: %w", err)
	}
	return nil
}

func scanPurchaseRequests(rows pgx.Rows) ([]*entity.PurchaseRequest, error) {
	var requests []*entity.PurchaseRequest
	for rows.Next() {
		var req entity.PurchaseRequest
		if err := rows.Scan(
			&req.ID, &req.Number, &req.Title, &req.Description, &req.Status, &req.Amount,
			&req.Currency, &req.RequesterID, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
