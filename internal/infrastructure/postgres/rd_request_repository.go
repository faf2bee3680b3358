package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.RDRequestRepository = (*RDRequestRepo)(nil)

// RDRequestRepo implementación del puerto RDRequestRepository sobre PostgreSQL.
type RDRequestRepo struct {
	q Querier
}

// NewRDRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRDRequestRepository(q Querier) *RDRequestRepo {
	return &RDRequestRepo{q: q}
}

// Create persiste una solicitud de I+D. El consecutivo (number) lo asigna la DB.
func (r *RDRequestRepo) Create(ctx context.Context, req *entity.RDRequest) error {
	query := `
		INSERT INTO rd_requests (id, title, brief, status, requester_id, assignee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)
		RETURNING number`
	err := r.q.QueryRow(ctx, query,
		req.ID, req.Title, req.Brief, req.Status, req.RequesterID, req.AssigneeID,
		req.CreatedAt, req.UpdatedAt,
	).Scan(&req.Number)
	if err != nil {
		return fmt.Errorf("insert rd request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud de I+D por ID.
func (r *RDRequestRepo) GetByID(ctx context.Context, id string) (*entity.RDRequest, error) {
	query := `
		SELECT id, number, title, brief, status, requester_id, COALESCE(assignee_id::text, ''), created_at, updated_at
		FROM rd_requests WHERE id = $1`
	var req entity.RDRequest
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Number, &req.Title, &req.Brief, &req.Status,
		&req.RequesterID, &req.AssigneeID, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rd request: %w", err)
	}
	return &req, nil
}

// List lista solicitudes de I+D, opcionalmente filtradas por estado, con paginación.
func (r *RDRequestRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.RDRequest, error) {
	query := `
		SELECT id, number, title, brief, status, requester_id, COALESCE(assignee_id::text, ''), created_at, updated_at
		FROM rd_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rd requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.RDRequest
	for rows.Next() {
		var req entity.RDRequest
		if err := rows.Scan(
			&req.ID, &req.Number, &req.Title, &req.Brief, &req.Status,
			&req.RequesterID, &req.AssigneeID, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rd request: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// Update actualiza los campos mutables de una solicitud. El estado va por WorkflowStore.
func (r *RDRequestRepo) Update(ctx context.Context, req *entity.RDRequest) error {
	query := `
		UPDATE rd_requests SET title = $2, brief = $3, assignee_id = NULLIF($4, '')::uuid, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, req.ID, req.Title, req.Brief, req.AssigneeID, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rd request: %w", err)
	}
	return nil
}
