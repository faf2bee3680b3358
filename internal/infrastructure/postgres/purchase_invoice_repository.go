package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo implementación del puerto PurchaseInvoiceRepository sobre PostgreSQL.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

// Create persiste una factura de compra.
func (r *PurchaseInvoiceRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	query := `
		INSERT INTO purchase_invoices (id, request_id, number, supplier, amount, currency, status, due_date, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.RequestID, inv.Number, inv.Supplier, inv.Amount, inv.Currency,
		inv.Status, inv.DueDate, inv.UploadedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	query := `
		SELECT id, request_id, number, supplier, amount, currency, status, due_date, uploaded_by, created_at, updated_at
		FROM purchase_invoices WHERE id = $1`
	var inv entity.PurchaseInvoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.RequestID, &inv.Number, &inv.Supplier, &inv.Amount, &inv.Currency,
		&inv.Status, &inv.DueDate, &inv.UploadedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}
	return &inv, nil
}

// ListByRequest lista las facturas asociadas a una solicitud de compra.
func (r *PurchaseInvoiceRepo) ListByRequest(ctx context.Context, requestID string) ([]*entity.PurchaseInvoice, error) {
	query := `
		SELECT id, request_id, number, supplier, amount, currency, status, due_date, uploaded_by, created_at, updated_at
		FROM purchase_invoices WHERE request_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by request: %w", err)
	}
	defer rows.Close()
	return scanPurchaseInvoices(rows)
}

// List lista facturas, opcionalmente filtradas por estado, con paginación.
func (r *PurchaseInvoiceRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	query := `
		SELECT id, request_id, number, supplier, amount, currency, status, due_date, uploaded_by, created_at, updated_at
		FROM purchase_invoices
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()
	return scanPurchaseInvoices(rows)
}

// Update actualiza los campos mutables de una factura. El estado va por WorkflowStore.
func (r *PurchaseInvoiceRepo) Update(ctx context.Context, inv *entity.PurchaseInvoice) error {
	query := `
		UPDATE purchase_invoices SET supplier = $2, amount = $3, currency = $4, due_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.Supplier, inv.Amount, inv.Currency, inv.DueDate, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase invoice: %w", err)
	}
	return nil
}

func scanPurchaseInvoices(rows pgx.Rows) ([]*entity.PurchaseInvoice, error) {
	var invoices []*entity.PurchaseInvoice
	for rows.Next() {
		var inv entity.PurchaseInvoice
		if err := rows.Scan(
			&inv.ID, &inv.RequestID, &inv.Number, &inv.Supplier, &inv.Amount, &inv.Currency,
			&inv.Status, &inv.DueDate, &inv.UploadedBy, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
