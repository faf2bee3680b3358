package repository

import (
	"context"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// PurchaseRequestRepository puerto de persistencia para solicitudes de compra.
type PurchaseRequestRepository interface {
	Create(ctx context.Context, r *entity.PurchaseRequest) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseRequest, error)
	ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*entity.PurchaseRequest, error)
	Update(ctx context.Context, r *entity.PurchaseRequest) error
}

// PurchaseInvoiceRepository puerto de persistencia para facturas de compra.
type PurchaseInvoiceRepository interface {
	Create(ctx context.Context, i *entity.PurchaseInvoice) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	ListByRequest(ctx context.Context, requestID string) ([]*entity.PurchaseInvoice, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseInvoice, error)
	Update(ctx context.Context, i *entity.PurchaseInvoice) error
}

// PurchaseLogRepository puerto para el registro de acciones del flujo de compras.
type PurchaseLogRepository interface {
	Append(ctx context.Context, l *entity.PurchaseLog) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.PurchaseLog, error)
}
