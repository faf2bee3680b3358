package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// ActivityRepository define las consultas de lectura para la analítica de uso.
// Todas filtran por created_at >= since (ventana móvil); las implementaciones
// son read-only.
type ActivityRepository interface {
	// RDEventsSince eventos de I+D dentro de la ventana.
	RDEventsSince(ctx context.Context, since time.Time) ([]*entity.RDEvent, error)
	// PurchaseRequestsSince solicitudes de compra creadas dentro de la ventana.
	PurchaseRequestsSince(ctx context.Context, since time.Time) ([]*entity.PurchaseRequest, error)
	// PurchaseInvoicesSince facturas de compra creadas dentro de la ventana.
	PurchaseInvoicesSince(ctx context.Context, since time.Time) ([]*entity.PurchaseInvoice, error)
	// PurchaseLogsSince acciones del flujo de compras dentro de la ventana.
	PurchaseLogsSince(ctx context.Context, since time.Time) ([]*entity.PurchaseLog, error)
}
