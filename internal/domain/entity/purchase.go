package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest representa una solicitud de compra.
// El estado lo gobierna el WorkflowStore (procedimientos almacenados);
// aquí solo se transporta el valor que devuelve la DB.
type PurchaseRequest struct {
	ID          string
	Number      string // consecutivo legible, ej: "PR-2026-0042"
	Title       string
	Description string
	Status      string
	Amount      decimal.Decimal
	Currency    string
	RequesterID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseInvoice representa una factura de compra asociada a una solicitud.
type PurchaseInvoice struct {
	ID         string
	RequestID  string
	Number     string
	Supplier   string
	Amount     decimal.Decimal
	Currency   string
	Status     string
	DueDate    *time.Time
	UploadedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseLog registra una acción sobre el flujo de compras (auditoría + analítica).
type PurchaseLog struct {
	ID         string
	EntityType string // purchase_request | purchase_invoice
	EntityID   string
	ActorID    string
	Action     string
	CreatedAt  time.Time
}
