package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequestRequest entrada para crear una solicitud de compra.
type CreatePurchaseRequestRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=300"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
}

// PurchaseRequestResponse salida de una solicitud de compra.
type PurchaseRequestResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	RequesterID string          `json:"requester_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreatePurchaseInvoiceRequest entrada para registrar una factura de compra.
type CreatePurchaseInvoiceRequest struct {
	RequestID string          `json:"request_id" validate:"required,uuid"`
	Number    string          `json:"number" validate:"required,max=100"`
	Supplier  string          `json:"supplier" validate:"required,max=300"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Currency  string          `json:"currency" validate:"omitempty,len=3"`
	DueDate   *time.Time      `json:"due_date"`
}

// PurchaseInvoiceResponse salida de una factura de compra.
type PurchaseInvoiceResponse struct {
	ID        string          `json:"id"`
	RequestID string          `json:"request_id"`
	Number    string          `json:"number"`
	Supplier  string          `json:"supplier"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransitionRequest entrada para aplicar una acción de workflow (aprobar, rechazar...).
type TransitionRequest struct {
	Action string `json:"action" validate:"required"`
}

// TransitionResponse nuevo estado devuelto por la DB.
type TransitionResponse struct {
	Status string `json:"status"`
}

// PurchaseLogResponse una acción registrada del flujo de compras.
type PurchaseLogResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
