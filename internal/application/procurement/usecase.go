// Package procurement implementa el flujo de compras: solicitudes, facturas,
// registro de acciones y transiciones de estado delegadas a la DB.
package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// UseCase casos de uso de compras.
type UseCase struct {
	requestRepo repository.PurchaseRequestRepository
	invoiceRepo repository.PurchaseInvoiceRepository
	logRepo     repository.PurchaseLogRepository
	workflow    repository.WorkflowStore
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	requestRepo repository.PurchaseRequestRepository,
	invoiceRepo repository.PurchaseInvoiceRepository,
	logRepo repository.PurchaseLogRepository,
	workflow repository.WorkflowStore,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		invoiceRepo: invoiceRepo,
		logRepo:     logRepo,
		workflow:    workflow,
		log:         log.Component("procurement"),
	}
}

// CreateRequest crea una solicitud de compra en estado draft, registra la
// acción y encola la notificación. El consecutivo legible lo asigna la DB.
func (uc *UseCase) CreateRequest(ctx context.Context, in dto.CreatePurchaseRequestRequest, requesterID string) (*dto.PurchaseRequestResponse, error) {
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now()
	r := &entity.PurchaseRequest{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      "draft",
		Amount:      in.Amount,
		Currency:    currency,
		RequesterID: requesterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.requestRepo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("crear solicitud de compra: %w", err)
	}
	uc.logAction(ctx, entity.AttachPurchaseRequest, r.ID, requesterID, "created")
	return toRequestResponse(r), nil
}

// GetRequest devuelve una solicitud; ErrNotFound si no existe.
func (uc *UseCase) GetRequest(ctx context.Context, id string) (*dto.PurchaseRequestResponse, error) {
	r, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRequestResponse(r), nil
}

// ListRequests lista solicitudes con filtro opcional de estado.
func (uc *UseCase) ListRequests(ctx context.Context, status string, page dto.PageRequest) ([]*dto.PurchaseRequestResponse, error) {
	page.DefaultPage()
	rows, err := uc.requestRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseRequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

// Transition aplica una acción de workflow (submit, approve, reject...) sobre
// la solicitud. La validación de la transición es de la DB; el nuevo estado
// que devuelva es el que se reporta. Registra la acción y notifica.
func (uc *UseCase) Transition(ctx context.Context, requestID, action, actorID string) (*dto.TransitionResponse, error) {
	newStatus, err := uc.workflow.Transition(ctx, entity.AttachPurchaseRequest, requestID, action, actorID)
	if err != nil {
		return nil, fmt.Errorf("transición %q: %w", action, err)
	}
	uc.logAction(ctx, entity.AttachPurchaseRequest, requestID, actorID, action)
	return &dto.TransitionResponse{Status: newStatus}, nil
}

// CreateInvoice registra una factura de compra asociada a una solicitud existente.
func (uc *UseCase) CreateInvoice(ctx context.Context, in dto.CreatePurchaseInvoiceRequest, uploaderID string) (*dto.PurchaseInvoiceResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitud %s", domain.ErrNotFound, in.RequestID)
	}
	currency := in.Currency
	if currency == "" {
		currency = req.Currency
	}
	now := time.Now()
	inv := &entity.PurchaseInvoice{
		ID:         uuid.New().String(),
		RequestID:  in.RequestID,
		Number:     in.Number,
		Supplier:   in.Supplier,
		Amount:     in.Amount,
		Currency:   currency,
		Status:     "pending",
		DueDate:    in.DueDate,
		UploadedBy: uploaderID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("crear factura de compra: %w", err)
	}
	uc.logAction(ctx, entity.AttachPurchaseInvoice, inv.ID, uploaderID, "invoice_created")
	return toInvoiceResponse(inv), nil
}

// GetInvoice devuelve una factura; ErrNotFound si no existe.
func (uc *UseCase) GetInvoice(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoicesByRequest facturas de una solicitud.
func (uc *UseCase) ListInvoicesByRequest(ctx context.Context, requestID string) ([]*dto.PurchaseInvoiceResponse, error) {
	rows, err := uc.invoiceRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseInvoiceResponse, 0, len(rows))
	for _, inv := range rows {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// TransitionInvoice aplica una acción de la cadena de aprobación de facturas.
func (uc *UseCase) TransitionInvoice(ctx context.Context, invoiceID, action, actorID string) (*dto.TransitionResponse, error) {
	newStatus, err := uc.workflow.Transition(ctx, entity.AttachPurchaseInvoice, invoiceID, action, actorID)
	if err != nil {
		return nil, fmt.Errorf("transición de factura %q: %w", action, err)
	}
	uc.logAction(ctx, entity.AttachPurchaseInvoice, invoiceID, actorID, action)
	return &dto.TransitionResponse{Status: newStatus}, nil
}

// ListLogs acciones registradas de una entidad de compras.
func (uc *UseCase) ListLogs(ctx context.Context, entityType, entityID string) ([]*dto.PurchaseLogResponse, error) {
	rows, err := uc.logRepo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseLogResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, &dto.PurchaseLogResponse{
			ID:        l.ID,
			ActorID:   l.ActorID,
			Action:    l.Action,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

// logAction registra la acción y encola la notificación. Ninguno de los dos
// fallos aborta la operación principal, pero ambos quedan en el log: un
// registro perdido también desaparece de la auditoría y de la analítica.
func (uc *UseCase) logAction(ctx context.Context, entityType, entityID, actorID, action string) {
	if err := uc.logRepo.Append(ctx, &entity.PurchaseLog{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Action:     action,
		CreatedAt:  time.Now(),
	}); err != nil {
		uc.log.Warn().Err(err).Str("entity_id", entityID).Str("action", action).Msg("registro de acción de compras falló")
	}
	if err := uc.workflow.EnqueueNotification(ctx, "purchase_"+action, entityID, actorID); err != nil {
		uc.log.Warn().Err(err).Str("entity_id", entityID).Str("action", action).Msg("encolado de notificación falló")
	}
}

func toRequestResponse(r *entity.PurchaseRequest) *dto.PurchaseRequestResponse {
	return &dto.PurchaseRequestResponse{
		ID:          r.ID,
		Number:      r.Number,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Amount:      r.Amount,
		Currency:    r.Currency,
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toInvoiceResponse(i *entity.PurchaseInvoice) *dto.PurchaseInvoiceResponse {
	return &dto.PurchaseInvoiceResponse{
		ID:        i.ID,
		RequestID: i.RequestID,
		Number:    i.Number,
		Supplier:  i.Supplier,
		Amount:    i.Amount,
		Currency:  i.Currency,
		Status:    i.Status,
		DueDate:   i.DueDate,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
