package procurement_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/application/procurement"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeRequestRepo struct {
	rows      map[string]*entity.PurchaseRequest
	createErr error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: map[string]*entity.PurchaseRequest{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, r *entity.PurchaseRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.Number = "PR-2026-0001"
	f.rows[r.ID] = r
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*entity.PurchaseRequest, error) {
	return f.rows[id], nil
}

func (f *fakeRequestRepo) List(_ context.Context, status string, _, _ int) ([]*entity.PurchaseRequest, error) {
	var out []*entity.PurchaseRequest
	for _, r := range f.rows {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByRequester(_ context.Context, requesterID string, _, _ int) ([]*entity.PurchaseRequest, error) {
	var out []*entity.PurchaseRequest
	for _, r := range f.rows {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, r *entity.PurchaseRequest) error {
	f.rows[r.ID] = r
	return nil
}

type fakeInvoiceRepo struct {
	rows      map[string]*entity.PurchaseInvoice
	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{rows: map[string]*entity.PurchaseInvoice{}}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, i *entity.PurchaseInvoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[i.ID] = i
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.PurchaseInvoice, error) {
	return f.rows[id], nil
}

func (f *fakeInvoiceRepo) ListByRequest(_ context.Context, requestID string) ([]*entity.PurchaseInvoice, error) {
	var out []*entity.PurchaseInvoice
	for _, i := range f.rows {
		if i.RequestID == requestID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) List(_ context.Context, status string, _, _ int) ([]*entity.PurchaseInvoice, error) {
	var out []*entity.PurchaseInvoice
	for _, i := range f.rows {
		if status == "" || i.Status == status {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, i *entity.PurchaseInvoice) error {
	f.rows[i.ID] = i
	return nil
}

type fakeLogRepo struct {
	entries   []*entity.PurchaseLog
	appendErr error
}

func (f *fakeLogRepo) Append(_ context.Context, l *entity.PurchaseLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeLogRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*entity.PurchaseLog, error) {
	var out []*entity.PurchaseLog
	for _, l := range f.entries {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeWorkflow simula las rutinas de transición de la DB con una tabla fija.
type fakeWorkflow struct {
	transitions   map[string]string // action -> nuevo estado
	transitionErr error
	notifyErr     error
	notified      []string
}

func newFakeWorkflow() *fakeWorkflow {
	return &fakeWorkflow{transitions: map[string]string{
		"submit":  "submitted",
		"approve": "approved",
		"reject":  "rejected",
	}}
}

func (f *fakeWorkflow) Transition(_ context.Context, _, _, action, _ string) (string, error) {
	if f.transitionErr != nil {
		return "", f.transitionErr
	}
	s, ok := f.transitions[action]
	if !ok {
		return "", errors.New("transición ilegal")
	}
	return s, nil
}

func (f *fakeWorkflow) CreateRecipeSequence(_ context.Context, _, _, _ string) (string, int, error) {
	return "", 0, errors.New("no implementado")
}

func (f *fakeWorkflow) CopyRecipe(_ context.Context, _, _ string) (string, int, error) {
	return "", 0, errors.New("no implementado")
}

func (f *fakeWorkflow) NextTastingSheetNumber(_ context.Context, _ string) (int, error) {
	return 0, errors.New("no implementado")
}

func (f *fakeWorkflow) SetTestingResult(_ context.Context, _, _, _ string) error {
	return errors.New("no implementado")
}

func (f *fakeWorkflow) DeclineFromTesting(_ context.Context, _, _, _ string) error {
	return errors.New("no implementado")
}

func (f *fakeWorkflow) EnqueueNotification(_ context.Context, eventType, _, _ string) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.notified = append(f.notified, eventType)
	return nil
}

func newUseCase() (*procurement.UseCase, *fakeRequestRepo, *fakeInvoiceRepo, *fakeLogRepo, *fakeWorkflow) {
	requests := newFakeRequestRepo()
	invoices := newFakeInvoiceRepo()
	logs := &fakeLogRepo{}
	wf := newFakeWorkflow()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return procurement.NewUseCase(requests, invoices, logs, wf, log), requests, invoices, logs, wf
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitudes de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRequest(t *testing.T) {
	uc, requests, _, logs, wf := newUseCase()

	out, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		Title:  "Lecitina de soya 500kg",
		Amount: decimal.NewFromInt(1200),
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "draft", out.Status)
	assert.Equal(t, "USD", out.Currency, "moneda por defecto")
	assert.Equal(t, "PR-2026-0001", out.Number, "el consecutivo lo asigna la DB")
	assert.Equal(t, "user-1", out.RequesterID)
	assert.Len(t, requests.rows, 1)

	// La creación deja rastro: log de acción + notificación encolada.
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "created", logs.entries[0].Action)
	assert.Equal(t, []string{"purchase_created"}, wf.notified)
}

// El registro de acción y la notificación son best-effort: sus fallos no
// abortan la mutación principal.
func TestCreateRequestSideEffectFailuresDoNotAbort(t *testing.T) {
	uc, requests, _, logs, wf := newUseCase()
	logs.appendErr = errors.New("log caído")
	wf.notifyErr = errors.New("cola caída")

	out, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		Title:  "Ácido cítrico 25kg",
		Amount: decimal.NewFromInt(180),
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "draft", out.Status)
	assert.Len(t, requests.rows, 1, "la solicitud queda creada aunque fallen los efectos secundarios")
	assert.Empty(t, logs.entries)
	assert.Empty(t, wf.notified)
}

func TestGetRequestNotFound(t *testing.T) {
	uc, _, _, _, _ := newUseCase()

	_, err := uc.GetRequest(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransitionDelegatesToWorkflow(t *testing.T) {
	uc, _, _, logs, _ := newUseCase()

	out, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		Title:  "Azúcar refinada",
		Amount: decimal.NewFromInt(300),
	}, "user-1")
	require.NoError(t, err)

	res, err := uc.Transition(context.Background(), out.ID, "submit", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "submitted", res.Status, "el estado reportado es el que devolvió la DB")

	require.Len(t, logs.entries, 2)
	assert.Equal(t, "submit", logs.entries[1].Action)
}

func TestTransitionIllegalAction(t *testing.T) {
	uc, _, _, logs, _ := newUseCase()

	out, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		Title:  "Cacao en polvo",
		Amount: decimal.NewFromInt(800),
	}, "user-1")
	require.NoError(t, err)

	_, err = uc.Transition(context.Background(), out.ID, "pay", "user-1")
	require.Error(t, err)

	// Una transición rechazada no registra acción.
	assert.Len(t, logs.entries, 1)
}

func TestListRequestsFiltersByStatus(t *testing.T) {
	uc, requests, _, _, _ := newUseCase()

	for i, st := range []string{"draft", "draft", "approved"} {
		id := fmt.Sprintf("req-%d", i)
		requests.rows[id] = &entity.PurchaseRequest{ID: id, Status: st}
	}

	drafts, err := uc.ListRequests(context.Background(), "draft", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	all, err := uc.ListRequests(context.Background(), "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice(t *testing.T) {
	uc, _, invoices, logs, _ := newUseCase()

	req, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		Title:    "Saborizante natural",
		Amount:   decimal.NewFromInt(450),
		Currency: "COP",
	}, "user-1")
	require.NoError(t, err)

	inv, err := uc.CreateInvoice(context.Background(), dto.CreatePurchaseInvoiceRequest{
		RequestID: req.ID,
		Number:    "FC-889",
		Supplier:  "Proveedora Andina",
		Amount:    decimal.NewFromInt(450),
	}, "user-2")
	require.NoError(t, err)

	assert.Equal(t, "pending", inv.Status)
	assert.Equal(t, "COP", inv.Currency, "hereda la moneda de la solicitud")
	assert.Len(t, invoices.rows, 1)
	assert.Equal(t, "invoice_created", logs.entries[len(logs.entries)-1].Action)
}

func TestCreateInvoiceRequestNotFound(t *testing.T) {
	uc, _, invoices, _, _ := newUseCase()

	_, err := uc.CreateInvoice(context.Background(), dto.CreatePurchaseInvoiceRequest{
		RequestID: "no-existe",
		Number:    "FC-1",
		Supplier:  "X",
		Amount:    decimal.NewFromInt(10),
	}, "user-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, invoices.rows)
}

func TestListLogsForEntity(t *testing.T) {
	uc, _, _, _, _ := newUseCase()

	req, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		Title:  "Pectina cítrica",
		Amount: decimal.NewFromInt(95),
	}, "user-1")
	require.NoError(t, err)

	_, err = uc.Transition(context.Background(), req.ID, "submit", "user-1")
	require.NoError(t, err)

	entries, err := uc.ListLogs(context.Background(), entity.AttachPurchaseRequest, req.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "created", entries[0].Action)
	assert.Equal(t, "submit", entries[1].Action)
}
