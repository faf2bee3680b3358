package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeKnowledgeRepo struct {
	rows map[string]*entity.KnowledgeDocument
}

func newFakeKnowledgeRepo() *fakeKnowledgeRepo {
	return &fakeKnowledgeRepo{rows: map[string]*entity.KnowledgeDocument{}}
}

func (f *fakeKnowledgeRepo) Create(_ context.Context, d *entity.KnowledgeDocument) error {
	f.rows[d.ID] = d
	return nil
}

func (f *fakeKnowledgeRepo) GetByID(_ context.Context, id string) (*entity.KnowledgeDocument, error) {
	return f.rows[id], nil
}

func (f *fakeKnowledgeRepo) List(_ context.Context, _, _ int) ([]*entity.KnowledgeDocument, error) {
	var out []*entity.KnowledgeDocument
	for _, d := range f.rows {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeKnowledgeRepo) UpdateIngestStatus(_ context.Context, id, status string) error {
	if d, ok := f.rows[id]; ok {
		d.IngestStatus = status
		d.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeKnowledgeRepo) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeTrigger struct {
	fired []string // documentIDs
	err   error
}

func (f *fakeTrigger) Trigger(_ context.Context, documentID, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.fired = append(f.fired, documentID)
	return nil
}

type fakePublicURLs struct{}

func (fakePublicURLs) GetPublicURL(path string) string {
	return "https://storage.local/object/public/knowledge/" + path
}

func newKnowledgeUseCase(repo *fakeKnowledgeRepo, trigger *fakeTrigger) *admin.KnowledgeUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return admin.NewKnowledgeUseCase(repo, trigger, fakePublicURLs{}, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDocument_IncluyeURLPublica(t *testing.T) {
	uc := newKnowledgeUseCase(newFakeKnowledgeRepo(), &fakeTrigger{})

	out, err := uc.CreateDocument(context.Background(), dto.CreateKnowledgeDocumentRequest{
		Title:       "Ficha técnica lecitina",
		StoragePath: "fichas/lecitina.pdf",
		MimeType:    "application/pdf",
	}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, entity.KBStatusPending, out.IngestStatus)
	assert.Equal(t, "https://storage.local/object/public/knowledge/fichas/lecitina.pdf", out.PublicURL,
		"el bucket de conocimiento es público: la respuesta trae la URL directa")

	got, err := uc.GetDocument(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.PublicURL, got.PublicURL)
}

func TestGetDocument_Inexistente(t *testing.T) {
	uc := newKnowledgeUseCase(newFakeKnowledgeRepo(), &fakeTrigger{})
	_, err := uc.GetDocument(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingesta
// ──────────────────────────────────────────────────────────────────────────────

func TestTriggerIngest_ExitoDejaQueued(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	trigger := &fakeTrigger{}
	uc := newKnowledgeUseCase(repo, trigger)

	doc, err := uc.CreateDocument(context.Background(), dto.CreateKnowledgeDocumentRequest{
		Title: "Manual HACCP", StoragePath: "manuales/haccp.pdf", MimeType: "application/pdf",
	}, "admin-1")
	require.NoError(t, err)

	out, err := uc.TriggerIngest(context.Background(), dto.IngestRequest{DocumentID: doc.ID})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, entity.KBStatusQueued, out.Status)
	assert.Equal(t, []string{doc.ID}, trigger.fired)
}

// Un webhook caído deja el documento en failed y se reporta como fallo
// upstream; no hay reintentos automáticos.
func TestTriggerIngest_WebhookCaidoEsUpstream(t *testing.T) {
	repo := newFakeKnowledgeRepo()
	uc := newKnowledgeUseCase(repo, &fakeTrigger{err: errors.New("webhook caído")})

	doc, err := uc.CreateDocument(context.Background(), dto.CreateKnowledgeDocumentRequest{
		Title: "Manual BPM", StoragePath: "manuales/bpm.pdf", MimeType: "application/pdf",
	}, "admin-1")
	require.NoError(t, err)

	_, err = uc.TriggerIngest(context.Background(), dto.IngestRequest{DocumentID: doc.ID})
	assert.ErrorIs(t, err, domain.ErrUpstream)

	row, _ := repo.GetByID(context.Background(), doc.ID)
	assert.Equal(t, entity.KBStatusFailed, row.IngestStatus)
}

func TestTriggerIngest_DocumentoInexistente(t *testing.T) {
	uc := newKnowledgeUseCase(newFakeKnowledgeRepo(), &fakeTrigger{})
	_, err := uc.TriggerIngest(context.Background(), dto.IngestRequest{DocumentID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
