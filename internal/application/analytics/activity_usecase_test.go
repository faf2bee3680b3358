package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/foodflow-api/internal/application/analytics"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfileRepo struct {
	profiles []*entity.Profile
	err      error
}

func (f *fakeProfileRepo) Create(context.Context, *entity.Profile) error { return nil }
func (f *fakeProfileRepo) GetByID(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) GetByEmail(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) Update(context.Context, *entity.Profile) error { return nil }
func (f *fakeProfileRepo) Delete(context.Context, string) error          { return nil }
func (f *fakeProfileRepo) List(context.Context) ([]*entity.Profile, error) {
	return f.profiles, f.err
}

type fakeActivityRepo struct {
	rdEvents []*entity.RDEvent
	requests []*entity.PurchaseRequest
	invoices []*entity.PurchaseInvoice
	logs     []*entity.PurchaseLog
	rdErr    error
}

func (f *fakeActivityRepo) RDEventsSince(context.Context, time.Time) ([]*entity.RDEvent, error) {
	return f.rdEvents, f.rdErr
}
func (f *fakeActivityRepo) PurchaseRequestsSince(context.Context, time.Time) ([]*entity.PurchaseRequest, error) {
	return f.requests, nil
}
func (f *fakeActivityRepo) PurchaseInvoicesSince(context.Context, time.Time) ([]*entity.PurchaseInvoice, error) {
	return f.invoices, nil
}
func (f *fakeActivityRepo) PurchaseLogsSince(context.Context, time.Time) ([]*entity.PurchaseLog, error) {
	return f.logs, nil
}

func profile(id, email string) *entity.Profile {
	return &entity.Profile{ID: id, Email: email, DisplayName: email, Role: entity.RoleRDDev}
}

// ──────────────────────────────────────────────────────────────────────────────
// UserStats
// ──────────────────────────────────────────────────────────────────────────────

// Perfil con 3 eventos de I+D y nada de compras: contadores {3,0,0}.
func TestUserStats_ContadoresPorOrigen(t *testing.T) {
	now := time.Now()
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{profile("u1", "ana@x.com")}}
	activity := &fakeActivityRepo{
		rdEvents: []*entity.RDEvent{
			{ActorEmail: "ana@x.com", CreatedAt: now},
			{ActorEmail: "ana@x.com", CreatedAt: now},
			{ActorEmail: "ana@x.com", CreatedAt: now},
		},
	}
	uc := analytics.NewActivityUseCase(profiles, activity)

	stats, err := uc.UserStats(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].RDEventsCount)
	assert.Equal(t, 0, stats[0].PurchaseRequestsCount)
	assert.Equal(t, 0, stats[0].PurchaseInvoicesCount)
}

// El cruce de eventos de I+D es por email del actor, no por id.
func TestUserStats_CruceDeEventosPorEmail(t *testing.T) {
	now := time.Now()
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{
		profile("u1", "ana@x.com"),
		profile("u2", "beto@x.com"),
	}}
	activity := &fakeActivityRepo{
		rdEvents: []*entity.RDEvent{
			// actor_id no coincide con ningún perfil, pero el email sí
			{ActorID: "legacy-id", ActorEmail: "beto@x.com", CreatedAt: now},
			// email sin perfil: no cuenta para nadie
			{ActorEmail: "fantasma@x.com", CreatedAt: now},
		},
	}
	uc := analytics.NewActivityUseCase(profiles, activity)

	stats, err := uc.UserStats(context.Background(), 30)
	require.NoError(t, err)
	byEmail := map[string]int{}
	for _, s := range stats {
		byEmail[s.Email] = s.RDEventsCount
	}
	assert.Equal(t, 0, byEmail["ana@x.com"])
	assert.Equal(t, 1, byEmail["beto@x.com"])
}

// Orden descendente por suma de contadores primarios; empates conservan el
// orden de los perfiles (sort estable).
func TestUserStats_OrdenDescendenteEstable(t *testing.T) {
	now := time.Now()
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{
		profile("u1", "a@x.com"),
		profile("u2", "b@x.com"),
		profile("u3", "c@x.com"),
	}}
	activity := &fakeActivityRepo{
		requests: []*entity.PurchaseRequest{
			{RequesterID: "u3", CreatedAt: now},
			{RequesterID: "u3", CreatedAt: now},
			{RequesterID: "u2", CreatedAt: now},
		},
		// u1 y u2 empatan sumando la factura de u1
		invoices: []*entity.PurchaseInvoice{{UploadedBy: "u1", CreatedAt: now}},
	}
	uc := analytics.NewActivityUseCase(profiles, activity)

	stats, err := uc.UserStats(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "u3", stats[0].UserID)
	// empate 1-1: u1 estaba antes en la lista de perfiles
	assert.Equal(t, "u1", stats[1].UserID)
	assert.Equal(t, "u2", stats[2].UserID)
}

// El último visto es el timestamp ISO-8601 más alto entre todos los orígenes.
func TestUserStats_UltimaActividadEsLaMayor(t *testing.T) {
	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{profile("u1", "ana@x.com")}}
	activity := &fakeActivityRepo{
		rdEvents: []*entity.RDEvent{{ActorEmail: "ana@x.com", CreatedAt: newer}},
		logs:     []*entity.PurchaseLog{{ActorID: "u1", CreatedAt: older}},
	}
	uc := analytics.NewActivityUseCase(profiles, activity)

	stats, err := uc.UserStats(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, newer.UTC().Format(time.RFC3339), stats[0].LastActivity)
}

// El primer fetch que falla se propaga tal cual, sin reintentos.
func TestUserStats_PropagaElFalloDeUnOrigen(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{profile("u1", "a@x.com")}}
	activity := &fakeActivityRepo{rdErr: errors.New("timeout de DB")}
	uc := analytics.NewActivityUseCase(profiles, activity)

	_, err := uc.UserStats(context.Background(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout de DB")
}

// ──────────────────────────────────────────────────────────────────────────────
// Timeline
// ──────────────────────────────────────────────────────────────────────────────

// Serie densa: days+1 buckets, ascendentes, con cero en los días sin eventos.
func TestTimeline_SerieDensaYOrdenada(t *testing.T) {
	now := time.Now()
	profiles := &fakeProfileRepo{}
	activity := &fakeActivityRepo{
		rdEvents: []*entity.RDEvent{
			{CreatedAt: now},
			{CreatedAt: now.AddDate(0, 0, -2)},
		},
		logs: []*entity.PurchaseLog{{CreatedAt: now}},
	}
	uc := analytics.NewActivityUseCase(profiles, activity)

	buckets, err := uc.Timeline(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, buckets, 8, "ventana de 7 días = 8 días calendario")

	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Date, buckets[i].Date, "orden ascendente por fecha")
	}

	totalRD, totalPurchase := 0, 0
	for _, b := range buckets {
		totalRD += b.RDEvents
		totalPurchase += b.PurchaseEvents
	}
	assert.Equal(t, 2, totalRD, "la suma de buckets es el total de filas de la ventana")
	assert.Equal(t, 1, totalPurchase)

	today := now.Format("2006-01-02")
	for _, b := range buckets {
		if b.Date == today {
			assert.Equal(t, 1, b.RDEvents)
			assert.Equal(t, 1, b.PurchaseEvents)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_Contadores(t *testing.T) {
	now := time.Now()
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{
		profile("u1", "a@x.com"),
		profile("u2", "b@x.com"),
		profile("u3", "c@x.com"),
	}}
	activity := &fakeActivityRepo{
		rdEvents: []*entity.RDEvent{
			{ActorEmail: "a@x.com", CreatedAt: now},
			{ActorEmail: "a@x.com", CreatedAt: now},
			{ActorEmail: "a@x.com", CreatedAt: now},
		},
		requests: []*entity.PurchaseRequest{{RequesterID: "u2", CreatedAt: now}},
	}
	uc := analytics.NewActivityUseCase(profiles, activity)

	summary, err := uc.Summary(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalUsersCount, "totalUsers cuenta todos los perfiles")
	assert.Equal(t, 2, summary.ActiveUsersCount)
	assert.Equal(t, 4, summary.TotalEventsCount)
	require.NotNil(t, summary.MostActive)
	assert.Equal(t, "u1", summary.MostActive.UserID)
	assert.Equal(t, 3, summary.MostActive.EventsCount)
}

// Sin actividad: totalUsers intacto y MostActive nil.
func TestSummary_SinActividadMostActiveEsNil(t *testing.T) {
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{
		profile("u1", "a@x.com"),
		profile("u2", "b@x.com"),
	}}
	uc := analytics.NewActivityUseCase(profiles, &fakeActivityRepo{})

	summary, err := uc.Summary(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalUsersCount)
	assert.Equal(t, 0, summary.ActiveUsersCount)
	assert.Equal(t, 0, summary.TotalEventsCount)
	assert.Nil(t, summary.MostActive)
}
