// Package analytics contiene los casos de uso de analítica de uso: actividad
// por usuario, línea de tiempo diaria y resumen sobre una ventana móvil.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

// DefaultWindowDays ventana por defecto de la analítica.
const DefaultWindowDays = 30

// ActivityUseCase agrega actividad de varios orígenes de eventos.
//
// Todas las operaciones son de solo lectura; el primer fetch que falle se
// propaga sin reintentos.
type ActivityUseCase struct {
	profileRepo  repository.ProfileRepository
	activityRepo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(profileRepo repository.ProfileRepository, activityRepo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{profileRepo: profileRepo, activityRepo: activityRepo}
}

// windowData todo lo que necesita la agregación, ya traído de la DB.
type windowData struct {
	profiles []*entity.Profile
	rdEvents []*entity.RDEvent
	requests []*entity.PurchaseRequest
	invoices []*entity.PurchaseInvoice
	logs     []*entity.PurchaseLog
}

// fetchWindow trae perfiles y los cuatro orígenes de eventos en paralelo
// (fan-out acotado, mismo patrón que el dashboard: un goroutine por consulta).
func (uc *ActivityUseCase) fetchWindow(ctx context.Context, days int) (*windowData, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -days)

	type profilesResult struct {
		rows []*entity.Profile
		err  error
	}
	type rdResult struct {
		rows []*entity.RDEvent
		err  error
	}
	type reqResult struct {
		rows []*entity.PurchaseRequest
		err  error
	}
	type invResult struct {
		rows []*entity.PurchaseInvoice
		err  error
	}
	type logResult struct {
		rows []*entity.PurchaseLog
		err  error
	}

	profCh := make(chan profilesResult, 1)
	rdCh := make(chan rdResult, 1)
	reqCh := make(chan reqResult, 1)
	invCh := make(chan invResult, 1)
	logCh := make(chan logResult, 1)

	go func() {
		rows, err := uc.profileRepo.List(ctx)
		profCh <- profilesResult{rows, err}
	}()
	go func() {
		rows, err := uc.activityRepo.RDEventsSince(ctx, since)
		rdCh <- rdResult{rows, err}
	}()
	go func() {
		rows, err := uc.activityRepo.PurchaseRequestsSince(ctx, since)
		reqCh <- reqResult{rows, err}
	}()
	go func() {
		rows, err := uc.activityRepo.PurchaseInvoicesSince(ctx, since)
		invCh <- invResult{rows, err}
	}()
	go func() {
		rows, err := uc.activityRepo.PurchaseLogsSince(ctx, since)
		logCh <- logResult{rows, err}
	}()

	prof := <-profCh
	rd := <-rdCh
	req := <-reqCh
	inv := <-invCh
	logs := <-logCh

	if prof.err != nil {
		return nil, fmt.Errorf("actividad: perfiles: %w", prof.err)
	}
	if rd.err != nil {
		return nil, fmt.Errorf("actividad: eventos I+D: %w", rd.err)
	}
	if req.err != nil {
		return nil, fmt.Errorf("actividad: solicitudes de compra: %w", req.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("actividad: facturas de compra: %w", inv.err)
	}
	if logs.err != nil {
		return nil, fmt.Errorf("actividad: logs de compra: %w", logs.err)
	}

	return &windowData{
		profiles: prof.rows,
		rdEvents: rd.rows,
		requests: req.rows,
		invoices: inv.rows,
		logs:     logs.rows,
	}, nil
}

// isoTimestamp formatea en ISO-8601; el "último visto" se decide comparando
// estas cadenas lexicográficamente (equivale a comparar instantes en UTC).
func isoTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UserStats devuelve la actividad por usuario, ordenada descendente por la suma
// de los tres contadores primarios (eventos I+D + solicitudes + facturas).
// Orden estable: los empates conservan el orden de los perfiles.
//
// Los eventos de I+D se cruzan por email del actor contra el email del perfil
// (no por FK): hay filas legadas sin actor_id. Fragilidad conocida y asumida;
// un evento cuyo email no coincide con ningún perfil no cuenta para nadie.
func (uc *ActivityUseCase) UserStats(ctx context.Context, days int) ([]dto.UserActivityDTO, error) {
	data, err := uc.fetchWindow(ctx, days)
	if err != nil {
		return nil, err
	}
	return buildUserStats(data), nil
}

func buildUserStats(data *windowData) []dto.UserActivityDTO {
	stats := make([]dto.UserActivityDTO, 0, len(data.profiles))
	byID := make(map[string]*dto.UserActivityDTO, len(data.profiles))
	byEmail := make(map[string]*dto.UserActivityDTO, len(data.profiles))

	for _, p := range data.profiles {
		stats = append(stats, dto.UserActivityDTO{
			UserID:      p.ID,
			Email:       p.Email,
			DisplayName: p.DisplayName,
		})
	}
	for i := range stats {
		byID[stats[i].UserID] = &stats[i]
		byEmail[stats[i].Email] = &stats[i]
	}

	touch := func(s *dto.UserActivityDTO, at time.Time) {
		if ts := isoTimestamp(at); ts > s.LastActivity {
			s.LastActivity = ts
		}
	}

	for _, e := range data.rdEvents {
		if s, ok := byEmail[e.ActorEmail]; ok {
			s.RDEventsCount++
			touch(s, e.CreatedAt)
		}
	}
	for _, r := range data.requests {
		if s, ok := byID[r.RequesterID]; ok {
			s.PurchaseRequestsCount++
			touch(s, r.CreatedAt)
		}
	}
	for _, i := range data.invoices {
		if s, ok := byID[i.UploadedBy]; ok {
			s.PurchaseInvoicesCount++
			touch(s, i.CreatedAt)
		}
	}
	for _, l := range data.logs {
		if s, ok := byID[l.ActorID]; ok {
			s.PurchaseLogsCount++
			touch(s, l.CreatedAt)
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return primarySum(stats[a]) > primarySum(stats[b])
	})
	return stats
}

// primarySum suma de los tres contadores primarios (los logs no ordenan).
func primarySum(s dto.UserActivityDTO) int {
	return s.RDEventsCount + s.PurchaseRequestsCount + s.PurchaseInvoicesCount
}

// Timeline devuelve un bucket por día calendario en [hoy-days, hoy], ascendente
// por fecha. Serie densa: los días sin eventos aparecen con cero. Cada evento
// de I+D y cada log de compras incrementa el bucket de su fecha (precisión de
// día, truncando la parte horaria del timestamp).
func (uc *ActivityUseCase) Timeline(ctx context.Context, days int) ([]dto.TimelineBucketDTO, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}
	data, err := uc.fetchWindow(ctx, days)
	if err != nil {
		return nil, err
	}
	return buildTimeline(data, days, time.Now()), nil
}

func buildTimeline(data *windowData, days int, now time.Time) []dto.TimelineBucketDTO {
	const dayFmt = "2006-01-02"

	// Pre-sembrar todos los días de la ventana con cero.
	buckets := make(map[string]*dto.TimelineBucketDTO, days+1)
	order := make([]string, 0, days+1)
	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dayFmt)
		buckets[date] = &dto.TimelineBucketDTO{Date: date}
		order = append(order, date)
	}

	for _, e := range data.rdEvents {
		if b, ok := buckets[e.CreatedAt.Format(dayFmt)]; ok {
			b.RDEvents++
		}
	}
	for _, l := range data.logs {
		if b, ok := buckets[l.CreatedAt.Format(dayFmt)]; ok {
			b.PurchaseEvents++
		}
	}

	out := make([]dto.TimelineBucketDTO, 0, len(order))
	for _, date := range order {
		out = append(out, *buckets[date])
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}

// Summary deriva el resumen de la ventana: usuarios activos (algún contador
// primario > 0), total de usuarios, total de eventos y el usuario más activo
// (nil si nadie tuvo actividad).
func (uc *ActivityUseCase) Summary(ctx context.Context, days int) (*dto.ActivitySummaryDTO, error) {
	data, err := uc.fetchWindow(ctx, days)
	if err != nil {
		return nil, err
	}
	return buildSummary(data), nil
}

func buildSummary(data *windowData) *dto.ActivitySummaryDTO {
	stats := buildUserStats(data)

	summary := &dto.ActivitySummaryDTO{TotalUsersCount: len(stats)}
	for _, s := range stats {
		if sum := primarySum(s); sum > 0 {
			summary.ActiveUsersCount++
			summary.TotalEventsCount += sum
		}
	}
	if len(stats) > 0 {
		if top := stats[0]; primarySum(top) > 0 {
			summary.MostActive = &dto.MostActiveUserDTO{
				UserID:      top.UserID,
				Email:       top.Email,
				DisplayName: top.DisplayName,
				EventsCount: primarySum(top),
			}
		}
	}
	return summary
}
